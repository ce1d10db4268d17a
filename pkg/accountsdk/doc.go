/*
Package accountsdk is the client SDK and wire contract for the accounts
service.

The request and response types in this package are shared with the server,
so the JSON shapes stay in one place. Errors come back as *APIError carrying
the HTTP status plus the "error" code and "detail" message from the body.

# Client vs Session

Client covers the anonymous endpoints and signs users in:

	client := accountsdk.NewClient("http://localhost:8000")

	user, err := client.Signup(ctx, accountsdk.SignupRequest{
		Username: "bulma",
		Email:    "bulma@capsule.corp",
		Password: "hunter22",
	})

	session, err := client.Login(ctx, "bulma", "hunter22")

Session carries the bearer token for everything else:

	me, err := session.Me(ctx)
	_, err = session.UpdateAvatar(ctx, "vegeta.png")
	id, err := session.SubmitFeedback(ctx, 5, "great")

Admin endpoints (ListUsers, CreateUser, ListFeedback) answer 403 for
anyone but the admin account.

# Errors

	_, err := client.Login(ctx, "bulma", "wrong")
	var apiErr *accountsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		fmt.Println(apiErr.Detail) // Incorrect username or password
	}

# Validation

Request types with a Validate method return a map of JSON field name to
reason, or nil. The server runs the same checks and answers 400 with the
flattened map as detail.
*/
package accountsdk
