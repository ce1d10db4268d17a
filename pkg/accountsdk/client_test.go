package accountsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

func TestClient_Token(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/token", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())

		if r.PostForm.Get("username") != "goku" || r.PostForm.Get("password") != "kamehameha" {
			accountsdk.ErrIncorrectLogin.WriteError(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(accountsdk.TokenResponse{AccessToken: "tok", TokenType: "bearer"})
	}))
	defer srv.Close()

	c := accountsdk.NewClient(srv.URL + "/")

	t.Run("success", func(t *testing.T) {
		s, err := c.Login(context.Background(), "goku", "kamehameha")
		require.NoError(t, err)
		require.Equal(t, "tok", s.AccessToken())
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := c.Login(context.Background(), "goku", "wrong")
		require.Error(t, err)

		var apiErr *accountsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, accountsdk.ErrorCodeInvalidCredentials, apiErr.Code)
		require.Equal(t, "Incorrect username or password", apiErr.Detail)
	})
}

func TestSession_SendsBearer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			accountsdk.ErrUnauthorized.WriteError(w)
			return
		}
		switch r.URL.Path {
		case "/users/me":
			name := "Son Goku"
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(accountsdk.UserPublic{Username: "goku", FullName: &name, Avatar: "goku.png"})
		case "/admin/users":
			accountsdk.ErrAdminsOnly.WriteError(w)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := accountsdk.NewClient(srv.URL)

	me, err := c.NewSession("good").Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "goku", me.Username)
	require.Equal(t, "Son Goku", *me.FullName)

	_, err = c.NewSession("bad").Me(context.Background())
	var apiErr *accountsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = c.NewSession("good").ListUsers(context.Background())
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, "Admins only", apiErr.Detail)

	// Plain-text 404 bodies still become an APIError.
	_, err = c.NewSession("good").ListFeedback(context.Background())
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, accountsdk.ErrorCodeServerError, apiErr.Code)
}

func TestAPIError_WriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	accountsdk.ErrUnauthorized.WriteError(rec)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"unauthorized","detail":"Could not validate credentials"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	accountsdk.ErrUsernameExists.WriteError(rec)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, rec.Header().Get("WWW-Authenticate"))

	custom := accountsdk.ErrValidation.WithDetail("Rating must be between 1 and 5")
	require.Equal(t, "validation failed", accountsdk.ErrValidation.Detail)
	require.Equal(t, "validation_error: Rating must be between 1 and 5", custom.Error())
}
