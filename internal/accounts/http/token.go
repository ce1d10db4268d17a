package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// TokenHandler serves POST /token with the OAuth2 password form fields.
type TokenHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Exchanges a username (or email) and password for a bearer session token.
//	@Tags			Auth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string						true	"Username or email"
//	@Param			password	formData	string						true	"Password"
//	@Success		200			{object}	accountsdk.TokenResponse	"access_token, token_type[, refresh_token]"
//	@Failure		400			{object}	accountsdk.ErrorResponse	"Malformed form"
//	@Failure		401			{object}	accountsdk.ErrorResponse	"Incorrect username or password"
//	@Failure		429			{object}	accountsdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		500			{object}	accountsdk.ErrorResponse	"Internal server error"
//	@Header			200			{string}	Cache-Control				"no-store"
//	@Router			/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") &&
		!strings.HasPrefix(ct, "multipart/form-data") {
		accountsdk.ErrInvalidRequest.WithDetail("Expected a form encoded body").WriteError(w)
		return
	}
	if err := httpx.ParseForm(r); err != nil {
		accountsdk.ErrInvalidRequest.WithDetail("Malformed form body").WriteError(w)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		accountsdk.ErrValidation.WithDetail("username and password are required").WriteError(w)
		return
	}

	pair, err := h.AuthService.Login(r.Context(), username, password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accountsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		TokenType:    "bearer",
		RefreshToken: pair.RefreshToken,
	})
}
