package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

type SignupHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles POST /signup
//
//	@Summary		Create an account
//	@Description	Registers a new account. A random avatar is assigned when none is given.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.SignupRequest	true	"Account details"
//	@Success		200		{object}	accountsdk.UserPublic		"The created account"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Duplicate username/email or invalid input"
//	@Failure		429		{object}	accountsdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"Internal server error"
//	@Router			/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.SignupRequest
	if !decodeJSON(w, r, &req) || !validate(w, req.Validate()) {
		return
	}

	user, err := h.UserService.Signup(r.Context(), service.NewAccount{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserPublic(user))
}
