package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

type AdminUsersHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List accounts
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		accountsdk.UserPublic
//	@Failure		401	{object}	accountsdk.ErrorResponse
//	@Failure		403	{object}	accountsdk.ErrorResponse	"Admins only"
//	@Router			/admin/users [get].
func (h *AdminUsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserPublicList(users))
}

// HandleCreate godoc
//
//	@Summary		Create an account as admin
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.AdminCreateUserRequest	true	"Account details"
//	@Success		201		{object}	accountsdk.UserPublic
//	@Failure		400		{object}	accountsdk.ErrorResponse
//	@Failure		401		{object}	accountsdk.ErrorResponse
//	@Failure		403		{object}	accountsdk.ErrorResponse	"Admins only"
//	@Router			/admin/users [post].
func (h *AdminUsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.AdminCreateUserRequest
	if !decodeJSON(w, r, &req) || !validate(w, req.Validate()) {
		return
	}

	user, err := h.UserService.AdminCreate(r.Context(), service.NewAccount{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Avatar:   req.Avatar,
		Disabled: req.Disabled,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUserPublic(user))
}

type AdminFeedbackHandler struct {
	FeedbackService *service.FeedbackService
}

// ServeHTTP godoc
//
//	@Summary		List feedback
//	@Description	Every feedback entry, newest first.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		accountsdk.Feedback
//	@Failure		401	{object}	accountsdk.ErrorResponse
//	@Failure		403	{object}	accountsdk.ErrorResponse	"Admin access required"
//	@Router			/admin/feedback [get].
func (h *AdminFeedbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entries, err := h.FeedbackService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toFeedbackList(entries))
}
