package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// MeHandler serves the signed in user's own profile.
type MeHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func currentUser(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	u, ok := httpx.PrincipalFrom[domain.User](r.Context())
	if !ok {
		accountsdk.ErrUnauthorized.WriteError(w)
	}
	return u, ok
}

// HandleGet godoc
//
//	@Summary		Current user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	accountsdk.UserPublic
//	@Failure		401	{object}	accountsdk.ErrorResponse	"Could not validate credentials"
//	@Router			/users/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserPublic(user))
}

// HandleOnboardingComplete godoc
//
//	@Summary		Mark onboarding complete
//	@Description	Sets the onboarding flag. Calling it again is harmless.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	accountsdk.UserPublic
//	@Failure		401	{object}	accountsdk.ErrorResponse
//	@Failure		500	{object}	accountsdk.ErrorResponse
//	@Router			/users/me/onboarding-complete [post].
func (h *MeHandler) HandleOnboardingComplete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.UserService.CompleteOnboarding(r.Context(), user.Username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserPublic(updated))
}

// HandleUpdateAvatar godoc
//
//	@Summary		Change avatar
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.AvatarUpdateRequest	true	"Avatar filename from GET /avatars"
//	@Success		200		{object}	accountsdk.UserPublic
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Invalid avatar selection"
//	@Failure		401		{object}	accountsdk.ErrorResponse
//	@Router			/users/me/avatar [put].
func (h *MeHandler) HandleUpdateAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req accountsdk.AvatarUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Validate() != nil {
		accountsdk.ErrInvalidAvatar.WriteError(w)
		return
	}

	updated, err := h.UserService.UpdateAvatar(r.Context(), user.Username, req.Avatar)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserPublic(updated))
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	accountsdk.MessageResponse			"Password updated successfully"
//	@Failure		400		{object}	accountsdk.ErrorResponse			"Current password is incorrect"
//	@Failure		401		{object}	accountsdk.ErrorResponse
//	@Failure		500		{object}	accountsdk.ErrorResponse
//	@Router			/users/change-password [post].
func (h *MeHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req accountsdk.ChangePasswordRequest
	if !decodeJSON(w, r, &req) || !validate(w, req.Validate()) {
		return
	}

	if err := h.AuthService.ChangePassword(r.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accountsdk.MessageResponse{Message: "Password updated successfully"})
}
