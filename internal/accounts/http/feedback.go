package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

type FeedbackHandler struct {
	FeedbackService *service.FeedbackService
}

// ServeHTTP godoc
//
//	@Summary		Submit feedback
//	@Tags			Feedback
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.FeedbackRequest		true	"Rating 1-5 and a non-empty message"
//	@Success		200		{object}	accountsdk.FeedbackSubmitted
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Rating out of range or empty message"
//	@Failure		401		{object}	accountsdk.ErrorResponse
//	@Router			/feedback [post].
func (h *FeedbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req accountsdk.FeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.FeedbackService.Submit(r.Context(), user.Username, req.Rating, req.Message)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accountsdk.FeedbackSubmitted{
		Message:    "Feedback submitted successfully",
		FeedbackID: id,
	})
}
