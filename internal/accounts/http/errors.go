package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// writeServiceError maps service and store errors onto the API error set.
// Anything unrecognised is logged and answered with a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateKey):
		accountsdk.NewAPIError(http.StatusBadRequest, accountsdk.ErrorCodeDuplicate, service.Detail(err)).WriteError(w)
	case errors.Is(err, service.ErrValidation):
		accountsdk.ErrValidation.WithDetail(service.Detail(err)).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		accountsdk.ErrIncorrectLogin.WriteError(w)
	case errors.Is(err, service.ErrBadCredential):
		accountsdk.ErrCurrentPassword.WriteError(w)
	case errors.Is(err, service.ErrUnauthorized):
		accountsdk.ErrUnauthorized.WriteError(w)
	case errors.Is(err, store.ErrReadOnly):
		accountsdk.ErrReadOnly.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		accountsdk.ErrServerError.WriteError(w)
	}
}

// decodeJSON reads the body into v, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		accountsdk.ErrInvalidRequest.WithDetail("Invalid JSON in request body").WriteError(w)
		return false
	}
	return true
}

// validate answers 400 with the flattened field errors, if any.
func validate(w http.ResponseWriter, errs map[string]string) bool {
	if len(errs) > 0 {
		accountsdk.ErrValidation.WithDetail(accountsdk.ValidationDetail(errs)).WriteError(w)
		return false
	}
	return true
}
