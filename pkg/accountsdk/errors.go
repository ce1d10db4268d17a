package accountsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// Error codes carried in the "error" field of every error body.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeValidation         = "validation_error"
	ErrorCodeDuplicate          = "duplicate"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeServerError        = "server_error"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
)

// APIError is both the server's error response and the client's error value.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// WithDetail returns a copy of e with a different detail message.
func (e *APIError) WithDetail(detail string) *APIError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WriteError writes e as the response. 401s carry the bearer challenge.
func (e *APIError) WriteError(w http.ResponseWriter) {
	if e.StatusCode == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	httpx.WriteProblem(w, e.StatusCode, e.Code, e.Detail)
}

// NewAPIError builds an error with an arbitrary status, code and detail.
func NewAPIError(status int, code, detail string) *APIError {
	return &APIError{StatusCode: status, Code: code, Detail: detail}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Detail:     "the request is malformed or missing required fields",
	}

	ErrValidation = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeValidation,
		Detail:     "validation failed",
	}

	ErrUsernameExists = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeDuplicate,
		Detail:     "Username already exists",
	}

	ErrEmailExists = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeDuplicate,
		Detail:     "Email already exists",
	}

	// ErrIncorrectLogin is the single answer for unknown users and wrong
	// passwords on /token.
	ErrIncorrectLogin = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Detail:     "Incorrect username or password",
	}

	ErrCurrentPassword = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidCredentials,
		Detail:     "Current password is incorrect",
	}

	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Detail:     httpx.DefaultUnauthorizedDetail,
	}

	ErrAdminsOnly = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Detail:     "Admins only",
	}

	ErrInvalidAvatar = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeValidation,
		Detail:     "Invalid avatar selection",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Detail:     "internal server error",
	}

	ErrReadOnly = &APIError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       ErrorCodeServerError,
		Detail:     "account changes are not available on this deployment",
	}
)

// parseErrorResponse turns a non-success response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && (er.Error != "" || er.Detail != "") {
		return &APIError{StatusCode: resp.StatusCode, Code: er.Error, Detail: er.Detail}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Detail:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
