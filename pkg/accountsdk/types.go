package accountsdk

// ============================================================================
// Users
// ============================================================================

// UserPublic is the externally visible projection of an account. The
// password hash never leaves the service.
type UserPublic struct {
	Username            string  `json:"username"`
	Email               string  `json:"email"`
	FullName            *string `json:"full_name"`
	Avatar              string  `json:"avatar"`
	Disabled            bool    `json:"disabled"`
	OnboardingCompleted bool    `json:"onboarding_completed"`
}

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
	FullName string `json:"full_name,omitempty" validate:"max=128"`
	Password string `json:"password" validate:"required,max=72"`
	Avatar   string `json:"avatar,omitempty" validate:"max=128"`
}

// AdminCreateUserRequest is the body of POST /admin/users.
type AdminCreateUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
	FullName string `json:"full_name,omitempty" validate:"max=128"`
	Password string `json:"password" validate:"required,max=72"`
	Avatar   string `json:"avatar,omitempty" validate:"max=128"`
	Disabled bool   `json:"disabled,omitempty"`
}

// ChangePasswordRequest is the body of POST /users/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,max=72"`
}

// AvatarUpdateRequest is the body of PUT /users/me/avatar.
type AvatarUpdateRequest struct {
	Avatar string `json:"avatar" validate:"required"`
}

// ============================================================================
// Tokens
// ============================================================================

// TokenResponse is returned by POST /token. RefreshToken is only present when
// the service is configured to issue refresh tokens.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// ============================================================================
// Feedback
// ============================================================================

// FeedbackRequest is the body of POST /feedback. Range and emptiness checks
// happen server side so the messages stay consistent across clients.
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}

// FeedbackSubmitted is returned by POST /feedback.
type FeedbackSubmitted struct {
	Message    string `json:"message"`
	FeedbackID string `json:"feedback_id"`
}

// Feedback is a stored feedback entry as listed by GET /admin/feedback.
type Feedback struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Rating    int    `json:"rating"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ============================================================================
// Misc
// ============================================================================

// MessageResponse carries a single human readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ErrorResponse is the wire format of every error body.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}
