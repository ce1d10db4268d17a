package accountsdk

import (
	"context"
	"net/http"
	"sync"
)

// Session performs requests on behalf of a signed in user. The service has
// no refresh grant, so an expired token means logging in again.
type Session struct {
	client *Client

	mu          sync.RWMutex
	accessToken string
}

// AccessToken returns the bearer token in use.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetAccessToken swaps in a fresh token, e.g. after logging in again.
func (s *Session) SetAccessToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = tok
}

func (s *Session) call(ctx context.Context, method, path string, payload, out any, expected int) error {
	resp, err := s.client.doJSON(ctx, method, path, payload, s.AccessToken())
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, expected)
}

// Me returns the signed in user's profile.
func (s *Session) Me(ctx context.Context) (*UserPublic, error) {
	var out UserPublic
	if err := s.call(ctx, http.MethodGet, "/users/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteOnboarding flips the onboarding flag for the signed in user.
func (s *Session) CompleteOnboarding(ctx context.Context) (*UserPublic, error) {
	var out UserPublic
	if err := s.call(ctx, http.MethodPost, "/users/me/onboarding-complete", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword replaces the password after re-checking the current one.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	var out MessageResponse
	req := ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	return s.call(ctx, http.MethodPost, "/users/change-password", req, &out, http.StatusOK)
}

// UpdateAvatar selects a new avatar from the allow-list.
func (s *Session) UpdateAvatar(ctx context.Context, avatar string) (*UserPublic, error) {
	var out UserPublic
	req := AvatarUpdateRequest{Avatar: avatar}
	if err := s.call(ctx, http.MethodPut, "/users/me/avatar", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitFeedback records a rating and message and returns the new entry ID.
func (s *Session) SubmitFeedback(ctx context.Context, rating int, message string) (string, error) {
	var out FeedbackSubmitted
	req := FeedbackRequest{Rating: rating, Message: message}
	if err := s.call(ctx, http.MethodPost, "/feedback", req, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.FeedbackID, nil
}

// ListUsers returns every account. Admin only.
func (s *Session) ListUsers(ctx context.Context) ([]UserPublic, error) {
	var out []UserPublic
	if err := s.call(ctx, http.MethodGet, "/admin/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser creates an account on someone's behalf. Admin only.
func (s *Session) CreateUser(ctx context.Context, req AdminCreateUserRequest) (*UserPublic, error) {
	var out UserPublic
	if err := s.call(ctx, http.MethodPost, "/admin/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFeedback returns all feedback, newest first. Admin only.
func (s *Session) ListFeedback(ctx context.Context) ([]Feedback, error) {
	var out []Feedback
	if err := s.call(ctx, http.MethodGet, "/admin/feedback", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
