package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

const (
	DetailRatingRange  = "Rating must be between 1 and 5"
	DetailEmptyMessage = "Feedback message cannot be empty"
)

type FeedbackService struct {
	Store store.Store

	// Now and NewID default to the wall clock and random UUIDs.
	Now   func() time.Time
	NewID func() string
}

// Submit stores a rating from username and returns the new entry's ID. The
// message is stored trimmed.
func (s *FeedbackService) Submit(ctx context.Context, username string, rating int, message string) (string, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return "", validationError(DetailRatingRange)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", validationError(DetailEmptyMessage)
	}

	f := domain.Feedback{
		ID:        s.newID(),
		Username:  username,
		Rating:    rating,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Store.Feedback().CreateFeedback(ctx, f); err != nil {
		return "", fmt.Errorf("store feedback: %w", err)
	}

	slogx.FromContext(ctx).Info("feedback submitted",
		slog.String("feedback_id", f.ID),
		slog.String("username", username),
		slog.Int("rating", rating),
	)
	return f.ID, nil
}

// List returns every entry, newest first.
func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.Store.Feedback().ListFeedback(ctx)
}

func (s *FeedbackService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *FeedbackService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
