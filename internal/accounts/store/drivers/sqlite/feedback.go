package sqlite

import (
	"context"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite/gen"
)

type feedbackRepo struct {
	q *gen.Queries
}

func (r *feedbackRepo) CreateFeedback(ctx context.Context, f domain.Feedback) error {
	return r.q.CreateFeedback(ctx, gen.CreateFeedbackParams{
		ID:        f.ID,
		Username:  f.Username,
		Rating:    int64(f.Rating),
		Message:   f.Message,
		CreatedAt: domain.FormatFeedbackTime(f.CreatedAt),
	})
}

func (r *feedbackRepo) ListFeedback(ctx context.Context) ([]domain.Feedback, error) {
	rows, err := r.q.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Feedback, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Feedback{
			ID:              row.ID,
			Username:        row.Username,
			Rating:          int(row.Rating),
			Message:         row.Message,
			CreatedAt:       domain.ParseFeedbackTime(row.CreatedAt),
			StoredTimestamp: row.CreatedAt,
		})
	}
	return out, nil
}
