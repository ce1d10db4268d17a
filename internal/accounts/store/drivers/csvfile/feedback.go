package csvfile

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
)

type feedbackRepo struct {
	t *table
}

func (r *feedbackRepo) CreateFeedback(ctx context.Context, f domain.Feedback) error {
	rec := record{
		"id":        f.ID,
		"username":  f.Username,
		"rating":    strconv.Itoa(f.Rating),
		"message":   f.Message,
		"timestamp": domain.FormatFeedbackTime(f.CreatedAt),
	}
	return r.t.update(func(rows []record) ([]record, bool, error) {
		return append(rows, rec), true, nil
	})
}

func (r *feedbackRepo) ListFeedback(ctx context.Context) ([]domain.Feedback, error) {
	rows, err := r.t.read()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Feedback, 0, len(rows))
	for _, rec := range rows {
		rating, err := strconv.Atoi(strings.TrimSpace(rec["rating"]))
		if err != nil {
			return nil, fmt.Errorf("csvfile: feedback %q: bad rating %q", rec["id"], rec["rating"])
		}
		out = append(out, domain.Feedback{
			ID:              rec["id"],
			Username:        rec["username"],
			Rating:          rating,
			Message:         rec["message"],
			CreatedAt:       domain.ParseFeedbackTime(rec["timestamp"]),
			StoredTimestamp: rec["timestamp"],
		})
	}

	// Newest first; entries with equal timestamps keep file order.
	slices.SortStableFunc(out, func(a, b domain.Feedback) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}
