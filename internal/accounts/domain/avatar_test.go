package domain_test

import (
	"slices"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/stretchr/testify/require"
)

func TestDefaultAvatars(t *testing.T) {
	require.Len(t, domain.DefaultAvatars, 32)
	require.Contains(t, domain.DefaultAvatars, "goku.png")
	require.Contains(t, domain.DefaultAvatars, "goku_black.png")
}

func TestSeededAvatarsAreReproducible(t *testing.T) {
	a := domain.NewSeededAvatars(42)
	b := domain.NewSeededAvatars(42)

	for range 20 {
		pa, pb := a.Pick(), b.Pick()
		require.Equal(t, pa, pb)
		require.True(t, slices.Contains(domain.DefaultAvatars, pa))
	}
}

func TestRandomAvatarsCustomChoices(t *testing.T) {
	p := domain.NewRandomAvatars(nil, "only.png")
	require.Equal(t, "only.png", p.Pick())
	require.Equal(t, "goku.png", domain.FixedAvatar("goku.png").Pick())
}

func TestFeedbackTime(t *testing.T) {
	ts := time.Date(2025, 3, 4, 5, 6, 7, 890123000, time.UTC)
	s := domain.FormatFeedbackTime(ts)
	require.Equal(t, "2025-03-04T05:06:07.890123Z", s)
	require.True(t, ts.Equal(domain.ParseFeedbackTime(s)))

	// Older rows were written without an offset.
	legacy := domain.ParseFeedbackTime("2024-11-02T10:00:00.5")
	require.Equal(t, time.Date(2024, 11, 2, 10, 0, 0, 500000000, time.UTC), legacy)

	require.True(t, domain.ParseFeedbackTime("yesterday").IsZero())
}

func TestFeedbackTimestamp(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.Equal(t, "2025-01-02T03:04:05.000000Z", domain.Feedback{CreatedAt: at, StoredTimestamp: "ignored"}.Timestamp())
	require.Equal(t, "yesterday", domain.Feedback{StoredTimestamp: "yesterday"}.Timestamp())
	require.Empty(t, domain.Feedback{}.Timestamp())
}

func TestIsAdmin(t *testing.T) {
	require.True(t, domain.User{Username: "admin"}.IsAdmin())
	require.False(t, domain.User{Username: "Admin"}.IsAdmin())
}
