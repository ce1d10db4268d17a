package domain

import (
	"strings"
	"time"
)

// FeedbackTimeLayout is the stored timestamp format. Fixed width UTC keeps
// lexical and chronological order the same.
const FeedbackTimeLayout = "2006-01-02T15:04:05.000000Z"

// Feedback is an append-only rating left by a signed in user.
type Feedback struct {
	ID        string
	Username  string
	Rating    int
	Message   string
	CreatedAt time.Time

	// StoredTimestamp is the timestamp text as read back from storage. It is
	// shown as-is when CreatedAt could not be parsed from it.
	StoredTimestamp string
}

// Timestamp renders CreatedAt, or the stored text when it did not parse.
func (f Feedback) Timestamp() string {
	if f.CreatedAt.IsZero() {
		return f.StoredTimestamp
	}
	return FormatFeedbackTime(f.CreatedAt)
}

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// FormatFeedbackTime renders t in FeedbackTimeLayout.
func FormatFeedbackTime(t time.Time) string {
	return t.UTC().Format(FeedbackTimeLayout)
}

// ParseFeedbackTime reads FeedbackTimeLayout and also the offset-less ISO
// timestamps found in older tables, which are taken as UTC. Unparseable input
// yields the zero time so such rows sort last.
func ParseFeedbackTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{FeedbackTimeLayout, time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
