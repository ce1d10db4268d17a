package http

import (
	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
)

func toUserPublic(u domain.User) accountsdk.UserPublic {
	var fullName *string
	if u.FullName != "" {
		fullName = &u.FullName
	}
	return accountsdk.UserPublic{
		Username:            u.Username,
		Email:               u.Email,
		FullName:            fullName,
		Avatar:              u.Avatar,
		Disabled:            u.Disabled,
		OnboardingCompleted: u.OnboardingCompleted,
	}
}

func toUserPublicList(users []domain.User) []accountsdk.UserPublic {
	out := make([]accountsdk.UserPublic, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPublic(u))
	}
	return out
}

func toFeedbackList(entries []domain.Feedback) []accountsdk.Feedback {
	out := make([]accountsdk.Feedback, 0, len(entries))
	for _, f := range entries {
		out = append(out, accountsdk.Feedback{
			ID:        f.ID,
			Username:  f.Username,
			Rating:    f.Rating,
			Message:   f.Message,
			Timestamp: f.Timestamp(),
		})
	}
	return out
}
