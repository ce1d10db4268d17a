package csvfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/csvfile"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/storetest"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := csvfile.NewStore(t.TempDir(), csvfile.WithAvatarPicker(domain.FixedAvatar(storetest.PickedAvatar)))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, newStore)
}

func TestApplyMigrationsWritesHeaders(t *testing.T) {
	dir := t.TempDir()
	s, err := csvfile.NewStore(dir)
	require.NoError(t, err)

	// Nothing exists until migrations run; reads treat that as empty.
	empty, err := s.Users().IsEmpty(context.Background())
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, csvfile.FeedbackFile), nil, 0o644))
	require.NoError(t, s.ApplyMigrations())

	users, err := os.ReadFile(filepath.Join(dir, csvfile.UsersFile))
	require.NoError(t, err)
	require.Equal(t, "username,email,full_name,hashed_password,disabled,avatar,onboarding_completed\n", string(users))

	fb, err := os.ReadFile(filepath.Join(dir, csvfile.FeedbackFile))
	require.NoError(t, err)
	require.Equal(t, "id,username,rating,message,timestamp\n", string(fb))

	// Running again keeps existing rows.
	_, err = s.Users().CreateUser(context.Background(), domain.NewUser{Username: "a", Email: "a@x.io", PasswordHash: "h", Avatar: "cell.png"})
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	all, err := s.Users().ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestRowFormat(t *testing.T) {
	dir := t.TempDir()
	s, err := csvfile.NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Users().CreateUser(ctx, domain.NewUser{
		Username:     "bulma",
		Email:        "bulma@capsule.corp",
		FullName:     "Bulma Briefs, PhD",
		PasswordHash: "$2a$10$abc",
		Avatar:       "whis.png",
	})
	require.NoError(t, err)
	_, err = s.Users().MarkOnboardingCompleted(ctx, "bulma")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, csvfile.UsersFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, `bulma,bulma@capsule.corp,"Bulma Briefs, PhD",$2a$10$abc,False,whis.png,True`, lines[1])

	// No temp files are left behind after rewrites.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.HasSuffix(e.Name(), ".tmp"), e.Name())
	}
}

func TestReadsExistingTables(t *testing.T) {
	dir := t.TempDir()
	users := "username,email,full_name,hashed_password,disabled,avatar,onboarding_completed\n" +
		"admin,admin@example.com,Administrator,$2b$12$x,false,,TRUE\n"
	feedback := "id,username,rating,message,timestamp\n" +
		"1,admin,4,older,2024-05-01T09:00:00.123456\n" +
		"2,admin,5,newer,2024-05-02T09:00:00.000000Z\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, csvfile.UsersFile), []byte(users), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, csvfile.FeedbackFile), []byte(feedback), 0o644))

	s, err := csvfile.NewStore(dir, csvfile.WithAvatarPicker(domain.FixedAvatar("cell.png")))
	require.NoError(t, err)
	ctx := context.Background()

	u, err := s.Users().GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.False(t, u.Disabled)
	require.True(t, u.OnboardingCompleted)
	require.Equal(t, "cell.png", u.Avatar)

	// The picked avatar is presented, not persisted.
	raw, err := os.ReadFile(filepath.Join(dir, csvfile.UsersFile))
	require.NoError(t, err)
	require.Equal(t, users, string(raw))

	list, err := s.Feedback().ListFeedback(ctx)
	require.NoError(t, err)
	require.Equal(t, "2", list[0].ID)
	require.Equal(t, "1", list[1].ID)
}

func TestListFeedbackKeepsUnparsedTimestamp(t *testing.T) {
	dir := t.TempDir()
	feedback := "id,username,rating,message,timestamp\n" +
		"1,admin,4,dated,2024-05-01T09:00:00.000000Z\n" +
		"2,admin,3,undated,last tuesday\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, csvfile.FeedbackFile), []byte(feedback), 0o644))

	s, err := csvfile.NewStore(dir)
	require.NoError(t, err)

	list, err := s.Feedback().ListFeedback(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "2024-05-01T09:00:00.000000Z", list[0].Timestamp())
	require.Equal(t, "2", list[1].ID)
	require.True(t, list[1].CreatedAt.IsZero())
	require.Equal(t, "last tuesday", list[1].Timestamp())
}

func TestListFeedbackRejectsBadRating(t *testing.T) {
	dir := t.TempDir()
	feedback := "id,username,rating,message,timestamp\n" +
		"1,admin,4,fine,2024-05-01T09:00:00.000000Z\n" +
		"2,admin,five,oops,2024-05-02T09:00:00.000000Z\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, csvfile.FeedbackFile), []byte(feedback), 0o644))

	s, err := csvfile.NewStore(dir)
	require.NoError(t, err)

	_, err = s.Feedback().ListFeedback(context.Background())
	require.ErrorContains(t, err, `bad rating "five"`)
}

func TestPing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := csvfile.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	require.Error(t, s.Ping(context.Background()))
}

func TestNewStoreRejectsEmptyDir(t *testing.T) {
	_, err := csvfile.NewStore("  ")
	require.Error(t, err)
}
