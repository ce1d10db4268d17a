package dynamo_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/dynamo"
)

// fakeAPI serves items in pages of pageSize and applies the email filter the
// way DynamoDB does: after the page is read, so pages may come back empty.
type fakeAPI struct {
	items    []map[string]types.AttributeValue
	pageSize int
	scans    int
	err      error
}

func (f *fakeAPI) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans++
	if f.err != nil {
		return nil, f.err
	}

	start := 0
	if k, ok := in.ExclusiveStartKey["offset"].(*types.AttributeValueMemberN); ok {
		start, _ = strconv.Atoi(k.Value)
	}
	size := f.pageSize
	if in.Limit != nil {
		size = int(*in.Limit)
	}
	end := min(start+size, len(f.items))

	var want string
	if v, ok := in.ExpressionAttributeValues[":email"].(*types.AttributeValueMemberS); ok {
		want = v.Value
	}

	out := &dynamodb.ScanOutput{}
	for _, item := range f.items[start:end] {
		if want != "" {
			if e, ok := item["email"].(*types.AttributeValueMemberS); !ok || e.Value != want {
				continue
			}
		}
		out.Items = append(out.Items, item)
	}
	if end < len(f.items) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"offset": &types.AttributeValueMemberN{Value: strconv.Itoa(end)},
		}
	}
	return out, nil
}

func (f *fakeAPI) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if *in.TableName != dynamo.DefaultTable {
		return nil, &types.ResourceNotFoundException{}
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func customer(email, first, last, hash string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"email":      &types.AttributeValueMemberS{Value: email},
		"first_name": &types.AttributeValueMemberS{Value: first},
		"last_name":  &types.AttributeValueMemberS{Value: last},
		"password":   &types.AttributeValueMemberS{Value: hash},
	}
}

func TestGetUserByEmailMapsCustomer(t *testing.T) {
	api := &fakeAPI{pageSize: 1, items: []map[string]types.AttributeValue{
		customer("bulma@capsule.corp", "Bulma", "Briefs", "$2b$12$hash1"),
		customer("chichi@example.com", "Chi-Chi", "", "$2b$12$hash2"),
		customer("trunks@capsule.corp", "Trunks", "Briefs", "$2b$12$hash3"),
	}}
	users := dynamo.NewUsers(api, "")

	u, err := users.GetUserByEmail(context.Background(), "chichi@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.User{
		Username:            "chichi@example.com",
		Email:               "chichi@example.com",
		FullName:            "Chi-Chi",
		PasswordHash:        "$2b$12$hash2",
		Avatar:              dynamo.DefaultAvatar,
		OnboardingCompleted: true,
	}, u)

	// Username lookups go through the same email scan.
	u, err = users.GetUserByUsername(context.Background(), "trunks@capsule.corp")
	require.NoError(t, err)
	require.Equal(t, "Trunks Briefs", u.FullName)
}

func TestGetUserByEmailWalksEmptyPages(t *testing.T) {
	api := &fakeAPI{pageSize: 1, items: []map[string]types.AttributeValue{
		customer("a@example.com", "A", "", "h"),
		customer("b@example.com", "B", "", "h"),
		customer("c@example.com", "C", "", "h"),
	}}
	users := dynamo.NewUsers(api, "")

	_, err := users.GetUserByEmail(context.Background(), "c@example.com")
	require.NoError(t, err)
	require.Equal(t, 3, api.scans)

	_, err = users.GetUserByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = users.GetUserByEmail(context.Background(), "")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestScanErrorsPropagate(t *testing.T) {
	boom := errors.New("throttled")
	users := dynamo.NewUsers(&fakeAPI{err: boom}, "")

	_, err := users.GetUserByEmail(context.Background(), "a@example.com")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, store.ErrNotFound)
}

func TestListUsersAndIsEmpty(t *testing.T) {
	ctx := context.Background()

	empty := dynamo.NewUsers(&fakeAPI{pageSize: 10}, "")
	ok, err := empty.IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	api := &fakeAPI{pageSize: 2, items: []map[string]types.AttributeValue{
		customer("a@example.com", "A", "", "h"),
		customer("b@example.com", "B", "", "h"),
		customer("c@example.com", "C", "", "h"),
	}}
	users := dynamo.NewUsers(api, "")

	ok, err = users.IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	list, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "c@example.com", list[2].Username)
}

func TestWritesAreRejected(t *testing.T) {
	ctx := context.Background()
	users := dynamo.NewUsers(&fakeAPI{}, "")

	_, err := users.CreateUser(ctx, domain.NewUser{Username: "goku"})
	require.ErrorIs(t, err, store.ErrReadOnly)

	_, err = users.UpdatePasswordHash(ctx, "goku", "h")
	require.ErrorIs(t, err, store.ErrReadOnly)

	_, err = users.UpdateAvatar(ctx, "goku", "vegeta.png")
	require.ErrorIs(t, err, store.ErrReadOnly)

	_, err = users.MarkOnboardingCompleted(ctx, "goku")
	require.ErrorIs(t, err, store.ErrReadOnly)
}

func TestPing(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, dynamo.NewUsers(&fakeAPI{}, "").Ping(ctx))
	require.Error(t, dynamo.NewUsers(&fakeAPI{}, "Missing").Ping(ctx))
}
