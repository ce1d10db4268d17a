// Package dynamo looks accounts up in an existing DynamoDB customers table.
// It is read-only: signups and profile changes need a writable driver.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
)

const (
	DefaultTable = "Customers"

	// DefaultAvatar is shown for every customer; the table has no avatar column.
	DefaultAvatar = "goku.png"
)

// API is the subset of *dynamodb.Client the users repository calls.
type API interface {
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Users implements store.Users over the customers table. The customer's email
// doubles as the username.
type Users struct {
	api   API
	table string
}

var _ store.Users = (*Users)(nil)

func NewUsers(api API, table string) *Users {
	if table == "" {
		table = DefaultTable
	}
	return &Users{api: api, table: table}
}

func (u *Users) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return u.GetUserByEmail(ctx, username)
}

// GetUserByEmail scans for the first customer whose email matches.
func (u *Users) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, store.ErrNotFound
	}

	p := dynamodb.NewScanPaginator(u.api, &dynamodb.ScanInput{
		TableName:                aws.String(u.table),
		FilterExpression:         aws.String("#email = :email"),
		ExpressionAttributeNames: map[string]string{"#email": "email"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return domain.User{}, fmt.Errorf("dynamo: scan %s: %w", u.table, err)
		}
		if len(page.Items) > 0 {
			return customerToUser(page.Items[0]), nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

// ListUsers returns every customer in scan order.
func (u *Users) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	p := dynamodb.NewScanPaginator(u.api, &dynamodb.ScanInput{TableName: aws.String(u.table)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamo: scan %s: %w", u.table, err)
		}
		for _, item := range page.Items {
			out = append(out, customerToUser(item))
		}
	}
	return out, nil
}

func (u *Users) IsEmpty(ctx context.Context) (bool, error) {
	out, err := u.api.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(u.table),
		Limit:     aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("dynamo: scan %s: %w", u.table, err)
	}
	return len(out.Items) == 0, nil
}

// Ping checks that the table exists and is reachable.
func (u *Users) Ping(ctx context.Context) error {
	_, err := u.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(u.table)})
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("dynamo: table %s does not exist", u.table)
	}
	return err
}

func (u *Users) CreateUser(context.Context, domain.NewUser) (domain.User, error) {
	return domain.User{}, store.ErrReadOnly
}

func (u *Users) UpdatePasswordHash(context.Context, string, string) (bool, error) {
	return false, store.ErrReadOnly
}

func (u *Users) UpdateAvatar(context.Context, string, string) (bool, error) {
	return false, store.ErrReadOnly
}

func (u *Users) MarkOnboardingCompleted(context.Context, string) (bool, error) {
	return false, store.ErrReadOnly
}

func customerToUser(item map[string]types.AttributeValue) domain.User {
	email := stringAttr(item, "email")
	return domain.User{
		Username:            email,
		Email:               email,
		FullName:            strings.TrimSpace(stringAttr(item, "first_name") + " " + stringAttr(item, "last_name")),
		PasswordHash:        stringAttr(item, "password"),
		Avatar:              DefaultAvatar,
		OnboardingCompleted: true,
	}
}

func stringAttr(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}
