package dynamo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/dynamo"
)

// TestDynamoDBLocal runs the repository against amazon/dynamodb-local.
func TestDynamoDBLocal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "amazon/dynamodb-local:latest",
			ExposedPorts: []string{"8000/tcp"},
			WaitingFor:   wait.ForListeningPort("8000/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8000")
	require.NoError(t, err)

	client, err := dynamo.NewClient(ctx, dynamo.ClientConfig{
		Endpoint:        fmt.Sprintf("http://%s:%s", host, port.Port()),
		AccessKeyID:     "local",
		SecretAccessKey: "local",
	})
	require.NoError(t, err)

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(dynamo.DefaultTable),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("customer_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("customer_id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	require.NoError(t, err)

	item := customer("piccolo@example.com", "Piccolo", "", "$2b$12$hash")
	item["customer_id"] = &types.AttributeValueMemberS{Value: "c-1"}
	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(dynamo.DefaultTable), Item: item})
	require.NoError(t, err)

	users := dynamo.NewUsers(client, dynamo.DefaultTable)
	require.NoError(t, users.Ping(ctx))

	u, err := users.GetUserByUsername(ctx, "piccolo@example.com")
	require.NoError(t, err)
	require.Equal(t, "Piccolo", u.FullName)
	require.Equal(t, "$2b$12$hash", u.PasswordHash)

	empty, err := users.IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}
