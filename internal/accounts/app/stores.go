package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/csvfile"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/dynamo"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite"
)

// openStore opens the configured primary store, applies its migrations and,
// with USERS_BACKEND=dynamodb, swaps in the DynamoDB customer table for users.
func openStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	var st store.Store

	// New accounts draw from the same catalog the avatar routes validate against.
	picker := domain.NewRandomAvatars(nil, service.AvatarCatalog{Dir: cfg.AvatarDir}.List()...)

	switch cfg.StoreDriver {
	case DriverSQLite:
		db, err := sqlite.NewStore(fmt.Sprintf("file:%s", cfg.DatabaseFile), sqlite.WithAvatarPicker(picker))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply database migrations: %w", err)
		}
		logger.Info("sqlite store ready", "file", cfg.DatabaseFile)
		st = db
	default:
		csv, err := csvfile.NewStore(cfg.DataDir, csvfile.WithAvatarPicker(picker))
		if err != nil {
			return nil, fmt.Errorf("failed to open csv store: %w", err)
		}
		if err := csv.ApplyMigrations(); err != nil {
			return nil, fmt.Errorf("failed to prepare csv files: %w", err)
		}
		logger.Info("csv store ready", "dir", cfg.DataDir)
		st = csv
	}

	if cfg.UsersBackend != UsersDynamoDB {
		return st, nil
	}

	client, err := dynamo.NewClient(ctx, dynamo.ClientConfig{
		Region:          cfg.AWSRegion,
		Endpoint:        cfg.DynamoDBEndpoint,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to configure dynamodb client: %w", err)
	}

	logger.Info("users served from dynamodb", "table", cfg.DynamoDBTable, "region", cfg.AWSRegion)
	return store.WithUsers(st, dynamo.NewUsers(client, cfg.DynamoDBTable)), nil
}
