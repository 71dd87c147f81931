package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nadiprasetio/catat-cuan/internal/config"
	"github.com/nadiprasetio/catat-cuan/internal/engine"
	"github.com/nadiprasetio/catat-cuan/internal/messages"
	"github.com/nadiprasetio/catat-cuan/internal/session"
	"github.com/nadiprasetio/catat-cuan/internal/storage"
	"github.com/nadiprasetio/catat-cuan/internal/tui"
)

func chatCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive transaction-entry chat",
		Long: `Open a chat session that collects one transaction field by field:
type, category, date, amount, and account. Fuzzy input is confirmed
before anything is committed; type 'batal' anytime to cancel.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			catalog, err := loadCatalog()
			if err != nil {
				return err
			}

			sessions := session.NewSQLiteStore(store.DB())
			eng := engine.New(store, store, catalog)

			return tui.Run(ctx, eng, sessions, userID)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "user ID owning the transactions")
	return cmd
}

func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(dbPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func loadCatalog() (*messages.Catalog, error) {
	if path := viper.GetString("messages.templates"); path != "" {
		return messages.NewCatalogFromFile(config.ExpandPath(path))
	}
	return messages.NewCatalog()
}
