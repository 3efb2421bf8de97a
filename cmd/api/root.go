package main

import (
	"context"
	"fmt"
	"log/slog"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/logger"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "inkwell",
		Short:         "Blog API: posts, comments, likes and quotes over JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.SetDefault(logger.New())
		},
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
	)
	return rootCmd
}

func newMigrateCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Args:  cobra.NoArgs,
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly {
				_, err := fmt.Fprint(cmd.OutOrStdout(), database.Schema())
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fail(err)
			}

			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return fail(err)
			}
			defer db.Close()

			if err := db.Migrate(cmd.Context()); err != nil {
				return fail(fmt.Errorf("migrate: %w", err))
			}
			slog.Info("Schema applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the schema instead of applying it")
	return cmd
}

func openDatabase(ctx context.Context, cfg *config.Config) (database.Service, error) {
	return database.New(ctx, database.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
}

// fail logs err once so it lands in the structured log stream.
func fail(err error) error {
	slog.Error("Command failed", "error", err)
	return err
}
