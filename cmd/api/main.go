package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sangkips/xylem-api/internal/config"
	"github.com/sangkips/xylem-api/internal/infrastructure/database"
	"github.com/sangkips/xylem-api/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("xylem-api failed")
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xylem-api",
		Short:         "Fabricator, distributor and marketing representative back office",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), loadConfig())
		},
	}
	root.AddCommand(serveCmd(), migrateCmd(), createAdminCmd())
	return root
}

func loadConfig() *config.Config {
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return cfg
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and notification workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), loadConfig())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed the configured admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			if cfg.Admin.Username == "" {
				return nil
			}
			_, err = database.EnsureAdmin(db, cfg.Admin)
			return err
		},
	}
}

func createAdminCmd() *cobra.Command {
	var admin config.AdminConfig
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
			if err != nil {
				return err
			}
			created, err := database.EnsureAdmin(db, admin)
			if err != nil {
				log.Error().Err(err).Msg("create admin")
				return err
			}
			if created {
				log.Info().Str("username", admin.Username).Msg("admin created")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&admin.Username, "username", "", "login name")
	cmd.Flags().StringVar(&admin.Email, "email", "", "email address, defaults to the username")
	cmd.Flags().StringVar(&admin.Password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
