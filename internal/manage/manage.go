// Package manage implements the management command line: schema setup and
// account administration.
package manage

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/service"
	"github.com/MKhiriev/go-sched/internal/store"
	"github.com/MKhiriev/go-sched/internal/validators"
	"github.com/MKhiriev/go-sched/models"
)

type manager struct {
	dsn        string
	configPath string

	logger *logger.Logger
}

// NewRootCommand returns the "manage" command with all subcommands attached.
func NewRootCommand(log *logger.Logger) *cobra.Command {
	m := &manager{logger: log}

	root := &cobra.Command{
		Use:           "manage",
		Short:         "Administer the go-sched database and accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&m.dsn, "database", "d", "", "database DSN (postgres:// URL or SQLite file)")
	root.PersistentFlags().StringVarP(&m.configPath, "config", "c", "", "JSON config file path")

	root.AddCommand(
		m.createTablesCmd(),
		m.dropTablesCmd(),
		m.createUserCmd(),
		m.setPasswordCmd(),
		m.setActiveCmd("activate-user", "Allow an account to log in again", true),
		m.setActiveCmd("deactivate-user", "Disable an account without deleting it", false),
	)

	return root
}

func (m *manager) createTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-tables",
		Short: "Create all database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.withDB(cmd.Context(), func(db *store.DB, _ *config.StructuredConfig) error {
				if err := db.Migrate(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "tables created")
				return nil
			})
		},
	}
}

func (m *manager) dropTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop-tables",
		Short: "Drop all database tables; all data is lost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.withDB(cmd.Context(), func(db *store.DB, _ *config.StructuredConfig) error {
				if err := db.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "tables dropped")
				return nil
			})
		},
	}
}

func (m *manager) createUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-user EMAIL PASSWORD",
		Short: "Create an active account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.withAuth(cmd.Context(), func(ctx context.Context, auth service.AuthService) error {
				user, err := auth.Signup(ctx, models.CredentialsForm{Username: args[0], Password: args[1]})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %s created with id %d\n", user.Email, user.UserID)
				return nil
			})
		},
	}
}

func (m *manager) setPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-password EMAIL PASSWORD",
		Short: "Replace the password of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.withAuth(cmd.Context(), func(ctx context.Context, auth service.AuthService) error {
				if err := auth.ChangePassword(ctx, args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "password of %s changed\n", models.NormalizeEmail(args[0]))
				return nil
			})
		},
	}
}

func (m *manager) setActiveCmd(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " EMAIL",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.withAuth(cmd.Context(), func(ctx context.Context, auth service.AuthService) error {
				if err := auth.SetActive(ctx, args[0], active); err != nil {
					return err
				}
				state := "deactivated"
				if active {
					state = "activated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %s %s\n", models.NormalizeEmail(args[0]), state)
				return nil
			})
		},
	}
}

// withDB loads the configuration, opens the database for fn and closes it
// afterwards.
func (m *manager) withDB(ctx context.Context, fn func(db *store.DB, cfg *config.StructuredConfig) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.GetStructuredConfigWith(&config.StructuredConfig{
		Storage:      config.Storage{DB: config.DB{DSN: m.dsn}},
		JSONFilePath: m.configPath,
	})
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	db, err := store.NewConnect(ctx, cfg.Storage.DB, m.logger)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	return fn(db, cfg)
}

func (m *manager) withAuth(ctx context.Context, fn func(ctx context.Context, auth service.AuthService) error) error {
	return m.withDB(ctx, func(db *store.DB, cfg *config.StructuredConfig) error {
		storages := store.NewStorages(db, m.logger)
		auth := service.NewAuthService(storages.UserRepository, validators.NewFormValidator(), cfg.App, m.logger)

		return fn(m.logger.WithContext(ctx), auth)
	})
}
