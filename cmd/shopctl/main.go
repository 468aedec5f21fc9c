// Command shopctl runs schema migrations and bootstraps admin accounts.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/repo"
	"github.com/Skotchmaster/shop_admin/internal/service"
	"github.com/Skotchmaster/shop_admin/internal/transport"
	pkgconfig "github.com/Skotchmaster/shop_admin/pkg/config"
	pkgdb "github.com/Skotchmaster/shop_admin/pkg/db"
)

const actor = "shopctl"

func main() {
	_ = godotenv.Load(".env")
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dsn string
	root := &cobra.Command{
		Use:           "shopctl",
		Short:         "Maintenance commands for the shop admin database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&dsn, "database-url", pkgconfig.EnvDefault("DATABASE_URL", ""),
		`database DSN, "sqlite:<path>" for SQLite (default $DATABASE_URL)`)

	root.AddCommand(newMigrateCmd(&dsn), newCreateAdminCmd(&dsn))
	return root
}

func openDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	if err := pkgconfig.RequireNonEmpty(dsn, "DATABASE_URL"); err != nil {
		return nil, err
	}
	db, err := pkgdb.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(db); err != nil {
		_ = pkgdb.Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newMigrateCmd(dsn *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(cmd.Context(), *dsn)
			if err != nil {
				return err
			}
			defer pkgdb.Close(db)
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newCreateAdminCmd(dsn *string) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account the console can sign in with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(cmd.Context(), *dsn)
			if err != nil {
				return err
			}
			defer pkgdb.Close(db)

			users := &service.UserService{Repo: repo.New(db)}
			u, err := users.Create(cmd.Context(), actor, transport.UserCreate{
				Name: name, Email: email, Password: password, Role: models.RoleAdmin,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q created with id %d\n", u.Name, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
