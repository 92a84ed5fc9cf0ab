package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"gopher-blog/internal/bootstrap"
	"gopher-blog/internal/config"
	"gopher-blog/internal/model"
	"gopher-blog/internal/repository"
)

// openDB loads the configuration and returns a migrated database. The
// returned func closes it.
func openDB(ctx context.Context) (*config.Config, *gorm.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config failed: %w", err)
	}
	log := bootstrap.NewLogger(cfg.App)
	log.SetLevel(logrus.WarnLevel)

	db, err := bootstrap.OpenDatabase(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return cfg, db, closeFn, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, closeFn, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", cfg.Database.Driver)
			return nil
		},
	}
}

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users and mark the admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, closeFn, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			users, err := repository.NewUserRepository(db).List(cmd.Context())
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), users, cfg.Auth.AdminUserID)
		},
	}
}

func purgeSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-sessions",
		Short: "Delete expired login sessions from the database store",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, closeFn, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := repository.NewLoginSessionRepository(db).PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired sessions\n", n)
			return nil
		},
	}
}

func printUsers(w io.Writer, users []model.User, adminID uint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
	for _, u := range users {
		role := "reader"
		if u.ID == adminID {
			role = "admin"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, role)
	}
	return tw.Flush()
}
