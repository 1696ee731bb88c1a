package main

import (
	"fmt"

	"paylite-backend/internal/adapter/repository/gormstore"
	"paylite-backend/internal/adapter/repository/redisstore"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// bootstrap already migrates
			d, err := bootstrap()
			if err != nil {
				return err
			}
			defer d.close()
			d.log.Info("schema up to date")
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all users, payments, loans and sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to wipe data without --yes")
			}
			d, err := bootstrap()
			if err != nil {
				return err
			}
			defer d.close()

			ctx := cmd.Context()
			if err := gormstore.NewGormUoW(d.db).ClearAll(ctx); err != nil {
				return err
			}
			if err := redisstore.NewSessionRepository(d.rdb).Clear(ctx); err != nil {
				return err
			}
			d.log.Info("all data cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}
