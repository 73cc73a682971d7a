package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Leganyst/maid-marketplace/internal/config"
	"github.com/Leganyst/maid-marketplace/internal/db"
	"github.com/Leganyst/maid-marketplace/internal/model"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return fmt.Errorf("load db config: %w", err)
	}

	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer db.Close(gormDB)

	if err := model.AutoMigrate(gormDB); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", dbCfg.Driver)
	return nil
}
