package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria o esquema de vendas no PostgreSQL",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}
	defer conn.Close()

	applied, err := postgres.Migrate(ctx, conn)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d migrações aplicadas\n", applied)
	return nil
}
