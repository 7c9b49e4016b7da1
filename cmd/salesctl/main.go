package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var cfg *config.Config

// rootCmd é o comando base da ferramenta de operação do painel
var rootCmd = &cobra.Command{
	Use:   "salesctl",
	Short: "Ferramenta de linha de comando do painel de vendas",
	Long: `Opera o armazenamento e as análises do painel de vendas fora da API.

Exemplos:
  salesctl migrate
  salesctl import --strict
  salesctl analyze --view decomposition --period 12`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.NewConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		log.Configure(cfg.App.LogLevel, os.Stderr)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
