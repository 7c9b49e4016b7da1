package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/sheet"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/importing"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Importa a planilha de vendas para o armazenamento configurado",
	Long: `Lê o arquivo de SALES_FILE_PATH (ou SALES_FILE_URL), normaliza os registros
e grava no armazenamento de SALES_SOURCE. Linhas rejeitadas são listadas no resumo.`,
	RunE: runImport,
}

var (
	importStrict bool
	importFile   string
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importStrict, "strict", false, "Falha na primeira linha malformada")
	importCmd.Flags().StringVar(&importFile, "file", "", "Arquivo csv ou xlsx (sobrepõe SALES_FILE_PATH)")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	source := cfg.SalesSource
	if importFile != "" {
		source.FilePath = importFile
		source.URL = ""
	}
	if source.Kind == config.SalesSourceFile {
		fmt.Fprintln(cmd.ErrOrStderr(), "SALES_SOURCE=file: os registros serão apenas validados, nada é persistido")
	}

	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	importer := importing.NewService(sheet.NewLoader(source), repo, importStrict || source.Strict, nil)

	summary, err := importer.ImportFromSource(ctx)
	if err != nil {
		return err
	}

	return writeOutput(cmd, summary)
}
