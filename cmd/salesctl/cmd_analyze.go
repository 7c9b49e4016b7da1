package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/sheet"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/importing"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Calcula uma visão do painel e imprime em JSON",
	Long: `Calcula as análises sobre os registros do armazenamento configurado. Com
SALES_SOURCE=file a planilha é importada em memória antes do cálculo.

Visões: dashboard, series, regions, pareto, ranking, decomposition, autocorrelation, targets

Exemplos:
  salesctl analyze --view decomposition --period 12
  salesctl analyze --view pareto --key sub-category --months 1,2,3
  salesctl analyze --view series --granularity quarter`,
	RunE: runAnalyze,
}

var (
	analyzeView        string
	analyzeGranularity string
	analyzeKey         string
	analyzeMonths      []int
	analyzePeriod      int
	analyzeMaxLag      int
	analyzeN           int
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeView, "view", "dashboard", "Visão a calcular")
	analyzeCmd.Flags().StringVar(&analyzeGranularity, "granularity", "month", "Granularidade da série (day|month|quarter|year)")
	analyzeCmd.Flags().StringVar(&analyzeKey, "key", "category", "Campo do Pareto (category|sub-category)")
	analyzeCmd.Flags().IntSliceVar(&analyzeMonths, "months", nil, "Meses considerados no Pareto")
	analyzeCmd.Flags().IntVar(&analyzePeriod, "period", 0, "Período sazonal da decomposição (0 usa a configuração)")
	analyzeCmd.Flags().IntVar(&analyzeMaxLag, "max-lag", 0, "Maior defasagem da autocorrelação (0 usa a configuração)")
	analyzeCmd.Flags().IntVar(&analyzeN, "n", 0, "Tamanho do ranking de clientes (0 usa a configuração)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	if cfg.SalesSource.Kind == config.SalesSourceFile {
		importer := importing.NewService(sheet.NewLoader(cfg.SalesSource), repo, cfg.SalesSource.Strict, nil)
		if _, err := importer.ImportFromSource(ctx); err != nil {
			return err
		}
	}

	reporter := reporting.NewService(repo, cfg.Analytics)

	granularity, err := domain.ParseGranularity(analyzeGranularity)
	if err != nil {
		return err
	}

	var result any
	switch analyzeView {
	case "dashboard":
		result, err = reporter.GetDashboard(ctx, domain.DashboardRequest{Granularity: granularity, Months: analyzeMonths})
	case "series":
		result, err = reporter.GetSalesSeries(ctx, &domain.SalesFilters{}, granularity)
	case "regions":
		result, err = reporter.GetRegionAnalysis(ctx)
	case "pareto":
		key, parseErr := domain.ParseField(analyzeKey)
		if parseErr != nil {
			return parseErr
		}
		result, err = reporter.GetPareto(ctx, key, analyzeMonths)
	case "ranking":
		n := analyzeN
		if n == 0 {
			n = cfg.Analytics.RankingSize
		}
		result, err = ranking.NewCustomerRankingService(repo).GetCustomerRanking(ctx, n)
	case "decomposition":
		result, err = reporter.GetDecomposition(ctx, analyzePeriod)
	case "autocorrelation":
		result, err = reporter.GetAutocorrelation(ctx, analyzeMaxLag)
	case "targets":
		result, err = reporter.GetNextMonthTargets(ctx)
	default:
		return fmt.Errorf("visão desconhecida: %s", analyzeView)
	}
	if err != nil {
		return err
	}

	return writeOutput(cmd, result)
}

func writeOutput(cmd *cobra.Command, v any) error {
	out, err := utils.PrettyJson(v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
