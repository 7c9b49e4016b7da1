package sheet

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

type Loader interface {
	LoadRaw(ctx context.Context) ([]domain.RawSaleRecord, error)
	Describe() string
}

type FileLoader struct {
	filePath string
	url      string
}

func NewLoader(cfg config.SalesSource) Loader {
	return &FileLoader{
		filePath: cfg.FilePath,
		url:      cfg.URL,
	}
}

// Describe identifica a origem dos dados para logs e resumos de importação
func (l *FileLoader) Describe() string {
	if l.url != "" {
		return l.url
	}
	return l.filePath
}

// LoadRaw baixa (URL) ou lê (caminho local) a planilha e devolve as linhas sem conversão
func (l *FileLoader) LoadRaw(ctx context.Context) ([]domain.RawSaleRecord, error) {
	logger := log.ForComponent(ctx, "sheet")

	var (
		data []byte
		name string
		err  error
	)

	if l.url != "" {
		name = path.Base(l.url)
		data, err = utils.MakeRequest(ctx, l.url)
	} else {
		name = l.filePath
		data, err = os.ReadFile(l.filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("sheet: erro ao carregar %s: %w", l.Describe(), err)
	}

	format := DetectFormat(name, data)
	records, err := Parse(format, data)
	if err != nil {
		return nil, fmt.Errorf("sheet: %s: %w", l.Describe(), err)
	}

	logger.WithFields(log.Fields{
		"sales_source": l.Describe(),
		"sales_format": format,
		"sales_rows":   len(records),
	}).Info("Planilha de vendas carregada")

	return records, nil
}
