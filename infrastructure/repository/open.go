package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// Open escolhe o armazenamento de vendas pela fonte configurada. Com postgres o
// esquema é migrado antes do uso. A função retornada fecha a conexão.
func Open(ctx context.Context, cfg *config.Config) (SaleRepository, func(), error) {
	if cfg.SalesSource.Kind != config.SalesSourcePostgres {
		log.ForComponent(ctx, "repository").Info("Usando armazenamento de vendas em memória")
		return NewMemorySaleRepository(), func() {}, nil
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, nil, errors.Wrap(err, "erro ao conectar ao PostgreSQL")
	}

	applied, err := postgres.Migrate(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, errors.Wrap(err, "erro ao migrar o esquema de vendas")
	}

	log.ForComponent(ctx, "repository").WithField("sales_migrations", applied).Info("Conexão com PostgreSQL estabelecida com sucesso")

	return NewSaleRepository(conn), func() { _ = conn.Close() }, nil
}
