// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	salesTable = "sales s"

	// 19 parâmetros por linha mantêm o lote bem abaixo do limite de 65535 do Postgres
	upsertChunkSize = 500
)

var saleColumns = []string{
	"s.row_id",
	"s.order_id",
	"s.order_date",
	"s.ship_date",
	"s.amount",
	"s.postal_code",
	"s.region",
	"s.category",
	"s.sub_category",
	"s.segment",
	"s.customer_id",
	"s.customer_name",
	"s.product_id",
	"s.product_name",
	"s.year",
	"s.month",
	"s.quarter",
}

type SaleRepository interface {
	ListSales(ctx context.Context, filters *domain.SalesFilters) ([]domain.SaleRecord, error)
	UpsertSales(ctx context.Context, batchID string, records []domain.SaleRecord) (int, error)
	CountSales(ctx context.Context) (int, error)
}

// rowKey devolve o row_id do registro ou, na falta dele, uma chave pela posição no lote,
// para que reimportar o mesmo lote atualize os registros em vez de duplicá-los.
func rowKey(s domain.SaleRecord, position int) string {
	if s.RowID != "" {
		return s.RowID
	}
	return fmt.Sprintf("pos-%d", position)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// ListSales retorna os registros em ordem de data do pedido; nos empates vale a ordem
// da primeira gravação (seq), inclusive entre lotes diferentes
func (r *saleRepository) ListSales(ctx context.Context, filters *domain.SalesFilters) ([]domain.SaleRecord, error) {
	queryBuilder := squirrel.
		Select(saleColumns...).
		From(salesTable).
		OrderBy("s.order_date ASC", "s.seq ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if filters.StartDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"s.order_date": *filters.StartDate})
		}
		if filters.EndDate != nil {
			queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"s.order_date": *filters.EndDate})
		}
		if len(filters.Years) > 0 {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"s.year": filters.Years})
		}
		if len(filters.Months) > 0 {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"s.month": filters.Months})
		}
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	records := make([]domain.SaleRecord, 0)
	for rows.Next() {
		record, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

// UpsertSales grava os registros em lotes dentro de uma única transação.
// Registros com row_id já existente são atualizados.
func (r *saleRepository) UpsertSales(ctx context.Context, batchID string, records []domain.SaleRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	written := 0
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(records); start += upsertChunkSize {
			end := min(start+upsertChunkSize, len(records))

			sqlQuery, args, err := buildUpsert(batchID, records[start:end], start).ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir query de inserção: %w", err)
			}

			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return wrapDatabaseError(err)
			}
			written += end - start
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return written, nil
}

func (r *saleRepository) CountSales(ctx context.Context) (int, error) {
	sqlQuery, args, err := squirrel.
		Select("COUNT(*)").
		From(salesTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, wrapDatabaseError(err)
	}

	return count, nil
}

func buildUpsert(batchID string, records []domain.SaleRecord, offset int) squirrel.InsertBuilder {
	query := squirrel.StatementBuilder.
		Insert("sales").
		Columns(
			"row_id",
			"order_id",
			"order_date",
			"ship_date",
			"amount",
			"postal_code",
			"region",
			"category",
			"sub_category",
			"segment",
			"customer_id",
			"customer_name",
			"product_id",
			"product_name",
			"year",
			"month",
			"quarter",
			"import_batch",
			"position",
		).
		PlaceholderFormat(squirrel.Dollar)

	for i, s := range records {
		query = query.Values(
			rowKey(s, offset+i),
			s.OrderID,
			s.OrderDate,
			s.ShipDate,
			s.Amount,
			s.PostalCode,
			s.Region,
			s.Category,
			s.SubCategory,
			s.Segment,
			s.CustomerID,
			s.CustomerName,
			s.ProductID,
			s.ProductName,
			s.Year,
			s.Month,
			s.Quarter,
			batchID,
			offset+i,
		)
	}

	return query.Suffix(`
		ON CONFLICT (row_id) DO UPDATE SET
			order_id = EXCLUDED.order_id,
			order_date = EXCLUDED.order_date,
			ship_date = EXCLUDED.ship_date,
			amount = EXCLUDED.amount,
			postal_code = EXCLUDED.postal_code,
			region = EXCLUDED.region,
			category = EXCLUDED.category,
			sub_category = EXCLUDED.sub_category,
			segment = EXCLUDED.segment,
			customer_id = EXCLUDED.customer_id,
			customer_name = EXCLUDED.customer_name,
			product_id = EXCLUDED.product_id,
			product_name = EXCLUDED.product_name,
			year = EXCLUDED.year,
			month = EXCLUDED.month,
			quarter = EXCLUDED.quarter,
			import_batch = EXCLUDED.import_batch,
			position = EXCLUDED.position,
			updated_at = CURRENT_TIMESTAMP
	`)
}

func scanSale(rows *sql.Rows) (domain.SaleRecord, error) {
	var s domain.SaleRecord

	err := rows.Scan(
		&s.RowID,
		&s.OrderID,
		&s.OrderDate,
		&s.ShipDate,
		&s.Amount,
		&s.PostalCode,
		&s.Region,
		&s.Category,
		&s.SubCategory,
		&s.Segment,
		&s.CustomerID,
		&s.CustomerName,
		&s.ProductID,
		&s.ProductName,
		&s.Year,
		&s.Month,
		&s.Quarter,
	)
	if err != nil {
		return domain.SaleRecord{}, err
	}

	s.OrderDate = s.OrderDate.UTC()
	s.ShipDate = s.ShipDate.UTC()

	return s, nil
}

func wrapDatabaseError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
