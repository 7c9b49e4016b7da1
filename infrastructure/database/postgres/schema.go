package postgres

import (
	"context"
	"fmt"
)

// migrations são aplicadas em ordem e precisam ser idempotentes
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sales (
		row_id        TEXT PRIMARY KEY,
		order_id      TEXT NOT NULL,
		order_date    DATE NOT NULL,
		ship_date     DATE NOT NULL,
		amount        DOUBLE PRECISION NOT NULL,
		postal_code   INTEGER NOT NULL DEFAULT 9999,
		region        TEXT NOT NULL,
		category      TEXT NOT NULL,
		sub_category  TEXT NOT NULL,
		segment       TEXT NOT NULL,
		customer_id   TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		product_id    TEXT NOT NULL,
		product_name  TEXT NOT NULL,
		year          SMALLINT NOT NULL,
		month         SMALLINT NOT NULL,
		quarter       SMALLINT NOT NULL,
		import_batch  TEXT NOT NULL,
		position      INTEGER NOT NULL,
		seq           BIGSERIAL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`ALTER TABLE sales ADD COLUMN IF NOT EXISTS seq BIGSERIAL`,
	`CREATE INDEX IF NOT EXISTS sales_order_date_idx ON sales (order_date, seq)`,
	`CREATE INDEX IF NOT EXISTS sales_year_month_idx ON sales (year, month)`,
}

// Migrate cria o esquema do armazenamento de vendas
func Migrate(ctx context.Context, q Queryer) (int, error) {
	for i, stmt := range migrations {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return i, fmt.Errorf("migração %d: %w", i+1, err)
		}
	}
	return len(migrations), nil
}
