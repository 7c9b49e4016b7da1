package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTransaction(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		fn      func(tx *sql.Tx) error
		wantErr bool
	}{
		{
			name: "Sucesso - deve confirmar a transação",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM sales").WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectCommit()
			},
			fn: func(tx *sql.Tx) error {
				_, err := tx.Exec("DELETE FROM sales")
				return err
			},
		},
		{
			name: "Erro na função - deve desfazer a transação",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(tx *sql.Tx) error {
				return errors.New("falhou")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)

			err = Wrap(db).RunInTransaction(context.Background(), tt.fn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sales").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER TABLE sales ADD COLUMN IF NOT EXISTS seq").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS sales_order_date_idx").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS sales_year_month_idx").WillReturnError(errors.New("sem permissão"))

	applied, err := Migrate(context.Background(), db)

	require.Error(t, err)
	assert.Equal(t, 3, applied)
	assert.Contains(t, err.Error(), "migração 4")
	assert.NoError(t, mock.ExpectationsWereMet())
}
