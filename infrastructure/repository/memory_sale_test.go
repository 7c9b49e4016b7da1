package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func memSale(rowID string, orderDate time.Time, amount float64) domain.SaleRecord {
	return domain.SaleRecord{
		RowID:     rowID,
		OrderDate: orderDate,
		Amount:    amount,
		Year:      orderDate.Year(),
		Month:     int(orderDate.Month()),
	}
}

func TestMemorySaleRepository(t *testing.T) {
	ctx := context.Background()
	jan := time.Date(2017, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2017, 2, 10, 0, 0, 0, 0, time.UTC)

	repo := NewMemorySaleRepository()

	written, err := repo.UpsertSales(ctx, "b1", []domain.SaleRecord{
		memSale("2", feb, 20),
		memSale("1", jan, 50),
		memSale("3", jan, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	t.Run("Ordenado por data e estável nos empates", func(t *testing.T) {
		records, err := repo.ListSales(ctx, nil)
		require.NoError(t, err)

		ids := []string{records[0].RowID, records[1].RowID, records[2].RowID}
		assert.Equal(t, []string{"1", "3", "2"}, ids)
	})

	t.Run("Upsert substitui o mesmo row_id", func(t *testing.T) {
		_, err := repo.UpsertSales(ctx, "b2", []domain.SaleRecord{memSale("3", jan, 35), memSale("4", feb, 5)})
		require.NoError(t, err)

		count, err := repo.CountSales(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		records, err := repo.ListSales(ctx, &domain.SalesFilters{Months: []int{1}})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 35.0, records[1].Amount)
	})

	t.Run("Cópia não altera o snapshot", func(t *testing.T) {
		records, err := repo.ListSales(ctx, nil)
		require.NoError(t, err)
		records[0].Amount = -1

		again, err := repo.ListSales(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 50.0, again[0].Amount)
	})

	t.Run("Contexto cancelado", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.UpsertSales(cancelled, "b3", []domain.SaleRecord{memSale("9", jan, 1)})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemorySaleRepository_ReimportWithoutRowID(t *testing.T) {
	ctx := context.Background()
	jan := time.Date(2017, 1, 10, 0, 0, 0, 0, time.UTC)

	repo := NewMemorySaleRepository()
	batch := []domain.SaleRecord{memSale("", jan, 10), memSale("", jan, 20)}

	_, err := repo.UpsertSales(ctx, "b1", batch)
	require.NoError(t, err)

	batch[1].Amount = 25
	_, err = repo.UpsertSales(ctx, "b2", batch)
	require.NoError(t, err)

	count, err := repo.CountSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records, err := repo.ListSales(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "pos-0", records[0].RowID)
	assert.Equal(t, 10.0, records[0].Amount)
	assert.Equal(t, "pos-1", records[1].RowID)
	assert.Equal(t, 25.0, records[1].Amount)
}
