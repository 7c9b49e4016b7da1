package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/importing/mocks"
	"go.uber.org/mock/gomock"
)

func TestSalesImportSyncService_RunImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockImporter := mocks.NewMockImporter(ctrl)
	service := NewSalesImportSyncService(mockImporter, config.SalesImportSync{CronSchedule: "0 2 * * *"})

	tests := []struct {
		name     string
		setup    func()
		wantErr  bool
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name: "Importação concluída - deve guardar o resumo",
			setup: func() {
				mockImporter.EXPECT().ImportFromSource(gomock.Any()).Return(&domain.ImportSummary{BatchID: "abc", Imported: 10}, nil)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, false, status["sync_running"])
				assert.Equal(t, "", status["last_error"])
				summary := status["last_summary"].(*domain.ImportSummary)
				assert.Equal(t, "abc", summary.BatchID)
			},
		},
		{
			name: "Falha na importação - deve guardar o erro e manter o último resumo",
			setup: func() {
				mockImporter.EXPECT().ImportFromSource(gomock.Any()).Return(nil, errors.New("arquivo não encontrado"))
			},
			wantErr: true,
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, "arquivo não encontrado", status["last_error"])
				assert.NotNil(t, status["last_summary"])
				assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			_, err := service.RunImport(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			tt.validate(t, service.GetStatus())
		})
	}
}

func TestSalesImportSyncService_RejectsConcurrentRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockImporter := mocks.NewMockImporter(ctrl)
	service := NewSalesImportSyncService(mockImporter, config.SalesImportSync{})

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	mockImporter.EXPECT().ImportFromSource(gomock.Any()).DoAndReturn(func(context.Context) (*domain.ImportSummary, error) {
		close(started)
		<-release
		return &domain.ImportSummary{}, nil
	}).Times(1)

	go func() {
		defer close(done)
		_, _ = service.RunImport(context.Background())
	}()
	<-started

	_, err := service.RunImport(context.Background())
	assert.ErrorIs(t, err, ErrSyncRunning)
	assert.False(t, service.TriggerManualSync(context.Background()))
	assert.Equal(t, true, service.GetStatus()["sync_running"])

	close(release)
	<-done
	assert.Equal(t, false, service.GetStatus()["sync_running"])
}

func TestSalesImportSyncService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockImporter := mocks.NewMockImporter(ctrl)
	service := NewSalesImportSyncService(mockImporter, config.SalesImportSync{})

	done := make(chan struct{})
	mockImporter.EXPECT().ImportFromSource(gomock.Any()).DoAndReturn(func(context.Context) (*domain.ImportSummary, error) {
		defer close(done)
		return &domain.ImportSummary{BatchID: "manual"}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	assert.True(t, service.TriggerManualSync(ctx))
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("importação manual não executou")
	}
}

func TestSalesImportSyncService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockImporter := mocks.NewMockImporter(ctrl)

	t.Run("Desabilitado - não agenda", func(t *testing.T) {
		service := NewSalesImportSyncService(mockImporter, config.SalesImportSync{CronSchedule: "0 2 * * *"})
		assert.NoError(t, service.Start(context.Background()))
	})

	t.Run("Cron inválido - deve falhar", func(t *testing.T) {
		service := NewSalesImportSyncService(mockImporter, config.SalesImportSync{CronSchedule: "toda hora", Enabled: true})
		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("Cron válido - deve parar com o contexto", func(t *testing.T) {
		service := NewSalesImportSyncService(mockImporter, config.SalesImportSync{CronSchedule: "0 2 * * *", Enabled: true})

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, service.Start(ctx))
		assert.True(t, service.scheduler.IsRunning())
		cancel()

		assert.Eventually(t, func() bool { return !service.scheduler.IsRunning() }, 2*time.Second, 10*time.Millisecond)
	})
}
