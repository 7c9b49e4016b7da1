package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSalesImport = "sales-import"
	CronJobTypeAll         = "all"
)

// SyncJob é uma rotina agendada que também pode ser disparada manualmente
type SyncJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	SalesImport SyncJob
}

// RunCronJob dispara manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSalesImport, CronJobTypeAll:
			if services.SalesImport == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de importação de vendas não disponível", nil)
				return
			}

			if !services.SalesImport.TriggerManualSync(r.Context()) {
				writeJSON(w, http.StatusConflict, map[string]any{
					"message": "Importação de vendas já em andamento",
					"type":    cronType,
				})
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: sales-import, all", nil)
			return
		}

		log.ForComponent(r.Context(), "handler").WithField("sales_cron_type", cronType).Info("Cron job disparada manualmente")

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.SalesImport != nil {
			status[CronJobTypeSalesImport] = services.SalesImport.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
