package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/internal/scheduler"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/apiErrors"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/middleware"
)

// Tipos de tarea programada que se pueden ejecutar manualmente
const (
	CronJobTypeSnapshot    = "snapshot"
	CronJobTypeDGIIReports = "dgii-reports"
	CronJobTypeAll         = "all"
)

// CronJobServices contiene los servicios programados disponibles para
// ejecución manual
type CronJobServices struct {
	SnapshotSyncService   *scheduler.SnapshotSyncService
	DGIIReportSyncService *scheduler.DGIIReportSyncService
}

// RunCronJob ejecuta manualmente una tarea programada específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Solo los administradores pueden ejecutar tareas programadas", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de tarea no especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSnapshot:
			if services.SnapshotSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Servicio de instantáneas no disponible", nil)
				return
			}
			services.SnapshotSyncService.TriggerManualSync()

		case CronJobTypeDGIIReports:
			if services.DGIIReportSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Servicio de reportes DGII no disponible", nil)
				return
			}
			services.DGIIReportSyncService.TriggerManualSync()

		case CronJobTypeAll:
			if services.SnapshotSyncService != nil {
				services.SnapshotSyncService.TriggerManualSync()
			}
			if services.DGIIReportSyncService != nil {
				services.DGIIReportSyncService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de tarea inválido. Valores aceptados: snapshot, dgii-reports, all", nil)
			return
		}

		response := map[string]any{
			"message": "Tarea programada iniciada",
			"type":    cronType,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.Error(err)
		}
	}
}

// GetCronStatus retorna el estado de las tareas programadas
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Solo los administradores pueden consultar las tareas programadas", nil)
			return
		}

		status := map[string]any{}
		if services.SnapshotSyncService != nil {
			status[CronJobTypeSnapshot] = services.SnapshotSyncService.GetStatus()
		}
		if services.DGIIReportSyncService != nil {
			status[CronJobTypeDGIIReports] = services.DGIIReportSyncService.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error al enviar la respuesta", nil)
		}
	}
}
