package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/taxreporting"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/apiErrors"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GenerateDGIIReport genera (o regenera) el reporte del período indicado
func GenerateDGIIReport(service taxreporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, period, ok := reportParams(w, r)
		if !ok {
			return
		}

		report, err := service.Generate(kind, period)
		if err != nil {
			logrus.Error(err)
			handleReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.Error(err)
		}
	}
}

// GetDGIIReport retorna el reporte del período, generándolo si no existe
func GetDGIIReport(service taxreporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, period, ok := reportParams(w, r)
		if !ok {
			return
		}

		report, err := service.Get(kind, period)
		if err != nil {
			logrus.Error(err)
			handleReportError(w, err)
			return
		}

		writeJSON(w, report)
	}
}

// ListDGIIReportPeriods lista los períodos con reporte generado
func ListDGIIReportPeriods(service taxreporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := reportKindParam(w, r)
		if !ok {
			return
		}

		periods, err := service.ListPeriods(kind)
		if err != nil {
			logrus.Error(err)
			handleReportError(w, err)
			return
		}

		writeJSON(w, periods)
	}
}

// DownloadDGIIReportExcel descarga el reporte del período en formato Excel
func DownloadDGIIReportExcel(service taxreporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, period, ok := reportParams(w, r)
		if !ok {
			return
		}

		content, err := service.ExportExcel(kind, period)
		if err != nil {
			logrus.Error(err)
			handleReportError(w, err)
			return
		}

		filename := fmt.Sprintf("%s_%s.xlsx", kind, period)

		w.Header().Set("Content-Type", excelContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(content); err != nil {
			logrus.WithError(err).Error("Error al enviar el archivo Excel")
		}
	}
}

func reportKindParam(w http.ResponseWriter, r *http.Request) (domain.DGIIReportKind, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("kind")

	kind := domain.DGIIReportKind(raw)
	if kind != domain.ReportKind606 && kind != domain.ReportKind607 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de reporte desconocido, se espera 606 o 607", nil)
		return "", false
	}

	return kind, true
}

func reportParams(w http.ResponseWriter, r *http.Request) (domain.DGIIReportKind, string, bool) {
	kind, ok := reportKindParam(w, r)
	if !ok {
		return "", "", false
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Período no provisto, se espera AAAAMM", nil)
		return "", "", false
	}

	return kind, period, true
}

// handleReportError traduce los errores de reportes fiscales a códigos de la API
func handleReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, taxreporting.ErrInvalidPeriod),
		errors.Is(err, taxreporting.ErrUnknownKind):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, taxreporting.ErrReportNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al procesar el reporte fiscal", nil)
	}
}
