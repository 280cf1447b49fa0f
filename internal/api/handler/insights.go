package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/insighting"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/apiErrors"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/utils"
)

// GetCustomerSegments retorna los segmentos de clientes derivados del
// historial de ventas del período
func GetCustomerSegments(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := insightFiltersFromQuery(w, r)
		if !ok {
			return
		}

		segments, err := service.GetSegments(filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al calcular los segmentos", nil)
			return
		}

		writeJSON(w, segments)
	}
}

func GetHourlyStats(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := insightFiltersFromQuery(w, r)
		if !ok {
			return
		}

		stats, err := service.GetHourlyStats(filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al calcular las estadísticas por hora", nil)
			return
		}

		writeJSON(w, stats)
	}
}

// GetTrafficForecast predice el tráfico esperado para una hora de la semana.
// Sin parámetros usa el día y la hora actuales.
func GetTrafficForecast(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		weekday := now.Weekday()
		hour := now.Hour()
		month := now.Month()

		if raw := r.URL.Query().Get("weekday"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 || parsed > 6 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "weekday inválido, se espera 0 (domingo) a 6 (sábado)", nil)
				return
			}
			weekday = time.Weekday(parsed)
		}

		if raw := r.URL.Query().Get("hour"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 || parsed > 23 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "hour inválida, se espera 0 a 23", nil)
				return
			}
			hour = parsed
		}

		if raw := r.URL.Query().Get("month"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 12 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "month inválido, se espera 1 a 12", nil)
				return
			}
			month = time.Month(parsed)
		}

		forecast, err := service.GetForecast(weekday, hour, month)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al calcular el pronóstico", nil)
			return
		}

		writeJSON(w, forecast)
	}
}

// GetRealTimeInsight compara la ventana de ventas en curso con el histórico
func GetRealTimeInsight(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		insight, err := service.GetRealTimeInsight(time.Now())
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al calcular el estado en tiempo real", nil)
			return
		}

		writeJSON(w, insight)
	}
}

// GetLatestSnapshot retorna la instantánea precalculada más reciente
func GetLatestSnapshot(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := service.GetLatestSnapshot()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al consultar la instantánea", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "No hay instantánea generada todavía", nil)
			return
		}

		writeJSON(w, snapshot)
	}
}

func insightFiltersFromQuery(w http.ResponseWriter, r *http.Request) (*domain.InsightFilters, bool) {
	filters := &domain.InsightFilters{}

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida, se espera AAAA-MM-DD", nil)
			return nil, false
		}
		filters.StartDate = parsed
	}

	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida, se espera AAAA-MM-DD", nil)
			return nil, false
		}
		filters.EndDate = parsed
	}

	return filters, true
}
