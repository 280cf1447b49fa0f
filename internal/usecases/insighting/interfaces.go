package insighting

import (
	"time"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

// Insighter define la interface del servicio de estadísticas de clientes
type Insighter interface {
	// GetSegments deriva los segmentos de clientes del historial de ventas
	GetSegments(filters *domain.InsightFilters) ([]*domain.Segment, error)

	// GetHourlyStats calcula las estadísticas históricas por hora de la semana
	GetHourlyStats(filters *domain.InsightFilters) ([]*domain.HourOfWeekStats, error)

	// GetForecast predice el tráfico esperado para una hora de la semana
	GetForecast(weekday time.Weekday, hour int, month time.Month) (*domain.TrafficForecast, error)

	// GetRealTimeInsight compara la ventana de ventas en curso con el histórico
	GetRealTimeInsight(now time.Time) (*domain.RealTimeInsight, error)

	// BuildSnapshot recalcula las estadísticas y guarda la instantánea del día
	BuildSnapshot(date time.Time) (*domain.InsightSnapshot, error)

	// GetLatestSnapshot devuelve la instantánea precalculada más reciente
	GetLatestSnapshot() (*domain.InsightSnapshot, error)
}
