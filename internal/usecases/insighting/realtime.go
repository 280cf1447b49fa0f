package insighting

import (
	"fmt"
	"time"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/utils"
)

// Parámetros de la comparación en tiempo real
const (
	defaultWindowMinutes = 60
	busyThreshold        = 1.5
	slowThreshold        = 0.5
)

// BuildRealTimeInsight compara las ventas de la ventana en curso con el
// promedio histórico de la misma hora de la semana. Sin historial para
// esa hora el estado queda en "sin_historial".
func BuildRealTimeInsight(
	windowSales []*domain.Sale,
	stats []*domain.HourOfWeekStats,
	now time.Time,
	windowMinutes int,
) *domain.RealTimeInsight {
	if windowMinutes <= 0 {
		windowMinutes = defaultWindowMinutes
	}

	currentCount := 0
	currentRevenue := 0.0
	for _, sale := range completedSales(windowSales) {
		currentCount++
		currentRevenue += sale.Total
	}

	insight := &domain.RealTimeInsight{
		WindowMinutes:  windowMinutes,
		CurrentCount:   currentCount,
		CurrentRevenue: utils.RoundWithTwoDecimalPlace(currentRevenue),
		Status:         domain.TrafficUnknown,
	}

	entry := findHourlyStats(stats, now.Weekday(), now.Hour())
	if entry == nil || entry.SampleDays == 0 {
		insight.Message = "Sin historial suficiente para esta hora de la semana"
		return insight
	}

	// Escalar el promedio histórico por hora al tamaño de la ventana
	windowFraction := float64(windowMinutes) / 60.0
	expectedCount := entry.AverageCount * windowFraction
	expectedRevenue := entry.AverageAmount * windowFraction

	insight.ExpectedCount = utils.RoundWithTwoDecimalPlace(expectedCount)
	insight.ExpectedRevenue = utils.RoundWithTwoDecimalPlace(expectedRevenue)

	switch {
	case expectedCount > 0 && float64(currentCount) > expectedCount*busyThreshold:
		insight.Status = domain.TrafficBusy
		insight.Message = fmt.Sprintf(
			"Más movimiento de lo normal: %d ventas frente a %.1f esperadas en los últimos %d minutos",
			currentCount, expectedCount, windowMinutes,
		)
	case float64(currentCount) < expectedCount*slowThreshold:
		insight.Status = domain.TrafficSlow
		insight.Message = fmt.Sprintf(
			"Menos movimiento de lo normal: %d ventas frente a %.1f esperadas en los últimos %d minutos",
			currentCount, expectedCount, windowMinutes,
		)
	default:
		insight.Status = domain.TrafficNormal
		insight.Message = fmt.Sprintf(
			"Movimiento normal: %d ventas frente a %.1f esperadas en los últimos %d minutos",
			currentCount, expectedCount, windowMinutes,
		)
	}

	return insight
}
