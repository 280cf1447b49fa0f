package insighting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

func TestBuildRealTimeInsight(t *testing.T) {
	// Viernes 6 de junio de 2025, 18:30
	now := time.Date(2025, 6, 6, 18, 30, 0, 0, time.UTC)

	historicalStats := []*domain.HourOfWeekStats{
		{
			Weekday:       time.Friday,
			Hour:          18,
			SampleDays:    10,
			AverageCount:  4.0, // 4 ventas por hora esperadas
			AverageAmount: 600.0,
			Confidence:    domain.ConfidenceHigh,
		},
	}

	windowSaleList := func(count int) []*domain.Sale {
		sales := make([]*domain.Sale, 0, count)
		for i := 0; i < count; i++ {
			sales = append(sales, saleAt(now.Add(-time.Duration(i)*time.Minute), 150, "bebidas"))
		}
		return sales
	}

	tests := []struct {
		name     string
		sales    []*domain.Sale
		stats    []*domain.HourOfWeekStats
		validate func(t *testing.T, insight *domain.RealTimeInsight)
	}{
		{
			name:  "más de 1.5x el promedio marca ocupado",
			sales: windowSaleList(7), // esperado 4, umbral ocupado 6
			stats: historicalStats,
			validate: func(t *testing.T, insight *domain.RealTimeInsight) {
				assert.Equal(t, domain.TrafficBusy, insight.Status)
				assert.Equal(t, 7, insight.CurrentCount)
				assert.Equal(t, 4.0, insight.ExpectedCount)
				assert.Contains(t, insight.Message, "Más movimiento")
			},
		},
		{
			name:  "menos de 0.5x el promedio marca lento",
			sales: windowSaleList(1), // esperado 4, umbral lento 2
			stats: historicalStats,
			validate: func(t *testing.T, insight *domain.RealTimeInsight) {
				assert.Equal(t, domain.TrafficSlow, insight.Status)
				assert.Contains(t, insight.Message, "Menos movimiento")
			},
		},
		{
			name:  "dentro de los umbrales marca normal",
			sales: windowSaleList(4),
			stats: historicalStats,
			validate: func(t *testing.T, insight *domain.RealTimeInsight) {
				assert.Equal(t, domain.TrafficNormal, insight.Status)
				assert.Contains(t, insight.Message, "Movimiento normal")
			},
		},
		{
			name:  "sin historial para la hora marca sin_historial",
			sales: windowSaleList(3),
			stats: nil,
			validate: func(t *testing.T, insight *domain.RealTimeInsight) {
				assert.Equal(t, domain.TrafficUnknown, insight.Status)
				assert.Equal(t, 3, insight.CurrentCount)
				assert.Contains(t, insight.Message, "Sin historial")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insight := BuildRealTimeInsight(tt.sales, tt.stats, now, 60)
			tt.validate(t, insight)
		})
	}
}

func TestBuildRealTimeInsight_VentasAnuladasExcluidas(t *testing.T) {
	now := time.Date(2025, 6, 6, 18, 30, 0, 0, time.UTC)

	voided := saleAt(now.Add(-5*time.Minute), 500, "bebidas")
	voided.Status = domain.SaleStatusVoided

	insight := BuildRealTimeInsight(
		[]*domain.Sale{voided, saleAt(now.Add(-10*time.Minute), 100, "pan")},
		nil,
		now,
		0, // usa la ventana por defecto
	)

	assert.Equal(t, 1, insight.CurrentCount)
	assert.Equal(t, 100.0, insight.CurrentRevenue)
	assert.Equal(t, defaultWindowMinutes, insight.WindowMinutes)
}
