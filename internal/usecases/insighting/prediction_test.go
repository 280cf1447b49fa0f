package insighting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

func TestBuildHourlyStats(t *testing.T) {
	sales := make([]*domain.Sale, 0)

	// Cuatro lunes seguidos con dos ventas a las 10 cada uno
	firstMonday := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	for week := 0; week < 4; week++ {
		day := firstMonday.AddDate(0, 0, week*7)
		sales = append(sales, saleAt(day, 100, "bebidas"))
		sales = append(sales, saleAt(day.Add(30*time.Minute), 200, "snacks"))
	}

	stats := BuildHourlyStats(sales)

	// Siempre se devuelven las 168 cubetas
	assert.Len(t, stats, 7*24)

	entry := findHourlyStats(stats, time.Monday, 10)
	assert.NotNil(t, entry)
	assert.Equal(t, 4, entry.SampleDays)
	assert.Equal(t, 2.0, entry.AverageCount)
	assert.Equal(t, 300.0, entry.AverageAmount)
	assert.Equal(t, 300.0, entry.MinAmount)
	assert.Equal(t, 300.0, entry.MaxAmount)
	assert.Equal(t, domain.ConfidenceMedium, entry.Confidence)

	// Una cubeta sin historial queda en cero y sin confianza
	empty := findHourlyStats(stats, time.Sunday, 3)
	assert.NotNil(t, empty)
	assert.Equal(t, 0, empty.SampleDays)
	assert.Equal(t, domain.ConfidenceNone, empty.Confidence)
}

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		name       string
		sampleDays int
		expected   domain.Confidence
	}{
		{name: "sin muestras no hay confianza", sampleDays: 0, expected: domain.ConfidenceNone},
		{name: "una muestra da confianza baja", sampleDays: 1, expected: domain.ConfidenceLow},
		{name: "tres muestras siguen siendo baja", sampleDays: 3, expected: domain.ConfidenceLow},
		{name: "cuatro muestras dan confianza media", sampleDays: 4, expected: domain.ConfidenceMedium},
		{name: "siete muestras siguen siendo media", sampleDays: 7, expected: domain.ConfidenceMedium},
		{name: "ocho muestras dan confianza alta", sampleDays: 8, expected: domain.ConfidenceHigh},
		{name: "veinte muestras siguen siendo alta", sampleDays: 20, expected: domain.ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, confidenceFor(tt.sampleDays))
		})
	}
}

func TestBuildSeasonalMultipliers(t *testing.T) {
	sales := []*domain.Sale{
		// Diciembre con el doble de ingreso que junio
		saleAt(time.Date(2024, 12, 10, 10, 0, 0, 0, time.UTC), 2000, "provisiones"),
		saleAt(time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC), 1000, "provisiones"),
	}

	multipliers := BuildSeasonalMultipliers(sales)

	// Todos los meses presentes, los sin historial en 1.0
	assert.Len(t, multipliers, 12)
	assert.Equal(t, 1.0, multipliers["01"])

	// Promedio mensual: (2000 + 1000) / 2 = 1500
	assert.InDelta(t, 2000.0/1500.0, multipliers["12"], 0.01)
	assert.InDelta(t, 1000.0/1500.0, multipliers["06"], 0.01)
}

func TestBuildSeasonalMultipliers_SinVentas(t *testing.T) {
	multipliers := BuildSeasonalMultipliers(nil)

	assert.Len(t, multipliers, 12)
	for _, multiplier := range multipliers {
		assert.Equal(t, 1.0, multiplier)
	}
}

func TestBuildForecast(t *testing.T) {
	stats := []*domain.HourOfWeekStats{
		{
			Weekday:       time.Friday,
			Hour:          18,
			SampleDays:    10,
			AverageCount:  6.0,
			AverageAmount: 900.0,
			Confidence:    domain.ConfidenceHigh,
		},
	}
	seasonal := map[string]float64{"12": 1.5}

	forecast := BuildForecast(stats, seasonal, time.Friday, 18, time.December)

	assert.Equal(t, time.Friday, forecast.Weekday)
	assert.Equal(t, 18, forecast.Hour)
	assert.Equal(t, 1.5, forecast.SeasonalMultiplier)
	assert.Equal(t, 9.0, forecast.ExpectedCount)
	assert.Equal(t, 1350.0, forecast.ExpectedRevenue)
	assert.Equal(t, domain.ConfidenceHigh, forecast.Confidence)
}

func TestBuildForecast_SinHistorial(t *testing.T) {
	forecast := BuildForecast(nil, nil, time.Sunday, 4, time.March)

	assert.Equal(t, 0.0, forecast.ExpectedCount)
	assert.Equal(t, 0.0, forecast.ExpectedRevenue)
	assert.Equal(t, 1.0, forecast.SeasonalMultiplier)
	assert.Equal(t, domain.ConfidenceNone, forecast.Confidence)
}
