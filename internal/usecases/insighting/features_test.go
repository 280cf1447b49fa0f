package insighting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

func TestExtractFeatures(t *testing.T) {
	soldAt := time.Date(2025, 7, 12, 19, 30, 0, 0, time.UTC) // sábado, 19:30

	sale := &domain.Sale{
		ID:            "abc123",
		Total:         150.0,
		PaymentMethod: domain.PaymentCash,
		SoldAt:        soldAt,
		Status:        domain.SaleStatusCompleted,
		Items: []*domain.SaleItem{
			{ProductID: "p1", Category: "bebidas", Quantity: 2},
			{ProductID: "p2", Category: "snacks", Quantity: 1},
			{ProductID: "p3", Category: "bebidas", Quantity: 1},
		},
	}

	features := ExtractFeatures(sale)

	assert.Equal(t, "abc123", features.SaleID)
	assert.Equal(t, 19, features.Hour)
	assert.Equal(t, time.Saturday, features.Weekday)
	assert.True(t, features.IsWeekend)
	assert.Equal(t, domain.DaypartEvening, features.Daypart)
	assert.Equal(t, domain.BasketSmall, features.BasketBand)
	assert.Equal(t, 150.0, features.BasketValue)
	assert.Equal(t, 4, features.ItemCount)
	assert.Equal(t, []string{"bebidas", "snacks"}, features.Categories)
	assert.Equal(t, domain.PaymentCash, features.PaymentMethod)
}

func TestDaypartFor(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		expected domain.Daypart
	}{
		{name: "6 de la mañana es mañana", hour: 6, expected: domain.DaypartMorning},
		{name: "11 de la mañana es mañana", hour: 11, expected: domain.DaypartMorning},
		{name: "mediodía es tarde", hour: 12, expected: domain.DaypartAfternoon},
		{name: "5 de la tarde es tarde", hour: 17, expected: domain.DaypartAfternoon},
		{name: "6 de la tarde es noche", hour: 18, expected: domain.DaypartEvening},
		{name: "10 de la noche es noche", hour: 22, expected: domain.DaypartEvening},
		{name: "11 de la noche es madrugada", hour: 23, expected: domain.DaypartNight},
		{name: "3 de la madrugada es madrugada", hour: 3, expected: domain.DaypartNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, daypartFor(tt.hour))
		})
	}
}

func TestBasketBandFor(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected domain.BasketBand
	}{
		{name: "menos de 200 es pequeña", value: 199.99, expected: domain.BasketSmall},
		{name: "200 exacto es mediana", value: 200.0, expected: domain.BasketMedium},
		{name: "1000 exacto es mediana", value: 1000.0, expected: domain.BasketMedium},
		{name: "más de 1000 es grande", value: 1000.01, expected: domain.BasketLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, basketBandFor(tt.value))
		})
	}
}
