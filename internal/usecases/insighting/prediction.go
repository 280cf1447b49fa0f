package insighting

import (
	"fmt"
	"time"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/utils"
)

// Umbrales de confianza según la cantidad de días con muestras
const (
	highConfidenceSamples   = 8
	mediumConfidenceSamples = 4
)

// dayBucket acumula las ventas de un día calendario dentro de una hora de la semana
type dayBucket struct {
	count  int
	amount float64
}

// BuildHourlyStats calcula las estadísticas históricas por hora de la semana
// (7x24 cubetas). Cada cubeta promedia los días calendario con ventas en esa
// hora; min y max son los extremos diarios observados.
func BuildHourlyStats(sales []*domain.Sale) []*domain.HourOfWeekStats {
	// clave: weekday*24 + hora; valor: acumulado por fecha calendario
	buckets := make(map[int]map[string]*dayBucket)

	for _, sale := range completedSales(sales) {
		key := bucketKey(sale.SoldAt.Weekday(), sale.SoldAt.Hour())
		dateKey := sale.SoldAt.Format(time.DateOnly)

		byDate, exists := buckets[key]
		if !exists {
			byDate = make(map[string]*dayBucket)
			buckets[key] = byDate
		}

		day, exists := byDate[dateKey]
		if !exists {
			day = &dayBucket{}
			byDate[dateKey] = day
		}

		day.count++
		day.amount += sale.Total
	}

	stats := make([]*domain.HourOfWeekStats, 0, 7*24)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		for hour := 0; hour < 24; hour++ {
			entry := &domain.HourOfWeekStats{
				Weekday:    weekday,
				Hour:       hour,
				Confidence: domain.ConfidenceNone,
			}

			byDate := buckets[bucketKey(weekday, hour)]
			if len(byDate) > 0 {
				totalCount := 0
				totalAmount := 0.0
				minAmount := 0.0
				maxAmount := 0.0
				first := true

				for _, day := range byDate {
					totalCount += day.count
					totalAmount += day.amount
					if first || day.amount < minAmount {
						minAmount = day.amount
					}
					if first || day.amount > maxAmount {
						maxAmount = day.amount
					}
					first = false
				}

				sampleDays := len(byDate)
				entry.SampleDays = sampleDays
				entry.AverageCount = utils.RoundWithTwoDecimalPlace(float64(totalCount) / float64(sampleDays))
				entry.AverageAmount = utils.RoundWithTwoDecimalPlace(totalAmount / float64(sampleDays))
				entry.MinAmount = utils.RoundWithTwoDecimalPlace(minAmount)
				entry.MaxAmount = utils.RoundWithTwoDecimalPlace(maxAmount)
				entry.Confidence = confidenceFor(sampleDays)
			}

			stats = append(stats, entry)
		}
	}

	return stats
}

func bucketKey(weekday time.Weekday, hour int) int {
	return int(weekday)*24 + hour
}

func confidenceFor(sampleDays int) domain.Confidence {
	switch {
	case sampleDays >= highConfidenceSamples:
		return domain.ConfidenceHigh
	case sampleDays >= mediumConfidenceSamples:
		return domain.ConfidenceMedium
	case sampleDays >= 1:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceNone
	}
}

// BuildSeasonalMultipliers calcula un multiplicador por mes calendario:
// el ingreso del mes frente al promedio mensual de los meses con ventas.
// Los meses sin historial quedan en 1.0.
func BuildSeasonalMultipliers(sales []*domain.Sale) map[string]float64 {
	revenueByMonth := make(map[string]float64)
	for _, sale := range completedSales(sales) {
		monthKey := fmt.Sprintf("%02d", int(sale.SoldAt.Month()))
		revenueByMonth[monthKey] += sale.Total
	}

	multipliers := make(map[string]float64, 12)
	for month := 1; month <= 12; month++ {
		multipliers[fmt.Sprintf("%02d", month)] = 1.0
	}

	if len(revenueByMonth) == 0 {
		return multipliers
	}

	total := 0.0
	for _, revenue := range revenueByMonth {
		total += revenue
	}
	meanMonthRevenue := total / float64(len(revenueByMonth))
	if meanMonthRevenue == 0 {
		return multipliers
	}

	for monthKey, revenue := range revenueByMonth {
		multipliers[monthKey] = utils.RoundWithTwoDecimalPlace(revenue / meanMonthRevenue)
	}

	return multipliers
}

// BuildForecast arma la predicción de tráfico para una hora de la semana,
// ajustada por el multiplicador estacional del mes indicado
func BuildForecast(
	stats []*domain.HourOfWeekStats,
	seasonal map[string]float64,
	weekday time.Weekday,
	hour int,
	month time.Month,
) *domain.TrafficForecast {
	forecast := &domain.TrafficForecast{
		Weekday:            weekday,
		Hour:               hour,
		SeasonalMultiplier: 1.0,
		Confidence:         domain.ConfidenceNone,
	}

	if multiplier, ok := seasonal[fmt.Sprintf("%02d", int(month))]; ok && multiplier > 0 {
		forecast.SeasonalMultiplier = multiplier
	}

	entry := findHourlyStats(stats, weekday, hour)
	if entry == nil || entry.SampleDays == 0 {
		return forecast
	}

	forecast.ExpectedCount = utils.RoundWithTwoDecimalPlace(entry.AverageCount * forecast.SeasonalMultiplier)
	forecast.ExpectedRevenue = utils.RoundWithTwoDecimalPlace(entry.AverageAmount * forecast.SeasonalMultiplier)
	forecast.Confidence = entry.Confidence

	return forecast
}

func findHourlyStats(stats []*domain.HourOfWeekStats, weekday time.Weekday, hour int) *domain.HourOfWeekStats {
	for _, entry := range stats {
		if entry.Weekday == weekday && entry.Hour == hour {
			return entry
		}
	}
	return nil
}
