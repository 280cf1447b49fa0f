package insighting

import (
	"sort"
	"time"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/utils"
)

// Cantidad mínima de ventas para derivar segmentos con algo de significado
const minSalesForSegments = 10

// Nombres de los segmentos heurísticos
const (
	segmentEarlyMorning   = "madrugadores"
	segmentLunchRush      = "hora de almuerzo"
	segmentWeekendStockUp = "compra grande de fin de semana"
	segmentEveningSmall   = "compras pequeñas de la noche"
	segmentGeneral        = "compras generales"
)

var segmentDescriptions = map[string]string{
	segmentEarlyMorning:   "Clientes que compran temprano en la mañana, entre las 6 y las 9",
	segmentLunchRush:      "Clientes de la hora del almuerzo entre semana, de 11 a 14",
	segmentWeekendStockUp: "Clientes de fin de semana con canastas medianas o grandes",
	segmentEveningSmall:   "Clientes de la noche con canastas pequeñas",
	segmentGeneral:        "Clientes fuera de los patrones anteriores",
}

// segmentAccumulator acumula las ventas asignadas a un segmento
type segmentAccumulator struct {
	salesQuantity int
	totalRevenue  float64
	hourCounts    map[int]int
	dayCounts     map[time.Weekday]int
	categoryCount map[string]int
}

func newSegmentAccumulator() *segmentAccumulator {
	return &segmentAccumulator{
		hourCounts:    make(map[int]int),
		dayCounts:     make(map[time.Weekday]int),
		categoryCount: make(map[string]int),
	}
}

// BuildSegments deriva los segmentos de clientes a partir del historial completo
// de ventas. Con menos de minSalesForSegments ventas devuelve una lista vacía.
func BuildSegments(sales []*domain.Sale) []*domain.Segment {
	completed := completedSales(sales)
	if len(completed) < minSalesForSegments {
		return []*domain.Segment{}
	}

	accumulators := make(map[string]*segmentAccumulator)
	totalRevenue := 0.0

	for _, sale := range completed {
		features := ExtractFeatures(sale)
		name := segmentFor(features)

		accumulator, exists := accumulators[name]
		if !exists {
			accumulator = newSegmentAccumulator()
			accumulators[name] = accumulator
		}

		accumulator.salesQuantity++
		accumulator.totalRevenue += features.BasketValue
		accumulator.hourCounts[features.Hour]++
		accumulator.dayCounts[features.Weekday]++
		for _, category := range features.Categories {
			accumulator.categoryCount[category]++
		}

		totalRevenue += features.BasketValue
	}

	segments := make([]*domain.Segment, 0, len(accumulators))
	for name, accumulator := range accumulators {
		revenueShare := 0.0
		if totalRevenue > 0 {
			revenueShare = accumulator.totalRevenue / totalRevenue
		}

		averageBasket := 0.0
		if accumulator.salesQuantity > 0 {
			averageBasket = accumulator.totalRevenue / float64(accumulator.salesQuantity)
		}

		segments = append(segments, &domain.Segment{
			Name:          name,
			Description:   segmentDescriptions[name],
			SalesQuantity: accumulator.salesQuantity,
			RevenueShare:  utils.RoundWithTwoDecimalPlace(revenueShare * 100),
			AverageBasket: utils.RoundWithTwoDecimalPlace(averageBasket),
			PeakHours:     topHours(accumulator.hourCounts, 3),
			PeakDays:      topDays(accumulator.dayCounts, 2),
			TopCategories: topCategories(accumulator.categoryCount, 3),
		})
	}

	// Orden estable: los segmentos con más ventas primero
	sort.Slice(segments, func(i, j int) bool {
		if segments[i].SalesQuantity != segments[j].SalesQuantity {
			return segments[i].SalesQuantity > segments[j].SalesQuantity
		}
		return segments[i].Name < segments[j].Name
	})

	return segments
}

// segmentFor asigna una venta a un segmento según reglas heurísticas.
// Las reglas se evalúan en orden; la primera que aplica gana.
func segmentFor(features *domain.SaleFeatures) string {
	switch {
	case features.Hour >= 6 && features.Hour < 9:
		return segmentEarlyMorning
	case !features.IsWeekend && features.Hour >= 11 && features.Hour < 14:
		return segmentLunchRush
	case features.IsWeekend && features.BasketBand != domain.BasketSmall:
		return segmentWeekendStockUp
	case features.Daypart == domain.DaypartEvening && features.BasketBand == domain.BasketSmall:
		return segmentEveningSmall
	default:
		return segmentGeneral
	}
}

func completedSales(sales []*domain.Sale) []*domain.Sale {
	completed := make([]*domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if sale.Status == domain.SaleStatusVoided {
			continue
		}
		completed = append(completed, sale)
	}
	return completed
}

func topHours(counts map[int]int, limit int) []int {
	hours := make([]int, 0, len(counts))
	for hour := range counts {
		hours = append(hours, hour)
	}
	sort.Slice(hours, func(i, j int) bool {
		if counts[hours[i]] != counts[hours[j]] {
			return counts[hours[i]] > counts[hours[j]]
		}
		return hours[i] < hours[j]
	})
	if len(hours) > limit {
		hours = hours[:limit]
	}
	return hours
}

func topDays(counts map[time.Weekday]int, limit int) []time.Weekday {
	days := make([]time.Weekday, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		if counts[days[i]] != counts[days[j]] {
			return counts[days[i]] > counts[days[j]]
		}
		return days[i] < days[j]
	})
	if len(days) > limit {
		days = days[:limit]
	}
	return days
}

func topCategories(counts map[string]int, limit int) []string {
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})
	if len(categories) > limit {
		categories = categories[:limit]
	}
	return categories
}
