package insighting

import (
	"sort"
	"time"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

// Umbrales de banda de canasta en DOP
const (
	smallBasketLimit  = 200.0
	mediumBasketLimit = 1000.0
)

// ExtractFeatures mapea una venta a sus rasgos temporales y categóricos
func ExtractFeatures(sale *domain.Sale) *domain.SaleFeatures {
	hour := sale.SoldAt.Hour()
	weekday := sale.SoldAt.Weekday()

	categories := make(map[string]bool)
	itemCount := 0
	for _, item := range sale.Items {
		itemCount += int(item.Quantity)
		if item.Category != "" {
			categories[item.Category] = true
		}
	}

	categoryList := make([]string, 0, len(categories))
	for category := range categories {
		categoryList = append(categoryList, category)
	}
	sort.Strings(categoryList)

	return &domain.SaleFeatures{
		SaleID:        sale.ID,
		Hour:          hour,
		Weekday:       weekday,
		IsWeekend:     isWeekend(weekday),
		Daypart:       daypartFor(hour),
		BasketBand:    basketBandFor(sale.Total),
		BasketValue:   sale.Total,
		ItemCount:     itemCount,
		Categories:    categoryList,
		PaymentMethod: sale.PaymentMethod,
	}
}

func isWeekend(weekday time.Weekday) bool {
	return weekday == time.Saturday || weekday == time.Sunday
}

func daypartFor(hour int) domain.Daypart {
	switch {
	case hour >= 6 && hour < 12:
		return domain.DaypartMorning
	case hour >= 12 && hour < 18:
		return domain.DaypartAfternoon
	case hour >= 18 && hour < 23:
		return domain.DaypartEvening
	default:
		return domain.DaypartNight
	}
}

func basketBandFor(value float64) domain.BasketBand {
	switch {
	case value < smallBasketLimit:
		return domain.BasketSmall
	case value <= mediumBasketLimit:
		return domain.BasketMedium
	default:
		return domain.BasketLarge
	}
}
