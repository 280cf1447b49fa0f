package insighting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

func saleAt(soldAt time.Time, total float64, category string) *domain.Sale {
	return &domain.Sale{
		ID:            "s-" + soldAt.Format("20060102150405"),
		Total:         total,
		PaymentMethod: domain.PaymentCash,
		Status:        domain.SaleStatusCompleted,
		SoldAt:        soldAt,
		Items: []*domain.SaleItem{
			{ProductID: "p1", Category: category, Quantity: 1, UnitPrice: total, LineTotal: total},
		},
	}
}

func TestBuildSegments_MinimumSample(t *testing.T) {
	// Nueve ventas no alcanzan el mínimo de diez
	sales := make([]*domain.Sale, 0, 9)
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		sales = append(sales, saleAt(base.AddDate(0, 0, i), 100, "bebidas"))
	}

	segments := BuildSegments(sales)
	assert.Empty(t, segments)
}

func TestBuildSegments_VoidedSalesIgnored(t *testing.T) {
	// Diez ventas pero dos anuladas: quedan ocho clasificables
	sales := make([]*domain.Sale, 0, 10)
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		sale := saleAt(base.AddDate(0, 0, i), 100, "bebidas")
		if i < 2 {
			sale.Status = domain.SaleStatusVoided
		}
		sales = append(sales, sale)
	}

	segments := BuildSegments(sales)
	assert.Empty(t, segments)
}

func TestBuildSegments(t *testing.T) {
	sales := make([]*domain.Sale, 0)

	// Lunes 2 de junio de 2025
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	// Sábado 7 de junio de 2025
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	// Seis madrugadores entre semana a las 7
	for i := 0; i < 6; i++ {
		sales = append(sales, saleAt(monday.AddDate(0, 0, i%5).Add(7*time.Hour), 80, "pan"))
	}

	// Cuatro ventas de almuerzo entre semana a las 12
	for i := 0; i < 4; i++ {
		sales = append(sales, saleAt(monday.AddDate(0, 0, i%5).Add(12*time.Hour), 250, "almuerzo"))
	}

	// Tres compras grandes el sábado a las 16
	for i := 0; i < 3; i++ {
		sales = append(sales, saleAt(saturday.Add(16*time.Hour).Add(time.Duration(i)*time.Minute), 1500, "provisiones"))
	}

	segments := BuildSegments(sales)

	assert.Len(t, segments, 3)

	byName := make(map[string]*domain.Segment)
	for _, segment := range segments {
		byName[segment.Name] = segment
	}

	early := byName[segmentEarlyMorning]
	assert.NotNil(t, early)
	assert.Equal(t, 6, early.SalesQuantity)
	assert.Equal(t, 80.0, early.AverageBasket)
	assert.Contains(t, early.PeakHours, 7)
	assert.Contains(t, early.TopCategories, "pan")

	lunch := byName[segmentLunchRush]
	assert.NotNil(t, lunch)
	assert.Equal(t, 4, lunch.SalesQuantity)

	stockUp := byName[segmentWeekendStockUp]
	assert.NotNil(t, stockUp)
	assert.Equal(t, 3, stockUp.SalesQuantity)
	assert.Equal(t, 1500.0, stockUp.AverageBasket)
	assert.Contains(t, stockUp.PeakDays, time.Saturday)

	// Los porcentajes de ingreso deben sumar 100 (con tolerancia de redondeo)
	totalShare := 0.0
	for _, segment := range segments {
		totalShare += segment.RevenueShare
	}
	assert.InDelta(t, 100.0, totalShare, 0.1)

	// La cantidad clasificada debe igualar el total de ventas completadas
	totalClassified := 0
	for _, segment := range segments {
		totalClassified += segment.SalesQuantity
	}
	assert.Equal(t, len(sales), totalClassified)

	// Orden estable: más ventas primero
	assert.Equal(t, segmentEarlyMorning, segments[0].Name)
}
