package taxreporting

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

func TestBuild607Rows(t *testing.T) {
	rnc := "131246789"
	cedula := "00112345678"
	voidedAt := time.Date(2025, 7, 20, 10, 0, 0, 0, time.UTC)

	sales := []*domain.Sale{
		{
			NCF:         "B0200000001",
			CustomerRNC: &rnc,
			Subtotal:    1000,
			ITBISTotal:  180,
			Status:      domain.SaleStatusCompleted,
			SoldAt:      time.Date(2025, 7, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			NCF:         "B0200000002",
			CustomerRNC: &cedula,
			Subtotal:    500,
			ITBISTotal:  90,
			Status:      domain.SaleStatusCompleted,
			SoldAt:      time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC),
		},
		{
			NCF:        "B0200000003",
			Subtotal:   200,
			ITBISTotal: 36,
			Status:     domain.SaleStatusVoided,
			SoldAt:     time.Date(2025, 7, 18, 18, 0, 0, 0, time.UTC),
			VoidedAt:   &voidedAt,
		},
		{
			// venta sin NCF no se reporta
			Subtotal: 100,
			Status:   domain.SaleStatusCompleted,
			SoldAt:   time.Date(2025, 7, 19, 11, 0, 0, 0, time.UTC),
		},
	}

	rows := Build607Rows(sales)

	assert.Len(t, rows, 3)

	assert.Equal(t, "131246789", rows[0].RNC)
	assert.Equal(t, idTypeRNC, rows[0].IDType)
	assert.Equal(t, "20250705", rows[0].Date)
	assert.Equal(t, 1000.0, rows[0].InvoicedAmount)
	assert.Equal(t, 180.0, rows[0].ITBIS)

	assert.Equal(t, idTypeCedula, rows[1].IDType)
	assert.Empty(t, rows[1].NCFModified)

	// la venta anulada conserva su NCF, lo declara como comprobante
	// modificado y reporta montos en cero
	assert.Equal(t, "B0200000003", rows[2].NCF)
	assert.Equal(t, "B0200000003", rows[2].NCFModified)
	assert.Equal(t, idTypeConsumidor, rows[2].IDType)
	assert.Equal(t, 0.0, rows[2].InvoicedAmount)
	assert.Equal(t, 0.0, rows[2].ITBIS)
}

func TestFormat607Text(t *testing.T) {
	rows := []*domain.Report607Row{
		{
			RNC:            "131246789",
			IDType:         idTypeRNC,
			NCF:            "B0200000001",
			Date:           "20250705",
			InvoicedAmount: 1000,
			ITBIS:          180,
		},
		{
			IDType: idTypeConsumidor,
			NCF:    "B0200000002",
			Date:   "20250710",
		},
		{
			IDType:      idTypeConsumidor,
			NCF:         "B0200000003",
			NCFModified: "B0200000003",
			Date:        "20250718",
		},
	}

	content := Format607Text("131999888", "202507", rows)
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, "607|131999888|202507|3", lines[0])
	assert.Equal(t, "131246789|1|B0200000001||20250705|1000.00|180.00", lines[1])
	assert.Equal(t, "|3|B0200000002||20250710|0.00|0.00", lines[2])
	assert.Equal(t, "|3|B0200000003|B0200000003|20250718|0.00|0.00", lines[3])
}

func TestBuild606Rows(t *testing.T) {
	ncf := "B0100000555"
	receivedAt := time.Date(2025, 7, 8, 14, 0, 0, 0, time.UTC)

	purchases := []*domain.PurchaseOrder{
		{
			SupplierRNC: "101000111",
			SupplierNCF: &ncf,
			Subtotal:    5000,
			ITBISTotal:  900,
			Status:      domain.PurchaseStatusReceived,
			ReceivedAt:  &receivedAt,
		},
		{
			// orden sin NCF del suplidor no se reporta
			SupplierRNC: "101000222",
			Subtotal:    300,
			Status:      domain.PurchaseStatusReceived,
			ReceivedAt:  &receivedAt,
		},
	}

	rows := Build606Rows(purchases)

	assert.Len(t, rows, 1)
	assert.Equal(t, "101000111", rows[0].SupplierRNC)
	assert.Equal(t, idTypeRNC, rows[0].IDType)
	assert.Equal(t, expenseTypeCostOfSales, rows[0].ExpenseType)
	assert.Equal(t, "B0100000555", rows[0].NCF)
	assert.Equal(t, "20250708", rows[0].Date)
	assert.Equal(t, 5000.0, rows[0].InvoicedAmount)
	assert.Equal(t, 900.0, rows[0].ITBIS)
}

func TestFormat606Text(t *testing.T) {
	rows := []*domain.Report606Row{
		{
			SupplierRNC:    "101000111",
			IDType:         idTypeRNC,
			ExpenseType:    expenseTypeCostOfSales,
			NCF:            "B0100000555",
			Date:           "20250708",
			InvoicedAmount: 5000,
			ITBIS:          900,
		},
	}

	content := Format606Text("131999888", "202507", rows)
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")

	assert.Len(t, lines, 2)
	assert.Equal(t, "606|131999888|202507|1", lines[0])
	assert.Equal(t, "101000111|1|09|B0100000555|20250708|5000.00|900.00", lines[1])
}

func TestPeriodRange(t *testing.T) {
	start, end, err := periodRange("202507")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, err = periodRange("2025-07")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
