package domain

import (
	"fmt"
	"time"
)

// PaymentMethod representa la forma de pago de una venta
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentCard     PaymentMethod = "tarjeta"
	PaymentTransfer PaymentMethod = "transferencia"
	PaymentCredit   PaymentMethod = "fiado"
)

// SaleStatus representa el estado de una venta
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completada"
	SaleStatusVoided    SaleStatus = "anulada"
)

// Sale representa una venta registrada por el punto de venta
type Sale struct {
	ID            string        `json:"id"`
	NCF           string        `json:"ncf"`
	NCFType       NCFType       `json:"ncf_type"`
	CustomerRNC   *string       `json:"customer_rnc,omitempty"`
	CustomerName  *string       `json:"customer_name,omitempty"`
	Items         []*SaleItem   `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	ITBISTotal    float64       `json:"itbis_total"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	AmountPaid    float64       `json:"amount_paid"`
	Change        float64       `json:"change"`
	Status        SaleStatus    `json:"status"`
	CashierID     int           `json:"cashier_id"`
	SoldAt        time.Time     `json:"sold_at"`
	VoidedAt      *time.Time    `json:"voided_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// SaleItem representa una línea de venta
type SaleItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	ITBISRate float64 `json:"itbis_rate"`
	ITBIS     float64 `json:"itbis"`
	LineTotal float64 `json:"line_total"`
}

// Validate verifica la consistencia aritmética de la venta: la suma de las
// líneas debe coincidir con los totales declarados (tolerancia de un centavo)
func (s *Sale) Validate() error {
	if len(s.Items) == 0 {
		return fmt.Errorf("la venta no tiene líneas")
	}

	var subtotal, itbis, total float64
	for _, item := range s.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("cantidad inválida para el producto %s", item.ProductID)
		}
		subtotal += item.UnitPrice * item.Quantity
		itbis += item.ITBIS
		total += item.LineTotal
	}

	const tolerance = 0.01
	if diff := s.Subtotal - subtotal; diff > tolerance || diff < -tolerance {
		return fmt.Errorf("el subtotal declarado (%.2f) no coincide con la suma de líneas (%.2f)", s.Subtotal, subtotal)
	}
	if diff := s.ITBISTotal - itbis; diff > tolerance || diff < -tolerance {
		return fmt.Errorf("el ITBIS declarado (%.2f) no coincide con la suma de líneas (%.2f)", s.ITBISTotal, itbis)
	}
	if diff := s.Total - total; diff > tolerance || diff < -tolerance {
		return fmt.Errorf("el total declarado (%.2f) no coincide con la suma de líneas (%.2f)", s.Total, total)
	}

	return nil
}

// SaleFilters filtros de consulta de ventas por período
type SaleFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *SaleStatus
}

// DailySummary resume las ventas de un día
type DailySummary struct {
	Date            string                    `json:"date"`
	SalesQuantity   int                       `json:"sales_quantity"`
	TotalRevenue    float64                   `json:"total_revenue"`
	TotalITBIS      float64                   `json:"total_itbis"`
	AverageTicket   float64                   `json:"average_ticket"`
	ByPaymentMethod map[PaymentMethod]float64 `json:"by_payment_method"`
}
