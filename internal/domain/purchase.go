package domain

import "time"

// Supplier representa un suplidor del colmado
type Supplier struct {
	ID           string     `json:"id"`
	RNC          string     `json:"rnc"`
	Name         string     `json:"name"`
	Phone        *string    `json:"phone,omitempty"`
	PaymentTerms string     `json:"payment_terms"`
	Active       bool       `json:"active"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PurchaseStatus representa el estado de una orden de compra
type PurchaseStatus string

const (
	PurchaseStatusDraft    PurchaseStatus = "borrador"
	PurchaseStatusOrdered  PurchaseStatus = "ordenada"
	PurchaseStatusReceived PurchaseStatus = "recibida"
	PurchaseStatusClosed   PurchaseStatus = "cerrada"
)

// PurchaseOrder representa una orden de compra a un suplidor
type PurchaseOrder struct {
	ID          string          `json:"id"`
	SupplierID  string          `json:"supplier_id"`
	SupplierRNC string          `json:"supplier_rnc"`
	SupplierNCF *string         `json:"supplier_ncf,omitempty"`
	Items       []*PurchaseItem `json:"items"`
	Subtotal    float64         `json:"subtotal"`
	ITBISTotal  float64         `json:"itbis_total"`
	Total       float64         `json:"total"`
	Status      PurchaseStatus  `json:"status"`
	OrderedAt   *time.Time      `json:"ordered_at,omitempty"`
	ReceivedAt  *time.Time      `json:"received_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PurchaseItem representa una línea de orden de compra
type PurchaseItem struct {
	ProductID        string  `json:"product_id"`
	Name             string  `json:"name"`
	Quantity         float64 `json:"quantity"`
	ReceivedQuantity float64 `json:"received_quantity"`
	UnitCost         float64 `json:"unit_cost"`
	ITBIS            float64 `json:"itbis"`
	LineTotal        float64 `json:"line_total"`
}

// FullyReceived indica si todas las líneas fueron recibidas por completo
func (p *PurchaseOrder) FullyReceived() bool {
	for _, item := range p.Items {
		if item.ReceivedQuantity < item.Quantity {
			return false
		}
	}
	return true
}
