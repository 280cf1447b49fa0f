package domain

import "time"

// Tasas de ITBIS vigentes en República Dominicana
const (
	ITBISStandard = 0.18
	ITBISReduced  = 0.16
	ITBISExempt   = 0.0
)

// Product representa un producto del catálogo del colmado
type Product struct {
	ID        string     `json:"id"`
	Barcode   *string    `json:"barcode,omitempty"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Unit      string     `json:"unit"`
	Cost      float64    `json:"cost"`
	Price     float64    `json:"price"`
	ITBISRate float64    `json:"itbis_rate"`
	Stock     float64    `json:"stock"`
	MinStock  float64    `json:"min_stock"`
	Active    bool       `json:"active"`
	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LowStock indica si el producto está por debajo de su existencia mínima
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// UpdateProductRequest campos opcionales para actualización parcial
type UpdateProductRequest struct {
	ID        string   `json:"id"`
	Barcode   *string  `json:"barcode"`
	Name      *string  `json:"name"`
	Category  *string  `json:"category"`
	Unit      *string  `json:"unit"`
	Cost      *float64 `json:"cost"`
	Price     *float64 `json:"price"`
	ITBISRate *float64 `json:"itbis_rate"`
	MinStock  *float64 `json:"min_stock"`
	Active    *bool    `json:"active"`
	Deleted   *bool    `json:"deleted"`
}

// StockMovementKind representa el origen de un movimiento de inventario
type StockMovementKind string

const (
	StockMovementSale       StockMovementKind = "venta"
	StockMovementVoid       StockMovementKind = "anulacion"
	StockMovementPurchase   StockMovementKind = "compra"
	StockMovementAdjustment StockMovementKind = "ajuste"
)

// StockMovement representa una entrada del libro de movimientos de inventario
type StockMovement struct {
	ID        int64             `json:"id"`
	ProductID string            `json:"product_id"`
	Kind      StockMovementKind `json:"kind"`
	Quantity  float64           `json:"quantity"`
	Reference string            `json:"reference"`
	Reason    *string           `json:"reason,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
