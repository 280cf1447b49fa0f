package inventorying

import (
	"errors"
	"fmt"
	"time"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/utils"
)

// Errores del inventario que los handlers mapean a códigos de la API
var (
	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrBarcodeInUse     = errors.New("el código de barras ya está registrado")
	ErrInvalidProduct   = errors.New("datos del producto inválidos")
	ErrReasonRequired   = errors.New("el ajuste manual requiere un motivo")
	ErrInvalidITBISRate = errors.New("tasa de ITBIS inválida")
)

// CreateProductRequest es la petición de alta de un producto
type CreateProductRequest struct {
	Barcode   *string `json:"barcode,omitempty"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	Cost      float64 `json:"cost"`
	Price     float64 `json:"price"`
	ITBISRate float64 `json:"itbis_rate"`
	Stock     float64 `json:"stock"`
	MinStock  float64 `json:"min_stock"`
}

// AdjustStockRequest es la petición de un ajuste manual de existencia
type AdjustStockRequest struct {
	ProductID string  `json:"product_id"`
	Delta     float64 `json:"delta"`
	Reason    string  `json:"reason"`
}

// Inventorier define la interface del servicio de inventario
type Inventorier interface {
	CreateProduct(req *CreateProductRequest) (*domain.Product, error)
	GetProduct(id string) (*domain.Product, error)
	GetProductByBarcode(barcode string) (*domain.Product, error)
	ListProducts(includeInactive bool) ([]*domain.Product, error)
	ListLowStock() ([]*domain.Product, error)
	UpdateProduct(req *domain.UpdateProductRequest) (*domain.Product, error)
	AdjustStock(req *AdjustStockRequest) (*domain.Product, error)
	ListMovements(productID string, startDate, endDate time.Time) ([]*domain.StockMovement, error)
}

type service struct {
	productRepository repository.ProductRepository
}

// NewService crea una nueva instancia del servicio de inventario
func NewService(productRepo repository.ProductRepository) Inventorier {
	return &service{
		productRepository: productRepo,
	}
}

// CreateProduct da de alta un producto en el catálogo
func (s *service) CreateProduct(req *CreateProductRequest) (*domain.Product, error) {
	if req.Name == "" || req.Price < 0 || req.Cost < 0 {
		return nil, ErrInvalidProduct
	}

	if !validITBISRate(req.ITBISRate) {
		return nil, ErrInvalidITBISRate
	}

	if req.Barcode != nil && *req.Barcode != "" {
		existing, err := s.productRepository.GetByBarcode(*req.Barcode)
		if err != nil {
			return nil, fmt.Errorf("error al verificar el código de barras: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: %s", ErrBarcodeInUse, *req.Barcode)
		}
	}

	productID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("error al generar el identificador del producto: %w", err)
	}

	product := &domain.Product{
		ID:        productID,
		Barcode:   req.Barcode,
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		Cost:      req.Cost,
		Price:     req.Price,
		ITBISRate: req.ITBISRate,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
		Active:    true,
	}

	if err := s.productRepository.Create(product); err != nil {
		return nil, fmt.Errorf("error al crear el producto: %w", err)
	}

	return product, nil
}

// GetProduct busca un producto por su identificador
func (s *service) GetProduct(id string) (*domain.Product, error) {
	product, err := s.productRepository.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetProductByBarcode busca un producto por su código de barras, la consulta
// típica del lector del punto de venta
func (s *service) GetProductByBarcode(barcode string) (*domain.Product, error) {
	product, err := s.productRepository.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts lista el catálogo; includeInactive incluye los desactivados
func (s *service) ListProducts(includeInactive bool) ([]*domain.Product, error) {
	return s.productRepository.List(includeInactive)
}

// ListLowStock lista los productos con existencia por debajo del mínimo
func (s *service) ListLowStock() ([]*domain.Product, error) {
	return s.productRepository.ListLowStock()
}

// UpdateProduct actualiza parcialmente un producto del catálogo
func (s *service) UpdateProduct(req *domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepository.GetByID(req.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.ITBISRate != nil && !validITBISRate(*req.ITBISRate) {
		return nil, ErrInvalidITBISRate
	}

	applyUpdates(product, req)

	if err := s.productRepository.Update(product); err != nil {
		return nil, fmt.Errorf("error al actualizar el producto: %w", err)
	}

	return product, nil
}

// AdjustStock aplica un ajuste manual de existencia con su motivo y lo
// registra en el libro de movimientos
func (s *service) AdjustStock(req *AdjustStockRequest) (*domain.Product, error) {
	if req.Reason == "" {
		return nil, ErrReasonRequired
	}

	product, err := s.productRepository.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := s.productRepository.AdjustStock(req.ProductID, req.Delta); err != nil {
		return nil, fmt.Errorf("error al ajustar la existencia: %w", err)
	}

	movement := &domain.StockMovement{
		ProductID: req.ProductID,
		Kind:      domain.StockMovementAdjustment,
		Quantity:  req.Delta,
		Reference: "ajuste manual",
		Reason:    &req.Reason,
	}
	if err := s.productRepository.SaveMovement(movement); err != nil {
		return nil, fmt.Errorf("error al registrar el movimiento: %w", err)
	}

	product.Stock += req.Delta
	return product, nil
}

// ListMovements lista el libro de movimientos de un producto en un período
func (s *service) ListMovements(productID string, startDate, endDate time.Time) ([]*domain.StockMovement, error) {
	return s.productRepository.ListMovements(productID, startDate, endDate)
}

func applyUpdates(product *domain.Product, req *domain.UpdateProductRequest) {
	if req.Barcode != nil {
		product.Barcode = req.Barcode
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Cost != nil {
		product.Cost = *req.Cost
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ITBISRate != nil {
		product.ITBISRate = *req.ITBISRate
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Deleted != nil {
		product.Deleted = *req.Deleted
		if *req.Deleted {
			now := time.Now()
			product.DeletedAt = &now
		}
	}
}

func validITBISRate(rate float64) bool {
	switch rate {
	case domain.ITBISStandard, domain.ITBISReduced, domain.ITBISExempt:
		return true
	default:
		return false
	}
}
