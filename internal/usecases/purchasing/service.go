package purchasing

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/utils"
)

// Errores del flujo de compras que los handlers mapean a códigos de la API
var (
	ErrSupplierNotFound    = errors.New("suplidor no encontrado")
	ErrSupplierRNCInUse    = errors.New("el RNC ya está registrado")
	ErrInvalidSupplier     = errors.New("datos del suplidor inválidos")
	ErrPurchaseNotFound    = errors.New("orden de compra no encontrada")
	ErrEmptyPurchase       = errors.New("la orden de compra no tiene líneas")
	ErrInvalidTransition   = errors.New("transición de estado inválida")
	ErrInvalidReceipt      = errors.New("cantidad recibida inválida")
	ErrSupplierNCFRequired = errors.New("la recepción requiere el NCF del suplidor")
)

// CreateSupplierRequest es la petición de alta de un suplidor
type CreateSupplierRequest struct {
	RNC          string  `json:"rnc"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone,omitempty"`
	PaymentTerms string  `json:"payment_terms"`
}

// PurchaseItemRequest es una línea solicitada de una orden de compra
type PurchaseItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
}

// CreatePurchaseRequest es la petición de creación de una orden de compra
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Items      []PurchaseItemRequest `json:"items"`
}

// ReceiptLine es la cantidad recibida de una línea durante una recepción
type ReceiptLine struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// ReceivePurchaseRequest es la petición de recepción de mercancía
type ReceivePurchaseRequest struct {
	PurchaseID  string        `json:"purchase_id"`
	SupplierNCF string        `json:"supplier_ncf"`
	Lines       []ReceiptLine `json:"lines"`
}

// Purchaser define la interface del servicio de compras
type Purchaser interface {
	CreateSupplier(req *CreateSupplierRequest) (*domain.Supplier, error)
	GetSupplier(id string) (*domain.Supplier, error)
	ListSuppliers() ([]*domain.Supplier, error)
	UpdateSupplier(supplier *domain.Supplier) error

	CreatePurchase(req *CreatePurchaseRequest) (*domain.PurchaseOrder, error)
	GetPurchase(id string) (*domain.PurchaseOrder, error)
	ListPurchases(startDate, endDate time.Time) ([]*domain.PurchaseOrder, error)
	MarkOrdered(purchaseID string) (*domain.PurchaseOrder, error)
	ReceivePurchase(req *ReceivePurchaseRequest) (*domain.PurchaseOrder, error)
	ClosePurchase(purchaseID string) (*domain.PurchaseOrder, error)
}

type service struct {
	supplierRepository repository.SupplierRepository
	purchaseRepository repository.PurchaseRepository
	productRepository  repository.ProductRepository
	journalRepository  repository.JournalRepository
}

// NewService crea una nueva instancia del servicio de compras
func NewService(
	supplierRepo repository.SupplierRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	journalRepo repository.JournalRepository,
) Purchaser {
	return &service{
		supplierRepository: supplierRepo,
		purchaseRepository: purchaseRepo,
		productRepository:  productRepo,
		journalRepository:  journalRepo,
	}
}

// CreateSupplier da de alta un suplidor
func (s *service) CreateSupplier(req *CreateSupplierRequest) (*domain.Supplier, error) {
	if req.Name == "" || req.RNC == "" {
		return nil, ErrInvalidSupplier
	}

	existing, err := s.supplierRepository.GetByRNC(req.RNC)
	if err != nil {
		return nil, fmt.Errorf("error al verificar el RNC: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrSupplierRNCInUse, req.RNC)
	}

	supplierID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("error al generar el identificador del suplidor: %w", err)
	}

	supplier := &domain.Supplier{
		ID:           supplierID,
		RNC:          req.RNC,
		Name:         req.Name,
		Phone:        req.Phone,
		PaymentTerms: req.PaymentTerms,
		Active:       true,
	}

	if err := s.supplierRepository.Create(supplier); err != nil {
		return nil, fmt.Errorf("error al crear el suplidor: %w", err)
	}

	return supplier, nil
}

// GetSupplier busca un suplidor por su identificador
func (s *service) GetSupplier(id string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepository.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}
	return supplier, nil
}

// ListSuppliers lista los suplidores activos
func (s *service) ListSuppliers() ([]*domain.Supplier, error) {
	return s.supplierRepository.List()
}

// UpdateSupplier actualiza los datos de un suplidor
func (s *service) UpdateSupplier(supplier *domain.Supplier) error {
	existing, err := s.supplierRepository.GetByID(supplier.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrSupplierNotFound
	}
	return s.supplierRepository.Update(supplier)
}

// CreatePurchase crea una orden de compra en estado borrador
func (s *service) CreatePurchase(req *CreatePurchaseRequest) (*domain.PurchaseOrder, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyPurchase
	}

	supplier, err := s.supplierRepository.GetByID(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("error al buscar el suplidor: %w", err)
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}

	items := make([]*domain.PurchaseItem, 0, len(req.Items))
	var subtotal, itbisTotal float64
	for _, line := range req.Items {
		if line.Quantity <= 0 || line.UnitCost < 0 {
			return nil, fmt.Errorf("%w: producto %s", ErrInvalidReceipt, line.ProductID)
		}

		product, err := s.productRepository.GetByID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("error al buscar el producto %s: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, fmt.Errorf("producto no encontrado: %s", line.ProductID)
		}

		lineBase := line.UnitCost * line.Quantity
		lineITBIS := utils.RoundWithTwoDecimalPlace(lineBase * product.ITBISRate)

		items = append(items, &domain.PurchaseItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
			ITBIS:     lineITBIS,
			LineTotal: utils.RoundWithTwoDecimalPlace(lineBase + lineITBIS),
		})

		subtotal += lineBase
		itbisTotal += lineITBIS
	}

	purchaseID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("error al generar el identificador de la orden: %w", err)
	}

	order := &domain.PurchaseOrder{
		ID:          purchaseID,
		SupplierID:  supplier.ID,
		SupplierRNC: supplier.RNC,
		Items:       items,
		Subtotal:    utils.RoundWithTwoDecimalPlace(subtotal),
		ITBISTotal:  utils.RoundWithTwoDecimalPlace(itbisTotal),
		Total:       utils.RoundWithTwoDecimalPlace(subtotal + itbisTotal),
		Status:      domain.PurchaseStatusDraft,
	}

	if err := s.purchaseRepository.Save(order); err != nil {
		return nil, fmt.Errorf("error al guardar la orden de compra: %w", err)
	}

	return order, nil
}

// GetPurchase busca una orden de compra por su identificador
func (s *service) GetPurchase(id string) (*domain.PurchaseOrder, error) {
	order, err := s.purchaseRepository.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrPurchaseNotFound
	}
	return order, nil
}

// ListPurchases lista las órdenes de compra de un período
func (s *service) ListPurchases(startDate, endDate time.Time) ([]*domain.PurchaseOrder, error) {
	return s.purchaseRepository.GetByDateRange(startDate, endDate)
}

// MarkOrdered pasa una orden de borrador a ordenada
func (s *service) MarkOrdered(purchaseID string) (*domain.PurchaseOrder, error) {
	order, err := s.GetPurchase(purchaseID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.PurchaseStatusDraft {
		return nil, fmt.Errorf("%w: de %s a ordenada", ErrInvalidTransition, order.Status)
	}

	now := time.Now()
	order.Status = domain.PurchaseStatusOrdered
	order.OrderedAt = &now

	if err := s.purchaseRepository.Update(order); err != nil {
		return nil, fmt.Errorf("error al actualizar la orden: %w", err)
	}

	return order, nil
}

// ReceivePurchase registra una recepción de mercancía, que puede ser parcial.
// Incrementa el inventario al costo recibido, registra los movimientos y
// asienta inventario e ITBIS adelantado contra cuentas por pagar. El NCF del
// suplidor queda registrado para el reporte 606.
func (s *service) ReceivePurchase(req *ReceivePurchaseRequest) (*domain.PurchaseOrder, error) {
	if req.SupplierNCF == "" {
		return nil, ErrSupplierNCFRequired
	}
	if len(req.Lines) == 0 {
		return nil, ErrInvalidReceipt
	}

	order, err := s.GetPurchase(req.PurchaseID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.PurchaseStatusOrdered && order.Status != domain.PurchaseStatusReceived {
		return nil, fmt.Errorf("%w: de %s a recibida", ErrInvalidTransition, order.Status)
	}

	itemsByProduct := make(map[string]*domain.PurchaseItem, len(order.Items))
	for _, item := range order.Items {
		itemsByProduct[item.ProductID] = item
	}

	var receivedBase, receivedITBIS float64
	for _, line := range req.Lines {
		item, exists := itemsByProduct[line.ProductID]
		if !exists {
			return nil, fmt.Errorf("%w: el producto %s no está en la orden", ErrInvalidReceipt, line.ProductID)
		}
		if line.Quantity <= 0 || item.ReceivedQuantity+line.Quantity > item.Quantity {
			return nil, fmt.Errorf("%w: producto %s", ErrInvalidReceipt, line.ProductID)
		}

		item.ReceivedQuantity += line.Quantity

		lineBase := item.UnitCost * line.Quantity
		receivedBase += lineBase
		receivedITBIS += utils.RoundWithTwoDecimalPlace(lineBase * itbisRateOf(item))

		s.applyReceiptToStock(order, item, line.Quantity)
	}

	now := time.Now()
	order.Status = domain.PurchaseStatusReceived
	order.ReceivedAt = &now
	order.SupplierNCF = &req.SupplierNCF

	if err := s.purchaseRepository.Update(order); err != nil {
		return nil, fmt.Errorf("error al actualizar la orden: %w", err)
	}

	if err := s.postReceiptEntry(order, receivedBase, receivedITBIS); err != nil {
		logrus.WithError(err).WithField("purchase_id", order.ID).
			Error("Error al asentar la recepción en el diario")
	}

	return order, nil
}

// ClosePurchase cierra una orden totalmente recibida
func (s *service) ClosePurchase(purchaseID string) (*domain.PurchaseOrder, error) {
	order, err := s.GetPurchase(purchaseID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.PurchaseStatusReceived || !order.FullyReceived() {
		return nil, fmt.Errorf("%w: de %s a cerrada", ErrInvalidTransition, order.Status)
	}

	order.Status = domain.PurchaseStatusClosed
	if err := s.purchaseRepository.Update(order); err != nil {
		return nil, fmt.Errorf("error al cerrar la orden: %w", err)
	}

	return order, nil
}

// applyReceiptToStock incrementa la existencia, promedia el costo del
// producto con el lote recibido y registra el movimiento
func (s *service) applyReceiptToStock(order *domain.PurchaseOrder, item *domain.PurchaseItem, quantity float64) {
	if err := s.productRepository.AdjustStock(item.ProductID, quantity); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"purchase_id": order.ID,
			"product_id":  item.ProductID,
		}).Error("Error al incrementar la existencia del producto")
		return
	}

	product, err := s.productRepository.GetByID(item.ProductID)
	if err == nil && product != nil {
		cost := weightedCost(product.Stock, product.Cost, quantity, item.UnitCost)
		if cost != product.Cost {
			product.Cost = cost
			if err := s.productRepository.Update(product); err != nil {
				logrus.WithError(err).WithField("product_id", item.ProductID).
					Warn("Error al actualizar el costo del producto")
			}
		}
	}

	movement := &domain.StockMovement{
		ProductID: item.ProductID,
		Kind:      domain.StockMovementPurchase,
		Quantity:  quantity,
		Reference: order.ID,
	}
	if err := s.productRepository.SaveMovement(movement); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"purchase_id": order.ID,
			"product_id":  item.ProductID,
		}).Error("Error al registrar el movimiento de inventario")
	}
}

// weightedCost promedia el costo de la existencia previa con el del lote
// recibido; stockAfter ya incluye la cantidad del lote
func weightedCost(stockAfter, currentCost, quantity, unitCost float64) float64 {
	prevStock := stockAfter - quantity
	if prevStock <= 0 || prevStock+quantity <= 0 {
		return unitCost
	}
	return utils.RoundWithTwoDecimalPlace(
		(prevStock*currentCost + quantity*unitCost) / (prevStock + quantity),
	)
}

// postReceiptEntry asienta la recepción: debita inventario e ITBIS adelantado
// y acredita cuentas por pagar
func (s *service) postReceiptEntry(order *domain.PurchaseOrder, base, itbis float64) error {
	base = utils.RoundWithTwoDecimalPlace(base)
	itbis = utils.RoundWithTwoDecimalPlace(itbis)

	entry := &domain.JournalEntry{
		Date:        time.Now(),
		Description: fmt.Sprintf("Recepción de compra %s", order.ID),
		Reference:   order.ID,
		Lines: []*domain.JournalLine{
			{AccountCode: domain.AccountCodeInventory, Debit: base},
			{AccountCode: domain.AccountCodeITBISAdvanced, Debit: itbis},
			{AccountCode: domain.AccountCodePayables, Credit: utils.RoundWithTwoDecimalPlace(base + itbis)},
		},
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	return s.journalRepository.SaveEntry(entry)
}

// itbisRateOf deriva la tasa de la línea a partir del ITBIS calculado al
// crear la orden
func itbisRateOf(item *domain.PurchaseItem) float64 {
	base := item.UnitCost * item.Quantity
	if base == 0 || item.ITBIS == 0 {
		return 0
	}
	return item.ITBIS / base
}
