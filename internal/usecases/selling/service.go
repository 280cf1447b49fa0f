package selling

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/utils"
)

// SaleItemRequest es una línea solicitada por el punto de venta
type SaleItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// CreateSaleRequest es la petición de registro de una venta
type CreateSaleRequest struct {
	Items         []SaleItemRequest    `json:"items"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	AmountPaid    float64              `json:"amount_paid"`
	NCFType       domain.NCFType       `json:"ncf_type,omitempty"`
	CustomerRNC   *string              `json:"customer_rnc,omitempty"`
	CustomerName  *string              `json:"customer_name,omitempty"`
	CashierID     int                  `json:"cashier_id"`
}

// Seller define la interface del servicio de punto de venta
type Seller interface {
	CreateSale(ctx context.Context, req *CreateSaleRequest) (*domain.Sale, error)
	VoidSale(ctx context.Context, saleID string) (*domain.Sale, error)
	GetSale(saleID string) (*domain.Sale, error)
	ListSales(filters *domain.SaleFilters) ([]*domain.Sale, error)
	GetDailySummary(date time.Time) (*domain.DailySummary, error)
	SeedNCFSequences(serie string) error
}

type service struct {
	saleRepository    repository.SaleRepository
	productRepository repository.ProductRepository
	ncfRepository     repository.NCFSequenceRepository
	journalRepository repository.JournalRepository
}

// NewService crea una nueva instancia del servicio de punto de venta
func NewService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	ncfRepo repository.NCFSequenceRepository,
	journalRepo repository.JournalRepository,
) Seller {
	return &service{
		saleRepository:    saleRepo,
		productRepository: productRepo,
		ncfRepository:     ncfRepo,
		journalRepository: journalRepo,
	}
}

// CreateSale registra una venta: valida las líneas contra el catálogo, calcula
// el ITBIS por línea, emite el NCF, descuenta el inventario y asienta en el
// diario. El NCF se emite de forma transaccional antes de persistir la venta.
func (s *service) CreateSale(ctx context.Context, req *CreateSaleRequest) (*domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptySale
	}

	if !validPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	ncfType := req.NCFType
	if ncfType == "" {
		ncfType = domain.NCFConsumo
	}

	if ncfType == domain.NCFCreditoFiscal && (req.CustomerRNC == nil || *req.CustomerRNC == "") {
		return nil, ErrCreditFiscalRNCRequired
	}

	if req.PaymentMethod == domain.PaymentCredit && (req.CustomerName == nil || *req.CustomerName == "") {
		return nil, ErrCreditCustomerRequired
	}

	items, subtotal, itbisTotal, err := s.buildLines(req.Items)
	if err != nil {
		return nil, err
	}

	total := utils.RoundWithTwoDecimalPlace(subtotal + itbisTotal)

	amountPaid := req.AmountPaid
	change := 0.0
	switch req.PaymentMethod {
	case domain.PaymentCash:
		if amountPaid < total {
			return nil, ErrInsufficientPayment
		}
		change = utils.RoundWithTwoDecimalPlace(amountPaid - total)
	default:
		// Tarjeta, transferencia y fiado pagan el monto exacto
		amountPaid = total
	}

	ncf, err := s.ncfRepository.NextNCF(ctx, ncfType)
	if err != nil {
		return nil, fmt.Errorf("error al emitir el NCF: %w", err)
	}

	saleID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("error al generar el identificador de la venta: %w", err)
	}

	sale := &domain.Sale{
		ID:            saleID,
		NCF:           ncf,
		NCFType:       ncfType,
		CustomerRNC:   req.CustomerRNC,
		CustomerName:  req.CustomerName,
		Items:         items,
		Subtotal:      utils.RoundWithTwoDecimalPlace(subtotal),
		ITBISTotal:    utils.RoundWithTwoDecimalPlace(itbisTotal),
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		AmountPaid:    amountPaid,
		Change:        change,
		Status:        domain.SaleStatusCompleted,
		CashierID:     req.CashierID,
		SoldAt:        time.Now(),
	}

	if err := sale.Validate(); err != nil {
		return nil, fmt.Errorf("venta inconsistente: %w", err)
	}

	if err := s.saleRepository.Save(sale); err != nil {
		return nil, fmt.Errorf("error al guardar la venta: %w", err)
	}

	s.applyStockMovements(sale, domain.StockMovementSale)

	if err := s.postSaleEntry(sale); err != nil {
		logrus.WithError(err).WithField("sale_id", sale.ID).
			Error("Error al asentar la venta en el diario")
	}

	return sale, nil
}

// buildLines valida cada línea contra el catálogo y calcula los montos
func (s *service) buildLines(requested []SaleItemRequest) ([]*domain.SaleItem, float64, float64, error) {
	items := make([]*domain.SaleItem, 0, len(requested))

	var subtotal, itbisTotal float64
	for _, line := range requested {
		if line.Quantity <= 0 {
			return nil, 0, 0, ErrInvalidQuantity
		}

		product, err := s.productRepository.GetByID(line.ProductID)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("error al buscar el producto %s: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, 0, 0, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
		}
		if !product.Active || product.Deleted {
			return nil, 0, 0, fmt.Errorf("%w: %s", ErrProductInactive, line.ProductID)
		}
		if product.Stock < line.Quantity {
			return nil, 0, 0, fmt.Errorf("%w: %s (disponible %.2f, pedido %.2f)",
				ErrInsufficientStock, product.Name, product.Stock, line.Quantity)
		}

		lineBase := product.Price * line.Quantity
		lineITBIS := utils.RoundWithTwoDecimalPlace(lineBase * product.ITBISRate)

		items = append(items, &domain.SaleItem{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			ITBISRate: product.ITBISRate,
			ITBIS:     lineITBIS,
			LineTotal: utils.RoundWithTwoDecimalPlace(lineBase + lineITBIS),
		})

		subtotal += lineBase
		itbisTotal += lineITBIS
	}

	return items, subtotal, itbisTotal, nil
}

// VoidSale anula una venta: restaura el inventario y asienta la reversión.
// La venta anulada conserva su NCF porque la DGII exige reportarlo.
func (s *service) VoidSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepository.GetByID(saleID)
	if err != nil {
		return nil, fmt.Errorf("error al buscar la venta: %w", err)
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	if sale.Status == domain.SaleStatusVoided {
		return nil, ErrSaleAlreadyVoided
	}

	voidedAt := time.Now()
	if err := s.saleRepository.MarkVoided(saleID, voidedAt); err != nil {
		return nil, fmt.Errorf("error al anular la venta: %w", err)
	}

	sale.Status = domain.SaleStatusVoided
	sale.VoidedAt = &voidedAt

	s.applyStockMovements(sale, domain.StockMovementVoid)

	if err := s.postVoidEntry(sale); err != nil {
		logrus.WithError(err).WithField("sale_id", sale.ID).
			Error("Error al asentar la anulación en el diario")
	}

	return sale, nil
}

// GetSale busca una venta por su identificador
func (s *service) GetSale(saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepository.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

// ListSales busca las ventas según los filtros de período y estado
func (s *service) ListSales(filters *domain.SaleFilters) ([]*domain.Sale, error) {
	return s.saleRepository.ListByFilters(filters)
}

// GetDailySummary resume las ventas completadas de un día calendario
func (s *service) GetDailySummary(date time.Time) (*domain.DailySummary, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	sales, err := s.saleRepository.GetByDateRange(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("error al buscar las ventas del día: %w", err)
	}

	summary := &domain.DailySummary{
		Date:            dayStart.Format(time.DateOnly),
		ByPaymentMethod: make(map[domain.PaymentMethod]float64),
	}

	for _, sale := range sales {
		if sale.Status == domain.SaleStatusVoided {
			continue
		}
		summary.SalesQuantity++
		summary.TotalRevenue += sale.Total
		summary.TotalITBIS += sale.ITBISTotal
		summary.ByPaymentMethod[sale.PaymentMethod] += sale.Total
	}

	summary.TotalRevenue = utils.RoundWithTwoDecimalPlace(summary.TotalRevenue)
	summary.TotalITBIS = utils.RoundWithTwoDecimalPlace(summary.TotalITBIS)
	if summary.SalesQuantity > 0 {
		summary.AverageTicket = utils.RoundWithTwoDecimalPlace(summary.TotalRevenue / float64(summary.SalesQuantity))
	}

	return summary, nil
}

// SeedNCFSequences registra secuencias iniciales con la serie configurada para
// que una instalación nueva pueda facturar. No toca las secuencias existentes:
// los rangos y vencimientos autorizados por la DGII se administran por datos.
func (s *service) SeedNCFSequences(serie string) error {
	yearEnd := time.Date(time.Now().Year(), 12, 31, 23, 59, 59, 0, time.Local)

	for _, ncfType := range []domain.NCFType{domain.NCFConsumo, domain.NCFCreditoFiscal} {
		existing, err := s.ncfRepository.GetSequence(ncfType)
		if err != nil {
			return fmt.Errorf("error al consultar la secuencia %s: %w", ncfType, err)
		}
		if existing != nil {
			continue
		}

		seq := &domain.NCFSequence{
			Type:      ncfType,
			Serie:     serie,
			Next:      1,
			Max:       99999999,
			ExpiresAt: yearEnd,
		}
		if err := s.ncfRepository.SaveSequence(seq); err != nil {
			return fmt.Errorf("error al registrar la secuencia %s: %w", ncfType, err)
		}

		logrus.WithFields(logrus.Fields{
			"ncf_type": ncfType,
			"serie":    serie,
		}).Info("Secuencia de NCF inicial registrada")
	}

	return nil
}

// applyStockMovements ajusta el inventario y registra los movimientos.
// Un fallo en un producto se registra y no interrumpe el resto.
func (s *service) applyStockMovements(sale *domain.Sale, kind domain.StockMovementKind) {
	for _, item := range sale.Items {
		delta := -item.Quantity
		if kind == domain.StockMovementVoid {
			delta = item.Quantity
		}

		if err := s.productRepository.AdjustStock(item.ProductID, delta); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"sale_id":    sale.ID,
				"product_id": item.ProductID,
			}).Error("Error al ajustar la existencia del producto")
			continue
		}

		movement := &domain.StockMovement{
			ProductID: item.ProductID,
			Kind:      kind,
			Quantity:  delta,
			Reference: sale.NCF,
		}
		if err := s.productRepository.SaveMovement(movement); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"sale_id":    sale.ID,
				"product_id": item.ProductID,
			}).Error("Error al registrar el movimiento de inventario")
		}
	}
}

// postSaleEntry asienta la venta: debita caja o cuentas por cobrar y acredita
// ventas e ITBIS por pagar
func (s *service) postSaleEntry(sale *domain.Sale) error {
	debitAccount := domain.AccountCodeCash
	if sale.PaymentMethod == domain.PaymentCredit {
		debitAccount = domain.AccountCodeReceivables
	}

	entry := &domain.JournalEntry{
		Date:        sale.SoldAt,
		Description: fmt.Sprintf("Venta %s", sale.NCF),
		Reference:   sale.NCF,
		Lines: []*domain.JournalLine{
			{AccountCode: debitAccount, Debit: sale.Total},
			{AccountCode: domain.AccountCodeSales, Credit: sale.Subtotal},
			{AccountCode: domain.AccountCodeITBISPayable, Credit: sale.ITBISTotal},
		},
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	return s.journalRepository.SaveEntry(entry)
}

// postVoidEntry asienta la reversión de una venta anulada
func (s *service) postVoidEntry(sale *domain.Sale) error {
	creditAccount := domain.AccountCodeCash
	if sale.PaymentMethod == domain.PaymentCredit {
		creditAccount = domain.AccountCodeReceivables
	}

	entry := &domain.JournalEntry{
		Date:        time.Now(),
		Description: fmt.Sprintf("Anulación de venta %s", sale.NCF),
		Reference:   sale.NCF,
		Lines: []*domain.JournalLine{
			{AccountCode: domain.AccountCodeSales, Debit: sale.Subtotal},
			{AccountCode: domain.AccountCodeITBISPayable, Debit: sale.ITBISTotal},
			{AccountCode: creditAccount, Credit: sale.Total},
		},
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	return s.journalRepository.SaveEntry(entry)
}

func validPaymentMethod(method domain.PaymentMethod) bool {
	switch method {
	case domain.PaymentCash, domain.PaymentCard, domain.PaymentTransfer, domain.PaymentCredit:
		return true
	default:
		return false
	}
}
