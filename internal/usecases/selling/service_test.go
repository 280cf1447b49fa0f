package selling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository"
	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository/mocks"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

func stringPtr(s string) *string {
	return &s
}

func catalogProduct(id string, price, itbisRate, stock float64) *domain.Product {
	return &domain.Product{
		ID:        id,
		Name:      "Producto " + id,
		Category:  "abarrotes",
		Price:     price,
		ITBISRate: itbisRate,
		Stock:     stock,
		Active:    true,
	}
}

func TestService_CreateSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	tests := []struct {
		name     string
		request  *CreateSaleRequest
		setup    func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, ncfRepo *mocks.MockNCFSequenceRepository, journalRepo *mocks.MockJournalRepository)
		validate func(t *testing.T, sale *domain.Sale, err error)
	}{
		{
			name: "venta en efectivo con ITBIS estándar",
			request: &CreateSaleRequest{
				Items:         []SaleItemRequest{{ProductID: "p1", Quantity: 2}},
				PaymentMethod: domain.PaymentCash,
				AmountPaid:    300,
				CashierID:     2,
			},
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, ncfRepo *mocks.MockNCFSequenceRepository, journalRepo *mocks.MockJournalRepository) {
				productRepo.EXPECT().GetByID("p1").Return(catalogProduct("p1", 100, domain.ITBISStandard, 10), nil)
				ncfRepo.EXPECT().NextNCF(ctx, domain.NCFConsumo).Return("B0200000001", nil)
				saleRepo.EXPECT().Save(gomock.Any()).Return(nil)
				productRepo.EXPECT().AdjustStock("p1", -2.0).Return(nil)
				productRepo.EXPECT().SaveMovement(gomock.Any()).Return(nil)
				journalRepo.EXPECT().SaveEntry(gomock.Any()).DoAndReturn(func(entry *domain.JournalEntry) error {
					assert.NoError(t, entry.Validate())
					assert.Equal(t, "B0200000001", entry.Reference)
					assert.Equal(t, domain.AccountCodeCash, entry.Lines[0].AccountCode)
					assert.Equal(t, 236.0, entry.Lines[0].Debit)
					return nil
				})
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "B0200000001", sale.NCF)
				assert.Equal(t, 200.0, sale.Subtotal)
				assert.Equal(t, 36.0, sale.ITBISTotal) // 200 * 0.18
				assert.Equal(t, 236.0, sale.Total)
				assert.Equal(t, 64.0, sale.Change) // 300 - 236
				assert.Equal(t, domain.SaleStatusCompleted, sale.Status)
				assert.NoError(t, sale.Validate())
			},
		},
		{
			name: "venta fiada debita cuentas por cobrar",
			request: &CreateSaleRequest{
				Items:         []SaleItemRequest{{ProductID: "p1", Quantity: 1}},
				PaymentMethod: domain.PaymentCredit,
				CustomerName:  stringPtr("Doña María"),
				CashierID:     2,
			},
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, ncfRepo *mocks.MockNCFSequenceRepository, journalRepo *mocks.MockJournalRepository) {
				productRepo.EXPECT().GetByID("p1").Return(catalogProduct("p1", 50, domain.ITBISExempt, 5), nil)
				ncfRepo.EXPECT().NextNCF(ctx, domain.NCFConsumo).Return("B0200000002", nil)
				saleRepo.EXPECT().Save(gomock.Any()).Return(nil)
				productRepo.EXPECT().AdjustStock("p1", -1.0).Return(nil)
				productRepo.EXPECT().SaveMovement(gomock.Any()).Return(nil)
				journalRepo.EXPECT().SaveEntry(gomock.Any()).DoAndReturn(func(entry *domain.JournalEntry) error {
					assert.Equal(t, domain.AccountCodeReceivables, entry.Lines[0].AccountCode)
					return nil
				})
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 50.0, sale.Total)
				assert.Equal(t, 0.0, sale.ITBISTotal)
				assert.Equal(t, 50.0, sale.AmountPaid)
				assert.Equal(t, 0.0, sale.Change)
			},
		},
		{
			name: "venta fiada sin nombre de cliente es rechazada",
			request: &CreateSaleRequest{
				Items:         []SaleItemRequest{{ProductID: "p1", Quantity: 1}},
				PaymentMethod: domain.PaymentCredit,
			},
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, ncfRepo *mocks.MockNCFSequenceRepository, journalRepo *mocks.MockJournalRepository) {
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.ErrorIs(t, err, ErrCreditCustomerRequired)
				assert.Nil(t, sale)
			},
		},
		{
			name: "crédito fiscal sin RNC es rechazado",
			request: &CreateSaleRequest{
				Items:         []SaleItemRequest{{ProductID: "p1", Quantity: 1}},
				PaymentMethod: domain.PaymentCash,
				NCFType:       domain.NCFCreditoFiscal,
				AmountPaid:    1000,
			},
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, ncfRepo *mocks.MockNCFSequenceRepository, journalRepo *mocks.MockJournalRepository) {
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.ErrorIs(t, err, ErrCreditFiscalRNCRequired)
				assert.Nil(t, sale)
			},
		},
		{
			name: "existencia insuficiente es rechazada",
			request: &CreateSaleRequest{
				Items:         []SaleItemRequest{{ProductID: "p1", Quantity: 10}},
				PaymentMethod: domain.PaymentCash,
				AmountPaid:    5000,
			},
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, ncfRepo *mocks.MockNCFSequenceRepository, journalRepo *mocks.MockJournalRepository) {
				productRepo.EXPECT().GetByID("p1").Return(catalogProduct("p1", 100, domain.ITBISStandard, 3), nil)
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.ErrorIs(t, err, ErrInsufficientStock)
				assert.Nil(t, sale)
			},
		},
		{
			name: "producto desconocido es rechazado",
			request: &CreateSaleRequest{
				Items:         []SaleItemRequest{{ProductID: "nope", Quantity: 1}},
				PaymentMethod: domain.PaymentCash,
				AmountPaid:    100,
			},
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, ncfRepo *mocks.MockNCFSequenceRepository, journalRepo *mocks.MockJournalRepository) {
				productRepo.EXPECT().GetByID("nope").Return(nil, nil)
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.ErrorIs(t, err, ErrProductNotFound)
				assert.Nil(t, sale)
			},
		},
		{
			name: "pago en efectivo insuficiente es rechazado",
			request: &CreateSaleRequest{
				Items:         []SaleItemRequest{{ProductID: "p1", Quantity: 1}},
				PaymentMethod: domain.PaymentCash,
				AmountPaid:    100,
			},
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, ncfRepo *mocks.MockNCFSequenceRepository, journalRepo *mocks.MockJournalRepository) {
				productRepo.EXPECT().GetByID("p1").Return(catalogProduct("p1", 100, domain.ITBISStandard, 5), nil)
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.ErrorIs(t, err, ErrInsufficientPayment)
				assert.Nil(t, sale)
			},
		},
		{
			name: "secuencia de NCF agotada aborta la venta",
			request: &CreateSaleRequest{
				Items:         []SaleItemRequest{{ProductID: "p1", Quantity: 1}},
				PaymentMethod: domain.PaymentCash,
				AmountPaid:    200,
			},
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, ncfRepo *mocks.MockNCFSequenceRepository, journalRepo *mocks.MockJournalRepository) {
				productRepo.EXPECT().GetByID("p1").Return(catalogProduct("p1", 100, domain.ITBISStandard, 5), nil)
				ncfRepo.EXPECT().NextNCF(ctx, domain.NCFConsumo).Return("", repository.ErrSequenceExhausted)
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.ErrorIs(t, err, repository.ErrSequenceExhausted)
				assert.Nil(t, sale)
			},
		},
		{
			name: "venta sin líneas es rechazada",
			request: &CreateSaleRequest{
				PaymentMethod: domain.PaymentCash,
			},
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, ncfRepo *mocks.MockNCFSequenceRepository, journalRepo *mocks.MockJournalRepository) {
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.ErrorIs(t, err, ErrEmptySale)
				assert.Nil(t, sale)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saleRepo := mocks.NewMockSaleRepository(ctrl)
			productRepo := mocks.NewMockProductRepository(ctrl)
			ncfRepo := mocks.NewMockNCFSequenceRepository(ctrl)
			journalRepo := mocks.NewMockJournalRepository(ctrl)

			tt.setup(saleRepo, productRepo, ncfRepo, journalRepo)

			service := NewService(saleRepo, productRepo, ncfRepo, journalRepo)
			sale, err := service.CreateSale(ctx, tt.request)
			tt.validate(t, sale, err)
		})
	}
}

func TestService_VoidSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	existingSale := func() *domain.Sale {
		return &domain.Sale{
			ID:            "abc123",
			NCF:           "B0200000005",
			NCFType:       domain.NCFConsumo,
			Subtotal:      200,
			ITBISTotal:    36,
			Total:         236,
			PaymentMethod: domain.PaymentCash,
			Status:        domain.SaleStatusCompleted,
			SoldAt:        time.Now().Add(-time.Hour),
			Items: []*domain.SaleItem{
				{ProductID: "p1", Quantity: 2, UnitPrice: 100, ITBISRate: 0.18, ITBIS: 36, LineTotal: 236},
			},
		}
	}

	tests := []struct {
		name     string
		setup    func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, journalRepo *mocks.MockJournalRepository)
		validate func(t *testing.T, sale *domain.Sale, err error)
	}{
		{
			name: "anula, restaura inventario y asienta la reversión",
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, journalRepo *mocks.MockJournalRepository) {
				saleRepo.EXPECT().GetByID("abc123").Return(existingSale(), nil)
				saleRepo.EXPECT().MarkVoided("abc123", gomock.Any()).Return(nil)
				productRepo.EXPECT().AdjustStock("p1", 2.0).Return(nil)
				productRepo.EXPECT().SaveMovement(gomock.Any()).DoAndReturn(func(movement *domain.StockMovement) error {
					assert.Equal(t, domain.StockMovementVoid, movement.Kind)
					assert.Equal(t, 2.0, movement.Quantity)
					return nil
				})
				journalRepo.EXPECT().SaveEntry(gomock.Any()).DoAndReturn(func(entry *domain.JournalEntry) error {
					assert.NoError(t, entry.Validate())
					// La reversión debita ventas e ITBIS y acredita caja
					assert.Equal(t, domain.AccountCodeSales, entry.Lines[0].AccountCode)
					assert.Equal(t, 200.0, entry.Lines[0].Debit)
					assert.Equal(t, domain.AccountCodeCash, entry.Lines[2].AccountCode)
					assert.Equal(t, 236.0, entry.Lines[2].Credit)
					return nil
				})
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.NoError(t, err)
				assert.Equal(t, domain.SaleStatusVoided, sale.Status)
				assert.NotNil(t, sale.VoidedAt)
				// La venta anulada conserva su NCF
				assert.Equal(t, "B0200000005", sale.NCF)
			},
		},
		{
			name: "venta inexistente",
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, journalRepo *mocks.MockJournalRepository) {
				saleRepo.EXPECT().GetByID("abc123").Return(nil, nil)
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.ErrorIs(t, err, ErrSaleNotFound)
			},
		},
		{
			name: "venta ya anulada",
			setup: func(saleRepo *mocks.MockSaleRepository, productRepo *mocks.MockProductRepository, journalRepo *mocks.MockJournalRepository) {
				sale := existingSale()
				sale.Status = domain.SaleStatusVoided
				saleRepo.EXPECT().GetByID("abc123").Return(sale, nil)
			},
			validate: func(t *testing.T, sale *domain.Sale, err error) {
				assert.ErrorIs(t, err, ErrSaleAlreadyVoided)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saleRepo := mocks.NewMockSaleRepository(ctrl)
			productRepo := mocks.NewMockProductRepository(ctrl)
			ncfRepo := mocks.NewMockNCFSequenceRepository(ctrl)
			journalRepo := mocks.NewMockJournalRepository(ctrl)

			tt.setup(saleRepo, productRepo, journalRepo)

			service := NewService(saleRepo, productRepo, ncfRepo, journalRepo)
			sale, err := service.VoidSale(ctx, "abc123")
			tt.validate(t, sale, err)
		})
	}
}

func TestService_GetDailySummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	productRepo := mocks.NewMockProductRepository(ctrl)
	ncfRepo := mocks.NewMockNCFSequenceRepository(ctrl)
	journalRepo := mocks.NewMockJournalRepository(ctrl)

	voided := &domain.Sale{Total: 999, ITBISTotal: 150, PaymentMethod: domain.PaymentCash, Status: domain.SaleStatusVoided}

	saleRepo.EXPECT().
		GetByDateRange(day, day.AddDate(0, 0, 1)).
		Return([]*domain.Sale{
			{Total: 236, ITBISTotal: 36, PaymentMethod: domain.PaymentCash, Status: domain.SaleStatusCompleted},
			{Total: 118, ITBISTotal: 18, PaymentMethod: domain.PaymentCard, Status: domain.SaleStatusCompleted},
			{Total: 100, ITBISTotal: 0, PaymentMethod: domain.PaymentCash, Status: domain.SaleStatusCompleted},
			voided,
		}, nil)

	service := NewService(saleRepo, productRepo, ncfRepo, journalRepo)
	summary, err := service.GetDailySummary(day)

	assert.NoError(t, err)
	assert.Equal(t, "2025-06-10", summary.Date)
	assert.Equal(t, 3, summary.SalesQuantity)
	assert.Equal(t, 454.0, summary.TotalRevenue)
	assert.Equal(t, 54.0, summary.TotalITBIS)
	assert.InDelta(t, 151.33, summary.AverageTicket, 0.01)
	assert.Equal(t, 336.0, summary.ByPaymentMethod[domain.PaymentCash])
	assert.Equal(t, 118.0, summary.ByPaymentMethod[domain.PaymentCard])
}

func TestService_SeedNCFSequences(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	productRepo := mocks.NewMockProductRepository(ctrl)
	ncfRepo := mocks.NewMockNCFSequenceRepository(ctrl)
	journalRepo := mocks.NewMockJournalRepository(ctrl)

	// consumo ya existe y se respeta; crédito fiscal se crea con la serie dada
	ncfRepo.EXPECT().GetSequence(domain.NCFConsumo).
		Return(&domain.NCFSequence{Type: domain.NCFConsumo, Serie: "E", Next: 501}, nil)
	ncfRepo.EXPECT().GetSequence(domain.NCFCreditoFiscal).Return(nil, nil)
	ncfRepo.EXPECT().SaveSequence(gomock.Any()).DoAndReturn(func(seq *domain.NCFSequence) error {
		assert.Equal(t, domain.NCFCreditoFiscal, seq.Type)
		assert.Equal(t, "B", seq.Serie)
		assert.Equal(t, int64(1), seq.Next)
		assert.False(t, seq.Expired(time.Now()))
		return nil
	})

	service := NewService(saleRepo, productRepo, ncfRepo, journalRepo)
	assert.NoError(t, service.SeedNCFSequences("B"))
}

func TestService_GetSale(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	productRepo := mocks.NewMockProductRepository(ctrl)
	ncfRepo := mocks.NewMockNCFSequenceRepository(ctrl)
	journalRepo := mocks.NewMockJournalRepository(ctrl)

	saleRepo.EXPECT().GetByID("missing").Return(nil, nil)
	saleRepo.EXPECT().GetByID("boom").Return(nil, errors.New("conexión rechazada"))

	service := NewService(saleRepo, productRepo, ncfRepo, journalRepo)

	sale, err := service.GetSale("missing")
	assert.ErrorIs(t, err, ErrSaleNotFound)
	assert.Nil(t, sale)

	sale, err = service.GetSale("boom")
	assert.Error(t, err)
	assert.Nil(t, sale)
}
