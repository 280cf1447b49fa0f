package purchasing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository/mocks"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

func orderedPurchase() *domain.PurchaseOrder {
	orderedAt := time.Now().Add(-24 * time.Hour)
	return &domain.PurchaseOrder{
		ID:          "po1",
		SupplierID:  "sup1",
		SupplierRNC: "131246789",
		Status:      domain.PurchaseStatusOrdered,
		OrderedAt:   &orderedAt,
		Subtotal:    1000,
		ITBISTotal:  180,
		Total:       1180,
		Items: []*domain.PurchaseItem{
			{ProductID: "p1", Name: "Aceite 64 oz", Quantity: 10, UnitCost: 100, ITBIS: 180, LineTotal: 1180},
		},
	}
}

func TestService_CreatePurchase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	supplierRepo := mocks.NewMockSupplierRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	productRepo := mocks.NewMockProductRepository(ctrl)
	journalRepo := mocks.NewMockJournalRepository(ctrl)

	supplierRepo.EXPECT().GetByID("sup1").Return(&domain.Supplier{
		ID:   "sup1",
		RNC:  "131246789",
		Name: "Distribuidora del Este",
	}, nil)
	productRepo.EXPECT().GetByID("p1").Return(&domain.Product{
		ID:        "p1",
		Name:      "Aceite 64 oz",
		ITBISRate: domain.ITBISStandard,
	}, nil)
	purchaseRepo.EXPECT().Save(gomock.Any()).Return(nil)

	service := NewService(supplierRepo, purchaseRepo, productRepo, journalRepo)
	order, err := service.CreatePurchase(&CreatePurchaseRequest{
		SupplierID: "sup1",
		Items:      []PurchaseItemRequest{{ProductID: "p1", Quantity: 10, UnitCost: 100}},
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PurchaseStatusDraft, order.Status)
	assert.Equal(t, "131246789", order.SupplierRNC)
	assert.Equal(t, 1000.0, order.Subtotal)
	assert.Equal(t, 180.0, order.ITBISTotal)
	assert.Equal(t, 1180.0, order.Total)
}

func TestService_CreatePurchase_SinSuplidor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	supplierRepo := mocks.NewMockSupplierRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	productRepo := mocks.NewMockProductRepository(ctrl)
	journalRepo := mocks.NewMockJournalRepository(ctrl)

	supplierRepo.EXPECT().GetByID("nope").Return(nil, nil)

	service := NewService(supplierRepo, purchaseRepo, productRepo, journalRepo)
	order, err := service.CreatePurchase(&CreatePurchaseRequest{
		SupplierID: "nope",
		Items:      []PurchaseItemRequest{{ProductID: "p1", Quantity: 1, UnitCost: 10}},
	})

	assert.ErrorIs(t, err, ErrSupplierNotFound)
	assert.Nil(t, order)
}

func TestService_ReceivePurchase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		request  *ReceivePurchaseRequest
		setup    func(purchaseRepo *mocks.MockPurchaseRepository, productRepo *mocks.MockProductRepository, journalRepo *mocks.MockJournalRepository)
		validate func(t *testing.T, order *domain.PurchaseOrder, err error)
	}{
		{
			name: "recepción parcial incrementa inventario y asienta",
			request: &ReceivePurchaseRequest{
				PurchaseID:  "po1",
				SupplierNCF: "B0100000123",
				Lines:       []ReceiptLine{{ProductID: "p1", Quantity: 4}},
			},
			setup: func(purchaseRepo *mocks.MockPurchaseRepository, productRepo *mocks.MockProductRepository, journalRepo *mocks.MockJournalRepository) {
				purchaseRepo.EXPECT().GetByID("po1").Return(orderedPurchase(), nil)
				productRepo.EXPECT().AdjustStock("p1", 4.0).Return(nil)
				// GetByID corre después de AdjustStock: el stock ya incluye las 4 unidades
				productRepo.EXPECT().GetByID("p1").Return(&domain.Product{ID: "p1", Cost: 95, Stock: 16}, nil)
				productRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(product *domain.Product) error {
					// promedio ponderado: (12*95 + 4*100) / 16
					assert.Equal(t, 96.25, product.Cost)
					return nil
				})
				productRepo.EXPECT().SaveMovement(gomock.Any()).DoAndReturn(func(movement *domain.StockMovement) error {
					assert.Equal(t, domain.StockMovementPurchase, movement.Kind)
					assert.Equal(t, 4.0, movement.Quantity)
					return nil
				})
				purchaseRepo.EXPECT().Update(gomock.Any()).Return(nil)
				journalRepo.EXPECT().SaveEntry(gomock.Any()).DoAndReturn(func(entry *domain.JournalEntry) error {
					assert.NoError(t, entry.Validate())
					assert.Equal(t, domain.AccountCodeInventory, entry.Lines[0].AccountCode)
					assert.Equal(t, 400.0, entry.Lines[0].Debit)
					assert.Equal(t, domain.AccountCodeITBISAdvanced, entry.Lines[1].AccountCode)
					assert.Equal(t, 72.0, entry.Lines[1].Debit) // 400 * 0.18
					assert.Equal(t, domain.AccountCodePayables, entry.Lines[2].AccountCode)
					assert.Equal(t, 472.0, entry.Lines[2].Credit)
					return nil
				})
			},
			validate: func(t *testing.T, order *domain.PurchaseOrder, err error) {
				assert.NoError(t, err)
				assert.Equal(t, domain.PurchaseStatusReceived, order.Status)
				assert.Equal(t, "B0100000123", *order.SupplierNCF)
				assert.Equal(t, 4.0, order.Items[0].ReceivedQuantity)
				assert.False(t, order.FullyReceived())
			},
		},
		{
			name: "recepción sin NCF del suplidor es rechazada",
			request: &ReceivePurchaseRequest{
				PurchaseID: "po1",
				Lines:      []ReceiptLine{{ProductID: "p1", Quantity: 4}},
			},
			setup: func(purchaseRepo *mocks.MockPurchaseRepository, productRepo *mocks.MockProductRepository, journalRepo *mocks.MockJournalRepository) {
			},
			validate: func(t *testing.T, order *domain.PurchaseOrder, err error) {
				assert.ErrorIs(t, err, ErrSupplierNCFRequired)
			},
		},
		{
			name: "recibir más de lo ordenado es rechazado",
			request: &ReceivePurchaseRequest{
				PurchaseID:  "po1",
				SupplierNCF: "B0100000123",
				Lines:       []ReceiptLine{{ProductID: "p1", Quantity: 15}},
			},
			setup: func(purchaseRepo *mocks.MockPurchaseRepository, productRepo *mocks.MockProductRepository, journalRepo *mocks.MockJournalRepository) {
				purchaseRepo.EXPECT().GetByID("po1").Return(orderedPurchase(), nil)
			},
			validate: func(t *testing.T, order *domain.PurchaseOrder, err error) {
				assert.ErrorIs(t, err, ErrInvalidReceipt)
			},
		},
		{
			name: "recibir una orden en borrador es rechazado",
			request: &ReceivePurchaseRequest{
				PurchaseID:  "po1",
				SupplierNCF: "B0100000123",
				Lines:       []ReceiptLine{{ProductID: "p1", Quantity: 1}},
			},
			setup: func(purchaseRepo *mocks.MockPurchaseRepository, productRepo *mocks.MockProductRepository, journalRepo *mocks.MockJournalRepository) {
				order := orderedPurchase()
				order.Status = domain.PurchaseStatusDraft
				purchaseRepo.EXPECT().GetByID("po1").Return(order, nil)
			},
			validate: func(t *testing.T, order *domain.PurchaseOrder, err error) {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			supplierRepo := mocks.NewMockSupplierRepository(ctrl)
			purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
			productRepo := mocks.NewMockProductRepository(ctrl)
			journalRepo := mocks.NewMockJournalRepository(ctrl)

			tt.setup(purchaseRepo, productRepo, journalRepo)

			service := NewService(supplierRepo, purchaseRepo, productRepo, journalRepo)
			order, err := service.ReceivePurchase(tt.request)
			tt.validate(t, order, err)
		})
	}
}

func TestWeightedCost(t *testing.T) {
	// (12*95 + 4*100) / 16
	assert.Equal(t, 96.25, weightedCost(16, 95, 4, 100))
	// sin existencia previa el costo es el del lote
	assert.Equal(t, 100.0, weightedCost(4, 95, 4, 100))
	// existencia previa negativa (ajustes manuales) no distorsiona el promedio
	assert.Equal(t, 100.0, weightedCost(2, 95, 4, 100))
}

func TestService_ClosePurchase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	supplierRepo := mocks.NewMockSupplierRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	productRepo := mocks.NewMockProductRepository(ctrl)
	journalRepo := mocks.NewMockJournalRepository(ctrl)

	received := orderedPurchase()
	received.Status = domain.PurchaseStatusReceived
	received.Items[0].ReceivedQuantity = received.Items[0].Quantity

	purchaseRepo.EXPECT().GetByID("po1").Return(received, nil)
	purchaseRepo.EXPECT().Update(gomock.Any()).Return(nil)

	service := NewService(supplierRepo, purchaseRepo, productRepo, journalRepo)
	order, err := service.ClosePurchase("po1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PurchaseStatusClosed, order.Status)
}

func TestService_ClosePurchase_ParcialNoSePuedeCerrar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	supplierRepo := mocks.NewMockSupplierRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	productRepo := mocks.NewMockProductRepository(ctrl)
	journalRepo := mocks.NewMockJournalRepository(ctrl)

	partial := orderedPurchase()
	partial.Status = domain.PurchaseStatusReceived
	partial.Items[0].ReceivedQuantity = 4

	purchaseRepo.EXPECT().GetByID("po1").Return(partial, nil)

	service := NewService(supplierRepo, purchaseRepo, productRepo, journalRepo)
	order, err := service.ClosePurchase("po1")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, order)
}

func TestService_MarkOrdered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	supplierRepo := mocks.NewMockSupplierRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	productRepo := mocks.NewMockProductRepository(ctrl)
	journalRepo := mocks.NewMockJournalRepository(ctrl)

	draft := orderedPurchase()
	draft.Status = domain.PurchaseStatusDraft
	draft.OrderedAt = nil

	purchaseRepo.EXPECT().GetByID("po1").Return(draft, nil)
	purchaseRepo.EXPECT().Update(gomock.Any()).Return(nil)

	service := NewService(supplierRepo, purchaseRepo, productRepo, journalRepo)
	order, err := service.MarkOrdered("po1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PurchaseStatusOrdered, order.Status)
	assert.NotNil(t, order.OrderedAt)
}
