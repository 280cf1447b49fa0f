package inventorying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository/mocks"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

func stringPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestService_CreateProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		request  *CreateProductRequest
		setup    func(productRepo *mocks.MockProductRepository)
		validate func(t *testing.T, product *domain.Product, err error)
	}{
		{
			name: "alta exitosa con código de barras",
			request: &CreateProductRequest{
				Barcode:   stringPtr("7460123456789"),
				Name:      "Arroz selecto 5 lb",
				Category:  "abarrotes",
				Unit:      "funda",
				Cost:      150,
				Price:     190,
				ITBISRate: domain.ITBISExempt,
				Stock:     40,
				MinStock:  10,
			},
			setup: func(productRepo *mocks.MockProductRepository) {
				productRepo.EXPECT().GetByBarcode("7460123456789").Return(nil, nil)
				productRepo.EXPECT().Create(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, product *domain.Product, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, product.ID)
				assert.True(t, product.Active)
				assert.Equal(t, "Arroz selecto 5 lb", product.Name)
			},
		},
		{
			name: "código de barras duplicado es rechazado",
			request: &CreateProductRequest{
				Barcode:   stringPtr("7460123456789"),
				Name:      "Arroz selecto 5 lb",
				Price:     190,
				ITBISRate: domain.ITBISExempt,
			},
			setup: func(productRepo *mocks.MockProductRepository) {
				productRepo.EXPECT().GetByBarcode("7460123456789").Return(&domain.Product{ID: "dup"}, nil)
			},
			validate: func(t *testing.T, product *domain.Product, err error) {
				assert.ErrorIs(t, err, ErrBarcodeInUse)
				assert.Nil(t, product)
			},
		},
		{
			name: "tasa de ITBIS fuera del catálogo es rechazada",
			request: &CreateProductRequest{
				Name:      "Ron añejo",
				Price:     500,
				ITBISRate: 0.25,
			},
			setup: func(productRepo *mocks.MockProductRepository) {},
			validate: func(t *testing.T, product *domain.Product, err error) {
				assert.ErrorIs(t, err, ErrInvalidITBISRate)
				assert.Nil(t, product)
			},
		},
		{
			name: "producto sin nombre es rechazado",
			request: &CreateProductRequest{
				Price: 100,
			},
			setup: func(productRepo *mocks.MockProductRepository) {},
			validate: func(t *testing.T, product *domain.Product, err error) {
				assert.ErrorIs(t, err, ErrInvalidProduct)
				assert.Nil(t, product)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productRepo := mocks.NewMockProductRepository(ctrl)
			tt.setup(productRepo)

			service := NewService(productRepo)
			product, err := service.CreateProduct(tt.request)
			tt.validate(t, product, err)
		})
	}
}

func TestService_AdjustStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		request  *AdjustStockRequest
		setup    func(productRepo *mocks.MockProductRepository)
		validate func(t *testing.T, product *domain.Product, err error)
	}{
		{
			name: "ajuste negativo por merma",
			request: &AdjustStockRequest{
				ProductID: "p1",
				Delta:     -3,
				Reason:    "merma por vencimiento",
			},
			setup: func(productRepo *mocks.MockProductRepository) {
				productRepo.EXPECT().GetByID("p1").Return(&domain.Product{ID: "p1", Stock: 10}, nil)
				productRepo.EXPECT().AdjustStock("p1", -3.0).Return(nil)
				productRepo.EXPECT().SaveMovement(gomock.Any()).DoAndReturn(func(movement *domain.StockMovement) error {
					assert.Equal(t, domain.StockMovementAdjustment, movement.Kind)
					assert.Equal(t, -3.0, movement.Quantity)
					assert.Equal(t, "merma por vencimiento", *movement.Reason)
					return nil
				})
			},
			validate: func(t *testing.T, product *domain.Product, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 7.0, product.Stock)
			},
		},
		{
			name: "ajuste sin motivo es rechazado",
			request: &AdjustStockRequest{
				ProductID: "p1",
				Delta:     5,
			},
			setup: func(productRepo *mocks.MockProductRepository) {},
			validate: func(t *testing.T, product *domain.Product, err error) {
				assert.ErrorIs(t, err, ErrReasonRequired)
			},
		},
		{
			name: "producto inexistente",
			request: &AdjustStockRequest{
				ProductID: "nope",
				Delta:     5,
				Reason:    "conteo físico",
			},
			setup: func(productRepo *mocks.MockProductRepository) {
				productRepo.EXPECT().GetByID("nope").Return(nil, nil)
			},
			validate: func(t *testing.T, product *domain.Product, err error) {
				assert.ErrorIs(t, err, ErrProductNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productRepo := mocks.NewMockProductRepository(ctrl)
			tt.setup(productRepo)

			service := NewService(productRepo)
			product, err := service.AdjustStock(tt.request)
			tt.validate(t, product, err)
		})
	}
}

func TestService_UpdateProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	productRepo := mocks.NewMockProductRepository(ctrl)
	productRepo.EXPECT().GetByID("p1").Return(&domain.Product{
		ID:        "p1",
		Name:      "Habichuelas rojas",
		Price:     85,
		ITBISRate: domain.ITBISExempt,
	}, nil)
	productRepo.EXPECT().Update(gomock.Any()).Return(nil)

	service := NewService(productRepo)
	product, err := service.UpdateProduct(&domain.UpdateProductRequest{
		ID:    "p1",
		Price: floatPtr(95),
	})

	assert.NoError(t, err)
	assert.Equal(t, 95.0, product.Price)
	assert.Equal(t, "Habichuelas rojas", product.Name)
}
