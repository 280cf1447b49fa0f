package taxreporting

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository/mocks"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

const testTaxpayerRNC = "131999888"

func TestService_Generate607(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	reportRepo := mocks.NewMockDGIIReportRepository(ctrl)

	rnc := "131246789"
	saleRepo.EXPECT().GetByDateRange(
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	).Return([]*domain.Sale{
		{
			NCF:         "B0200000001",
			CustomerRNC: &rnc,
			Subtotal:    1000,
			ITBISTotal:  180,
			Status:      domain.SaleStatusCompleted,
			SoldAt:      time.Date(2025, 7, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			NCF:        "B0200000002",
			Subtotal:   250,
			ITBISTotal: 45,
			Status:     domain.SaleStatusCompleted,
			SoldAt:     time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC),
		},
	}, nil)
	reportRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

	service := NewService(saleRepo, purchaseRepo, reportRepo, testTaxpayerRNC)
	report, err := service.Generate(domain.ReportKind607, "202507")

	assert.NoError(t, err)
	assert.Equal(t, domain.ReportKind607, report.Kind)
	assert.Equal(t, "202507", report.Period)
	assert.Equal(t, testTaxpayerRNC, report.TaxpayerRNC)
	assert.Equal(t, 2, report.RowCount)
	assert.Equal(t, 1250.0, report.TotalAmount)
	assert.Equal(t, 225.0, report.TotalITBIS)
	assert.True(t, strings.HasPrefix(report.Content, "607|131999888|202507|2\n"))
}

func TestService_Generate606(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	reportRepo := mocks.NewMockDGIIReportRepository(ctrl)

	ncf := "B0100000555"
	receivedAt := time.Date(2025, 7, 8, 14, 0, 0, 0, time.UTC)
	purchaseRepo.EXPECT().ListReceivedInPeriod(gomock.Any(), gomock.Any()).Return([]*domain.PurchaseOrder{
		{
			SupplierRNC: "101000111",
			SupplierNCF: &ncf,
			Subtotal:    5000,
			ITBISTotal:  900,
			Status:      domain.PurchaseStatusReceived,
			ReceivedAt:  &receivedAt,
		},
	}, nil)
	reportRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

	service := NewService(saleRepo, purchaseRepo, reportRepo, testTaxpayerRNC)
	report, err := service.Generate(domain.ReportKind606, "202507")

	assert.NoError(t, err)
	assert.Equal(t, 1, report.RowCount)
	assert.Equal(t, 5000.0, report.TotalAmount)
	assert.Equal(t, 900.0, report.TotalITBIS)
}

func TestService_Get_UsaElReportePersistido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	reportRepo := mocks.NewMockDGIIReportRepository(ctrl)

	stored := &domain.DGIIReport{
		Kind:     domain.ReportKind607,
		Period:   "202506",
		RowCount: 40,
	}
	reportRepo.EXPECT().GetByPeriodAndKind("202506", domain.ReportKind607).Return(stored, nil)

	service := NewService(saleRepo, purchaseRepo, reportRepo, testTaxpayerRNC)
	report, err := service.Get(domain.ReportKind607, "202506")

	assert.NoError(t, err)
	assert.Equal(t, stored, report)
}

func TestService_Get_GeneraSiNoExiste(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	reportRepo := mocks.NewMockDGIIReportRepository(ctrl)

	reportRepo.EXPECT().GetByPeriodAndKind("202506", domain.ReportKind607).Return(nil, nil)
	saleRepo.EXPECT().GetByDateRange(gomock.Any(), gomock.Any()).Return([]*domain.Sale{}, nil)
	reportRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

	service := NewService(saleRepo, purchaseRepo, reportRepo, testTaxpayerRNC)
	report, err := service.Get(domain.ReportKind607, "202506")

	assert.NoError(t, err)
	assert.Equal(t, 0, report.RowCount)
}

func TestService_Generate_PeriodoInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	reportRepo := mocks.NewMockDGIIReportRepository(ctrl)

	service := NewService(saleRepo, purchaseRepo, reportRepo, testTaxpayerRNC)
	report, err := service.Generate(domain.ReportKind607, "julio-2025")

	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.Nil(t, report)
}

func TestService_ExportExcel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleRepo := mocks.NewMockSaleRepository(ctrl)
	purchaseRepo := mocks.NewMockPurchaseRepository(ctrl)
	reportRepo := mocks.NewMockDGIIReportRepository(ctrl)

	reportRepo.EXPECT().GetByPeriodAndKind("202507", domain.ReportKind607).Return(&domain.DGIIReport{
		Kind:        domain.ReportKind607,
		Period:      "202507",
		TaxpayerRNC: testTaxpayerRNC,
		RowCount:    1,
		TotalAmount: 1000,
		TotalITBIS:  180,
	}, nil)
	rnc := "131246789"
	saleRepo.EXPECT().GetByDateRange(gomock.Any(), gomock.Any()).Return([]*domain.Sale{
		{
			NCF:         "B0200000001",
			CustomerRNC: &rnc,
			Subtotal:    1000,
			ITBISTotal:  180,
			Status:      domain.SaleStatusCompleted,
			SoldAt:      time.Date(2025, 7, 5, 9, 30, 0, 0, time.UTC),
		},
	}, nil)

	service := NewService(saleRepo, purchaseRepo, reportRepo, testTaxpayerRNC)
	content, err := service.ExportExcel(domain.ReportKind607, "202507")

	assert.NoError(t, err)
	assert.NotEmpty(t, content)
	// un xlsx es un zip: firma PK
	assert.Equal(t, byte('P'), content[0])
	assert.Equal(t, byte('K'), content[1])
}
