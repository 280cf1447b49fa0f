package taxreporting

import (
	"errors"
	"fmt"
	"time"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/utils"
)

var (
	ErrInvalidPeriod  = errors.New("período inválido, se espera AAAAMM")
	ErrReportNotFound = errors.New("no hay reporte generado para el período")
	ErrUnknownKind    = errors.New("formato de reporte desconocido")
)

// Reporter define la interface del servicio de reportes fiscales
type Reporter interface {
	Generate(kind domain.DGIIReportKind, period string) (*domain.DGIIReport, error)
	Get(kind domain.DGIIReportKind, period string) (*domain.DGIIReport, error)
	ListPeriods(kind domain.DGIIReportKind) ([]string, error)
	ExportExcel(kind domain.DGIIReportKind, period string) ([]byte, error)
}

type service struct {
	saleRepository     repository.SaleRepository
	purchaseRepository repository.PurchaseRepository
	reportRepository   repository.DGIIReportRepository
	taxpayerRNC        string
}

// NewService crea una nueva instancia del servicio de reportes fiscales
func NewService(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	reportRepo repository.DGIIReportRepository,
	taxpayerRNC string,
) Reporter {
	return &service{
		saleRepository:     saleRepo,
		purchaseRepository: purchaseRepo,
		reportRepository:   reportRepo,
		taxpayerRNC:        taxpayerRNC,
	}
}

// Generate materializa el reporte del período a partir de los datos
// transaccionales y lo persiste. Regenerar un período sobrescribe el reporte
// anterior.
func (s *service) Generate(kind domain.DGIIReportKind, period string) (*domain.DGIIReport, error) {
	startDate, endDate, err := periodRange(period)
	if err != nil {
		return nil, err
	}

	var report *domain.DGIIReport
	switch kind {
	case domain.ReportKind607:
		report, err = s.build607(period, startDate, endDate)
	case domain.ReportKind606:
		report, err = s.build606(period, startDate, endDate)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}

	if err := s.reportRepository.SaveOrUpdate(report); err != nil {
		return nil, fmt.Errorf("error al guardar el reporte %s del período %s: %w", kind, period, err)
	}

	return report, nil
}

// Get retorna el reporte persistido del período, generándolo si aún no existe
func (s *service) Get(kind domain.DGIIReportKind, period string) (*domain.DGIIReport, error) {
	if _, _, err := periodRange(period); err != nil {
		return nil, err
	}

	report, err := s.reportRepository.GetByPeriodAndKind(period, kind)
	if err != nil {
		return nil, fmt.Errorf("error al buscar el reporte: %w", err)
	}
	if report != nil {
		return report, nil
	}

	return s.Generate(kind, period)
}

// ListPeriods lista los períodos con reportes generados de un formato
func (s *service) ListPeriods(kind domain.DGIIReportKind) ([]string, error) {
	return s.reportRepository.ListPeriods(kind)
}

// ExportExcel genera el libro de Excel del reporte del período
func (s *service) ExportExcel(kind domain.DGIIReportKind, period string) ([]byte, error) {
	report, err := s.Get(kind, period)
	if err != nil {
		return nil, err
	}

	startDate, endDate, err := periodRange(period)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.ReportKind607:
		sales, err := s.saleRepository.GetByDateRange(startDate, endDate)
		if err != nil {
			return nil, fmt.Errorf("error al leer las ventas del período: %w", err)
		}
		return Excel607(report, Build607Rows(sales))
	case domain.ReportKind606:
		purchases, err := s.purchaseRepository.ListReceivedInPeriod(startDate, endDate)
		if err != nil {
			return nil, fmt.Errorf("error al leer las compras del período: %w", err)
		}
		return Excel606(report, Build606Rows(purchases))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

func (s *service) build607(period string, startDate, endDate time.Time) (*domain.DGIIReport, error) {
	sales, err := s.saleRepository.GetByDateRange(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("error al leer las ventas del período: %w", err)
	}

	rows := Build607Rows(sales)

	var totalAmount, totalITBIS float64
	for _, row := range rows {
		totalAmount += row.InvoicedAmount
		totalITBIS += row.ITBIS
	}

	return &domain.DGIIReport{
		Kind:        domain.ReportKind607,
		Period:      period,
		TaxpayerRNC: s.taxpayerRNC,
		RowCount:    len(rows),
		TotalAmount: utils.RoundWithTwoDecimalPlace(totalAmount),
		TotalITBIS:  utils.RoundWithTwoDecimalPlace(totalITBIS),
		Content:     Format607Text(s.taxpayerRNC, period, rows),
		GeneratedAt: time.Now(),
	}, nil
}

func (s *service) build606(period string, startDate, endDate time.Time) (*domain.DGIIReport, error) {
	purchases, err := s.purchaseRepository.ListReceivedInPeriod(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("error al leer las compras del período: %w", err)
	}

	rows := Build606Rows(purchases)

	var totalAmount, totalITBIS float64
	for _, row := range rows {
		totalAmount += row.InvoicedAmount
		totalITBIS += row.ITBIS
	}

	return &domain.DGIIReport{
		Kind:        domain.ReportKind606,
		Period:      period,
		TaxpayerRNC: s.taxpayerRNC,
		RowCount:    len(rows),
		TotalAmount: utils.RoundWithTwoDecimalPlace(totalAmount),
		TotalITBIS:  utils.RoundWithTwoDecimalPlace(totalITBIS),
		Content:     Format606Text(s.taxpayerRNC, period, rows),
		GeneratedAt: time.Now(),
	}, nil
}
