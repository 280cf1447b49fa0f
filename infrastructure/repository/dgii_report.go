package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/database/postgres"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

const (
	dgiiReportsTable = "dgii_reports dr"
)

type DGIIReportRepository interface {
	SaveOrUpdate(report *domain.DGIIReport) error
	GetByPeriodAndKind(period string, kind domain.DGIIReportKind) (*domain.DGIIReport, error)
	ListPeriods(kind domain.DGIIReportKind) ([]string, error)
}

type dgiiReportRepository struct {
	conn *postgres.Connection
}

func NewDGIIReportRepository(conn *postgres.Connection) DGIIReportRepository {
	return &dgiiReportRepository{
		conn: conn,
	}
}

func (r *dgiiReportRepository) SaveOrUpdate(report *domain.DGIIReport) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("dgii_reports").
		Columns("kind", "period", "taxpayer_rnc", "row_count", "total_amount", "total_itbis", "content", "generated_at").
		Values(
			report.Kind,
			report.Period,
			report.TaxpayerRNC,
			report.RowCount,
			report.TotalAmount,
			report.TotalITBIS,
			report.Content,
			report.GeneratedAt,
		).
		Suffix(`
			ON CONFLICT (kind, period) DO UPDATE SET
				taxpayer_rnc = EXCLUDED.taxpayer_rnc,
				row_count = EXCLUDED.row_count,
				total_amount = EXCLUDED.total_amount,
				total_itbis = EXCLUDED.total_itbis,
				content = EXCLUDED.content,
				generated_at = EXCLUDED.generated_at,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error al construir la query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("error al ejecutar la query: %w", err)
	}

	return nil
}

func (r *dgiiReportRepository) GetByPeriodAndKind(period string, kind domain.DGIIReportKind) (*domain.DGIIReport, error) {
	query, args, err := squirrel.
		Select(`dr.id, dr.kind, dr.period, dr.taxpayer_rnc, dr.row_count,
			dr.total_amount, dr.total_itbis, dr.content, dr.generated_at`).
		From(dgiiReportsTable).
		Where(squirrel.Eq{"dr.period": period, "dr.kind": kind}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	report := &domain.DGIIReport{}
	err = r.conn.QueryRow(query, args...).Scan(
		&report.ID,
		&report.Kind,
		&report.Period,
		&report.TaxpayerRNC,
		&report.RowCount,
		&report.TotalAmount,
		&report.TotalITBIS,
		&report.Content,
		&report.GeneratedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al escanear el reporte: %w", err)
	}

	return report, nil
}

func (r *dgiiReportRepository) ListPeriods(kind domain.DGIIReportKind) ([]string, error) {
	query, args, err := squirrel.
		Select("dr.period").
		From(dgiiReportsTable).
		Where(squirrel.Eq{"dr.kind": kind}).
		OrderBy("dr.period DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al ejecutar la query: %w", err)
	}
	defer rows.Close()

	periods := make([]string, 0)
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("error al escanear el período: %w", err)
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al iterar los resultados: %w", err)
	}

	return periods, nil
}
