package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/database/postgres"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/lib/pq"
)

const (
	insightSnapshotsTable = "insight_snapshots isn"
)

type InsightSnapshotRepository interface {
	SaveOrUpdate(snapshot *domain.InsightSnapshot) error
	GetByDate(date time.Time) (*domain.InsightSnapshot, error)
	GetLatest() (*domain.InsightSnapshot, error)
	DeleteOlderThan(days int) (int64, error)
}

type insightSnapshotRepository struct {
	conn *postgres.Connection
}

func NewInsightSnapshotRepository(conn *postgres.Connection) InsightSnapshotRepository {
	return &insightSnapshotRepository{
		conn: conn,
	}
}

func (r *insightSnapshotRepository) SaveOrUpdate(snapshot *domain.InsightSnapshot) error {
	hourlyJSON, err := json.Marshal(snapshot.HourlyStats)
	if err != nil {
		return fmt.Errorf("error al serializar estadísticas horarias a JSON: %w", err)
	}

	segmentsJSON, err := json.Marshal(snapshot.Segments)
	if err != nil {
		return fmt.Errorf("error al serializar segmentos a JSON: %w", err)
	}

	seasonalJSON, err := json.Marshal(snapshot.SeasonalByMonth)
	if err != nil {
		return fmt.Errorf("error al serializar multiplicadores estacionales a JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("insight_snapshots").
		Columns("date", "hourly_stats", "segments", "seasonal_by_month").
		Values(
			snapshot.Date.Format(time.DateOnly),
			hourlyJSON,
			segmentsJSON,
			seasonalJSON,
		).
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				hourly_stats = EXCLUDED.hourly_stats,
				segments = EXCLUDED.segments,
				seasonal_by_month = EXCLUDED.seasonal_by_month,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error al construir la query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("error en la base de datos: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("error al ejecutar la query: %w", err)
	}

	return nil
}

func (r *insightSnapshotRepository) GetByDate(date time.Time) (*domain.InsightSnapshot, error) {
	return r.getBy(squirrel.
		Select(insightSnapshotColumns()).
		From(insightSnapshotsTable).
		Where(squirrel.Eq{"isn.date": date.Format(time.DateOnly)}))
}

func (r *insightSnapshotRepository) GetLatest() (*domain.InsightSnapshot, error) {
	return r.getBy(squirrel.
		Select(insightSnapshotColumns()).
		From(insightSnapshotsTable).
		OrderBy("isn.date DESC").
		Limit(1))
}

func (r *insightSnapshotRepository) getBy(builder squirrel.SelectBuilder) (*domain.InsightSnapshot, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	snapshot := &domain.InsightSnapshot{}
	var hourlyJSON, segmentsJSON, seasonalJSON []byte

	err = r.conn.QueryRow(query, args...).Scan(
		&snapshot.ID,
		&snapshot.Date,
		&hourlyJSON,
		&segmentsJSON,
		&seasonalJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al escanear la instantánea: %w", err)
	}

	if hourlyJSON != nil {
		stats := make([]*domain.HourOfWeekStats, 0)
		if err := json.Unmarshal(hourlyJSON, &stats); err != nil {
			return nil, fmt.Errorf("error al deserializar JSON de estadísticas horarias: %w", err)
		}
		snapshot.HourlyStats = stats
	}

	if segmentsJSON != nil {
		segments := make([]*domain.Segment, 0)
		if err := json.Unmarshal(segmentsJSON, &segments); err != nil {
			return nil, fmt.Errorf("error al deserializar JSON de segmentos: %w", err)
		}
		snapshot.Segments = segments
	}

	if seasonalJSON != nil {
		seasonal := make(map[string]float64)
		if err := json.Unmarshal(seasonalJSON, &seasonal); err != nil {
			return nil, fmt.Errorf("error al deserializar JSON de multiplicadores estacionales: %w", err)
		}
		snapshot.SeasonalByMonth = seasonal
	}

	return snapshot, nil
}

func (r *insightSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("insight_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error al construir la query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("error al ejecutar la query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error al obtener el número de filas afectadas: %w", err)
	}

	return rowsAffected, nil
}

func insightSnapshotColumns() string {
	return `isn.id, isn.date, isn.hourly_stats, isn.segments, isn.seasonal_by_month,
		isn.created_at, isn.updated_at`
}
