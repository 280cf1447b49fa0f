package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/database/postgres"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

// Errores de emisión de comprobantes
var (
	ErrSequenceExhausted = fmt.Errorf("la secuencia de NCF está agotada")
	ErrSequenceExpired   = fmt.Errorf("la secuencia de NCF está vencida")
	ErrSequenceNotFound  = fmt.Errorf("no hay secuencia de NCF configurada para el tipo solicitado")
)

type NCFSequenceRepository interface {
	// NextNCF emite el próximo comprobante del tipo dado de forma transaccional
	NextNCF(ctx context.Context, ncfType domain.NCFType) (string, error)
	GetSequence(ncfType domain.NCFType) (*domain.NCFSequence, error)
	SaveSequence(seq *domain.NCFSequence) error
}

type ncfSequenceRepository struct {
	conn *postgres.Connection
}

func NewNCFSequenceRepository(conn *postgres.Connection) NCFSequenceRepository {
	return &ncfSequenceRepository{
		conn: conn,
	}
}

// NextNCF bloquea la fila de la secuencia (SELECT ... FOR UPDATE), valida
// agotamiento y vencimiento, y avanza el contador en la misma transacción
func (r *ncfSequenceRepository) NextNCF(ctx context.Context, ncfType domain.NCFType) (string, error) {
	var ncf string

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := squirrel.
			Select("serie", "next", "max", "expires_at").
			From("ncf_sequences").
			Where(squirrel.Eq{"type": string(ncfType)}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error al construir la query: %w", err)
		}

		seq := &domain.NCFSequence{Type: ncfType}
		err = tx.QueryRowContext(ctx, query, args...).Scan(&seq.Serie, &seq.Next, &seq.Max, &seq.ExpiresAt)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrSequenceNotFound
			}
			return fmt.Errorf("error al escanear la secuencia: %w", err)
		}

		if seq.Exhausted() {
			return ErrSequenceExhausted
		}
		if seq.Expired(time.Now()) {
			return ErrSequenceExpired
		}

		ncf = domain.FormatNCF(seq.Serie, seq.Type, seq.Next)

		updateQuery, updateArgs, err := squirrel.
			Update("ncf_sequences").
			Set("next", seq.Next+1).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"type": string(ncfType)}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error al construir la query: %w", err)
		}

		_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return fmt.Errorf("error al avanzar la secuencia: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return ncf, nil
}

func (r *ncfSequenceRepository) GetSequence(ncfType domain.NCFType) (*domain.NCFSequence, error) {
	query, args, err := squirrel.
		Select("serie", "next", "max", "expires_at", "updated_at").
		From("ncf_sequences").
		Where(squirrel.Eq{"type": string(ncfType)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	seq := &domain.NCFSequence{Type: ncfType}
	err = r.conn.QueryRow(query, args...).Scan(&seq.Serie, &seq.Next, &seq.Max, &seq.ExpiresAt, &seq.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al escanear la secuencia: %w", err)
	}

	return seq, nil
}

func (r *ncfSequenceRepository) SaveSequence(seq *domain.NCFSequence) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("ncf_sequences").
		Columns("type", "serie", "next", "max", "expires_at").
		Values(string(seq.Type), seq.Serie, seq.Next, seq.Max, seq.ExpiresAt).
		Suffix(`
			ON CONFLICT (type) DO UPDATE SET
				serie = EXCLUDED.serie,
				next = EXCLUDED.next,
				max = EXCLUDED.max,
				expires_at = EXCLUDED.expires_at,
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
