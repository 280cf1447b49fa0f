package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/database/postgres"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

const (
	journalTable  = "journal_entries je"
	accountsTable = "accounts a"
)

type JournalRepository interface {
	SaveEntry(entry *domain.JournalEntry) error
	GetByDateRange(startDate, endDate time.Time) ([]*domain.JournalEntry, error)
	ListAccounts() ([]*domain.Account, error)
	SaveAccount(account *domain.Account) error
	GetAccountByCode(code string) (*domain.Account, error)
}

type journalRepository struct {
	conn *postgres.Connection
}

func NewJournalRepository(conn *postgres.Connection) JournalRepository {
	return &journalRepository{
		conn: conn,
	}
}

func (r *journalRepository) SaveEntry(entry *domain.JournalEntry) error {
	linesJSON, err := json.Marshal(entry.Lines)
	if err != nil {
		return fmt.Errorf("error al serializar las líneas del asiento a JSON: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("journal_entries").
		Columns("date", "description", "reference", "lines").
		Values(
			entry.Date.Format(time.DateOnly),
			entry.Description,
			entry.Reference,
			linesJSON,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error al construir la query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("error al ejecutar la query: %w", err)
	}

	return nil
}

func (r *journalRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.JournalEntry, error) {
	query, args, err := squirrel.
		Select("je.id, je.date, je.description, je.reference, je.lines, je.created_at").
		From(journalTable).
		Where(squirrel.GtOrEq{"je.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"je.date": endDate.Format(time.DateOnly)}).
		OrderBy("je.date ASC, je.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al ejecutar la query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.JournalEntry, 0)
	for rows.Next() {
		entry := &domain.JournalEntry{}
		var linesJSON []byte

		err := rows.Scan(
			&entry.ID,
			&entry.Date,
			&entry.Description,
			&entry.Reference,
			&linesJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error al escanear asientos: %w", err)
		}

		if linesJSON != nil {
			lines := make([]*domain.JournalLine, 0)
			if err := json.Unmarshal(linesJSON, &lines); err != nil {
				return nil, fmt.Errorf("error al deserializar JSON de las líneas: %w", err)
			}
			entry.Lines = lines
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error durante la iteración de filas: %w", err)
	}

	return entries, nil
}

func (r *journalRepository) ListAccounts() ([]*domain.Account, error) {
	query, args, err := squirrel.
		Select("a.code, a.name, a.kind, a.active, a.created_at").
		From(accountsTable).
		Where(squirrel.Eq{"a.active": true}).
		OrderBy("a.code ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al ejecutar la query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account := &domain.Account{}
		var kind string

		err := rows.Scan(&account.Code, &account.Name, &kind, &account.Active, &account.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error al escanear cuentas: %w", err)
		}

		account.Kind = domain.AccountKind(kind)
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error durante la iteración de filas: %w", err)
	}

	return accounts, nil
}

func (r *journalRepository) SaveAccount(account *domain.Account) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("accounts").
		Columns("code", "name", "kind", "active").
		Values(account.Code, account.Name, string(account.Kind), account.Active).
		Suffix(`
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name,
				kind = EXCLUDED.kind,
				active = EXCLUDED.active
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

func (r *journalRepository) GetAccountByCode(code string) (*domain.Account, error) {
	query, args, err := squirrel.
		Select("a.code, a.name, a.kind, a.active, a.created_at").
		From(accountsTable).
		Where(squirrel.Eq{"a.code": code}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	account := &domain.Account{}
	var kind string

	err = r.conn.QueryRow(query, args...).Scan(&account.Code, &account.Name, &kind, &account.Active, &account.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al escanear la cuenta: %w", err)
	}

	account.Kind = domain.AccountKind(kind)
	return account, nil
}
