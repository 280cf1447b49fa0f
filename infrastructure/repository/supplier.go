package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/database/postgres"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

const (
	suppliersTable = "suppliers su"
)

type SupplierRepository interface {
	Create(supplier *domain.Supplier) error
	GetByID(id string) (*domain.Supplier, error)
	GetByRNC(rnc string) (*domain.Supplier, error)
	List() ([]*domain.Supplier, error)
	Update(supplier *domain.Supplier) error
}

type supplierRepository struct {
	conn *postgres.Connection
}

func NewSupplierRepository(conn *postgres.Connection) SupplierRepository {
	return &supplierRepository{
		conn: conn,
	}
}

func (r *supplierRepository) Create(supplier *domain.Supplier) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("suppliers").
		Columns("id", "rnc", "name", "phone", "payment_terms", "active").
		Values(
			supplier.ID,
			supplier.RNC,
			supplier.Name,
			supplier.Phone,
			supplier.PaymentTerms,
			supplier.Active,
		).
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

func (r *supplierRepository) GetByID(id string) (*domain.Supplier, error) {
	return r.getBy(squirrel.Eq{"su.id": id})
}

func (r *supplierRepository) GetByRNC(rnc string) (*domain.Supplier, error) {
	return r.getBy(squirrel.Eq{"su.rnc": rnc, "su.deleted": false})
}

func (r *supplierRepository) getBy(cond squirrel.Eq) (*domain.Supplier, error) {
	query, args, err := squirrel.
		Select(supplierColumns()).
		From(suppliersTable).
		Where(cond).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	supplier, err := scanSupplier(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al escanear el suplidor: %w", err)
	}

	return supplier, nil
}

func (r *supplierRepository) List() ([]*domain.Supplier, error) {
	query, args, err := squirrel.
		Select(supplierColumns()).
		From(suppliersTable).
		Where(squirrel.Eq{"su.deleted": false}).
		OrderBy("su.name ASC").
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

	suppliers := make([]*domain.Supplier, 0)
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear suplidores: %w", err)
		}
		suppliers = append(suppliers, supplier)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error durante la iteración de filas: %w", err)
	}

	return suppliers, nil
}

func (r *supplierRepository) Update(supplier *domain.Supplier) error {
	query, args, err := squirrel.
		Update("suppliers").
		Set("rnc", supplier.RNC).
		Set("name", supplier.Name).
		Set("phone", supplier.Phone).
		Set("payment_terms", supplier.PaymentTerms).
		Set("active", supplier.Active).
		Set("deleted", supplier.Deleted).
		Set("deleted_at", supplier.DeletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": supplier.ID}).
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

func supplierColumns() string {
	return `su.id, su.rnc, su.name, su.phone, su.payment_terms, su.active,
		su.deleted, su.deleted_at, su.created_at, su.updated_at`
}

func scanSupplier(sc rowScanner) (*domain.Supplier, error) {
	supplier := &domain.Supplier{}

	err := sc.Scan(
		&supplier.ID,
		&supplier.RNC,
		&supplier.Name,
		&supplier.Phone,
		&supplier.PaymentTerms,
		&supplier.Active,
		&supplier.Deleted,
		&supplier.DeletedAt,
		&supplier.CreatedAt,
		&supplier.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return supplier, nil
}
