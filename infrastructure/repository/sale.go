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
	salesTable = "sales s"
)

type SaleRepository interface {
	Save(sale *domain.Sale) error
	GetByID(id string) (*domain.Sale, error)
	GetByDateRange(startDate, endDate time.Time) ([]*domain.Sale, error)
	ListByFilters(filters *domain.SaleFilters) ([]*domain.Sale, error)
	MarkVoided(id string, voidedAt time.Time) error
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) Save(sale *domain.Sale) error {
	itemsJSON, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("error al serializar las líneas de venta a JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("sales").
		Columns(
			"id", "ncf", "ncf_type", "customer_rnc", "customer_name", "items",
			"subtotal", "itbis_total", "total", "payment_method", "amount_paid",
			"change", "status", "cashier_id", "sold_at",
		).
		Values(
			sale.ID,
			sale.NCF,
			string(sale.NCFType),
			sale.CustomerRNC,
			sale.CustomerName,
			itemsJSON,
			sale.Subtotal,
			sale.ITBISTotal,
			sale.Total,
			string(sale.PaymentMethod),
			sale.AmountPaid,
			sale.Change,
			string(sale.Status),
			sale.CashierID,
			sale.SoldAt,
		).
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

func (r *saleRepository) GetByID(id string) (*domain.Sale, error) {
	query, args, err := squirrel.
		Select(saleColumns()).
		From(salesTable).
		Where(squirrel.Eq{"s.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	sale, err := scanSaleRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al escanear la venta: %w", err)
	}

	return sale, nil
}

func (r *saleRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.Sale, error) {
	return r.list(squirrel.
		Select(saleColumns()).
		From(salesTable).
		Where(squirrel.GtOrEq{"s.sold_at": startDate}).
		Where(squirrel.Lt{"s.sold_at": endDate}).
		OrderBy("s.sold_at ASC"))
}

func (r *saleRepository) ListByFilters(filters *domain.SaleFilters) ([]*domain.Sale, error) {
	builder := squirrel.
		Select(saleColumns()).
		From(salesTable).
		OrderBy("s.sold_at ASC")

	if filters != nil {
		if filters.StartDate != nil {
			builder = builder.Where(squirrel.GtOrEq{"s.sold_at": *filters.StartDate})
		}
		if filters.EndDate != nil {
			builder = builder.Where(squirrel.Lt{"s.sold_at": *filters.EndDate})
		}
		if filters.Status != nil {
			builder = builder.Where(squirrel.Eq{"s.status": string(*filters.Status)})
		}
	}

	return r.list(builder)
}

func (r *saleRepository) list(builder squirrel.SelectBuilder) ([]*domain.Sale, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
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

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSaleRows(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear ventas: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error durante la iteración de filas: %w", err)
	}

	return sales, nil
}

func (r *saleRepository) MarkVoided(id string, voidedAt time.Time) error {
	query, args, err := squirrel.
		Update("sales").
		Set("status", string(domain.SaleStatusVoided)).
		Set("voided_at", voidedAt).
		Set("updated_at", voidedAt).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error al construir la query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("error al ejecutar la query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al obtener filas afectadas: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("venta no encontrada: %s", id)
	}

	return nil
}

func saleColumns() string {
	return `s.id, s.ncf, s.ncf_type, s.customer_rnc, s.customer_name, s.items,
		s.subtotal, s.itbis_total, s.total, s.payment_method, s.amount_paid,
		s.change, s.status, s.cashier_id, s.sold_at, s.voided_at, s.created_at, s.updated_at`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSale(sc rowScanner) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var itemsJSON []byte
	var ncfType, paymentMethod, status string

	err := sc.Scan(
		&sale.ID,
		&sale.NCF,
		&ncfType,
		&sale.CustomerRNC,
		&sale.CustomerName,
		&itemsJSON,
		&sale.Subtotal,
		&sale.ITBISTotal,
		&sale.Total,
		&paymentMethod,
		&sale.AmountPaid,
		&sale.Change,
		&status,
		&sale.CashierID,
		&sale.SoldAt,
		&sale.VoidedAt,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sale.NCFType = domain.NCFType(ncfType)
	sale.PaymentMethod = domain.PaymentMethod(paymentMethod)
	sale.Status = domain.SaleStatus(status)

	if itemsJSON != nil {
		items := make([]*domain.SaleItem, 0)
		if err := json.Unmarshal(itemsJSON, &items); err != nil {
			return nil, fmt.Errorf("error al deserializar JSON de las líneas: %w", err)
		}
		sale.Items = items
	}

	return sale, nil
}

func scanSaleRow(row *sql.Row) (*domain.Sale, error) {
	return scanSale(row)
}

func scanSaleRows(rows *sql.Rows) (*domain.Sale, error) {
	return scanSale(rows)
}
