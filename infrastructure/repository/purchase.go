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
	purchasesTable = "purchase_orders po"
)

type PurchaseRepository interface {
	Save(order *domain.PurchaseOrder) error
	GetByID(id string) (*domain.PurchaseOrder, error)
	Update(order *domain.PurchaseOrder) error
	GetByDateRange(startDate, endDate time.Time) ([]*domain.PurchaseOrder, error)
	ListReceivedInPeriod(startDate, endDate time.Time) ([]*domain.PurchaseOrder, error)
}

type purchaseRepository struct {
	conn *postgres.Connection
}

func NewPurchaseRepository(conn *postgres.Connection) PurchaseRepository {
	return &purchaseRepository{
		conn: conn,
	}
}

func (r *purchaseRepository) Save(order *domain.PurchaseOrder) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("error al serializar las líneas de compra a JSON: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("purchase_orders").
		Columns(
			"id", "supplier_id", "supplier_rnc", "supplier_ncf", "items",
			"subtotal", "itbis_total", "total", "status", "ordered_at", "received_at",
		).
		Values(
			order.ID,
			order.SupplierID,
			order.SupplierRNC,
			order.SupplierNCF,
			itemsJSON,
			order.Subtotal,
			order.ITBISTotal,
			order.Total,
			string(order.Status),
			order.OrderedAt,
			order.ReceivedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error al construir la query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("error en la base de datos: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("error al ejecutar la query: %w", err)
	}

	return nil
}

func (r *purchaseRepository) GetByID(id string) (*domain.PurchaseOrder, error) {
	query, args, err := squirrel.
		Select(purchaseColumns()).
		From(purchasesTable).
		Where(squirrel.Eq{"po.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	order, err := scanPurchase(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al escanear la orden de compra: %w", err)
	}

	return order, nil
}

func (r *purchaseRepository) Update(order *domain.PurchaseOrder) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("error al serializar las líneas de compra a JSON: %w", err)
	}

	query, args, err := squirrel.
		Update("purchase_orders").
		Set("supplier_ncf", order.SupplierNCF).
		Set("items", itemsJSON).
		Set("subtotal", order.Subtotal).
		Set("itbis_total", order.ITBISTotal).
		Set("total", order.Total).
		Set("status", string(order.Status)).
		Set("ordered_at", order.OrderedAt).
		Set("received_at", order.ReceivedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": order.ID}).
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

func (r *purchaseRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.PurchaseOrder, error) {
	return r.list(squirrel.
		Select(purchaseColumns()).
		From(purchasesTable).
		Where(squirrel.GtOrEq{"po.created_at": startDate}).
		Where(squirrel.Lt{"po.created_at": endDate}).
		OrderBy("po.created_at ASC"))
}

// ListReceivedInPeriod retorna las órdenes recibidas en el período, que son
// las que alimentan el formato 606
func (r *purchaseRepository) ListReceivedInPeriod(startDate, endDate time.Time) ([]*domain.PurchaseOrder, error) {
	return r.list(squirrel.
		Select(purchaseColumns()).
		From(purchasesTable).
		Where(squirrel.Eq{"po.status": []string{string(domain.PurchaseStatusReceived), string(domain.PurchaseStatusClosed)}}).
		Where(squirrel.GtOrEq{"po.received_at": startDate}).
		Where(squirrel.Lt{"po.received_at": endDate}).
		OrderBy("po.received_at ASC"))
}

func (r *purchaseRepository) list(builder squirrel.SelectBuilder) ([]*domain.PurchaseOrder, error) {
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

	orders := make([]*domain.PurchaseOrder, 0)
	for rows.Next() {
		order, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear órdenes de compra: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error durante la iteración de filas: %w", err)
	}

	return orders, nil
}

func purchaseColumns() string {
	return `po.id, po.supplier_id, po.supplier_rnc, po.supplier_ncf, po.items,
		po.subtotal, po.itbis_total, po.total, po.status, po.ordered_at,
		po.received_at, po.created_at, po.updated_at`
}

func scanPurchase(sc rowScanner) (*domain.PurchaseOrder, error) {
	order := &domain.PurchaseOrder{}
	var itemsJSON []byte
	var status string

	err := sc.Scan(
		&order.ID,
		&order.SupplierID,
		&order.SupplierRNC,
		&order.SupplierNCF,
		&itemsJSON,
		&order.Subtotal,
		&order.ITBISTotal,
		&order.Total,
		&status,
		&order.OrderedAt,
		&order.ReceivedAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.PurchaseStatus(status)

	if itemsJSON != nil {
		items := make([]*domain.PurchaseItem, 0)
		if err := json.Unmarshal(itemsJSON, &items); err != nil {
			return nil, fmt.Errorf("error al deserializar JSON de las líneas: %w", err)
		}
		order.Items = items
	}

	return order, nil
}
