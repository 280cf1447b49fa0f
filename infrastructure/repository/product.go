package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/database/postgres"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
	"github.com/lib/pq"
)

const (
	productsTable       = "products p"
	stockMovementsTable = "stock_movements sm"
)

type ProductRepository interface {
	Create(product *domain.Product) error
	GetByID(id string) (*domain.Product, error)
	GetByBarcode(barcode string) (*domain.Product, error)
	List(includeInactive bool) ([]*domain.Product, error)
	ListLowStock() ([]*domain.Product, error)
	Update(product *domain.Product) error
	AdjustStock(productID string, delta float64) error
	SaveMovement(movement *domain.StockMovement) error
	ListMovements(productID string, startDate, endDate time.Time) ([]*domain.StockMovement, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) Create(product *domain.Product) error {
	query := squirrel.StatementBuilder.
		Insert("products").
		Columns(
			"id", "barcode", "name", "category", "unit", "cost", "price",
			"itbis_rate", "stock", "min_stock", "active",
		).
		Values(
			product.ID,
			product.Barcode,
			product.Name,
			product.Category,
			product.Unit,
			product.Cost,
			product.Price,
			product.ITBISRate,
			product.Stock,
			product.MinStock,
			product.Active,
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

func (r *productRepository) GetByID(id string) (*domain.Product, error) {
	return r.getBy(squirrel.Eq{"p.id": id})
}

func (r *productRepository) GetByBarcode(barcode string) (*domain.Product, error) {
	return r.getBy(squirrel.Eq{"p.barcode": barcode, "p.deleted": false})
}

func (r *productRepository) getBy(cond squirrel.Eq) (*domain.Product, error) {
	query, args, err := squirrel.
		Select(productColumns()).
		From(productsTable).
		Where(cond).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error al construir la query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error al escanear el producto: %w", err)
	}

	return product, nil
}

func (r *productRepository) List(includeInactive bool) ([]*domain.Product, error) {
	builder := squirrel.
		Select(productColumns()).
		From(productsTable).
		Where(squirrel.Eq{"p.deleted": false}).
		OrderBy("p.name ASC")

	if !includeInactive {
		builder = builder.Where(squirrel.Eq{"p.active": true})
	}

	return r.listProducts(builder)
}

func (r *productRepository) ListLowStock() ([]*domain.Product, error) {
	builder := squirrel.
		Select(productColumns()).
		From(productsTable).
		Where(squirrel.Eq{"p.deleted": false, "p.active": true}).
		Where("p.stock <= p.min_stock").
		OrderBy("p.stock ASC")

	return r.listProducts(builder)
}

func (r *productRepository) listProducts(builder squirrel.SelectBuilder) ([]*domain.Product, error) {
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

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear productos: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error durante la iteración de filas: %w", err)
	}

	return products, nil
}

func (r *productRepository) Update(product *domain.Product) error {
	query, args, err := squirrel.
		Update("products").
		Set("barcode", product.Barcode).
		Set("name", product.Name).
		Set("category", product.Category).
		Set("unit", product.Unit).
		Set("cost", product.Cost).
		Set("price", product.Price).
		Set("itbis_rate", product.ITBISRate).
		Set("min_stock", product.MinStock).
		Set("active", product.Active).
		Set("deleted", product.Deleted).
		Set("deleted_at", product.DeletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": product.ID}).
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

// AdjustStock incrementa o decrementa la existencia de un producto de forma
// atómica; delta negativo descuenta
func (r *productRepository) AdjustStock(productID string, delta float64) error {
	query, args, err := squirrel.
		Update("products").
		Set("stock", squirrel.Expr("stock + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productID}).
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
		return fmt.Errorf("producto no encontrado: %s", productID)
	}

	return nil
}

func (r *productRepository) SaveMovement(movement *domain.StockMovement) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("stock_movements").
		Columns("product_id", "kind", "quantity", "reference", "reason").
		Values(
			movement.ProductID,
			string(movement.Kind),
			movement.Quantity,
			movement.Reference,
			movement.Reason,
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

func (r *productRepository) ListMovements(productID string, startDate, endDate time.Time) ([]*domain.StockMovement, error) {
	query, args, err := squirrel.
		Select("sm.id, sm.product_id, sm.kind, sm.quantity, sm.reference, sm.reason, sm.created_at").
		From(stockMovementsTable).
		Where(squirrel.Eq{"sm.product_id": productID}).
		Where(squirrel.GtOrEq{"sm.created_at": startDate}).
		Where(squirrel.Lt{"sm.created_at": endDate}).
		OrderBy("sm.created_at ASC").
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

	movements := make([]*domain.StockMovement, 0)
	for rows.Next() {
		movement := &domain.StockMovement{}
		var kind string

		err := rows.Scan(
			&movement.ID,
			&movement.ProductID,
			&kind,
			&movement.Quantity,
			&movement.Reference,
			&movement.Reason,
			&movement.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error al escanear movimientos: %w", err)
		}

		movement.Kind = domain.StockMovementKind(kind)
		movements = append(movements, movement)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error durante la iteración de filas: %w", err)
	}

	return movements, nil
}

func productColumns() string {
	return `p.id, p.barcode, p.name, p.category, p.unit, p.cost, p.price,
		p.itbis_rate, p.stock, p.min_stock, p.active, p.deleted, p.deleted_at,
		p.created_at, p.updated_at`
}

func scanProduct(sc rowScanner) (*domain.Product, error) {
	product := &domain.Product{}

	err := sc.Scan(
		&product.ID,
		&product.Barcode,
		&product.Name,
		&product.Category,
		&product.Unit,
		&product.Cost,
		&product.Price,
		&product.ITBISRate,
		&product.Stock,
		&product.MinStock,
		&product.Active,
		&product.Deleted,
		&product.DeletedAt,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return product, nil
}
