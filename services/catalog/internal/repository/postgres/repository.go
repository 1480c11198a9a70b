package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/PraneethShetty626/rapidcart/services/catalog/internal/repository"
)

// Repository реализует ProductRepository используя PostgreSQL
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository создаёт новый PostgreSQL репозиторий
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		pool: pool,
	}
}

// sortColumns задаёт whitelist полей сортировки
// SortBy подставляется в SQL напрямую, поэтому принимаем только известные колонки
var sortColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"sku":   "sku",
	"price": "price",
	"stock": "stock",
}

// Create сохраняет новый товар в PostgreSQL
// Нарушение уникального индекса по sku транслируется в ErrConflict
func (r *Repository) Create(ctx context.Context, product repository.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, sku, price, stock, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		product.ID, product.Name, product.SKU, product.Price.String(),
		product.Stock, product.Active, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: sku %q already exists", repository.ErrConflict, product.SKU)
		}
		return err
	}
	return nil
}

// GetByID получает товар по ID из PostgreSQL
func (r *Repository) GetByID(ctx context.Context, id string) (repository.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, sku, price::text, stock, active, created_at, updated_at
		 FROM products
		 WHERE id = $1`,
		id)
	return scanProduct(row)
}

// Update обновляет существующий товар
func (r *Repository) Update(ctx context.Context, product repository.Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET name = $2, sku = $3, price = $4, stock = $5, active = $6, updated_at = $7
		 WHERE id = $1`,
		product.ID, product.Name, product.SKU, product.Price.String(),
		product.Stock, product.Active, product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: sku %q already exists", repository.ErrConflict, product.SKU)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SoftDelete помечает товар неактивным, запись остаётся в таблице
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET active = false, updated_at = $2 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List возвращает страницу активных товаров
// Сортировка только по колонкам из whitelist
func (r *Repository) List(ctx context.Context, params repository.ListParams) ([]repository.Product, error) {
	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if strings.EqualFold(params.SortDir, "desc") {
		direction = "DESC"
	}

	query := fmt.Sprintf(
		`SELECT id, name, sku, price::text, stock, active, created_at, updated_at
		 FROM products
		 WHERE active = true
		 ORDER BY %s %s
		 LIMIT $1 OFFSET $2`,
		column, direction)

	rows, err := r.pool.Query(ctx, query, params.Size, params.Page*params.Size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]repository.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// ReduceStock атомарно уменьшает остаток товара
// Условие stock >= quantity входит в сам UPDATE, поэтому конкурентные вызовы
// сериализуются на уровне строки и остаток никогда не уходит в минус
func (r *Repository) ReduceStock(ctx context.Context, id string, quantity int32) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET stock = stock - $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2`,
		id, quantity)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// UPDATE ничего не затронул: либо товара нет, либо недостаточно остатка
	var exists bool
	err = r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, repository.ErrNotFound
	}
	return false, nil
}

// scanProduct собирает доменную модель из строки результата
func scanProduct(row pgx.Row) (repository.Product, error) {
	var p repository.Product
	var priceText string
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &priceText, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Product{}, repository.ErrNotFound
		}
		return repository.Product{}, err
	}

	p.Price, err = decimal.NewFromString(priceText)
	if err != nil {
		return repository.Product{}, fmt.Errorf("parse price %q: %w", priceText, err)
	}
	return p, nil
}
