package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/PraneethShetty626/rapidcart/services/order/internal/repository"
)

// Repository реализует OrderRepository используя PostgreSQL
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
	"id":         "id",
	"createdAt":  "created_at",
	"totalPrice": "total_price",
	"customerId": "customer_id",
}

// Create сохраняет заказ в PostgreSQL
func (r *Repository) Create(ctx context.Context, order repository.Order) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO orders (id, product_id, product_name, unit_price, quantity, total_price, customer_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID, order.ProductID, order.ProductName, order.UnitPrice.String(),
		order.Quantity, order.TotalPrice.String(), order.CustomerID, order.CreatedAt)
	return err
}

// GetByID получает заказ по ID из PostgreSQL
func (r *Repository) GetByID(ctx context.Context, id string) (repository.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, product_id, product_name, unit_price::text, quantity, total_price::text, customer_id, created_at
		 FROM orders
		 WHERE id = $1`,
		id)
	return scanOrder(row)
}

// List возвращает страницу заказов
// Сортировка только по колонкам из whitelist
func (r *Repository) List(ctx context.Context, params repository.ListParams) ([]repository.Order, error) {
	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if strings.EqualFold(params.SortDir, "desc") {
		direction = "DESC"
	}

	query := fmt.Sprintf(
		`SELECT id, product_id, product_name, unit_price::text, quantity, total_price::text, customer_id, created_at
		 FROM orders
		 ORDER BY %s %s
		 LIMIT $1 OFFSET $2`,
		column, direction)

	rows, err := r.pool.Query(ctx, query, params.Size, params.Page*params.Size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

// ListByCustomer возвращает заказы покупателя, новые первыми
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]repository.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, product_name, unit_price::text, quantity, total_price::text, customer_id, created_at
		 FROM orders
		 WHERE customer_id = $1
		 ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]repository.Order, error) {
	orders := make([]repository.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// scanOrder собирает доменную модель из строки результата
func scanOrder(row pgx.Row) (repository.Order, error) {
	var order repository.Order
	var unitPriceText, totalPriceText string
	err := row.Scan(&order.ID, &order.ProductID, &order.ProductName, &unitPriceText,
		&order.Quantity, &totalPriceText, &order.CustomerID, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Order{}, repository.ErrNotFound
		}
		return repository.Order{}, err
	}

	order.UnitPrice, err = decimal.NewFromString(unitPriceText)
	if err != nil {
		return repository.Order{}, fmt.Errorf("parse unit_price %q: %w", unitPriceText, err)
	}
	order.TotalPrice, err = decimal.NewFromString(totalPriceText)
	if err != nil {
		return repository.Order{}, fmt.Errorf("parse total_price %q: %w", totalPriceText, err)
	}
	return order, nil
}
