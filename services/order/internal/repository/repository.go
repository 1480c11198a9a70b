package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Order представляет доменную модель заказа
// Заказ неизменяем после создания: есть операции чтения, но нет update/delete
type Order struct {
	ID          string
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int32
	TotalPrice  decimal.Decimal
	CustomerID  string
	CreatedAt   time.Time
}

// ListParams задаёт пагинацию и сортировку списка заказов
type ListParams struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=OrderRepository --dir=. --output=./mocks --outpkg=mocks

// OrderRepository определяет интерфейс для работы с хранилищем заказов
// Service слой зависит от этого интерфейса, а не от конкретной реализации
type OrderRepository interface {
	// Create сохраняет заказ в хранилище
	Create(ctx context.Context, order Order) error

	// GetByID получает заказ по ID
	// Возвращает ErrNotFound, если заказ не найден
	GetByID(ctx context.Context, id string) (Order, error)

	// List возвращает страницу заказов
	List(ctx context.Context, params ListParams) ([]Order, error)

	// ListByCustomer возвращает заказы покупателя, новые первыми
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
}

// ErrNotFound возвращается, когда заказ не найден в хранилище
var ErrNotFound = errors.New("order not found")
