package service

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductInfo содержит сведения о товаре, полученные от Catalog Service
// Использует доменные типы вместо HTTP DTO - это делает service независимым от транспорта
type ProductInfo struct {
	ID     string
	Name   string
	Price  decimal.Decimal
	Stock  int32
	Active bool
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=CatalogClient --dir=. --output=./mocks --outpkg=mocks

// CatalogClient определяет интерфейс для работы с Catalog сервисом
type CatalogClient interface {
	// GetProduct получает информацию о товаре
	// Возвращает ErrProductUnavailable, если товар не найден
	GetProduct(ctx context.Context, productID string) (ProductInfo, error)

	// CheckStock проверяет, доступно ли quantity единиц товара
	CheckStock(ctx context.Context, productID string, quantity int32) (bool, error)

	// ReduceStock списывает quantity единиц товара
	// Возвращает ErrInsufficientStock, если остатка недостаточно
	ReduceStock(ctx context.Context, productID string, quantity int32) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=OrderEventPublisher --dir=. --output=./mocks --outpkg=mocks

// OrderEventPublisher определяет интерфейс для публикации событий заказа
type OrderEventPublisher interface {
	// PublishOrderCreated публикует событие создания заказа
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
}

// OrderCreatedEvent содержит снимок заказа для события ORDER_CREATED
type OrderCreatedEvent struct {
	OrderID     string
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int32
	TotalPrice  decimal.Decimal
	CustomerID  string
	CreatedAt   string
}
