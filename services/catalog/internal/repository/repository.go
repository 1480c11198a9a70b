package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Product представляет доменную модель товара
// Это бизнес-сущность, не привязанная к HTTP или БД
type Product struct {
	ID        string
	Name      string
	SKU       string
	Price     decimal.Decimal
	Stock     int32
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListParams содержит параметры пагинации и сортировки для списка товаров
type ListParams struct {
	// Page номер страницы, начиная с 0
	Page int
	// Size размер страницы
	Size int
	// SortBy поле сортировки (id/name/sku/price/stock)
	SortBy string
	// SortDir направление сортировки (asc/desc)
	SortDir string
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ProductRepository --dir=. --output=./mocks --outpkg=mocks

// ProductRepository определяет интерфейс для работы с хранилищем товаров
// Service слой зависит от этого интерфейса, а не от конкретной реализации
type ProductRepository interface {
	// Create сохраняет новый товар
	// Возвращает ErrConflict при нарушении уникальности SKU
	Create(ctx context.Context, product Product) error

	// GetByID получает товар по ID
	// Возвращает ErrNotFound, если товар не найден
	GetByID(ctx context.Context, id string) (Product, error)

	// Update обновляет существующий товар
	// Возвращает ErrNotFound, если товар не найден
	Update(ctx context.Context, product Product) error

	// SoftDelete помечает товар неактивным (active=false)
	// Запись физически не удаляется
	// Возвращает ErrNotFound, если товар не найден
	SoftDelete(ctx context.Context, id string) error

	// List возвращает страницу активных товаров с сортировкой
	List(ctx context.Context, params ListParams) ([]Product, error)

	// ReduceStock атомарно уменьшает остаток на quantity, если stock >= quantity
	// Проверка и запись атомарны относительно конкурентных уменьшений того же товара
	// Возвращает false, если остатка недостаточно
	// Возвращает ErrNotFound, если товар не найден
	ReduceStock(ctx context.Context, id string, quantity int32) (bool, error)
}

// ErrNotFound возвращается, когда товар не найден в хранилище
var ErrNotFound = errors.New("product not found")

// ErrConflict возвращается при нарушении уникальности (например, дубликат SKU)
var ErrConflict = errors.New("product conflict")
