package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/PraneethShetty626/rapidcart/services/catalog/internal/repository"
)

// CatalogService содержит бизнес-логику работы с товарами и остатками
// Зависит от интерфейса ProductRepository, а не от конкретной реализации
type CatalogService struct {
	logger *zap.Logger
	repo   repository.ProductRepository
}

// NewCatalogService создаёт новый экземпляр CatalogService
// Принимает repository как зависимость - это позволяет легко подменять его в тестах
func NewCatalogService(logger *zap.Logger, repo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		logger: logger,
		repo:   repo,
	}
}

// CreateProductInput содержит входные данные для создания товара
type CreateProductInput struct {
	Name   string
	SKU    string
	Price  decimal.Decimal
	Stock  int32
	Active *bool // nil = true
}

// CreateProduct создаёт новый товар
// ID и timestamps назначаются сервером
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (repository.Product, error) {
	now := time.Now().UTC()
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	product := repository.Product{
		ID:        uuid.New().String(),
		Name:      input.Name,
		SKU:       input.SKU,
		Price:     input.Price,
		Stock:     input.Stock,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("failed to create product",
			zap.Error(err),
			zap.String("sku", input.SKU),
		)
		return repository.Product{}, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("sku", product.SKU),
	)
	return product, nil
}

// GetProduct получает товар по ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (repository.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProduct обновляет товар целиком
// ID, CreatedAt и флаг Active существующей записи сохраняются
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input CreateProductInput) (repository.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Product{}, err
	}

	existing.Name = input.Name
	existing.SKU = input.SKU
	existing.Price = input.Price
	existing.Stock = input.Stock
	if input.Active != nil {
		existing.Active = *input.Active
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error("failed to update product",
			zap.Error(err),
			zap.String("product_id", id),
		)
		return repository.Product{}, err
	}
	return existing, nil
}

// DeleteProduct выполняет soft delete: active=false, запись не удаляется
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deactivated", zap.String("product_id", id))
	return nil
}

// ListProducts возвращает страницу активных товаров
func (s *CatalogService) ListProducts(ctx context.Context, params repository.ListParams) ([]repository.Product, error) {
	return s.repo.List(ctx, params)
}

// HasStock отвечает на вопрос "можно ли забрать quantity единиц товара"
// Отсутствующий товар это валидное "нет", а не ошибка: возвращаем false без ErrNotFound
func (s *CatalogService) HasStock(ctx context.Context, id string, quantity int32) (bool, int32, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return product.Stock >= quantity, product.Stock, nil
}

// ReduceStock атомарно уменьшает остаток товара
// Возвращает false, если остатка недостаточно; ErrNotFound, если товара нет
func (s *CatalogService) ReduceStock(ctx context.Context, id string, quantity int32) (bool, error) {
	success, err := s.repo.ReduceStock(ctx, id, quantity)
	if err != nil {
		return false, err
	}

	if success {
		s.logger.Info("stock reduced",
			zap.String("product_id", id),
			zap.Int32("quantity", quantity),
		)
	} else {
		s.logger.Warn("stock reduction rejected: insufficient stock",
			zap.String("product_id", id),
			zap.Int32("quantity", quantity),
		)
	}
	return success, nil
}
