package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/PraneethShetty626/rapidcart/services/order/internal/repository"
)

// ErrProductUnavailable возвращается, когда товар не найден или неактивен
var ErrProductUnavailable = errors.New("product unavailable")

// ErrInsufficientStock возвращается, когда остатка товара недостаточно
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrPublishFailed возвращается, когда событие заказа не удалось опубликовать
// Заказ при этом уже сохранён
var ErrPublishFailed = errors.New("order event publish failed")

// OrderService содержит бизнес-логику работы с заказами
// Зависит от интерфейсов, а не от конкретных HTTP клиентов и репозиториев
type OrderService struct {
	logger        *zap.Logger
	catalogClient CatalogClient
	publisher     OrderEventPublisher
	orderRepo     repository.OrderRepository
}

// NewOrderService создаёт новый экземпляр OrderService
// Принимает интерфейсы как зависимости - это позволяет легко подменять их в тестах
func NewOrderService(
	logger *zap.Logger,
	catalogClient CatalogClient,
	publisher OrderEventPublisher,
	orderRepo repository.OrderRepository,
) *OrderService {
	return &OrderService{
		logger:        logger,
		catalogClient: catalogClient,
		publisher:     publisher,
		orderRepo:     orderRepo,
	}
}

// CreateOrderInput содержит входные данные для создания заказа
type CreateOrderInput struct {
	CustomerID string
	ProductID  string
	Quantity   int32
}

// CreateOrder создаёт новый заказ
// Последовательность шагов фиксирована: сначала проверки в каталоге,
// потом сохранение заказа, списание остатка и публикация события.
// До сохранения заказа никаких побочных эффектов не происходит.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (repository.Order, error) {
	if input.CustomerID == "" {
		return repository.Order{}, fmt.Errorf("customer id is required")
	}
	if input.ProductID == "" {
		return repository.Order{}, fmt.Errorf("product id is required")
	}
	if input.Quantity < 1 {
		return repository.Order{}, fmt.Errorf("quantity must be >= 1")
	}

	// 1. Получаем товар из Catalog сервиса
	product, err := s.catalogClient.GetProduct(ctx, input.ProductID)
	if err != nil {
		s.logger.Warn("product lookup failed",
			zap.Error(err),
			zap.String("product_id", input.ProductID),
		)
		return repository.Order{}, err
	}
	if !product.Active {
		return repository.Order{}, fmt.Errorf("%w: product %s is inactive", ErrProductUnavailable, input.ProductID)
	}

	// 2. Проверяем остаток до любых локальных записей
	hasStock, err := s.catalogClient.CheckStock(ctx, input.ProductID, input.Quantity)
	if err != nil {
		return repository.Order{}, fmt.Errorf("stock check failed: %w", err)
	}
	if !hasStock {
		return repository.Order{}, fmt.Errorf("%w: product %s, requested %d", ErrInsufficientStock, input.ProductID, input.Quantity)
	}

	// 3. Точная сумма через decimal, без float
	total := product.Price.Mul(decimal.NewFromInt32(input.Quantity))

	// 4. Сохраняем заказ
	order := repository.Order{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    input.Quantity,
		TotalPrice:  total,
		CustomerID:  input.CustomerID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("failed to save order", zap.Error(err))
		return repository.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	// 5. Списываем остаток в каталоге
	// Заказ уже сохранён: ошибка списания отдаётся наверх, но заказ не откатывается.
	// Компенсации нет, известное ограничение текущей схемы без outbox.
	if err := s.catalogClient.ReduceStock(ctx, input.ProductID, input.Quantity); err != nil {
		s.logger.Error("stock reduction failed after order was saved",
			zap.Error(err),
			zap.String("order_id", order.ID),
			zap.String("product_id", input.ProductID),
		)
		return repository.Order{}, fmt.Errorf("stock reduction failed for order %s: %w", order.ID, err)
	}

	// 6. Публикуем событие ORDER_CREATED
	event := OrderCreatedEvent{
		OrderID:     order.ID,
		ProductID:   order.ProductID,
		ProductName: order.ProductName,
		UnitPrice:   order.UnitPrice,
		Quantity:    order.Quantity,
		TotalPrice:  order.TotalPrice,
		CustomerID:  order.CustomerID,
		CreatedAt:   order.CreatedAt.Format(time.RFC3339),
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("failed to publish order created event",
			zap.Error(err),
			zap.String("order_id", order.ID),
		)
		return repository.Order{}, fmt.Errorf("%w: order %s", ErrPublishFailed, order.ID)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("product_id", order.ProductID),
		zap.String("customer_id", order.CustomerID),
		zap.String("total_price", order.TotalPrice.String()),
	)
	return order, nil
}

// GetOrder получает заказ по ID
func (s *OrderService) GetOrder(ctx context.Context, id string) (repository.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// ListOrders возвращает страницу заказов
func (s *OrderService) ListOrders(ctx context.Context, params repository.ListParams) ([]repository.Order, error) {
	return s.orderRepo.List(ctx, params)
}

// ListCustomerOrders возвращает заказы покупателя, новые первыми
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]repository.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}
