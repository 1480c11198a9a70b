package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EventTypeOrderCreated - тип события создания заказа
const EventTypeOrderCreated = "ORDER_CREATED"

// processedTTL задаёт время хранения отметки об обработанном событии
// Достаточно пережить типичный цикл redelivery при перебалансировке consumer group
const processedTTL = 24 * time.Hour

// OrderEvent представляет событие заказа из Kafka
type OrderEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp string    `json:"timestamp"`
	Data      OrderData `json:"data"`
}

// OrderData содержит снимок заказа внутри события
type OrderData struct {
	OrderID     string `json:"orderId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int32  `json:"quantity"`
	TotalPrice  string `json:"totalPrice"`
	CustomerID  string `json:"customerId"`
	CreatedAt   string `json:"createdAt"`
}

// NotificationService содержит бизнес-логику обработки уведомлений
type NotificationService struct {
	logger    *zap.Logger
	notifier  Notifier
	processed ProcessedEventsStore
}

// NewNotificationService создаёт новый экземпляр NotificationService
func NewNotificationService(
	logger *zap.Logger,
	notifier Notifier,
	processed ProcessedEventsStore,
) *NotificationService {
	return &NotificationService{
		logger:    logger,
		notifier:  notifier,
		processed: processed,
	}
}

// HandleOrderEvent обрабатывает событие заказа
// Диспетчеризация по event_type: ORDER_CREATED отправляет уведомление,
// неизвестные типы логируются и отбрасываются без ошибки.
// Повторная доставка того же event_id (at-least-once) не приводит
// к повторному уведомлению.
func (s *NotificationService) HandleOrderEvent(ctx context.Context, event OrderEvent) error {
	if event.EventType != EventTypeOrderCreated {
		s.logger.Warn("unrecognized event type, dropping",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
		)
		return nil
	}

	if event.EventID != "" {
		already, err := s.processed.IsProcessed(ctx, event.EventID)
		if err != nil {
			return err
		}
		if already {
			s.logger.Info("event already processed (duplicate)",
				zap.String("event_id", event.EventID),
				zap.String("order_id", event.Data.OrderID),
			)
			return nil
		}
	}

	if err := s.notifier.NotifyOrderCreated(ctx, event.Data); err != nil {
		s.logger.Error("failed to send order notification",
			zap.Error(err),
			zap.String("event_id", event.EventID),
			zap.String("order_id", event.Data.OrderID),
		)
		return err
	}

	if event.EventID != "" {
		if err := s.processed.MarkProcessed(ctx, event.EventID, processedTTL); err != nil {
			s.logger.Error("failed to mark event processed",
				zap.Error(err),
				zap.String("event_id", event.EventID),
			)
			return err
		}
	}

	s.logger.Info("notification sent for order created",
		zap.String("event_id", event.EventID),
		zap.String("order_id", event.Data.OrderID),
		zap.String("customer_id", event.Data.CustomerID),
	)
	return nil
}
