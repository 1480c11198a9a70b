package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/PraneethShetty626/rapidcart/services/notification/internal/service"
)

// OrderEventsConsumer обрабатывает события заказов из Kafka
type OrderEventsConsumer struct {
	logger  *zap.Logger
	reader  *kafka.Reader
	service *service.NotificationService
}

// NewOrderEventsConsumer создаёт новый consumer для событий заказов
func NewOrderEventsConsumer(
	logger *zap.Logger,
	brokers []string,
	groupID, topic string,
	svc *service.NotificationService,
) *OrderEventsConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})

	return &OrderEventsConsumer{
		logger:  logger,
		reader:  reader,
		service: svc,
	}
}

// Close закрывает Kafka reader
func (c *OrderEventsConsumer) Close() error {
	return c.reader.Close()
}

// Start запускает consumer и начинает обработку сообщений
// Использует at-least-once семантику: FetchMessage + CommitMessages после успешной обработки
func (c *OrderEventsConsumer) Start(ctx context.Context) error {
	c.logger.Info("starting kafka consumer",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group_id", c.reader.Config().GroupID),
	)

	for {
		// FetchMessage вместо ReadMessage для ручного контроля commit
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			// Если контекст отменён, выходим
			if ctx.Err() != nil {
				c.logger.Info("consumer context cancelled, stopping")
				return nil
			}
			c.logger.Error("failed to fetch message from kafka",
				zap.Error(err),
			)
			continue
		}

		shouldCommit := c.processMessage(ctx, m)

		// Коммитим offset только после успешной обработки
		if shouldCommit {
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				c.logger.Error("failed to commit message offset",
					zap.Error(err),
					zap.String("topic", m.Topic),
					zap.Int("partition", m.Partition),
					zap.Int64("offset", m.Offset),
				)
				continue
			}

			c.logger.Debug("message offset committed",
				zap.String("topic", m.Topic),
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
			)
		}
	}
}

// processMessage обрабатывает одно сообщение из Kafka
// Возвращает true, если нужно закоммитить offset
// Некорректный JSON отбрасывается с commit: повторная доставка его не исправит
func (c *OrderEventsConsumer) processMessage(ctx context.Context, m kafka.Message) bool {
	var event service.OrderEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		c.logger.Error("failed to unmarshal kafka message, dropping",
			zap.Error(err),
			zap.String("topic", m.Topic),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
		)
		return true
	}

	c.logger.Info("received order event",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.String("order_id", event.Data.OrderID),
		zap.Int("partition", m.Partition),
		zap.Int64("offset", m.Offset),
	)

	if err := c.service.HandleOrderEvent(ctx, event); err != nil {
		// Не коммитим: сообщение будет доставлено повторно
		c.logger.Error("failed to handle order event",
			zap.Error(err),
			zap.String("event_id", event.EventID),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
		)
		return false
	}

	return true
}
