package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/PraneethShetty626/rapidcart/services/order/internal/service"
)

// EventTypeOrderCreated - тип события создания заказа
const EventTypeOrderCreated = "ORDER_CREATED"

// KafkaOrderEventPublisher реализует OrderEventPublisher используя Kafka
type KafkaOrderEventPublisher struct {
	logger *zap.Logger
	writer *kafka.Writer
	topic  string
}

// NewKafkaOrderEventPublisher создаёт новый Kafka publisher для событий заказов
func NewKafkaOrderEventPublisher(logger *zap.Logger, brokers []string, topic string) *KafkaOrderEventPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaOrderEventPublisher{
		logger: logger,
		writer: writer,
		topic:  topic,
	}
}

// Close закрывает Kafka writer
func (p *KafkaOrderEventPublisher) Close() error {
	return p.writer.Close()
}

// PublishOrderCreated публикует событие создания заказа в Kafka
// Ключ сообщения - ID заказа, все события одного заказа попадают в одну партицию
func (p *KafkaOrderEventPublisher) PublishOrderCreated(ctx context.Context, event service.OrderCreatedEvent) error {
	payload := map[string]interface{}{
		"event_id":   uuid.New().String(),
		"event_type": EventTypeOrderCreated,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"data": map[string]interface{}{
			"orderId":     event.OrderID,
			"productId":   event.ProductID,
			"productName": event.ProductName,
			"unitPrice":   event.UnitPrice,
			"quantity":    event.Quantity,
			"totalPrice":  event.TotalPrice,
			"customerId":  event.CustomerID,
			"createdAt":   event.CreatedAt,
		},
	}

	valueBytes, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal order created event",
			zap.Error(err),
			zap.String("order_id", event.OrderID),
		)
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: valueBytes,
	}

	err = p.writer.WriteMessages(ctx, message)
	if err != nil {
		p.logger.Error("failed to publish order created event",
			zap.Error(err),
			zap.String("topic", p.topic),
			zap.String("order_id", event.OrderID),
		)
		return err
	}

	p.logger.Info("order created event published",
		zap.String("topic", p.topic),
		zap.String("order_id", event.OrderID),
		zap.String("customer_id", event.CustomerID),
	)

	return nil
}
