package service

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier реализует Notifier через структурированный лог
// Заглушка вместо реального канала доставки (email, telegram, push)
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier создаёт новый лог-notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyOrderCreated пишет уведомление о созданном заказе в лог
func (n *LogNotifier) NotifyOrderCreated(ctx context.Context, order OrderData) error {
	n.logger.Info("ORDER NOTIFICATION",
		zap.String("order_id", order.OrderID),
		zap.String("customer_id", order.CustomerID),
		zap.String("product_name", order.ProductName),
		zap.Int32("quantity", order.Quantity),
		zap.String("total_price", order.TotalPrice),
	)
	return nil
}
