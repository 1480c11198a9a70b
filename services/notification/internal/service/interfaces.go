package service

import (
	"context"
	"time"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=Notifier --dir=. --output=./mocks --outpkg=mocks

// Notifier определяет интерфейс канала доставки уведомлений
// В dev окружении это лог, в production может быть email/telegram/push
type Notifier interface {
	// NotifyOrderCreated отправляет уведомление о созданном заказе
	NotifyOrderCreated(ctx context.Context, order OrderData) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ProcessedEventsStore --dir=. --output=./mocks --outpkg=mocks

// ProcessedEventsStore хранит ID обработанных событий
// Защищает от повторной обработки при at-least-once доставке из Kafka
type ProcessedEventsStore interface {
	// MarkProcessed сохраняет eventID как обработанный с указанным ttl
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) error

	// IsProcessed проверяет, был ли eventID уже обработан
	IsProcessed(ctx context.Context, eventID string) (bool, error)
}
