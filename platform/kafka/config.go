package kafka

// Config содержит конфигурацию для подключения к Kafka
type Config struct {
	// Brokers задаёт список брокеров Kafka, через который подключаются сервисы.
	// Значение зависит от среды выполнения:
	//   - локальная разработка (go run): localhost:19092
	//   - запуск в Docker: kafka:9092
	// Можно указать несколько брокеров через запятую: "broker1:9092,broker2:9092"
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	// Topic задаёт топик событий заказов по умолчанию.
	// Order service пишет в него, notification service читает.
	Topic string `env:"KAFKA_TOPIC" envDefault:"order.events"`
}

// DefaultConfig возвращает конфигурацию с дефолтными значениями для локальной разработки.
// Актуальные значения сервисы получают через переменные окружения (KAFKA_BROKERS, KAFKA_TOPIC).
func DefaultConfig() Config {
	return Config{
		Brokers: []string{"localhost:19092"},
		Topic:   "order.events",
	}
}
