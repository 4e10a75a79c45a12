package outbox

import "time"

// Message is a notification payload waiting to be published to RabbitMQ.
// Dispatch is best-effort: a message that keeps failing is retried with
// backoff and never affects the order it belongs to.
type Message struct {
	ID           int64
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
