package messagequeue

// MessageQueue defines the interface for message queue services.
type MessageQueue interface {
	Publish(queueName string, body []byte) error
	Consume(queueName string, handler func(body []byte)) error
	Close() error
}

// Noop is a MessageQueue that drops everything. Used when no broker is
// configured so event publishing stays best-effort without nil checks.
type Noop struct{}

// Publish discards the message.
func (Noop) Publish(queueName string, body []byte) error { return nil }

// Consume never delivers anything.
func (Noop) Consume(queueName string, handler func(body []byte)) error { return nil }

// Close does nothing.
func (Noop) Close() error { return nil }
