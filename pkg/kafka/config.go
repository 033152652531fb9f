package kafka

import "time"

// Config holds Kafka producer parameters.
type Config struct {
	ClientID string
	Brokers  []string

	// BatchTimeout bounds how long the writer waits to fill a batch. Zero means 10ms.
	BatchTimeout time.Duration

	// TLS enables TLS for broker connections.
	TLS bool
}
