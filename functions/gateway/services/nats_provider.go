package services

import (
	"context"
	"log"

	"github.com/racquetek/booking-api/functions/gateway/helpers"
	"github.com/racquetek/booking-api/functions/gateway/interfaces"
	"github.com/racquetek/booking-api/functions/gateway/transport"
)

// OpenPublisher returns a JetStream publisher, or NoopPublisher when NATS is
// not configured or unreachable. The ledger never depends on it.
func OpenPublisher(ctx context.Context, cfg helpers.Config) interfaces.RegistrationPublisher {
	if cfg.NatsURL == "" {
		log.Println("NATS_URL not set, registration changes will not be published")
		return NoopPublisher{}
	}

	conn, err := transport.ConnectNats(cfg.NatsURL)
	if err != nil {
		log.Printf("ERR: %v; registration changes will not be published", err)
		return NoopPublisher{}
	}
	publisher, err := NewNatsService(ctx, conn, cfg.NatsStream, cfg.NatsSubject)
	if err != nil {
		conn.Close()
		log.Printf("ERR: %v; registration changes will not be published", err)
		return NoopPublisher{}
	}
	return publisher
}
