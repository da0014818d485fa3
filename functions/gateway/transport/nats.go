package transport

import (
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// ConnectNats dials the broker used for registration change notifications.
func ConnectNats(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("booking-api"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}
