package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/racquetek/booking-api/functions/gateway/types"
)

// streamPublisher is the slice of jetstream.JetStream the publisher uses.
type streamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// NatsService publishes committed registration changes to a JetStream subject
// so other systems (mailers, rosters) can react to confirmations and promotions.
type NatsService struct {
	conn    *nats.Conn
	js      streamPublisher
	subject string
}

func NewNatsService(ctx context.Context, conn *nats.Conn, streamName, subject string) (*NatsService, error) {
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	// Create stream if it does not exist
	if _, err = js.Stream(ctx, streamName); err != nil {
		log.Printf("Stream %s does not exist, creating it...", streamName)
		_, err = js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create stream: %w", err)
		}
	}

	return &NatsService{conn: conn, js: js, subject: subject}, nil
}

func (s *NatsService) PublishRegistrationChange(ctx context.Context, change types.RegistrationChange) error {
	data, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal registration change: %w", err)
	}

	ack, err := s.js.Publish(ctx, s.subject, data, jetstream.WithMsgID(changeMsgID(change)))
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf("Published registration change seq=%d stream=%q user=%d event=%d status=%s",
		ack.Sequence, ack.Stream, change.UserID, change.EventID, change.Status)
	return nil
}

func (s *NatsService) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	return nil
}

// changeMsgID lets JetStream drop duplicates if a publish is retried.
func changeMsgID(change types.RegistrationChange) string {
	return fmt.Sprintf("%d-%d-%s-%d", change.UserID, change.EventID, change.Status, change.At.UnixNano())
}

// NoopPublisher is used when no NATS_URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRegistrationChange(ctx context.Context, change types.RegistrationChange) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
