package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

type fakeStream struct {
	subject string
	payload []byte
	opts    int
	err     error
}

func (f *fakeStream) Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.subject = subject
	f.payload = payload
	f.opts = len(opts)
	return &jetstream.PubAck{Stream: "REGISTRATIONS", Sequence: 1}, nil
}

func TestPublishRegistrationChange(t *testing.T) {
	stream := &fakeStream{}
	svc := &NatsService{js: stream, subject: "registrations.changed"}

	change := types.RegistrationChange{
		UserID:         3,
		EventID:        9,
		PreviousStatus: types.StatusWaitlist,
		Status:         types.StatusConfirmed,
		Reason:         types.ChangeReasonPromotion,
		At:             time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
	}
	if err := svc.PublishRegistrationChange(context.Background(), change); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stream.subject != "registrations.changed" {
		t.Errorf("published to %q", stream.subject)
	}
	if stream.opts != 1 {
		t.Errorf("expected a message id option, got %d options", stream.opts)
	}
	var got types.RegistrationChange
	if err := json.Unmarshal(stream.payload, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got.UserID != 3 || got.Status != types.StatusConfirmed || got.Reason != types.ChangeReasonPromotion {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestPublishRegistrationChangeError(t *testing.T) {
	svc := &NatsService{js: &fakeStream{err: errors.New("nats: timeout")}, subject: "registrations.changed"}
	if err := svc.PublishRegistrationChange(context.Background(), types.RegistrationChange{}); err == nil {
		t.Error("expected an error")
	}
}

func TestChangeMsgIDIsStable(t *testing.T) {
	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	a := changeMsgID(types.RegistrationChange{UserID: 1, EventID: 2, Status: types.StatusConfirmed, At: at})
	b := changeMsgID(types.RegistrationChange{UserID: 1, EventID: 2, Status: types.StatusConfirmed, At: at})
	c := changeMsgID(types.RegistrationChange{UserID: 1, EventID: 2, Status: types.StatusWithdrawn, At: at})
	if a != b {
		t.Errorf("expected identical ids, got %q and %q", a, b)
	}
	if a == c {
		t.Errorf("expected different ids for different statuses")
	}
}
