package core

import (
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeQueue struct {
	published  map[string][][]byte
	publishErr error
}

func (f *fakeQueue) Publish(queueName string, body []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	if f.published == nil {
		f.published = make(map[string][][]byte)
	}
	f.published[queueName] = append(f.published[queueName], body)
	return nil
}

func (f *fakeQueue) Consume(string, func(body []byte)) error { return nil }
func (f *fakeQueue) Close() error                            { return nil }

func TestEmitPublishesEncodedEvent(t *testing.T) {
	mq := &fakeQueue{}
	svc := NewEventService(mq, zap.NewNop())

	svc.Emit(Event{Type: EventRequestCreated, ActorID: "u1", RequestID: "r1", City: "bilaspur_cg"})

	bodies := mq.published[eventsQueue]
	if len(bodies) != 1 {
		t.Fatalf("published = %d messages, want 1 on %q", len(bodies), eventsQueue)
	}
	var decoded Event
	if err := json.Unmarshal(bodies[0], &decoded); err != nil {
		t.Fatalf("decoding published event: %v", err)
	}
	if decoded.Type != EventRequestCreated || decoded.RequestID != "r1" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.At.IsZero() {
		t.Error("Emit must stamp the event time")
	}
}

func TestEmitSwallowsBrokerFailure(t *testing.T) {
	mq := &fakeQueue{publishErr: errors.New("broker down")}
	svc := NewEventService(mq, zap.NewNop())

	// Must not panic or block; failures are logged only.
	svc.Emit(Event{Type: EventPitchCreated, RequestID: "r1"})
}
