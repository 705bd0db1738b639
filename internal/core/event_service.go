package core

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"assistix-backend-go/pkg/messagequeue"
)

// Event names published to the notification queue.
const (
	EventRequestCreated   = "request.created"
	EventRequestCompleted = "request.completed"
	EventRequestDeleted   = "request.deleted"
	EventPitchCreated     = "pitch.created"
)

// eventsQueue is the single queue notification workers consume from.
const eventsQueue = "assistix.events"

// Event is a domain event describing something that happened to a request
// or pitch. Consumed out of process by the notification fanout.
type Event struct {
	Type      string    `json:"type"`
	ActorID   string    `json:"actorId,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	PitchID   string    `json:"pitchId,omitempty"`
	City      string    `json:"city,omitempty"`
	At        time.Time `json:"at"`
}

// eventService implements EventService on top of a MessageQueue.
type eventService struct {
	mq     messagequeue.MessageQueue
	logger *zap.Logger
}

// NewEventService creates a new EventService. Pass a messagequeue.Noop when
// no broker is configured.
func NewEventService(mq messagequeue.MessageQueue, logger *zap.Logger) EventService {
	return &eventService{mq: mq, logger: logger}
}

// Emit publishes the event. Failures are logged and swallowed; an
// unavailable broker must never fail the operation that emitted the event.
func (s *eventService) Emit(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("Failed to encode domain event", zap.String("type", event.Type), zap.Error(err))
		return
	}
	if err := s.mq.Publish(eventsQueue, body); err != nil {
		s.logger.Warn("Failed to publish domain event",
			zap.String("type", event.Type),
			zap.String("requestId", event.RequestID),
			zap.Error(err))
	}
}
