// Package events publishes booking lifecycle events to Kafka and consumes
// external approval decisions for pending bookings.
package events

import (
	"context"
	"time"

	"hotelops/pkg/kafka"
	"hotelops/pkg/logger"
	"hotelops/pkg/model"
)

const (
	EventBookingReserved      = "booking.reserved"
	EventBookingStatusChanged = "booking.status_changed"

	sourceService = "availability"
)

// BookingEvent is the payload shared by all lifecycle events.
type BookingEvent struct {
	RecordID       string              `json:"record_id"`
	Resource       model.ResourceRef   `json:"resource"`
	Interval       model.Interval      `json:"interval"`
	Status         model.BookingStatus `json:"status"`
	PreviousStatus model.BookingStatus `json:"previous_status,omitempty"`
	OwnerID        string              `json:"owner_id"`
	CapacityUsed   int                 `json:"capacity_used"`
	OccurredAt     time.Time           `json:"occurred_at"`
}

// Publisher emits booking lifecycle events. Publication is best-effort
// relative to the booking write: the record is already persisted when the
// event goes out, and a publish failure is logged, not bubbled up.
type Publisher interface {
	BookingReserved(ctx context.Context, record *model.BookingRecord)
	BookingStatusChanged(ctx context.Context, record *model.BookingRecord, previous model.BookingStatus)
	Close() error
}

type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaPublisher writes lifecycle events to a single topic, keyed by the
// resource so all events for one resource stay ordered on one partition.
type KafkaPublisher struct {
	producer producer
	log      *logger.Logger
}

func NewKafkaPublisher(p *kafka.Producer, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: p,
		log:      log,
	}
}

func (p *KafkaPublisher) BookingReserved(ctx context.Context, record *model.BookingRecord) {
	p.publish(ctx, EventBookingReserved, record, "")
}

func (p *KafkaPublisher) BookingStatusChanged(ctx context.Context, record *model.BookingRecord, previous model.BookingStatus) {
	p.publish(ctx, EventBookingStatusChanged, record, previous)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType string, record *model.BookingRecord, previous model.BookingStatus) {
	event := BookingEvent{
		RecordID:       record.ID,
		Resource:       record.Resource,
		Interval:       record.Interval,
		Status:         record.Status,
		PreviousStatus: previous,
		OwnerID:        record.OwnerID,
		CapacityUsed:   record.CapacityUsed,
		OccurredAt:     time.Now().UTC(),
	}

	builder, err := kafka.NewMessage().
		WithKey(record.Resource.Key()).
		WithEventType(eventType).
		WithSource(sourceService).
		WithJSONValue(event)
	if err != nil {
		p.log.Error("failed to encode booking event",
			"event_type", eventType,
			"record_id", record.ID,
			"error", err,
		)
		return
	}

	if err := p.producer.Publish(ctx, builder.Build()); err != nil {
		p.log.Error("failed to publish booking event",
			"event_type", eventType,
			"record_id", record.ID,
			"error", err,
		)
		return
	}

	p.log.Debug("booking event published",
		"event_type", eventType,
		"record_id", record.ID,
		"resource", record.Resource.Key(),
	)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher drops all events. Used when eventing is disabled and in
// tests.
type NopPublisher struct{}

func (NopPublisher) BookingReserved(context.Context, *model.BookingRecord) {}

func (NopPublisher) BookingStatusChanged(context.Context, *model.BookingRecord, model.BookingStatus) {
}

func (NopPublisher) Close() error { return nil }
