package producer

import (
	"context"

	"github.com/justinnewbold/PattyShack-sub001/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// Aggregate id keys the message so consumers see one schedule's events in
// order within a partition.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
