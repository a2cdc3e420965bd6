package consumer

import (
	"context"
	"encoding/json"

	"github.com/justinnewbold/PattyShack-sub001/internal/events"
	"github.com/justinnewbold/PattyShack-sub001/internal/forecast"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeScheduleLifecycle projects published schedules into the demand
// history table. Inserts are idempotent, so redelivered messages are safe
// to process again.
func ConsumeScheduleLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	forecastService forecast.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.schedule_lifecycle")
	log.Info("schedule lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("schedule lifecycle consumer stopped")
				return
			}
			log.Error("fetch schedule lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.SchedulePublishedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode schedule_published event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := forecastService.HandleSchedulePublished(ctx, event); err != nil {
			log.Error("project schedule history failed",
				zap.String("schedule_id", event.ScheduleID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit schedule lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("schedule history projected from schedule_published event",
			zap.String("schedule_id", event.ScheduleID),
			zap.String("location_id", event.LocationID),
			zap.Int("days", len(event.Days)),
		)
	}
}
