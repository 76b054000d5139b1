package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/hotelmanager/service-rooms/internal/platform/kafka"
)

// RoomStates applies validated room state transitions. Implemented by the
// room application service.
type RoomStates interface {
	ApplyTransition(ctx context.Context, hotelID, roomID uuid.UUID, rawState string) error
}

// HousekeepingEventConsumer listens to housekeeping task events and moves
// rooms through the cleaning states.
type HousekeepingEventConsumer struct {
	consumer *kafka.Consumer
	rooms    RoomStates
	logger   *zap.Logger
}

// NewHousekeepingEventConsumer creates a new HousekeepingEventConsumer.
func NewHousekeepingEventConsumer(brokers []string, groupID string, rooms RoomStates, logger *zap.Logger) *HousekeepingEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicHousekeepingEvents, logger)
	return &HousekeepingEventConsumer{
		consumer: consumer,
		rooms:    rooms,
		logger:   logger,
	}
}

// Start begins consuming housekeeping events. This blocks until the context
// is cancelled.
func (c *HousekeepingEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *HousekeepingEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *HousekeepingEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from housekeeping topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case HousekeepingTaskStarted:
		return c.applyTaskState(ctx, cloudEvent, "CLEANING_IN_PROGRESS")
	case HousekeepingTaskFinished:
		return c.applyTaskState(ctx, cloudEvent, "PENDING_CLEAN_REVIEW")
	default:
		c.logger.Debug("ignoring unhandled housekeeping event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *HousekeepingEventConsumer) applyTaskState(ctx context.Context, cloudEvent kafka.CloudEvent, target string) error {
	var evt HousekeepingTaskEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse housekeeping task event data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	if err := c.rooms.ApplyTransition(ctx, evt.HotelID, evt.RoomID, target); err != nil {
		// Out-of-order or duplicate task events produce invalid transitions;
		// they are logged and dropped rather than redelivered forever.
		c.logger.Warn("housekeeping transition rejected",
			zap.String("room_id", evt.RoomID.String()),
			zap.String("target", target),
			zap.Error(err),
		)
		return nil
	}

	c.logger.Info("room state updated from housekeeping event",
		zap.String("room_id", evt.RoomID.String()),
		zap.String("target", target),
	)
	return nil
}
