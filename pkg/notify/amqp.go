package notify

import (
	"context"

	"github.com/rankwise/semgraph/internal/util"
	"github.com/rankwise/semgraph/pkg/logger"
)

// TopicPublisher publishes a JSON payload on a routing key. Satisfied
// by the queue client.
type TopicPublisher interface {
	PublishTopic(ctx context.Context, routingKey string, body string) error
}

// QueueSink fans notifications out over the message broker. The host
// UI subscribes to per-project routing keys.
type QueueSink struct {
	publisher TopicPublisher
}

func NewQueueSink(publisher TopicPublisher) *QueueSink {
	return &QueueSink{publisher: publisher}
}

func (s *QueueSink) Toast(ctx context.Context, projectID string, toast Toast) {
	key := "project." + projectID + ".toast"
	if err := s.publisher.PublishTopic(ctx, key, util.ConvertStructToJson(toast)); err != nil {
		logger.Error("[Notify] Failed to publish toast", "project", projectID, "err", err)
	}
}

func (s *QueueSink) SwitchTab(ctx context.Context, projectID, tab string) {
	key := "project." + projectID + ".ui"
	event := TabEvent{Event: SwitchTabEvent, Tab: tab}
	if err := s.publisher.PublishTopic(ctx, key, util.ConvertStructToJson(event)); err != nil {
		logger.Error("[Notify] Failed to publish tab switch", "project", projectID, "err", err)
	}
}
