package profile

import (
	"context"

	localConsumer "datemate/kafka/consumer"
	profileMsg "datemate/kafka/message/profile"
	"datemate/match"

	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-kafka/handler"
	kafka "github.com/Chronicle20/atlas-kafka/message"
	"github.com/Chronicle20/atlas-kafka/topic"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/sirupsen/logrus"
)

// Indexer receives profiles announced by any replica
type Indexer interface {
	Upsert(ctx context.Context, d match.Document) error
}

// InitConsumers subscribes to profile status events. Every replica keeps its own index,
// so each one should pass a group id unique to it.
func InitConsumers(l logrus.FieldLogger) func(func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(consumerGroupId string) {
	return func(rf func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(consumerGroupId string) {
		return func(consumerGroupId string) {
			rf(localConsumer.NewConfig(l)("profile_status_event")(profileMsg.EnvEventTopicStatus)(consumerGroupId),
				consumer.SetHeaderParsers(consumer.SpanHeaderParser))
		}
	}
}

func InitHandlers(l logrus.FieldLogger) func(index Indexer) func(rf func(topic string, handler handler.Handler) (string, error)) {
	return func(index Indexer) func(rf func(topic string, handler handler.Handler) (string, error)) {
		return func(rf func(topic string, handler handler.Handler) (string, error)) {
			t, err := topic.EnvProvider(l)(profileMsg.EnvEventTopicStatus)()
			if err != nil {
				l.WithError(err).Error("Unable to resolve profile status topic.")
				return
			}
			if _, err = rf(t, kafka.AdaptHandler(kafka.PersistentConfig(handleCreated(index)))); err != nil {
				l.WithError(err).Error("Unable to register profile created handler.")
			}
		}
	}
}

func handleCreated(index Indexer) kafka.Handler[profileMsg.Event[profileMsg.CreatedBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, e profileMsg.Event[profileMsg.CreatedBody]) {
		if e.Type != profileMsg.EventProfileCreated {
			return
		}
		if e.ProfileId == 0 {
			l.Warn("Ignoring profile created event without a profile id.")
			return
		}

		err := index.Upsert(ctx, match.Document{ProfileId: e.ProfileId, Text: e.Body.Payload().Summary()})
		if err != nil {
			l.WithError(err).WithField("profileId", e.ProfileId).Error("Unable to index announced profile.")
			return
		}
		l.WithField("profileId", e.ProfileId).Debug("Indexed announced profile.")
	}
}
