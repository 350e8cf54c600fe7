package producer

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"datemate/retry"

	"github.com/Chronicle20/atlas-kafka/topic"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/opentracing/opentracing-go"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// MessageProducer writes the messages supplied by provider to a single topic
type MessageProducer func(provider model.Provider[[]kafka.Message]) error

// Provider resolves a topic token to a MessageProducer
type Provider func(token string) MessageProducer

// Factory builds a Provider bound to a logger and request context
type Factory func(l logrus.FieldLogger) func(ctx context.Context) Provider

// Writer is the subset of kafka.Writer used to publish
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type WriterFactory func(topic string) Writer

type registry struct {
	mu      sync.Mutex
	factory WriterFactory
	writers map[string]Writer
}

var defaultRegistry = &registry{factory: newKafkaWriter, writers: make(map[string]Writer)}

func newKafkaWriter(topic string) Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(LookupBrokers()...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func LookupBrokers() []string {
	return strings.Split(os.Getenv("BOOTSTRAP_SERVERS"), ",")
}

func (r *registry) get(topic string) Writer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.writers[topic]; ok {
		return w
	}
	w := r.factory(topic)
	r.writers[topic] = w
	return w
}

func (r *registry) close(l logrus.FieldLogger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for t, w := range r.writers {
		if err := w.Close(); err != nil {
			l.WithError(err).Errorf("Unable to close writer for topic [%s].", t)
		}
		delete(r.writers, t)
	}
}

// ProviderImpl produces through the shared writer registry, one writer per topic
func ProviderImpl(l logrus.FieldLogger) func(ctx context.Context) Provider {
	return func(ctx context.Context) Provider {
		return produce(l, ctx, defaultRegistry)
	}
}

// ProviderWithFactory produces through writers created by f. Writers are cached per returned Provider.
func ProviderWithFactory(l logrus.FieldLogger, f WriterFactory) func(ctx context.Context) Provider {
	r := &registry{factory: f, writers: make(map[string]Writer)}
	return func(ctx context.Context) Provider {
		return produce(l, ctx, r)
	}
}

func produce(l logrus.FieldLogger, ctx context.Context, r *registry) Provider {
	return func(token string) MessageProducer {
		return func(provider model.Provider[[]kafka.Message]) error {
			t, err := topic.EnvProvider(l)(token)()
			if err != nil {
				return err
			}

			ms, err := provider()
			if err != nil {
				return err
			}
			if len(ms) == 0 {
				return nil
			}

			headers := spanHeaders(ctx)
			for i := range ms {
				ms[i].Headers = append(ms[i].Headers, headers...)
			}

			w := r.get(t)
			cfg := retry.DefaultRetryConfig().WithLogger(l).WithContext(ctx)
			err = retry.ExecuteWithRetry(cfg, func() error {
				return w.WriteMessages(ctx, ms...)
			})
			if err != nil {
				l.WithError(err).Errorf("Unable to emit [%d] messages to topic [%s].", len(ms), t)
				return err
			}
			l.Debugf("Emitted [%d] messages to topic [%s].", len(ms), t)
			return nil
		}
	}
}

func spanHeaders(ctx context.Context) []kafka.Header {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return nil
	}
	carrier := opentracing.TextMapCarrier{}
	if err := opentracing.GlobalTracer().Inject(span.Context(), opentracing.TextMap, carrier); err != nil {
		return nil
	}
	headers := make([]kafka.Header, 0, len(carrier))
	for k, v := range carrier {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return headers
}

// Teardown closes every writer opened through ProviderImpl
func Teardown(l logrus.FieldLogger) func() {
	return func() {
		defaultRegistry.close(l)
	}
}
