package tracing

import (
	"io"
	"net/http"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/sirupsen/logrus"
	"github.com/uber/jaeger-client-go"
	"github.com/uber/jaeger-client-go/config"
)

// InitTracer installs a jaeger tracer configured from JAEGER_* environment variables as the global tracer
func InitTracer(l logrus.FieldLogger) func(serviceName string) (io.Closer, error) {
	return func(serviceName string) (io.Closer, error) {
		cfg, err := config.FromEnv()
		if err != nil {
			l.WithError(err).Errorf("Unable to read tracer configuration from environment.")
			return nil, err
		}
		if cfg.ServiceName == "" {
			cfg.ServiceName = serviceName
		}
		if cfg.Sampler.Type == "" {
			cfg.Sampler.Type = jaeger.SamplerTypeConst
			cfg.Sampler.Param = 1
		}

		closer, err := cfg.InitGlobalTracer(cfg.ServiceName, config.Logger(LogrusAdapter{logger: l}))
		if err != nil {
			l.WithError(err).Errorf("Unable to initialize tracer.")
			return nil, err
		}
		return closer, nil
	}
}

func Teardown(l logrus.FieldLogger) func(tc io.Closer) func() {
	return func(tc io.Closer) func() {
		return func() {
			if tc == nil {
				return
			}
			if err := tc.Close(); err != nil {
				l.WithError(err).Errorf("Unable to close tracer.")
			}
		}
	}
}

// StartSpan starts a root span and returns a logger annotated with its identifiers
func StartSpan(l logrus.FieldLogger, name string, opts ...opentracing.StartSpanOption) (logrus.FieldLogger, opentracing.Span) {
	span := opentracing.StartSpan(name, opts...)
	return annotate(l, span), span
}

// StartServerSpan continues the trace carried by the request headers, if any
func StartServerSpan(l logrus.FieldLogger, name string, r *http.Request) (logrus.FieldLogger, opentracing.Span) {
	var opts []opentracing.StartSpanOption
	if sc, err := opentracing.GlobalTracer().Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(r.Header)); err == nil {
		opts = append(opts, ext.RPCServerOption(sc))
	}
	sl, span := StartSpan(l, name, opts...)
	ext.HTTPMethod.Set(span, r.Method)
	ext.HTTPUrl.Set(span, r.URL.String())
	return sl, span
}

func annotate(l logrus.FieldLogger, span opentracing.Span) logrus.FieldLogger {
	if sc, ok := span.Context().(jaeger.SpanContext); ok {
		return l.WithFields(logrus.Fields{
			"trace.id": sc.TraceID().String(),
			"span.id":  sc.SpanID().String(),
		})
	}
	return l.WithField("span.id", "")
}

type LogrusAdapter struct {
	logger logrus.FieldLogger
}

func (l LogrusAdapter) Error(msg string) {
	l.logger.Error(msg)
}

func (l LogrusAdapter) Infof(msg string, args ...interface{}) {
	l.logger.Infof(msg, args...)
}
