package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"datemate/questionnaire"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/sirupsen/logrus"
)

const profilesPath = "/profiles"

// Client posts profiles to the collection service
type Client struct {
	l       logrus.FieldLogger
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL. No request timeout is imposed.
func NewClient(l logrus.FieldLogger, baseURL string) *Client {
	return &Client{
		l:       l,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{},
	}
}

// WithHTTPClient replaces the underlying http client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	return &Client{l: c.l, baseURL: c.baseURL, http: hc}
}

// URL is the collection endpoint
func (c *Client) URL() string {
	return c.baseURL + profilesPath
}

// Send posts the payload once. Non-2xx responses become *ServerRejection and
// failures to exchange the request become *TransportError.
func (c *Client) Send(ctx context.Context, payload questionnaire.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	injectSpan(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.l.WithFields(logrus.Fields{
		"url":    c.URL(),
		"status": resp.StatusCode,
	}).Debug("Collection endpoint responded.")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		c.l.WithError(err).Debug("Unable to read rejection body.")
		return &ServerRejection{StatusCode: resp.StatusCode}
	}
	return &ServerRejection{StatusCode: resp.StatusCode, Body: string(text)}
}

func injectSpan(ctx context.Context, req *http.Request) {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return
	}
	ext.SpanKindRPCClient.Set(span)
	ext.HTTPMethod.Set(span, req.Method)
	ext.HTTPUrl.Set(span, req.URL.String())
	_ = span.Tracer().Inject(span.Context(), opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(req.Header))
}
