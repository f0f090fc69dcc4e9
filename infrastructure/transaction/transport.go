package transaction

import (
	"log/slog"
	"net/http"

	"github.com/helixml/chickenrescue/internal/log"
)

// CorrelationHeader carries the caller's correlation id to the node.
const CorrelationHeader = "X-Correlation-ID"

// CorrelationTransport is an http.RoundTripper that copies the correlation
// id from the request context into a header and logs failed round trips.
type CorrelationTransport struct {
	inner  http.RoundTripper
	logger *slog.Logger
}

// NewCorrelationTransport wraps inner. If inner is nil, http.DefaultTransport
// is used.
func NewCorrelationTransport(inner http.RoundTripper, logger *slog.Logger) *CorrelationTransport {
	if inner == nil {
		inner = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CorrelationTransport{inner: inner, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *CorrelationTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := log.CorrelationID(req.Context())
	if id != "" && req.Header.Get(CorrelationHeader) == "" {
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set(CorrelationHeader, id)
	}

	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		t.logger.Warn("node round trip failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.Redacted()),
			slog.String("correlation_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	return resp, nil
}
