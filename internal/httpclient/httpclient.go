package httpclient

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTimeout  = 120 * time.Second
	RequestIDHeader = "x-request-id"
)

type Options struct {
	PreferIPv4 bool
	Timeout    time.Duration
	Logger     *slog.Logger
}

// New returns a client whose every call is bounded by opts.Timeout and tagged
// with a fresh request id.
func New(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := &net.Dialer{
		Timeout:   15 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if opts.PreferIPv4 {
				return dialer.DialContext(ctx, "tcp4", addr)
			}
			return dialer.DialContext(ctx, network, addr)
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   15 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: WithRequestID(transport, opts.Logger),
	}
}

// WithRequestID wraps next so each outgoing request carries an x-request-id
// header unless the caller already set one.
func WithRequestID(next http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &requestIDTransport{next: next, logger: logger}
}

type requestIDTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if t.logger != nil {
		t.logger.Debug("http request",
			"method", req.Method,
			"host", req.URL.Host,
			"path", req.URL.Path,
			"request_id", req.Header.Get(RequestIDHeader),
		)
	}
	return t.next.RoundTrip(req)
}
