package firefly

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	ErrConfig          = errors.New("firefly credentials are not configured")
	ErrInvalidRequest  = errors.New("invalid firefly request")
	ErrNetwork         = errors.New("firefly service unreachable")
	ErrTimeout         = errors.New("firefly request timed out")
	ErrAuth            = errors.New("firefly authentication failed")
	ErrBadRequest      = errors.New("firefly rejected the request")
	ErrRateLimit       = errors.New("firefly rate limit exceeded")
	ErrServer          = errors.New("firefly server error")
	ErrPayloadTooLarge = errors.New("firefly payload too large")
)

const (
	OpAuthenticate = "authenticate"
	OpUpload       = "upload"
	OpGenerate     = "generate"
	OpDownload     = "download"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindNetwork
	KindTimeout
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindPayloadTooLarge
	KindRateLimited
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "server"
	default:
		return "unexpected"
	}
}

// Error is returned for every failed remote call. Match it with errors.Is
// against the package sentinels or errors.As for the details.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.message())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrAuth:
		return e.Op == OpAuthenticate || e.Kind == KindUnauthorized || e.Kind == KindForbidden
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	case ErrRateLimit:
		return e.Kind == KindRateLimited
	case ErrServer:
		return e.Kind == KindServer
	case ErrPayloadTooLarge:
		return e.Kind == KindPayloadTooLarge
	}
	return false
}

func (e *Error) message() string {
	if e.Op == OpAuthenticate {
		switch e.Kind {
		case KindNetwork:
			return "could not reach the authentication service, check network connectivity"
		case KindTimeout:
			return "authentication service did not answer in time"
		case KindBadRequest:
			return "authentication request was malformed, check the client id"
		case KindUnauthorized:
			return "invalid client credentials, check the client id and secret"
		case KindForbidden:
			return "client is not entitled to the firefly scope"
		case KindServer:
			return "authentication service is failing, try again later"
		default:
			return "authentication failed"
		}
	}
	switch e.Kind {
	case KindNetwork:
		return "could not reach the service"
	case KindTimeout:
		return "request timed out"
	case KindBadRequest:
		return "request was rejected as invalid"
	case KindUnauthorized:
		return "access token was rejected"
	case KindForbidden:
		return "access to the resource is forbidden"
	case KindPayloadTooLarge:
		return "payload exceeds the size accepted by the service"
	case KindRateLimited:
		return "rate limit exceeded"
	case KindServer:
		return "service error"
	default:
		return "unexpected response"
	}
}

func statusKind(status int) Kind {
	switch {
	case status == http.StatusBadRequest:
		return KindBadRequest
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusRequestEntityTooLarge:
		return KindPayloadTooLarge
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindServer
	default:
		return KindUnexpected
	}
}

func statusError(op string, status int, body string) *Error {
	return &Error{Op: op, Kind: statusKind(status), StatusCode: status, Detail: strings.TrimSpace(body)}
}

func transportError(op string, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Op: op, Kind: KindTimeout, Err: err}
	}
	return &Error{Op: op, Kind: KindNetwork, Err: err}
}
