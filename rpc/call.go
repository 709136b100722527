package rpc

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/krainode/rpcbot/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ErrorKind string

const (
	KindNetworkOrCORS ErrorKind = "network_or_cors"
	KindTimeout       ErrorKind = "timeout"
	KindError         ErrorKind = "error"
)

const (
	MsgNetworkBlocked = "Network blocked (CORS or offline)."
	MsgTimedOut       = "Request timed out."
	MsgMissingURL     = "Select a chain, network, and provider or supply a custom URL."
)

// CallError is a classified failure of one bounded call. Status is set for
// non-2xx responses only.
type CallError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *CallError) Error() string {
	return e.Message
}

func (e *CallError) Unwrap() error {
	return e.Err
}

func dispatchLog() *zerolog.Event {
	return log.Debug().Func(logger.WithCategory(logger.CategoryDispatch))
}

func probeLog() *zerolog.Event {
	return log.Debug().Func(logger.WithCategory(logger.CategoryProbe))
}

// Call runs op under a fresh deadline derived from ctx. The deadline is
// released on every return path and failures come back as *CallError.
func Call[T any](ctx context.Context, timeout time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	v, err := op(callCtx)
	if err != nil {
		var zero T
		return zero, classify(callCtx, err)
	}
	return v, nil
}

func classify(ctx context.Context, err error) *CallError {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &CallError{Kind: KindTimeout, Message: err.Error(), Err: err}
	}
	if isConnectionFailure(err) {
		return &CallError{Kind: KindNetworkOrCORS, Message: err.Error(), Err: err}
	}
	return &CallError{Kind: KindError, Message: err.Error(), Err: err}
}

// isConnectionFailure reports failures where no HTTP exchange took place:
// dns, dial, reset and tls errors.
func isConnectionFailure(err error) bool {
	var (
		opErr   *net.OpError
		dnsErr  *net.DNSError
		certErr *tls.CertificateVerificationError
		authErr x509.UnknownAuthorityError
		hostErr x509.HostnameError
	)
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return true
	case errors.As(err, &certErr), errors.As(err, &authErr), errors.As(err, &hostErr):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}
	return false
}

// FriendlyMessage maps a dispatch failure onto the text shown to the user.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce *CallError
	if !errors.As(err, &ce) {
		return err.Error()
	}
	switch ce.Kind {
	case KindNetworkOrCORS:
		return MsgNetworkBlocked
	case KindTimeout:
		return MsgTimedOut
	default:
		return ce.Message
	}
}

// IsTimeout reports whether err is a classified timeout.
func IsTimeout(err error) bool {
	var ce *CallError
	return errors.As(err, &ce) && ce.Kind == KindTimeout
}
