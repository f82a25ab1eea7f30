package domain

import (
	"errors"
	"fmt"
)

// ErrNoUserMessage indicates the inbound history contains no user turn with
// non-blank content. Mapped to HTTP 400; the upstream is never called.
var ErrNoUserMessage = errors.New("no user message found in messages[]")

// UpstreamUnreachableError wraps a transport-level failure reaching Lili
// (DNS, timeout, connection reset). Mapped to HTTP 502.
type UpstreamUnreachableError struct {
	Err error
}

func (e *UpstreamUnreachableError) Error() string {
	return fmt.Sprintf("upstream Lili request failed: %v", e.Err)
}

func (e *UpstreamUnreachableError) Unwrap() error { return e.Err }

// UpstreamStatusError reports a non-success status from Lili. The adapter
// surfaces it as 502 regardless of the upstream's own code, so callers can
// tell adapter-originated 400s from dependency failures.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("Lili error %d: %s", e.StatusCode, e.Body)
}

// UpstreamBadResponseError reports a success status whose body is not the
// expected JSON shape. Mapped to HTTP 502 with the raw body included.
type UpstreamBadResponseError struct {
	Body string
}

func (e *UpstreamBadResponseError) Error() string {
	return fmt.Sprintf("Lili returned non-JSON: %s", e.Body)
}

// IsUpstreamError reports whether err originated from the upstream call
// rather than from request validation.
func IsUpstreamError(err error) bool {
	var unreachable *UpstreamUnreachableError
	var status *UpstreamStatusError
	var badResponse *UpstreamBadResponseError

	return errors.As(err, &unreachable) ||
		errors.As(err, &status) ||
		errors.As(err, &badResponse)
}
