package domain

import "context"

// UpstreamClient sends one payload to the backend chat service and returns
// the final answer text. Implementations make exactly one attempt per call;
// there is no retry policy.
type UpstreamClient interface {
	// Send posts the payload and returns the trimmed answer text.
	Send(ctx context.Context, payload *UpstreamPayload) (string, error)

	// Endpoint returns the resolved chat endpoint URL (reported by /health).
	Endpoint() string
}

// IDGenerator produces the identifiers minted per request. Injected so
// tests can supply deterministic values.
type IDGenerator interface {
	// NewSenderID generates a fresh upstream session identity.
	NewSenderID() string

	// NewResponseID generates an OpenAI-style completion id.
	NewResponseID() string
}
