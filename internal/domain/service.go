package domain

import (
	"context"
	"time"

	"github.com/davidbz/lilibridge/internal/observability"
)

// AdapterService runs the translate -> upstream pipeline for one request.
// The upstream call is the only suspension point; everything after it is
// pure formatting done by the caller from the returned Result.
type AdapterService struct {
	translator *Translator
	upstream   UpstreamClient
	ids        IDGenerator
	now        func() time.Time
}

// NewAdapterService creates the adapter service (DI constructor).
func NewAdapterService(translator *Translator, upstream UpstreamClient, ids IDGenerator) *AdapterService {
	return &AdapterService{
		translator: translator,
		upstream:   upstream,
		ids:        ids,
		now:        time.Now,
	}
}

// Result is the complete upstream answer plus the response identity shared
// by every event built from it.
type Result struct {
	Meta ResponseMeta
	Text string
}

// Execute translates the request, makes the single upstream call, and mints
// the response identity. Errors pass through untouched so the HTTP layer
// can map them by kind.
func (s *AdapterService) Execute(ctx context.Context, req *CompletionRequest) (*Result, error) {
	payload, err := s.translator.Translate(req)
	if err != nil {
		return nil, err
	}

	ctx = observability.WithSenderID(ctx, payload.SenderID)
	logger := observability.FromContext(ctx)
	logger.Info("forwarding to upstream",
		observability.String("workflow_id", payload.WorkflowID),
		observability.Int("message_chars", len(payload.UserMessage)),
	)

	text, err := s.upstream.Send(ctx, payload)
	if err != nil {
		return nil, err
	}

	logger.Info("upstream answered",
		observability.Int("answer_chars", len(text)),
	)

	return &Result{
		Meta: ResponseMeta{
			ID:      s.ids.NewResponseID(),
			Created: s.now().Unix(),
			Model:   req.Model,
		},
		Text: text,
	}, nil
}
