package domain

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator is the production IDGenerator.
type UUIDGenerator struct{}

// NewSenderID generates a random UUID session identity.
func (UUIDGenerator) NewSenderID() string {
	return uuid.NewString()
}

// NewResponseID generates "chatcmpl-" followed by 32 hex characters.
func (UUIDGenerator) NewResponseID() string {
	id := uuid.New()
	return "chatcmpl-" + hex.EncodeToString(id[:])
}

// Translator derives upstream payloads from inbound requests. The workflow
// id is process-wide configuration, never taken from the request.
type Translator struct {
	workflowID string
	ids        IDGenerator
}

// NewTranslator creates a request translator.
func NewTranslator(workflowID string, ids IDGenerator) *Translator {
	return &Translator{
		workflowID: workflowID,
		ids:        ids,
	}
}

// Translate builds the upstream payload or fails with ErrNoUserMessage.
// A caller that never supplies a stable User hint gets a fresh sender id on
// every request, so the upstream keeps no cross-turn memory for it. That is
// intended behavior, not something to paper over here.
func (t *Translator) Translate(req *CompletionRequest) (*UpstreamPayload, error) {
	text, ok := LastUserMessage(req.Messages)
	if !ok {
		return nil, ErrNoUserMessage
	}

	senderID := strings.TrimSpace(req.User)
	if senderID == "" {
		senderID = t.ids.NewSenderID()
	}

	return &UpstreamPayload{
		WorkflowID:  t.workflowID,
		SenderID:    senderID,
		UserMessage: text,
	}, nil
}

// LastUserMessage scans messages newest-first and returns the trimmed
// content of the most recent user turn that has any content at all.
// Returns ok=false when no such turn exists or when the found content is
// whitespace-only.
func LastUserMessage(messages []ChatMessage) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.Role != "user" || msg.Content == "" {
			continue
		}

		text := strings.TrimSpace(msg.Content)
		if text == "" {
			return "", false
		}
		return text, true
	}

	return "", false
}
