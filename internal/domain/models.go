package domain

// ChatMessage is a single turn of an OpenAI-style conversation.
type ChatMessage struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// CompletionRequest is the inbound /v1/chat/completions body. Model is an
// opaque passthrough; User optionally carries a stable upstream session id.
type CompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`
	User     string        `json:"user,omitempty"`
}

// UpstreamPayload is the body posted to the Lili website-chat endpoint.
type UpstreamPayload struct {
	WorkflowID  string `json:"workflow_id"`
	SenderID    string `json:"sender_id"`
	UserMessage string `json:"user_message"`
}

// ResponseMeta is the identity shared by every event of one response:
// captured once, reused by the envelope or by all chunks of a stream.
type ResponseMeta struct {
	ID      string
	Created int64
	Model   string
}

// CompletionResponse is the one-shot chat.completion envelope.
type CompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

// Choice is the single choice of a non-streaming response.
type Choice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChunkResponse is one chat.completion.chunk streaming event.
type ChunkResponse struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []ChunkChoice `json:"choices"`
}

// ChunkChoice is the single choice of a streaming event. FinishReason is
// null on every chunk except the terminal one.
type ChunkChoice struct {
	Index        int     `json:"index"`
	Delta        Delta   `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}

// Delta carries incremental content. Role is present on the first chunk of
// a stream only; the terminal chunk marshals as an empty object.
type Delta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}
