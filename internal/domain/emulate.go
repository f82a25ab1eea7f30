package domain

const (
	objectCompletion = "chat.completion"
	objectChunk      = "chat.completion.chunk"

	roleAssistant    = "assistant"
	finishReasonStop = "stop"
)

// NewCompletion wraps the full answer text in a one-shot envelope.
func NewCompletion(meta ResponseMeta, text string) *CompletionResponse {
	return &CompletionResponse{
		ID:      meta.ID,
		Object:  objectCompletion,
		Created: meta.Created,
		Model:   meta.Model,
		Choices: []Choice{{
			Index: 0,
			Message: ChatMessage{
				Role:    roleAssistant,
				Content: text,
			},
			FinishReason: finishReasonStop,
		}},
	}
}

// NewChunks slices text into the ordered chunk events of an emulated
// stream. The first chunk carries the assistant role in its delta, every
// pre-terminal chunk has a null finish reason, and the terminal chunk has
// an empty delta with finish reason "stop". Concatenating the delta
// contents of all chunks in order reproduces text exactly.
func NewChunks(meta ResponseMeta, text string, fragmentSize int) []*ChunkResponse {
	fragments := FragmentText(text, fragmentSize)
	chunks := make([]*ChunkResponse, 0, len(fragments)+1)

	for i, fragment := range fragments {
		delta := Delta{Content: fragment}
		if i == 0 {
			delta.Role = roleAssistant
		}

		chunks = append(chunks, &ChunkResponse{
			ID:      meta.ID,
			Object:  objectChunk,
			Created: meta.Created,
			Model:   meta.Model,
			Choices: []ChunkChoice{{
				Index:        0,
				Delta:        delta,
				FinishReason: nil,
			}},
		})
	}

	stop := finishReasonStop
	chunks = append(chunks, &ChunkResponse{
		ID:      meta.ID,
		Object:  objectChunk,
		Created: meta.Created,
		Model:   meta.Model,
		Choices: []ChunkChoice{{
			Index:        0,
			Delta:        Delta{},
			FinishReason: &stop,
		}},
	})

	return chunks
}

// FragmentText partitions text into contiguous slices of at most size
// characters. Size counts runes so a multi-byte character is never split
// across fragments. Non-positive size disables partitioning and yields the
// whole text as one fragment.
func FragmentText(text string, size int) []string {
	if size <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	fragments := make([]string, 0, (len(runes)+size-1)/size)

	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		fragments = append(fragments, string(runes[start:end]))
	}

	return fragments
}
