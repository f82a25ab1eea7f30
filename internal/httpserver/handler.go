package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/davidbz/lilibridge/internal/config"
	"github.com/davidbz/lilibridge/internal/domain"
	"github.com/davidbz/lilibridge/internal/observability"
	"github.com/davidbz/lilibridge/internal/upstream/lili"
)

// Route labels for metrics.
const (
	routeChatCompletions = "chat_completions"
	routeHealth          = "health"
)

// Handler handles HTTP requests.
type Handler struct {
	service    *domain.AdapterService
	upstream   domain.UpstreamClient
	workflowID string
	chunkSize  int
	metrics    *observability.Metrics
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	service *domain.AdapterService,
	upstream domain.UpstreamClient,
	liliCfg *lili.Config,
	streamCfg *config.StreamConfig,
	metrics *observability.Metrics,
) *Handler {
	return &Handler{
		service:    service,
		upstream:   upstream,
		workflowID: liliCfg.WorkflowID,
		chunkSize:  streamCfg.ChunkSize,
		metrics:    metrics,
	}
}

// HandleChatCompletions processes /v1/chat/completions requests.
func (h *Handler) HandleChatCompletions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Early validation.
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse request.
	var req domain.CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if len(req.Messages) == 0 {
		h.writeError(w, http.StatusBadRequest, "messages[] must not be empty")
		return
	}

	// Inject model into context for downstream logging.
	ctx = observability.WithModel(ctx, req.Model)

	logger := observability.FromContext(ctx)
	logger.Info("chat completion request received",
		observability.String("model", req.Model),
		observability.Bool("stream", req.Stream),
	)

	// The upstream call completes before any output is produced, so no
	// error can occur after streaming starts.
	result, err := h.service.Execute(ctx, &req)
	if err != nil {
		status := errorStatus(err)
		logger.Error("chat completion failed", observability.Error(err))
		h.writeError(w, status, err.Error())
		return
	}

	if req.Stream {
		h.streamResult(ctx, w, result)
		return
	}

	logger.Info("chat completion succeeded",
		observability.String("completion_id", result.Meta.ID),
	)

	envelope := domain.NewCompletion(result.Meta, result.Text)

	w.Header().Set("Content-Type", "application/json")
	h.metrics.RecordRequest(routeChatCompletions, http.StatusOK)
	if encodeErr := json.NewEncoder(w).Encode(envelope); encodeErr != nil {
		logger.Error("failed to encode response", observability.Error(encodeErr))
		return
	}
}

// streamResult emits the emulated SSE stream for an already-complete
// answer. Emission is single-pass and forward-only; a client disconnect is
// not an application error, the remaining chunks are just abandoned.
func (h *Handler) streamResult(ctx context.Context, w http.ResponseWriter, result *domain.Result) {
	logger := observability.FromContext(ctx)
	logger.Info("stream emulation started",
		observability.String("completion_id", result.Meta.ID),
		observability.Int("chunk_size", h.chunkSize),
	)

	// Set headers for SSE.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("streaming not supported")
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	chunks := domain.NewChunks(result.Meta, result.Text, h.chunkSize)

	written := 0
	for _, chunk := range chunks {
		select {
		case <-ctx.Done():
			logger.Info("stream abandoned by client", observability.Error(ctx.Err()))
			h.metrics.AddStreamChunks(written)
			return
		default:
		}

		data, err := json.Marshal(chunk)
		if err != nil {
			logger.Error("failed to marshal chunk", observability.Error(err))
			return
		}

		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
		written++
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()

	h.metrics.AddStreamChunks(written)
	h.metrics.RecordRequest(routeChatCompletions, http.StatusOK)
	logger.Info("stream completed", observability.Int("chunks", written))
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	h.metrics.RecordRequest(routeHealth, http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"ok":            true,
		"lili_endpoint": h.upstream.Endpoint(),
		"workflow_id":   h.workflowID,
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

// HandleHome serves the embedded reference chat client.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	// The root pattern matches everything; anything but "/" is a 404.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// writeError sends the adapter's JSON error shape: {"detail": <text>}.
func (h *Handler) writeError(w http.ResponseWriter, status int, detail string) {
	h.metrics.RecordRequest(routeChatCompletions, status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

// errorStatus maps pipeline errors to HTTP statuses: validation failures
// are the adapter's fault (400), anything from the upstream is collapsed to
// 502 regardless of the upstream's own status code.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoUserMessage):
		return http.StatusBadRequest
	case domain.IsUpstreamError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
