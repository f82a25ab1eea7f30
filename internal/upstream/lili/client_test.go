package lili_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/lilibridge/internal/domain"
	"github.com/davidbz/lilibridge/internal/upstream/lili"
)

func testPayload() *domain.UpstreamPayload {
	return &domain.UpstreamPayload{
		WorkflowID:  "213",
		SenderID:    "session-42",
		UserMessage: "Hello",
	}
}

func newTestClient(t *testing.T, baseURL string) *lili.Client {
	t.Helper()

	client, err := lili.NewClient(lili.Config{
		BaseURL:    baseURL,
		WorkflowID: "213",
		Timeout:    5,
	}, nil)
	require.NoError(t, err)

	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	client, err := lili.NewClient(lili.Config{}, nil)

	require.Error(t, err)
	require.Nil(t, client)
}

func TestEndpoint_AppendsChatPath(t *testing.T) {
	client := newTestClient(t, "http://lili.local/api/")

	// Trailing slash on the base is tolerated.
	require.Equal(t, "http://lili.local/api/user-scope/website-chat/", client.Endpoint())
}

func TestSend_Success(t *testing.T) {
	var gotPath, gotAccept, gotContentType string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "  Hi there  "}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	text, err := client.Send(context.Background(), testPayload())

	require.NoError(t, err)
	require.Equal(t, "Hi there", text)
	require.Equal(t, "/user-scope/website-chat/", gotPath)
	require.Equal(t, "application/json", gotAccept)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, map[string]string{
		"workflow_id":  "213",
		"sender_id":    "session-42",
		"user_message": "Hello",
	}, gotBody)
}

func TestSend_FallsBackToErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// 200 with an "error" field: passed through as the answer text.
		_, _ = w.Write([]byte(`{"error": "workflow is paused"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	text, err := client.Send(context.Background(), testPayload())

	require.NoError(t, err)
	require.Equal(t, "workflow is paused", text)
}

func TestSend_MissingFieldsYieldEmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"something_else": 1}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	text, err := client.Send(context.Background(), testPayload())

	require.NoError(t, err)
	require.Empty(t, text)
}

func TestSend_UpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("workflow exploded"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	text, err := client.Send(context.Background(), testPayload())

	require.Empty(t, text)

	var statusErr *domain.UpstreamStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	require.Equal(t, "workflow exploded", statusErr.Body)
	require.Contains(t, err.Error(), "Lili error 500")
	require.Contains(t, err.Error(), "workflow exploded")
}

func TestSend_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>gateway page</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	text, err := client.Send(context.Background(), testPayload())

	require.Empty(t, text)

	var badResponse *domain.UpstreamBadResponseError
	require.ErrorAs(t, err, &badResponse)
	require.Equal(t, "<html>gateway page</html>", badResponse.Body)
}

func TestSend_Unreachable(t *testing.T) {
	// Grab a port that nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newTestClient(t, baseURL)

	text, err := client.Send(context.Background(), testPayload())

	require.Empty(t, text)

	var unreachable *domain.UpstreamUnreachableError
	require.ErrorAs(t, err, &unreachable)
	require.Contains(t, err.Error(), "upstream Lili request failed")
}

func TestSend_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Send(ctx, testPayload())

	var unreachable *domain.UpstreamUnreachableError
	require.ErrorAs(t, err, &unreachable)
}
