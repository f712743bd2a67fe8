package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ecomai/backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.LLMConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "test-model",
		Temperature: 0.3,
		Timeout:     5,
	})
}

func TestCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "test-model",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "Hello from the model"}, "finish_reason": "stop"}
			],
			"usage": {"prompt_tokens": 5, "completion_tokens": 4, "total_tokens": 9}
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL + "/v1")
	reply := client.Complete(context.Background(), []Turn{{Role: "user", Content: "hi"}})

	assert.Equal(t, "Hello from the model", reply)
}

func TestCompleteFallbackOnHTTPError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": {"message": "boom", "type": "server_error"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL + "/v1")
	reply := client.Complete(context.Background(), []Turn{{Role: "user", Content: "hi"}})

	assert.Equal(t, FallbackReply, reply)
	// HTTP错误状态不属于连接级失败，不应重试
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCompleteRetriesOnceOnConnectionFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		// 直接断开连接，模拟连接级失败
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer server.Close()

	client := newTestClient(server.URL + "/v1")
	reply := client.Complete(context.Background(), []Turn{{Role: "user", Content: "hi"}})

	assert.Equal(t, FallbackReply, reply)
	// 连接级失败重试一次后降级
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCompleteFallbackOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL + "/v1")
	reply := client.Complete(context.Background(), []Turn{{Role: "user", Content: "hi"}})

	assert.Equal(t, FallbackReply, reply)
}

func TestCompleteNotReady(t *testing.T) {
	var client *Client
	assert.False(t, client.Ready())
	assert.Equal(t, FallbackReply, client.Complete(context.Background(), nil))
}

func TestFallbackReplyText(t *testing.T) {
	assert.Equal(t, "Sorry, there was an issue contacting the AI service.", FallbackReply)
}
