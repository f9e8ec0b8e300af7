package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletion_FinalAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "openai/gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleSystem, req.Messages[0].Role)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "All done."}},
			},
			"usage": map[string]any{"prompt_tokens": 42, "completion_tokens": 7, "total_tokens": 49},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)
	resp, err := client.ChatCompletion(context.Background(), Request{
		Model: "openai/gpt-4o-mini",
		Messages: []Message{
			{Role: RoleSystem, Content: "You are helpful."},
			{Role: RoleUser, Content: "hello"},
		},
	})
	require.NoError(t, err)

	assert.False(t, resp.HasToolCalls())
	assert.Equal(t, "All done.", resp.Message.Content)
	assert.Equal(t, 42, resp.Usage.PromptTokens)
	assert.Equal(t, 7, resp.Usage.CompletionTokens)
	assert.Equal(t, 49, resp.Usage.TotalTokens)
}

func TestChatCompletion_ToolCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "add_todo", req.Tools[0].Function.Name)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{
					"role": "assistant",
					"tool_calls": []map[string]any{
						{
							"id":   "call_1",
							"type": "function",
							"function": map[string]any{
								"name":      "add_todo",
								"arguments": `{"title":"buy milk"}`,
							},
						},
					},
				}},
			},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second)
	resp, err := client.ChatCompletion(context.Background(), Request{
		Model:    "openai/gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "add buy milk"}},
		Tools: []Tool{{
			Type: "function",
			Function: FunctionDefinition{
				Name:        "add_todo",
				Description: "Add a todo",
				Parameters:  map[string]any{"type": "object"},
			},
		}},
	})
	require.NoError(t, err)

	require.True(t, resp.HasToolCalls())
	call := resp.Message.ToolCalls[0]
	assert.Equal(t, "call_1", call.ID)
	assert.Equal(t, "add_todo", call.Function.Name)
	assert.JSONEq(t, `{"title":"buy milk"}`, call.Function.Arguments)
}

func TestChatCompletion_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", 5*time.Second)
	_, err := client.ChatCompletion(context.Background(), Request{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestChatCompletion_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", 5*time.Second)
	_, err := client.ChatCompletion(context.Background(), Request{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestChatCompletion_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, "key", 5*time.Second)
	_, err := client.ChatCompletion(ctx, Request{Model: "m"})
	require.Error(t, err)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("", "key", time.Second)
	assert.Equal(t, DefaultBaseURL, client.baseURL)

	client = NewClient("https://example.com/v1/", "key", time.Second)
	assert.Equal(t, "https://example.com/v1", client.baseURL)
}
