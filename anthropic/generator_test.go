package anthropic_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/brandctx"
	"github.com/fwojciec/brandctx/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildParams(t *testing.T) {
	t.Parallel()

	t.Run("carries system block and zero temperature", func(t *testing.T) {
		t.Parallel()

		params := anthropic.BuildParams("claude-test", brandctx.GenerateRequest{System: "sys", User: "hi", MaxTokens: 256})

		assert.Equal(t, "claude-test", string(params.Model))
		assert.Equal(t, int64(256), params.MaxTokens)
		require.Len(t, params.System, 1)
		assert.Equal(t, "sys", params.System[0].Text)
		require.Len(t, params.Messages, 1)
		assert.True(t, params.Temperature.Valid())
		assert.Zero(t, params.Temperature.Value)
	})

	t.Run("defaults max tokens", func(t *testing.T) {
		t.Parallel()

		params := anthropic.BuildParams("claude-test", brandctx.GenerateRequest{User: "hi"})

		assert.Equal(t, int64(512), params.MaxTokens)
		assert.Empty(t, params.System)
	})
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("returns text blocks from the API", func(t *testing.T) {
		t.Parallel()

		var body map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Contains(t, r.URL.Path, "/messages")
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &body)

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":   "msg_1",
				"type": "message",
				"role": "assistant",
				"content": []map[string]any{
					{"type": "text", "text": `{"privacy_policy_content": null}`},
				},
				"model":       "claude-test",
				"stop_reason": "end_turn",
				"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
			})
		}))
		t.Cleanup(srv.Close)

		gen := anthropic.NewGenerator("test-key", []option.RequestOption{option.WithBaseURL(srv.URL)}, anthropic.WithModel("claude-test"))

		out, err := gen.Generate(context.Background(), brandctx.GenerateRequest{System: "sys", User: "hi", MaxTokens: 64})

		require.NoError(t, err)
		assert.Equal(t, `{"privacy_policy_content": null}`, out)
		assert.Equal(t, "claude-test", body["model"])
		assert.InDelta(t, 0, body["temperature"], 0)
	})

	t.Run("rejects empty prompt", func(t *testing.T) {
		t.Parallel()

		gen := anthropic.NewGenerator("test-key", nil)

		_, err := gen.Generate(context.Background(), brandctx.GenerateRequest{})

		assert.Equal(t, brandctx.EINVALID, brandctx.ErrorCode(err))
	})
}
