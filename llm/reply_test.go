package llm_test

import (
	"testing"

	"github.com/fwojciec/brandctx"
	"github.com/fwojciec/brandctx/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line fence", "```json {\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n", `{}`},
		{"unterminated fence", "```json\n{}", "```json\n{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, llm.StripCodeFence(tt.in))
		})
	}
}

func TestParseReply(t *testing.T) {
	t.Parallel()

	t.Run("decodes fenced object", func(t *testing.T) {
		t.Parallel()

		reply, err := llm.ParseReply("```json\n{\"brand_text_context\": \"We make soap.\"}\n```")

		require.NoError(t, err)
		require.NotNil(t, reply.String("brand_text_context"))
		assert.Equal(t, "We make soap.", *reply.String("brand_text_context"))
	})

	t.Run("rejects prose", func(t *testing.T) {
		t.Parallel()

		_, err := llm.ParseReply("I could not find any policies.")

		assert.Equal(t, brandctx.EINVALID, brandctx.ErrorCode(err))
	})

	t.Run("rejects arrays", func(t *testing.T) {
		t.Parallel()

		_, err := llm.ParseReply(`[1, 2]`)

		assert.Error(t, err)
	})

	t.Run("rejects empty reply", func(t *testing.T) {
		t.Parallel()

		_, err := llm.ParseReply("   ")

		assert.Error(t, err)
	})

	t.Run("rejects literal null", func(t *testing.T) {
		t.Parallel()

		_, err := llm.ParseReply("null")

		assert.Error(t, err)
	})
}

func TestReply_String(t *testing.T) {
	t.Parallel()

	reply, err := llm.ParseReply(`{"ok": " About us ", "blank": "  ", "null_text": "null", "null": null, "number": 3}`)
	require.NoError(t, err)

	require.NotNil(t, reply.String("ok"))
	assert.Equal(t, "About us", *reply.String("ok"))
	assert.Nil(t, reply.String("blank"))
	assert.Nil(t, reply.String("null_text"))
	assert.Nil(t, reply.String("null"))
	assert.Nil(t, reply.String("number"))
	assert.Nil(t, reply.String("missing"))
}

func TestReply_FAQs(t *testing.T) {
	t.Parallel()

	t.Run("drops malformed items individually", func(t *testing.T) {
		t.Parallel()

		reply, err := llm.ParseReply(`{"brand_faqs": [
			{"question": "Do you ship abroad?", "answer": "Yes, worldwide."},
			{"question": "Missing answer"},
			"not an object",
			{"question": 7, "answer": "numeric question"},
			{"question": "  ", "answer": "blank question"},
			{"question": "Returns?", "answer": "Within 30 days."}
		]}`)
		require.NoError(t, err)

		assert.Equal(t, []brandctx.FAQItem{
			{Question: "Do you ship abroad?", Answer: "Yes, worldwide."},
			{Question: "Returns?", Answer: "Within 30 days."},
		}, reply.FAQs("brand_faqs"))
	})

	t.Run("returns empty slice when field is not an array", func(t *testing.T) {
		t.Parallel()

		reply, err := llm.ParseReply(`{"brand_faqs": "none"}`)
		require.NoError(t, err)

		faqs := reply.FAQs("brand_faqs")
		assert.NotNil(t, faqs)
		assert.Empty(t, faqs)
	})
}
