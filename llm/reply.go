// Package llm turns free page text into policy prose, brand narrative and
// FAQs by prompting a brandctx.Generator and validating its JSON replies.
package llm

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/brandctx"
)

// StripCodeFence removes a surrounding Markdown code fence (with an optional
// language tag such as "json") from s.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if i := strings.IndexByte(body, '\n'); i >= 0 && !strings.ContainsAny(body[:i], "{[") {
		body = body[i+1:]
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	return strings.TrimSpace(body)
}

// Reply is a decoded JSON object returned by a generator. Accessors validate
// one field at a time so a malformed field never discards its neighbours.
type Reply map[string]any

// ParseReply strips a code fence and decodes the remaining JSON object.
func ParseReply(raw string) (Reply, error) {
	body := StripCodeFence(raw)
	if body == "" {
		return nil, brandctx.Errorf(brandctx.EINVALID, "empty reply")
	}
	var reply Reply
	if err := json.Unmarshal([]byte(body), &reply); err != nil {
		return nil, brandctx.Errorf(brandctx.EINVALID, "reply is not a JSON object: %v", err)
	}
	if reply == nil {
		return nil, brandctx.Errorf(brandctx.EINVALID, "reply is not a JSON object")
	}
	return reply, nil
}

// String returns the named field if it is a non-blank string other than the
// literal "null".
func (r Reply) String(key string) *string {
	v, ok := r[key].(string)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "null") {
		return nil
	}
	return brandctx.String(v)
}

// Array returns the named field if it is a JSON array.
func (r Reply) Array(key string) []any {
	v, _ := r[key].([]any)
	return v
}

// FAQs returns the valid question/answer objects of the named array field.
// Invalid items are dropped individually.
func (r Reply) FAQs(key string) []brandctx.FAQItem {
	faqs := []brandctx.FAQItem{}
	for _, item := range r.Array(key) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		q, qok := obj["question"].(string)
		a, aok := obj["answer"].(string)
		if !qok || !aok {
			continue
		}
		faq := brandctx.FAQItem{Question: strings.TrimSpace(q), Answer: strings.TrimSpace(a)}
		if faq.Validate() != nil {
			continue
		}
		faqs = append(faqs, faq)
	}
	return faqs
}
