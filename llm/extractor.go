package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/brandctx"
)

const (
	// MaxInputChars bounds the page text sent with a single request.
	MaxInputChars = 4000

	// DefaultMaxTokens bounds the length of a single reply.
	DefaultMaxTokens = 512
)

// Reply field names requested by the prompts.
const (
	FieldPrivacyPolicy      = "privacy_policy_content"
	FieldReturnRefundPolicy = "return_refund_policies_content"
	FieldBrandText          = "brand_text_context"
	FieldBrandFAQs          = "brand_faqs"
)

// PolicySystemPrompt instructs the generator to extract policy prose.
const PolicySystemPrompt = "Extract 'Privacy Policy' and 'Return/Refund Policy' content. " +
	"Output JSON with '" + FieldPrivacyPolicy + "' and '" + FieldReturnRefundPolicy + "'. " +
	"Use null if not found. Ensure JSON is perfect."

// NarrativeSystemPrompt instructs the generator to extract the brand
// narrative and FAQs.
const NarrativeSystemPrompt = "Extract brand's 'About Us' text and any FAQs with answers. " +
	"Output JSON with '" + FieldBrandText + "' (string) and '" + FieldBrandFAQs + "' (array of {question, answer}). " +
	"Use null for text context and empty array for FAQs if not found. Ensure JSON is perfect."

var (
	_ brandctx.PolicyExtractor    = (*Extractor)(nil)
	_ brandctx.NarrativeExtractor = (*Extractor)(nil)
)

// Extractor implements the generative extractors on top of a Generator.
type Extractor struct {
	gen       brandctx.Generator
	maxTokens int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxTokens sets the reply token bound for every request.
func WithMaxTokens(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// NewExtractor creates an Extractor backed by gen.
func NewExtractor(gen brandctx.Generator, opts ...Option) *Extractor {
	e := &Extractor{gen: gen, maxTokens: DefaultMaxTokens}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPolicies asks for policy prose over the text of the whole page.
func (e *Extractor) ExtractPolicies(ctx context.Context, doc brandctx.Node) (brandctx.PolicyText, error) {
	if doc == nil {
		return brandctx.PolicyText{}, nil
	}
	reply, err := e.ask(ctx, PolicySystemPrompt, BuildPolicyPrompt(doc.Text()))
	if err != nil {
		return brandctx.PolicyText{}, fmt.Errorf("policy extraction: %w", err)
	}
	return brandctx.PolicyText{
		PrivacyPolicy:        reply.String(FieldPrivacyPolicy),
		ReturnRefundPolicies: reply.String(FieldReturnRefundPolicy),
	}, nil
}

// ExtractNarrative asks for the brand narrative and FAQs over the text of the
// main element, or the body when there is no main element. A region with no
// visible text produces no request.
func (e *Extractor) ExtractNarrative(ctx context.Context, doc brandctx.Node) (brandctx.Narrative, error) {
	empty := brandctx.Narrative{FAQs: []brandctx.FAQItem{}}
	if doc == nil {
		return empty, nil
	}
	region := doc.First("main")
	if region == nil {
		region = doc.First("body")
	}
	if region == nil {
		return empty, nil
	}
	text := strings.TrimSpace(region.Text())
	if text == "" {
		return empty, nil
	}

	reply, err := e.ask(ctx, NarrativeSystemPrompt, BuildNarrativePrompt(text))
	if err != nil {
		return empty, fmt.Errorf("narrative extraction: %w", err)
	}
	return brandctx.Narrative{
		BrandText: reply.String(FieldBrandText),
		FAQs:      reply.FAQs(FieldBrandFAQs),
	}, nil
}

func (e *Extractor) ask(ctx context.Context, system, user string) (Reply, error) {
	raw, err := e.gen.Generate(ctx, brandctx.GenerateRequest{
		System:    system,
		User:      user,
		MaxTokens: e.maxTokens,
	})
	if err != nil {
		return nil, err
	}
	return ParseReply(raw)
}

// BuildPolicyPrompt builds the user prompt for policy extraction.
func BuildPolicyPrompt(text string) string {
	return "Extract policy content from:\n\n" + Truncate(text, MaxInputChars)
}

// BuildNarrativePrompt builds the user prompt for narrative extraction.
func BuildNarrativePrompt(text string) string {
	return "Extract brand context and FAQs from:\n\n" + Truncate(text, MaxInputChars)
}

// Truncate returns the first n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
