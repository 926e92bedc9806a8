package mock

import (
	"context"

	"github.com/fwojciec/brandctx"
)

var _ brandctx.HeroExtractor = (*HeroExtractor)(nil)

// HeroExtractor is a mock implementation of brandctx.HeroExtractor.
type HeroExtractor struct {
	ExtractHeroProductsFn func(doc brandctx.Node) []brandctx.Product
}

func (e *HeroExtractor) ExtractHeroProducts(doc brandctx.Node) []brandctx.Product {
	return e.ExtractHeroProductsFn(doc)
}

var _ brandctx.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of brandctx.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(doc brandctx.Node, baseURL string) brandctx.PolicyLinks
}

func (e *LinkExtractor) ExtractLinks(doc brandctx.Node, baseURL string) brandctx.PolicyLinks {
	return e.ExtractLinksFn(doc, baseURL)
}

var _ brandctx.SocialExtractor = (*SocialExtractor)(nil)

// SocialExtractor is a mock implementation of brandctx.SocialExtractor.
type SocialExtractor struct {
	ExtractSocialFn func(doc brandctx.Node) brandctx.SocialContact
}

func (e *SocialExtractor) ExtractSocial(doc brandctx.Node) brandctx.SocialContact {
	return e.ExtractSocialFn(doc)
}

var _ brandctx.PolicyExtractor = (*PolicyExtractor)(nil)

// PolicyExtractor is a mock implementation of brandctx.PolicyExtractor.
type PolicyExtractor struct {
	ExtractPoliciesFn func(ctx context.Context, doc brandctx.Node) (brandctx.PolicyText, error)
}

func (e *PolicyExtractor) ExtractPolicies(ctx context.Context, doc brandctx.Node) (brandctx.PolicyText, error) {
	return e.ExtractPoliciesFn(ctx, doc)
}

var _ brandctx.NarrativeExtractor = (*NarrativeExtractor)(nil)

// NarrativeExtractor is a mock implementation of brandctx.NarrativeExtractor.
type NarrativeExtractor struct {
	ExtractNarrativeFn func(ctx context.Context, doc brandctx.Node) (brandctx.Narrative, error)
}

func (e *NarrativeExtractor) ExtractNarrative(ctx context.Context, doc brandctx.Node) (brandctx.Narrative, error) {
	return e.ExtractNarrativeFn(ctx, doc)
}

var _ brandctx.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of brandctx.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*brandctx.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*brandctx.PageMetadata, error) {
	return e.ExtractMetadataFn(html)
}
