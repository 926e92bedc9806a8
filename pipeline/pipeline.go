// Package pipeline runs the extractors against one storefront page and
// merges their partial results into a single BrandContext.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/brandctx"
)

var _ brandctx.Analyzer = (*Pipeline)(nil)

// Pipeline orchestrates one analysis run. Fetcher and Parser are required;
// every extractor is optional and a nil extractor leaves its fields at their
// defaults.
type Pipeline struct {
	Fetcher brandctx.Fetcher
	Parser  brandctx.Parser

	Catalog   brandctx.CatalogService
	Hero      brandctx.HeroExtractor
	Links     brandctx.LinkExtractor
	Policies  brandctx.PolicyExtractor
	Narrative brandctx.NarrativeExtractor
	Social    brandctx.SocialExtractor
	Metadata  brandctx.MetadataExtractor

	Logger *slog.Logger
	Now    func() time.Time
}

// Analyze fetches websiteURL and runs every configured extractor in turn.
// Only an invalid URL or a failed page fetch is returned as an error; every
// other failure is logged and resolved to the field's default.
func (p *Pipeline) Analyze(ctx context.Context, websiteURL string) (*brandctx.Insight, error) {
	target, ok := brandctx.AbsoluteURL(websiteURL)
	if !ok {
		return nil, brandctx.Errorf(brandctx.EINVALID, "invalid website URL %q", websiteURL)
	}

	html, err := p.Fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	doc := p.Parser.Parse(html)
	bc := brandctx.NewBrandContext()

	if p.Catalog != nil {
		products, err := p.Catalog.FetchCatalog(ctx, target)
		if err != nil {
			p.warn("product_catalog", target, err)
		}
		if products != nil {
			bc.ProductCatalog = products
		}
	}

	if p.Hero != nil {
		if products := p.Hero.ExtractHeroProducts(doc); products != nil {
			if len(products) > brandctx.MaxHeroProducts {
				products = products[:brandctx.MaxHeroProducts]
			}
			bc.HeroProducts = products
		}
	}

	if p.Links != nil {
		links := p.Links.ExtractLinks(doc, target)
		maps.Copy(bc.ImportantLinks, links.ImportantLinks)
	}

	if p.Policies != nil {
		text, err := p.Policies.ExtractPolicies(ctx, doc)
		if err != nil {
			p.warn("policies", target, err)
		}
		bc.PrivacyPolicy = text.PrivacyPolicy
		bc.ReturnRefundPolicies = text.ReturnRefundPolicies
	}

	if p.Narrative != nil {
		narrative, err := p.Narrative.ExtractNarrative(ctx, doc)
		if err != nil {
			p.warn("brand_narrative", target, err)
		}
		bc.BrandTextContext = narrative.BrandText
		if narrative.FAQs != nil {
			bc.BrandFAQs = narrative.FAQs
		}
	}

	if p.Social != nil {
		social := p.Social.ExtractSocial(doc)
		if social.Handles != nil {
			bc.SocialHandles = social.Handles
		}
		if social.Contact.Emails != nil {
			bc.ContactDetails.Emails = social.Contact.Emails
		}
		if social.Contact.PhoneNumbers != nil {
			bc.ContactDetails.PhoneNumbers = social.Contact.PhoneNumbers
		}
	}

	if p.Metadata != nil {
		meta, err := p.Metadata.ExtractMetadata(html)
		if err != nil {
			p.warn("page_metadata", target, err)
		} else if meta != nil && *meta != (brandctx.PageMetadata{}) {
			bc.PageMetadata = meta
		}
	}

	return &brandctx.Insight{
		WebsiteURL: target,
		PageHash:   PageHash(html),
		Context:    bc,
		CreatedAt:  p.now(),
	}, nil
}

// PageHash returns the hex-encoded xxhash64 of the page markup.
func PageHash(html string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(html))
}

func (p *Pipeline) warn(field, url string, err error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("extraction degraded", "field", field, "url", url, "err", err)
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}
