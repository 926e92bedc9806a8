package brandctx

import "context"

// HeroExtractor locates featured product cards on a page.
type HeroExtractor interface {
	// ExtractHeroProducts returns at most MaxHeroProducts products.
	ExtractHeroProducts(doc Node) []Product
}

// PolicyLinks holds the policy and informational links found on a page.
type PolicyLinks struct {
	PrivacyPolicyURL      *string
	ReturnRefundPolicyURL *string

	// ImportantLinks maps a link label (e.g. "Contact Us") to an absolute URL.
	ImportantLinks map[string]string
}

// LinkExtractor classifies policy and informational links.
type LinkExtractor interface {
	// ExtractLinks resolves matched hrefs against baseURL.
	ExtractLinks(doc Node, baseURL string) PolicyLinks
}

// SocialContact holds social profile links and contact tokens.
type SocialContact struct {
	Handles []SocialHandle
	Contact ContactDetails
}

// SocialExtractor locates social profiles, email addresses and phone numbers.
type SocialExtractor interface {
	ExtractSocial(doc Node) SocialContact
}

// PolicyText holds policy prose inferred from page text.
type PolicyText struct {
	PrivacyPolicy        *string
	ReturnRefundPolicies *string
}

// PolicyExtractor infers policy prose from free text.
type PolicyExtractor interface {
	// ExtractPolicies always returns a usable result; a non-nil error
	// explains why it is empty.
	ExtractPolicies(ctx context.Context, doc Node) (PolicyText, error)
}

// Narrative holds the brand's self-description and FAQs.
type Narrative struct {
	BrandText *string
	FAQs      []FAQItem
}

// NarrativeExtractor infers the brand narrative and FAQs from free text.
type NarrativeExtractor interface {
	// ExtractNarrative always returns a usable result; a non-nil error
	// explains why it is empty.
	ExtractNarrative(ctx context.Context, doc Node) (Narrative, error)
}

// MetadataExtractor reads page-level metadata (title, site name, etc.).
type MetadataExtractor interface {
	// ExtractMetadata processes raw HTML. The metadata comes from meta tags,
	// JSON+LD and similar page-level sources.
	ExtractMetadata(html string) (*PageMetadata, error)
}
