// Package extract implements the rule-driven heuristic extractors: hero
// products, policy and informational links, social profiles and contact
// details. Every rule is data so tables can be extended without touching the
// matching code.
package extract

import (
	"regexp"
	"strings"

	"github.com/fwojciec/brandctx"
)

// HeroRules are the class patterns used to locate featured product cards.
type HeroRules struct {
	Card  *regexp.Regexp
	Title *regexp.Regexp
	Price *regexp.Regexp
}

// DefaultHeroRules match the product-card markup of common storefront themes.
var DefaultHeroRules = HeroRules{
	Card:  regexp.MustCompile(`(product-card|grid__item|product-item)`),
	Title: regexp.MustCompile(`(product-card__title|product-item-title|product-title)`),
	Price: regexp.MustCompile(`(price-item|product-card__price|product-price)`),
}

// LinkKind marks links that populate a dedicated BrandContext field.
type LinkKind int

const (
	LinkOther LinkKind = iota
	LinkPrivacy
	LinkReturnRefund
)

// LinkCondition matches an anchor when every non-empty field is a substring
// of the anchor's lower-cased text or raw href respectively.
type LinkCondition struct {
	Text string
	Href string
}

// Matches reports whether the condition holds for the given anchor. text must
// already be lower-cased; href is compared as written, so case matters.
func (c LinkCondition) Matches(text, href string) bool {
	if c.Text == "" && c.Href == "" {
		return false
	}
	if c.Text != "" && !strings.Contains(text, c.Text) {
		return false
	}
	if c.Href != "" && !strings.Contains(href, c.Href) {
		return false
	}
	return true
}

// LinkRule assigns a label to anchors matching any of its conditions.
type LinkRule struct {
	Label      string
	Kind       LinkKind
	Conditions []LinkCondition
}

// Matches reports whether any condition holds.
func (r LinkRule) Matches(text, href string) bool {
	for _, c := range r.Conditions {
		if c.Matches(text, href) {
			return true
		}
	}
	return false
}

// Important link labels.
const (
	LabelPrivacyPolicy = "Privacy Policy"
	LabelReturnRefund  = "Return/Refund Policy"
	LabelContactUs     = "Contact Us"
	LabelOrderTracking = "Order Tracking"
	LabelBlog          = "Blog"
)

// DefaultLinkRules are evaluated in order; the first matching rule wins.
var DefaultLinkRules = []LinkRule{
	{
		Label: LabelPrivacyPolicy,
		Kind:  LinkPrivacy,
		Conditions: []LinkCondition{
			{Text: "privacy"},
			{Href: "privacy-policy"},
		},
	},
	{
		Label: LabelReturnRefund,
		Kind:  LinkReturnRefund,
		Conditions: []LinkCondition{
			{Text: "return"},
			{Text: "refund"},
			{Href: "return-policy"},
			{Href: "refund-policy"},
		},
	},
	{
		Label: LabelContactUs,
		Conditions: []LinkCondition{
			{Text: "contact"},
			{Href: "contact-us"},
		},
	},
	{
		Label: LabelOrderTracking,
		Conditions: []LinkCondition{
			{Text: "track"},
			{Href: "order-tracking"},
		},
	},
	{
		Label: LabelBlog,
		Conditions: []LinkCondition{
			{Text: "blog"},
			{Text: "news", Href: "/blogs/"},
		},
	},
}

// SocialRule recognizes profile links of one platform.
type SocialRule struct {
	Platform brandctx.Platform
	Pattern  *regexp.Regexp
}

// hostPattern matches absolute or protocol-relative URLs whose host is one of
// domains or a subdomain of it.
func hostPattern(domains ...string) *regexp.Regexp {
	quoted := make([]string, len(domains))
	for i, d := range domains {
		quoted[i] = regexp.QuoteMeta(d)
	}
	return regexp.MustCompile(`(?i)^(?:https?:)?//(?:[a-z0-9-]+\.)*(?:` +
		strings.Join(quoted, "|") + `)(?:[:/?#]|$)`)
}

// DefaultSocialRules are evaluated in order; the first matching rule wins.
var DefaultSocialRules = []SocialRule{
	{Platform: brandctx.PlatformInstagram, Pattern: hostPattern("instagram.com")},
	{Platform: brandctx.PlatformFacebook, Pattern: hostPattern("facebook.com")},
	{Platform: brandctx.PlatformTikTok, Pattern: hostPattern("tiktok.com")},
	{Platform: brandctx.PlatformTwitter, Pattern: hostPattern("twitter.com", "x.com")},
	{Platform: brandctx.PlatformYouTube, Pattern: hostPattern("youtube.com")},
	{Platform: brandctx.PlatformLinkedIn, Pattern: hostPattern("linkedin.com")},
}

var (
	// EmailPattern matches email addresses in free text.
	EmailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// PhonePattern matches phone-number-like digit groups in free text. It
	// over-matches long digit runs.
	PhonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\(?\d{3}\)?[-.\s]?)?(\d{3}[-.\s]?\d{4})`)
)
