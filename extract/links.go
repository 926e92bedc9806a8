package extract

import (
	"strings"

	"github.com/fwojciec/brandctx"
)

var _ brandctx.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor classifies footer anchors with an ordered rule table.
type LinkExtractor struct {
	rules []LinkRule
}

// NewLinkExtractor creates a LinkExtractor using DefaultLinkRules.
func NewLinkExtractor() *LinkExtractor {
	return NewLinkExtractorWithRules(DefaultLinkRules)
}

// NewLinkExtractorWithRules creates a LinkExtractor using custom rules.
func NewLinkExtractorWithRules(rules []LinkRule) *LinkExtractor {
	return &LinkExtractor{rules: rules}
}

// ExtractLinks scans the first footer, or the whole document when there is
// none. A later anchor with the same label overwrites an earlier one.
func (e *LinkExtractor) ExtractLinks(doc brandctx.Node, baseURL string) brandctx.PolicyLinks {
	links := brandctx.PolicyLinks{ImportantLinks: map[string]string{}}
	if doc == nil {
		return links
	}

	region := doc.First("footer")
	if region == nil {
		region = doc
	}

	for _, a := range region.Anchors() {
		rule, ok := e.match(a)
		if !ok {
			continue
		}
		resolved, ok := brandctx.ResolveURL(baseURL, a.Href)
		if !ok {
			continue
		}

		links.ImportantLinks[rule.Label] = resolved
		switch rule.Kind {
		case LinkPrivacy:
			links.PrivacyPolicyURL = &resolved
		case LinkReturnRefund:
			links.ReturnRefundPolicyURL = &resolved
		}
	}
	return links
}

func (e *LinkExtractor) match(a brandctx.Anchor) (LinkRule, bool) {
	text := strings.ToLower(strings.TrimSpace(a.Text))
	for _, rule := range e.rules {
		if rule.Matches(text, a.Href) {
			return rule, true
		}
	}
	return LinkRule{}, false
}
