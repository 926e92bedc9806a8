package extract

import (
	"regexp"
	"strings"

	"github.com/fwojciec/brandctx"
)

var _ brandctx.SocialExtractor = (*SocialExtractor)(nil)

// SocialExtractor finds social profile links and contact tokens.
type SocialExtractor struct {
	rules []SocialRule
	email *regexp.Regexp
	phone *regexp.Regexp
}

// NewSocialExtractor creates a SocialExtractor using DefaultSocialRules,
// EmailPattern and PhonePattern.
func NewSocialExtractor() *SocialExtractor {
	return &SocialExtractor{
		rules: DefaultSocialRules,
		email: EmailPattern,
		phone: PhonePattern,
	}
}

// ExtractSocial scans every anchor for platform links and the page text for
// email addresses and phone numbers.
func (e *SocialExtractor) ExtractSocial(doc brandctx.Node) brandctx.SocialContact {
	result := brandctx.SocialContact{
		Handles: []brandctx.SocialHandle{},
		Contact: brandctx.ContactDetails{
			Emails:       []string{},
			PhoneNumbers: []string{},
		},
	}
	if doc == nil {
		return result
	}

	for _, a := range doc.Anchors() {
		href := strings.TrimSpace(a.Href)
		for _, rule := range e.rules {
			if !rule.Pattern.MatchString(href) {
				continue
			}
			if abs, ok := brandctx.AbsoluteURL(href); ok {
				result.Handles = append(result.Handles, brandctx.SocialHandle{
					Platform: rule.Platform,
					URL:      abs,
				})
			}
			break
		}
	}

	text := doc.Text()
	result.Contact.Emails = unique(e.email.FindAllString(text, -1))
	result.Contact.PhoneNumbers = unique(trimAll(e.phone.FindAllString(text, -1)))
	return result
}

// unique removes duplicates, keeping the first occurrence of each value.
func unique(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func trimAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}
