package brandctx

import (
	"net/url"
	"strings"
)

// AbsoluteURL reports whether raw is a syntactically valid absolute http(s)
// URL and returns its normalized form.
func AbsoluteURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Hostname() == "" {
		return "", false
	}
	return u.String(), true
}

// ResolveURL resolves href against baseURL and returns the result if it is a
// valid absolute http(s) URL.
func ResolveURL(baseURL, href string) (string, bool) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	return AbsoluteURL(base.ResolveReference(ref).String())
}
