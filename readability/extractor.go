// Package readability reads page metadata with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/brandctx"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements brandctx.MetadataExtractor at compile time.
var _ brandctx.MetadataExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to read page-level metadata.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMetadata processes raw HTML and returns its title, site name,
// excerpt and language.
func (e *Extractor) ExtractMetadata(rawHTML string) (*brandctx.PageMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, brandctx.Errorf(brandctx.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &brandctx.PageMetadata{
		Title:       strings.TrimSpace(article.Title),
		SiteName:    strings.TrimSpace(article.SiteName),
		Description: strings.TrimSpace(article.Excerpt),
		Language:    strings.TrimSpace(article.Language),
	}, nil
}
