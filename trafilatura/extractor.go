// Package trafilatura reads page metadata with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/brandctx"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements brandctx.MetadataExtractor at compile time.
var _ brandctx.MetadataExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to read page-level metadata.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMetadata processes raw HTML and returns its title, site name,
// description and language.
func (e *Extractor) ExtractMetadata(rawHTML string) (*brandctx.PageMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, brandctx.Errorf(brandctx.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	return &brandctx.PageMetadata{
		Title:       strings.TrimSpace(result.Metadata.Title),
		SiteName:    strings.TrimSpace(result.Metadata.Sitename),
		Description: strings.TrimSpace(result.Metadata.Description),
		Language:    strings.TrimSpace(result.Metadata.Language),
	}, nil
}
