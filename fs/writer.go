// Package fs writes brand contexts to JSON files on disk.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/brandctx"
)

// DefaultDir is the output directory used when none is configured.
const DefaultDir = "shopify_insights_output"

// MaxNameLength bounds the sanitized URL part of a file name.
const MaxNameLength = 100

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeURL turns a URL into a file-name-safe string: every
// non-alphanumeric character becomes an underscore, leading and trailing
// underscores are removed and the result is capped at MaxNameLength.
func SanitizeURL(rawURL string) string {
	name := strings.Trim(unsafeChars.ReplaceAllString(rawURL, "_"), "_")
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	return name
}

// FileName returns the output file name for a website URL.
func FileName(websiteURL string) string {
	return SanitizeURL(websiteURL) + "_insights.json"
}

// Ensure Writer implements brandctx.InsightWriter at compile time.
var _ brandctx.InsightWriter = (*Writer)(nil)

// Writer writes each insight's BrandContext to <dir>/<sanitized>_insights.json.
type Writer struct {
	dir string
}

// NewWriter creates a new Writer that writes to dir.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{dir: dir}
}

// Path returns the file path the insight for websiteURL is written to.
func (w *Writer) Path(websiteURL string) string {
	return filepath.Join(w.dir, FileName(websiteURL))
}

// WriteInsight writes the brand context as 4-space-indented JSON. The file is
// written to a temporary name first and renamed into place so readers never
// observe a partial file.
func (w *Writer) WriteInsight(ctx context.Context, insight *brandctx.Insight) error {
	if err := insight.Validate(); err != nil {
		return err
	}
	if SanitizeURL(insight.WebsiteURL) == "" {
		return brandctx.Errorf(brandctx.EINVALID, "website URL %q has no file-name-safe characters", insight.WebsiteURL)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	if err := enc.Encode(insight.Context); err != nil {
		return err
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(w.dir, ".insights-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), w.Path(insight.WebsiteURL))
}
