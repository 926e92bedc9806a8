package extract

import (
	"strings"

	"github.com/fwojciec/brandctx"
)

var _ brandctx.HeroExtractor = (*HeroExtractor)(nil)

// HeroExtractor finds featured product cards by class pattern.
type HeroExtractor struct {
	rules HeroRules
	limit int
}

// NewHeroExtractor creates a HeroExtractor using DefaultHeroRules.
func NewHeroExtractor() *HeroExtractor {
	return NewHeroExtractorWithRules(DefaultHeroRules)
}

// NewHeroExtractorWithRules creates a HeroExtractor using custom rules.
func NewHeroExtractorWithRules(rules HeroRules) *HeroExtractor {
	return &HeroExtractor{rules: rules, limit: brandctx.MaxHeroProducts}
}

// ExtractHeroProducts inspects the first cards matching the card pattern and
// keeps those with a non-empty title.
func (e *HeroExtractor) ExtractHeroProducts(doc brandctx.Node) []brandctx.Product {
	products := []brandctx.Product{}
	if doc == nil {
		return products
	}

	cards := doc.FindClass(e.rules.Card)
	if len(cards) > e.limit {
		cards = cards[:e.limit]
	}

	for _, card := range cards {
		titleNode := card.FirstClass(e.rules.Title)
		if titleNode == nil {
			continue
		}
		title := strings.TrimSpace(titleNode.Text())
		if title == "" {
			continue
		}

		product := brandctx.Product{Title: title}
		if priceNode := card.FirstClass(e.rules.Price); priceNode != nil {
			product.Price = brandctx.String(strings.TrimSpace(priceNode.Text()))
		}
		if img := card.First("img"); img != nil {
			if src, ok := img.Attr("src"); ok {
				if abs, ok := brandctx.AbsoluteURL(src); ok {
					product.ImageSrc = &abs
				}
			}
		}
		products = append(products, product)
	}
	return products
}
