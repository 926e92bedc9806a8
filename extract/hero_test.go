package extract_test

import (
	"testing"

	"github.com/fwojciec/brandctx"
	"github.com/fwojciec/brandctx/extract"
	"github.com/fwojciec/brandctx/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) brandctx.Node {
	t.Helper()
	return goquery.NewParser().Parse(html)
}

func TestHeroExtractor_ExtractHeroProducts(t *testing.T) {
	t.Parallel()

	t.Run("extracts title price and image from product cards", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="product-card">
			<a class="product-card__title" href="/products/tee">Classic Tee</a>
			<span class="price-item price-item--sale">$25.00</span>
			<img src="https://cdn.shop.test/tee.jpg">
		</div>`)

		products := extract.NewHeroExtractor().ExtractHeroProducts(doc)

		require.Len(t, products, 1)
		assert.Equal(t, "Classic Tee", products[0].Title)
		require.NotNil(t, products[0].Price)
		assert.Equal(t, "$25.00", *products[0].Price)
		require.NotNil(t, products[0].ImageSrc)
		assert.Equal(t, "https://cdn.shop.test/tee.jpg", *products[0].ImageSrc)
		assert.Nil(t, products[0].Description)
	})

	t.Run("returns at most three products", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `
			<div class="grid__item"><h3 class="product-title">One</h3></div>
			<div class="grid__item"><h3 class="product-title">Two</h3></div>
			<div class="grid__item"><h3 class="product-title">Three</h3></div>
			<div class="grid__item"><h3 class="product-title">Four</h3></div>
			<div class="grid__item"><h3 class="product-title">Five</h3></div>`)

		products := extract.NewHeroExtractor().ExtractHeroProducts(doc)

		require.Len(t, products, 3)
		assert.Equal(t, "One", products[0].Title)
		assert.Equal(t, "Three", products[2].Title)
	})

	t.Run("skips cards without a title", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `
			<div class="product-item"><span class="product-price">$5</span></div>
			<div class="product-item"><h3 class="product-title">   </h3></div>
			<div class="product-item"><h3 class="product-title">Mug</h3></div>`)

		products := extract.NewHeroExtractor().ExtractHeroProducts(doc)

		require.Len(t, products, 1)
		assert.Equal(t, "Mug", products[0].Title)
		assert.Nil(t, products[0].Price)
	})

	t.Run("counts nested title elements against the card limit", func(t *testing.T) {
		t.Parallel()

		// product-item-title contains the card token product-item, so each
		// title element is itself a card slot.
		doc := parse(t, `
			<div class="product-item"><h3 class="product-item-title">Mug</h3></div>
			<div class="product-item"><h3 class="product-item-title">Plate</h3></div>
			<div class="product-item"><h3 class="product-item-title">Bowl</h3></div>`)

		products := extract.NewHeroExtractor().ExtractHeroProducts(doc)

		require.Len(t, products, 2)
		assert.Equal(t, "Mug", products[0].Title)
		assert.Equal(t, "Plate", products[1].Title)
	})

	t.Run("drops relative image sources but keeps the product", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="product-card">
			<h3 class="product-title">Cap</h3>
			<img src="//cdn.shop.test/cap.jpg">
		</div>`)

		products := extract.NewHeroExtractor().ExtractHeroProducts(doc)

		require.Len(t, products, 1)
		assert.Equal(t, "Cap", products[0].Title)
		assert.Nil(t, products[0].ImageSrc)
	})

	t.Run("returns an empty slice when no cards exist", func(t *testing.T) {
		t.Parallel()

		products := extract.NewHeroExtractor().ExtractHeroProducts(parse(t, `<p>Welcome</p>`))

		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="product-card"><h3 class="product-title">Sock</h3></div>`)
		e := extract.NewHeroExtractor()

		assert.Equal(t, e.ExtractHeroProducts(doc), e.ExtractHeroProducts(doc))
	})
}
