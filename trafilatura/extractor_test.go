package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/brandctx"
	"github.com/fwojciec/brandctx/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storefront = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Lavender Soap Co. | Handmade soap</title>
<meta property="og:title" content="Lavender Soap Co.">
<meta property="og:site_name" content="Lavender Soap Co.">
<meta name="description" content="Small-batch soap made with lavender from our own fields.">
</head>
<body>
<nav><a href="/">Home</a><a href="/collections/all">Shop</a></nav>
<main>
<h1>About our soap</h1>
<p>We have been making cold-process soap in small batches since 2012, using lavender grown on our own farm.</p>
<p>Every bar cures for six weeks before it ships, and we never add synthetic fragrance or colour to any of our products.</p>
<p>Our packaging is plastic-free and every order ships in recycled cardboard from our workshop in the hills.</p>
</main>
<footer><a href="/pages/privacy">Privacy Policy</a></footer>
</body>
</html>`

func TestExtractor_ExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("reads meta tags", func(t *testing.T) {
		t.Parallel()

		md, err := trafilatura.NewExtractor().ExtractMetadata(storefront)

		require.NoError(t, err)
		assert.NotEmpty(t, md.Title)
		assert.Equal(t, "Lavender Soap Co.", md.SiteName)
		assert.Contains(t, md.Description, "Small-batch soap")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().ExtractMetadata("  ")

		assert.Equal(t, brandctx.EINVALID, brandctx.ErrorCode(err))
	})
}
