package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/brandctx"
	"github.com/fwojciec/brandctx/goquery"
	brandhttp "github.com/fwojciec/brandctx/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != brandhttp.CatalogPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCatalogURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://shop.test/products.json", brandhttp.CatalogURL("https://shop.test"))
	assert.Equal(t, "https://shop.test/products.json", brandhttp.CatalogURL("https://shop.test///"))
}

func TestCatalogService_FetchCatalog(t *testing.T) {
	t.Parallel()

	t.Run("maps feed products", func(t *testing.T) {
		t.Parallel()

		server := feedServer(t, http.StatusOK, `{"products":[{"title":"Shirt","variants":[{"price":"19.99"}],"images":[{"src":"https://x/y.jpg"}]}]}`)
		svc := brandhttp.NewCatalogService(goquery.NewParser())

		products, err := svc.FetchCatalog(context.Background(), server.URL+"/")

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Shirt", products[0].Title)
		require.NotNil(t, products[0].Price)
		assert.Equal(t, "19.99", *products[0].Price)
		require.NotNil(t, products[0].ImageSrc)
		assert.Equal(t, "https://x/y.jpg", *products[0].ImageSrc)
		assert.Nil(t, products[0].Description)
	})

	t.Run("fills defaults and strips description markup", func(t *testing.T) {
		t.Parallel()

		server := feedServer(t, http.StatusOK, `{"products":[
			{"title":"  ","body_html":"<p>Soft <strong>cotton</strong></p><script>x()</script>","variants":[{"price":24.5}],"images":[{"src":"/relative.jpg"}]},
			{"variants":[]},
			"not a product"
		]}`)
		svc := brandhttp.NewCatalogService(goquery.NewParser())

		products, err := svc.FetchCatalog(context.Background(), server.URL)

		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, brandctx.UntitledProduct, products[0].Title)
		require.NotNil(t, products[0].Description)
		assert.Equal(t, "Soft cotton", *products[0].Description)
		require.NotNil(t, products[0].Price)
		assert.Equal(t, "24.5", *products[0].Price)
		assert.Nil(t, products[0].ImageSrc)

		assert.Equal(t, brandctx.UntitledProduct, products[1].Title)
		assert.Nil(t, products[1].Price)
	})

	t.Run("missing products key is an empty catalog", func(t *testing.T) {
		t.Parallel()

		server := feedServer(t, http.StatusOK, `{"collections":[]}`)

		products, err := brandhttp.NewCatalogService(goquery.NewParser()).FetchCatalog(context.Background(), server.URL)

		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("invalid JSON degrades to empty catalog with error", func(t *testing.T) {
		t.Parallel()

		server := feedServer(t, http.StatusOK, `<html>not json</html>`)

		products, err := brandhttp.NewCatalogService(goquery.NewParser()).FetchCatalog(context.Background(), server.URL)

		assert.Error(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("HTTP error degrades to empty catalog with error", func(t *testing.T) {
		t.Parallel()

		server := feedServer(t, http.StatusNotFound, `{}`)

		products, err := brandhttp.NewCatalogService(goquery.NewParser()).FetchCatalog(context.Background(), server.URL)

		assert.Equal(t, brandctx.EUPSTREAM, brandctx.ErrorCode(err))
		assert.Empty(t, products)
	})

	t.Run("products that is not a list is an error", func(t *testing.T) {
		t.Parallel()

		server := feedServer(t, http.StatusOK, `{"products":{"title":"x"}}`)

		products, err := brandhttp.NewCatalogService(goquery.NewParser()).FetchCatalog(context.Background(), server.URL)

		assert.Error(t, err)
		assert.Empty(t, products)
	})
}
