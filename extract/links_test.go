package extract_test

import (
	"testing"

	"github.com/fwojciec/brandctx/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves footer privacy link", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<footer><a href="/pages/privacy">Privacy Policy</a></footer>`)

		links := extract.NewLinkExtractor().ExtractLinks(doc, "https://shop.test")

		require.NotNil(t, links.PrivacyPolicyURL)
		assert.Equal(t, "https://shop.test/pages/privacy", *links.PrivacyPolicyURL)
		assert.Nil(t, links.ReturnRefundPolicyURL)
		assert.Equal(t, map[string]string{
			extract.LabelPrivacyPolicy: "https://shop.test/pages/privacy",
		}, links.ImportantLinks)
	})

	t.Run("privacy wins over other rules for the same anchor", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<footer><a href="/policies/refund-policy">Privacy and returns</a></footer>`)

		links := extract.NewLinkExtractor().ExtractLinks(doc, "https://shop.test")

		require.NotNil(t, links.PrivacyPolicyURL)
		assert.Nil(t, links.ReturnRefundPolicyURL)
		assert.Len(t, links.ImportantLinks, 1)
	})

	t.Run("classifies informational links", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<footer>
			<a href="/policies/refund-policy">Refunds</a>
			<a href="/pages/contact-us">Get in touch</a>
			<a href="/apps/order-tracking">Where is my order</a>
			<a href="/blogs/news">Latest news</a>
			<a href="/collections/all">Shop all</a>
		</footer>`)

		links := extract.NewLinkExtractor().ExtractLinks(doc, "https://shop.test/")

		require.NotNil(t, links.ReturnRefundPolicyURL)
		assert.Equal(t, "https://shop.test/policies/refund-policy", *links.ReturnRefundPolicyURL)
		assert.Equal(t, map[string]string{
			extract.LabelReturnRefund:  "https://shop.test/policies/refund-policy",
			extract.LabelContactUs:     "https://shop.test/pages/contact-us",
			extract.LabelOrderTracking: "https://shop.test/apps/order-tracking",
			extract.LabelBlog:          "https://shop.test/blogs/news",
		}, links.ImportantLinks)
	})

	t.Run("news text alone does not make a blog link", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<footer><a href="/pages/newsletter">Newsletter</a></footer>`)

		links := extract.NewLinkExtractor().ExtractLinks(doc, "https://shop.test")

		assert.Empty(t, links.ImportantLinks)
	})

	t.Run("only scans the footer when present", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<header><a href="/pages/contact">Contact</a></header>
			<footer><a href="/blogs/journal">Blog</a></footer>`)

		links := extract.NewLinkExtractor().ExtractLinks(doc, "https://shop.test")

		assert.Equal(t, map[string]string{
			extract.LabelBlog: "https://shop.test/blogs/journal",
		}, links.ImportantLinks)
	})

	t.Run("falls back to the whole document without a footer", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<nav><a href="https://shop.test/pages/contact">Contact</a></nav>`)

		links := extract.NewLinkExtractor().ExtractLinks(doc, "https://shop.test")

		assert.Equal(t, "https://shop.test/pages/contact", links.ImportantLinks[extract.LabelContactUs])
	})

	t.Run("later anchors overwrite earlier ones with the same label", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<footer>
			<a href="/pages/privacy-old">Privacy</a>
			<a href="/policies/privacy-policy">Privacy Policy</a>
		</footer>`)

		links := extract.NewLinkExtractor().ExtractLinks(doc, "https://shop.test")

		require.NotNil(t, links.PrivacyPolicyURL)
		assert.Equal(t, "https://shop.test/policies/privacy-policy", *links.PrivacyPolicyURL)
	})

	t.Run("drops links that do not resolve to http URLs", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<footer><a href="mailto:privacy@shop.test">Privacy team</a></footer>`)

		links := extract.NewLinkExtractor().ExtractLinks(doc, "https://shop.test")

		assert.Nil(t, links.PrivacyPolicyURL)
		assert.Empty(t, links.ImportantLinks)
	})

	t.Run("matches href patterns case sensitively", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<footer><a href="/pages/Contact-Us">Reach us</a></footer>`)

		links := extract.NewLinkExtractor().ExtractLinks(doc, "https://shop.test")

		assert.NotContains(t, links.ImportantLinks, "Contact Us")
	})
}

func TestLinkCondition_Matches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		condition extract.LinkCondition
		text      string
		href      string
		want      bool
	}{
		{"text only", extract.LinkCondition{Text: "blog"}, "our blog", "/x", true},
		{"href only", extract.LinkCondition{Href: "contact-us"}, "reach out", "/pages/contact-us", true},
		{"both required", extract.LinkCondition{Text: "news", Href: "/blogs/"}, "news", "/pages/news", false},
		{"both satisfied", extract.LinkCondition{Text: "news", Href: "/blogs/"}, "news", "/blogs/news", true},
		{"href is case sensitive", extract.LinkCondition{Href: "contact-us"}, "reach us", "/pages/Contact-Us", false},
		{"empty condition never matches", extract.LinkCondition{}, "anything", "/anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.condition.Matches(tt.text, tt.href))
		})
	}
}
