package brandctx

import "strings"

// MaxHeroProducts bounds the number of featured products in a BrandContext.
const MaxHeroProducts = 3

// UntitledProduct is the title given to catalog entries that carry none.
const UntitledProduct = "Untitled Product"

// Product is a single storefront product. Optional fields are nil when the
// source did not provide a usable value.
type Product struct {
	Title       string  `json:"title"`
	Price       *string `json:"price"`
	ImageSrc    *string `json:"image_src"`
	Description *string `json:"description"`
}

// Validate returns an error if the product contains invalid fields.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return Errorf(EINVALID, "product title required")
	}
	if p.ImageSrc != nil {
		if _, ok := AbsoluteURL(*p.ImageSrc); !ok {
			return Errorf(EINVALID, "product image must be an absolute URL")
		}
	}
	return nil
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Validate returns an error if the FAQ item contains invalid fields.
func (f *FAQItem) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return Errorf(EINVALID, "faq question required")
	}
	if strings.TrimSpace(f.Answer) == "" {
		return Errorf(EINVALID, "faq answer required")
	}
	return nil
}

// Platform identifies a social network.
type Platform string

// Supported social platforms. PlatformTwitter covers both twitter.com and x.com.
const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformYouTube   Platform = "youtube"
	PlatformLinkedIn  Platform = "linkedin"
)

// SocialHandle is a link to the brand's profile on a social platform.
type SocialHandle struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
}

// ContactDetails holds de-duplicated contact tokens in first-seen order.
type ContactDetails struct {
	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phone_numbers"`
}

// PageMetadata describes the fetched page itself.
type PageMetadata struct {
	Title       string `json:"title,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
}

// BrandContext is the aggregate description of one storefront. A missing
// field and a field that was not found are the same observable state: nil
// for optional text, empty for collections.
type BrandContext struct {
	ProductCatalog       []Product         `json:"product_catalog"`
	HeroProducts         []Product         `json:"hero_products"`
	PrivacyPolicy        *string           `json:"privacy_policy"`
	ReturnRefundPolicies *string           `json:"return_refund_policies"`
	BrandFAQs            []FAQItem         `json:"brand_faqs"`
	SocialHandles        []SocialHandle    `json:"social_handles"`
	ContactDetails       ContactDetails    `json:"contact_details"`
	BrandTextContext     *string           `json:"brand_text_context"`
	ImportantLinks       map[string]string `json:"important_links"`
	PageMetadata         *PageMetadata     `json:"page_metadata,omitempty"`
}

// NewBrandContext returns an empty BrandContext with every collection
// initialized so it serializes as [] or {} rather than null.
func NewBrandContext() *BrandContext {
	return &BrandContext{
		ProductCatalog: []Product{},
		HeroProducts:   []Product{},
		BrandFAQs:      []FAQItem{},
		SocialHandles:  []SocialHandle{},
		ContactDetails: ContactDetails{
			Emails:       []string{},
			PhoneNumbers: []string{},
		},
		ImportantLinks: map[string]string{},
	}
}

// String returns a pointer to s, or nil if s is blank.
func String(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
