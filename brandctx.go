// Package brandctx builds a normalized "brand context" document from a
// storefront's public pages: product catalog, featured products, policy text,
// FAQs, social handles, contact details and important links.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/) or their
// role in the extraction pipeline (extract/, llm/, pipeline/).
package brandctx
