// Package seo builds schema.org JSON-LD structured data for rendered pages.
package seo

import (
	"encoding/json"
	"fmt"
	"html/template"
)

// Business describes the workspace for LocalBusiness markup. Configured
// once at startup from AppConfig.
type Business struct {
	Name       string
	BaseURL    string
	Street     string
	Locality   string
	Region     string
	PostalCode string
	Country    string
	Telephone  string
	Email      string
	Latitude   float64
	Longitude  float64
}

// LogoURL returns the canonical logo location.
func (b Business) LogoURL() string {
	return b.BaseURL + "/assets/img/logo.png"
}

// Breadcrumb is one step of a breadcrumb trail.
type Breadcrumb struct {
	Name string
	URL  string
}

// Builder produces JSON-LD blocks for one configured business.
type Builder struct {
	biz Business
}

// NewBuilder returns a Builder for the given business.
func NewBuilder(biz Business) *Builder {
	return &Builder{biz: biz}
}

// Script marshals data into a <script type="application/ld+json"> block.
// Marshal failures yield an empty block; structured data is never worth
// failing a page over.
func Script(data map[string]any) template.HTML {
	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return template.HTML(`<script type="application/ld+json">` + string(raw) + `</script>`)
}

// LocalBusiness returns the sitewide LocalBusiness block.
func (b *Builder) LocalBusiness() map[string]any {
	biz := b.biz
	return map[string]any{
		"@context":  "https://schema.org",
		"@type":     "LocalBusiness",
		"@id":       biz.BaseURL + "/#localbusiness",
		"name":      biz.Name,
		"url":       biz.BaseURL,
		"logo":      biz.LogoURL(),
		"telephone": biz.Telephone,
		"email":     biz.Email,
		"address":   b.postalAddress(),
		"geo": map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  biz.Latitude,
			"longitude": biz.Longitude,
		},
		"openingHoursSpecification": []map[string]any{{
			"@type":     "OpeningHoursSpecification",
			"dayOfWeek": []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
			"opens":     "08:00",
			"closes":    "18:00",
		}},
		"priceRange":         "££",
		"currenciesAccepted": "GBP",
	}
}

// WebPage returns a WebPage block for a titled page.
func (b *Builder) WebPage(title, description, path string) map[string]any {
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebPage",
		"name":        title,
		"description": description,
		"url":         b.biz.BaseURL + path,
		"isPartOf": map[string]any{
			"@type": "WebSite",
			"name":  b.biz.Name,
			"url":   b.biz.BaseURL,
		},
		"publisher": b.organization(),
	}
}

// BreadcrumbList returns a BreadcrumbList block for the given trail.
func (b *Builder) BreadcrumbList(items []Breadcrumb) map[string]any {
	elements := make([]map[string]any, len(items))
	for i, item := range items {
		elements[i] = map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     item.Name,
			"item":     b.biz.BaseURL + item.URL,
		}
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": elements,
	}
}

// BlogPosting returns a BlogPosting block for a post.
func (b *Builder) BlogPosting(title, description, slug, datePublished string) map[string]any {
	url := fmt.Sprintf("%s/blog/%s", b.biz.BaseURL, slug)
	return map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      title,
		"description":   description,
		"url":           url,
		"datePublished": datePublished,
		"dateModified":  datePublished,
		"author":        b.organization(),
		"publisher":     b.organization(),
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   url,
		},
	}
}

// Event returns an Event block. An empty location falls back to the
// business itself.
func (b *Builder) Event(name, description, slug, startDate, location string) map[string]any {
	if location == "" {
		location = b.biz.Name
	}
	return map[string]any{
		"@context":            "https://schema.org",
		"@type":               "Event",
		"name":                name,
		"description":         description,
		"url":                 fmt.Sprintf("%s/events/%s", b.biz.BaseURL, slug),
		"startDate":           startDate,
		"endDate":             startDate,
		"eventStatus":         "https://schema.org/EventScheduled",
		"eventAttendanceMode": "https://schema.org/OfflineEventAttendanceMode",
		"location": map[string]any{
			"@type":   "Place",
			"name":    location,
			"address": b.postalAddress(),
		},
		"organizer": b.organization(),
	}
}

// Service returns a Service block for a workspace offering page.
func (b *Builder) Service(name, description, path string) map[string]any {
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Service",
		"name":        name,
		"description": description,
		"url":         b.biz.BaseURL + path,
		"provider": map[string]any{
			"@type":   "LocalBusiness",
			"name":    b.biz.Name,
			"address": b.postalAddress(),
		},
	}
}

func (b *Builder) organization() map[string]any {
	return map[string]any{
		"@type": "Organization",
		"name":  b.biz.Name,
		"url":   b.biz.BaseURL,
		"logo": map[string]any{
			"@type": "ImageObject",
			"url":   b.biz.LogoURL(),
		},
	}
}

func (b *Builder) postalAddress() map[string]any {
	biz := b.biz
	return map[string]any{
		"@type":           "PostalAddress",
		"streetAddress":   biz.Street,
		"addressLocality": biz.Locality,
		"addressRegion":   biz.Region,
		"postalCode":      biz.PostalCode,
		"addressCountry":  biz.Country,
	}
}
