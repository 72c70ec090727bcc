package seo

import (
	"encoding/json"
	"strings"
	"testing"
)

func testBusiness() Business {
	return Business{
		Name:       "The Tannery Workspace",
		BaseURL:    "https://www.tanneryworkspace.co.uk",
		Street:     "The Tannery, Gold Hill",
		Locality:   "Shaftesbury",
		Region:     "Dorset",
		PostalCode: "SP7 8LY",
		Country:    "GB",
		Telephone:  "+44 1747 000000",
		Email:      "hello@tanneryworkspace.co.uk",
		Latitude:   51.0055,
		Longitude:  -2.1967,
	}
}

func TestLocalBusinessBlock(t *testing.T) {
	b := NewBuilder(testBusiness())
	data := b.LocalBusiness()

	if got := data["@type"]; got != "LocalBusiness" {
		t.Fatalf("@type = %v, want LocalBusiness", got)
	}
	if got := data["name"]; got != "The Tannery Workspace" {
		t.Errorf("name = %v", got)
	}
	addr, ok := data["address"].(map[string]any)
	if !ok {
		t.Fatalf("address missing or wrong type: %T", data["address"])
	}
	if got := addr["addressRegion"]; got != "Dorset" {
		t.Errorf("addressRegion = %v", got)
	}
}

func TestBreadcrumbListPositions(t *testing.T) {
	b := NewBuilder(testBusiness())
	data := b.BreadcrumbList([]Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: "Blog", URL: "/blog"},
		{Name: "Hello", URL: "/blog/hello"},
	})

	items, ok := data["itemListElement"].([]map[string]any)
	if !ok || len(items) != 3 {
		t.Fatalf("itemListElement = %#v", data["itemListElement"])
	}
	if got := items[1]["position"]; got != 2 {
		t.Errorf("second position = %v, want 2", got)
	}
	if got := items[2]["item"]; got != "https://www.tanneryworkspace.co.uk/blog/hello" {
		t.Errorf("third item URL = %v", got)
	}
}

func TestBlogPostingURL(t *testing.T) {
	b := NewBuilder(testBusiness())
	data := b.BlogPosting("Hello World", "First post.", "hello-world", "2024-01-01")

	want := "https://www.tanneryworkspace.co.uk/blog/hello-world"
	if got := data["url"]; got != want {
		t.Errorf("url = %v, want %s", got, want)
	}
	if got := data["datePublished"]; got != "2024-01-01" {
		t.Errorf("datePublished = %v", got)
	}
}

func TestEventLocationFallback(t *testing.T) {
	b := NewBuilder(testBusiness())
	data := b.Event("Open Morning", "", "open-morning", "2024-06-01", "")

	loc, ok := data["location"].(map[string]any)
	if !ok {
		t.Fatalf("location missing")
	}
	if got := loc["name"]; got != "The Tannery Workspace" {
		t.Errorf("fallback location = %v", got)
	}
}

func TestScriptMarshalsValidJSON(t *testing.T) {
	b := NewBuilder(testBusiness())
	out := string(Script(b.WebPage("About", "About us.", "/about")))

	if !strings.HasPrefix(out, `<script type="application/ld+json">`) {
		t.Fatalf("missing script open tag: %q", out)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(out, `<script type="application/ld+json">`), `</script>`)
	var decoded map[string]any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		t.Fatalf("script body not valid JSON: %v", err)
	}
	if decoded["@type"] != "WebPage" {
		t.Errorf("@type = %v", decoded["@type"])
	}
}
