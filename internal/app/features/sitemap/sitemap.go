// Package sitemap serves /sitemap.xml and /robots.txt built from the
// static routes plus the published CMS content.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tanneryworkspace/website/internal/app/content"
)

// Handler builds the sitemap and robots responses.
type Handler struct {
	content *content.Service
	baseURL string
	logger  *zap.Logger
}

// NewHandler creates a new sitemap Handler. baseURL is the canonical site
// origin without a trailing slash, e.g. https://www.tanneryworkspace.co.uk.
func NewHandler(svc *content.Service, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		content: svc,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// MountRootEndpoints adds /sitemap.xml and /robots.txt on the root router.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
}

// staticPaths are the hand-written routes every sitemap includes.
var staticPaths = []string{
	"/",
	"/about",
	"/pricing",
	"/location",
	"/privacy-policy",
	"/workspace",
	"/workspace/co-working",
	"/workspace/meeting-rooms",
	"/workspace/event-space",
	"/blog",
	"/events",
	"/gallery",
	"/contact",
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// Sitemap writes the XML sitemap. CMS fetch failures collapse to empty
// collections, so a CMS outage produces a sitemap with just the static
// routes rather than an error.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, p := range staticPaths {
		set.URLs = append(set.URLs, urlEntry{Loc: h.baseURL + p})
	}
	for _, page := range h.content.ListPages(r.Context()) {
		set.URLs = append(set.URLs, urlEntry{Loc: h.baseURL + "/pages/" + page.Slug})
	}
	for _, post := range h.content.ListPosts(r.Context()) {
		set.URLs = append(set.URLs, urlEntry{
			Loc:     h.baseURL + "/blog/" + post.Slug,
			LastMod: post.Date,
		})
	}
	for _, event := range h.content.ListEvents(r.Context()) {
		set.URLs = append(set.URLs, urlEntry{Loc: h.baseURL + "/events/" + event.Slug})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	fmt.Fprint(w, xml.Header)
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		h.logger.Error("failed to encode sitemap", zap.Error(err))
	}
}

// Robots writes robots.txt. The admin area and the video API are kept out
// of crawlers; everything else is open.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nDisallow: /admin\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", h.baseURL)
}
