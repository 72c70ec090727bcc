// Package viewdata builds the common view model embedded by every page
// template.
package viewdata

import (
	"html/template"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"

	"github.com/tanneryworkspace/website/internal/app/system/adminauth"
	"github.com/tanneryworkspace/website/internal/app/system/seo"
)

// BaseVM contains the fields shared by all page templates. Embed it in
// feature view models:
//
//	type pageVM struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName    string
	Title       string
	Description string
	Canonical   string
	CurrentPath string
	CSRFToken   string
	IsAdmin     bool
	Year        int

	// JSON-LD script blocks for the page head.
	Schema []template.HTML
}

var (
	siteName   = "The Tannery Workspace"
	baseURL    string
	seoBuilder *seo.Builder
)

// Init sets the site identity used by New. Call once at startup from
// bootstrap.
func Init(name, url string, builder *seo.Builder) {
	if name != "" {
		siteName = name
	}
	baseURL = url
	seoBuilder = builder
}

// SiteName returns the configured site name.
func SiteName() string {
	return siteName
}

// SEO returns the configured JSON-LD builder, or nil before Init.
func SEO() *seo.Builder {
	return seoBuilder
}

// New creates a BaseVM for the request. The canonical URL is derived from
// the configured base URL and the request path.
func New(r *http.Request, title, description string) BaseVM {
	path := httpnav.CurrentPath(r)
	return BaseVM{
		SiteName:    siteName,
		Title:       title,
		Description: description,
		Canonical:   baseURL + path,
		CurrentPath: path,
		CSRFToken:   csrf.Token(r),
		IsAdmin:     adminauth.IsAdmin(r),
		Year:        time.Now().Year(),
	}
}

// WithSchema appends JSON-LD blocks to the view model.
func (vm BaseVM) WithSchema(blocks ...map[string]any) BaseVM {
	for _, b := range blocks {
		vm.Schema = append(vm.Schema, seo.Script(b))
	}
	return vm
}
