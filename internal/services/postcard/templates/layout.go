package templates

import "strings"

const (
	leafletStylesheet = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletScript     = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

// LayoutOptions configures the page shell.
type LayoutOptions struct {
	Title       string
	Lang        string
	Description string
	// OGImage and OGURL must be absolute for link previews.
	OGImage string
	OGURL   string
	WithMap bool
}

func (o LayoutOptions) lang() string {
	if lang := strings.TrimSpace(o.Lang); lang != "" {
		return lang
	}
	return "en-US"
}
