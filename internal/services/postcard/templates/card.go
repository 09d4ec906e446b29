package templates

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/postcard/internal/services/postcard/card"
	"github.com/louisbranch/postcard/internal/services/postcard/view"
)

// StampView describes how the stamp renders.
type StampView struct {
	// Image replaces the map for legacy cards.
	Image string
	// TileURL and the marker offsets drive the read-only map.
	TileURL string
	MarkerX float64
	MarkerY float64
	// TileTemplate and Zoom configure the interactive map.
	TileTemplate string
	Zoom         int
}

// CardPageView is the data for the postcard page body.
type CardPageView struct {
	Card      card.State
	Face      view.Face
	ShareURL  string
	Stamp     StampView
	Tutorial  TutorialView
	FormError string
}

// CardPageTitle returns the document title for a card.
func CardPageTitle(s card.State, loc Localizer) string {
	if !s.Editable && hasSender(s) {
		return T(loc, "title.shared", s.Sender)
	}
	return T(loc, "title.card")
}

func hasSender(s card.State) bool {
	return strings.TrimSpace(s.Sender) != ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
}

// markerStyle places the marker over the static tile.
func markerStyle(s StampView) templ.SafeCSS {
	return templ.SafeCSS("left:" + formatPercent(s.MarkerX) + ";top:" + formatPercent(s.MarkerY) + ";")
}
