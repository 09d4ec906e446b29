package cards

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/louisbranch/postcard/internal/services/postcard/card"
	module "github.com/louisbranch/postcard/internal/services/postcard/module"
	apperrors "github.com/louisbranch/postcard/internal/services/postcard/platform/errors"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/requestmeta"
	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
	"github.com/louisbranch/postcard/internal/services/postcard/templates"
	"github.com/louisbranch/postcard/internal/services/postcard/view"
)

const (
	sideParam = "side"
	stepParam = "step"

	// Geolocation fields posted by the browser after the position prompt.
	geoLatitudeField  = "geo_latitude"
	geoLongitudeField = "geo_longitude"

	descriptionLimit = 160
	defaultTileURL   = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultStampZoom = 12
)

type service struct {
	prefs   prefs.Store
	logger  *log.Logger
	baseURL string
	scheme  requestmeta.SchemePolicy
	tileURL string
	zoom    int
	settle  time.Duration
	steps   func() []view.Step
}

// pageRequest is everything needed to render one card page.
type pageRequest struct {
	state     card.State
	face      view.Face
	step      int
	visitorID string
	// newVisitor skips the prefs lookup for a cookie issued on this request.
	newVisitor bool
	editErr    error
	formError  string
	// query is carried into tutorial navigation links.
	query url.Values
}

func newService(deps module.Dependencies) service {
	tileURL := strings.TrimSpace(deps.TileURL)
	if tileURL == "" {
		tileURL = defaultTileURL
	}
	zoom := deps.StampZoom
	if zoom < 0 || zoom > view.MaxZoom {
		zoom = defaultStampZoom
	}
	return service{
		prefs:   deps.Prefs,
		logger:  deps.Log(),
		baseURL: deps.PublicBaseURL,
		scheme:  deps.SchemePolicy,
		tileURL: tileURL,
		zoom:    zoom,
		settle:  deps.TutorialSettle,
		steps:   view.DefaultSteps,
	}
}

// tutorialShown reads the visitor flag. Store failures count as not shown.
func (s service) tutorialShown(ctx context.Context, visitorID string, requestID string) bool {
	if s.prefs == nil || visitorID == "" {
		return false
	}
	shown, err := prefs.Bool(ctx, s.prefs, visitorID, prefs.TutorialShownKey)
	if err != nil {
		s.logger.Printf("tutorial flag read failed visitor=%s request_id=%s err=%v", visitorID, requestID, err)
		return false
	}
	return shown
}

// buildPage resolves the view model for req. The tutorial opens only for
// editable cards whose visitor has not seen it.
func (s service) buildPage(r *http.Request, req pageRequest, requestID string, loc templates.Localizer) (templates.CardPageView, templates.LayoutOptions, error) {
	base := requestmeta.ResolveBaseURL(r, s.baseURL, s.scheme)
	shareURL, err := card.ShareURL(base, req.state)
	if err != nil {
		return templates.CardPageView{}, templates.LayoutOptions{}, apperrors.Wrap(apperrors.KindUnknown, "encode share link", err)
	}

	face := req.face
	tutorial := templates.TutorialView{}
	if req.state.Editable && (req.newVisitor || !s.tutorialShown(r.Context(), req.visitorID, requestID)) {
		tutorial, face = s.tutorialView(req, loc)
	}

	page := templates.CardPageView{
		Card:      req.state,
		Face:      face,
		ShareURL:  shareURL,
		Stamp:     s.stampView(req.state),
		Tutorial:  tutorial,
		FormError: req.formError,
	}
	layout := templates.LayoutOptions{
		Title:       templates.CardPageTitle(req.state, loc),
		Description: describe(req.state.Message),
		OGImage:     absoluteURL(base, req.state.FrontImage),
		OGURL:       shareURL,
		WithMap:     req.state.Editable && req.state.HasMapStamp(),
	}
	return page, layout, nil
}

// tutorialView walks a tour to the requested step with immediate settles,
// so the rendered face matches where the script would leave it.
func (s service) tutorialView(req pageRequest, loc templates.Localizer) (templates.TutorialView, view.Face) {
	steps := s.steps()
	for i := range steps {
		steps[i].Text = templates.T(loc, steps[i].TextKey)
	}
	flip := view.NewCard(req.face)
	tour := view.NewTour(flip, steps, s.settle, nil)
	tour.Seek(req.step)
	if !tour.Open() {
		return templates.TutorialView{}, flip.Face()
	}

	index := tour.Index()
	next := url.Values{}
	for key, values := range req.query {
		next[key] = append([]string(nil), values...)
	}
	next.Del(sideParam)
	next.Set(stepParam, strconv.Itoa(index+1))
	return templates.TutorialView{
		Open:         true,
		Steps:        steps,
		Index:        index,
		NextURL:      "/?" + next.Encode(),
		SettleMillis: s.settle.Milliseconds(),
	}, flip.Face()
}

func (s service) stampView(state card.State) templates.StampView {
	if !state.HasMapStamp() {
		return templates.StampView{Image: state.StampImage}
	}
	if state.Editable {
		return templates.StampView{TileTemplate: s.tileURL, Zoom: s.zoom}
	}
	tile := view.StampTile(state.Latitude, state.Longitude, s.zoom)
	return templates.StampView{
		TileURL: tile.URL(s.tileURL),
		MarkerX: tile.OffsetX,
		MarkerY: tile.OffsetY,
	}
}

// editState builds the card submitted by the edit form. On a field error it
// still returns the submitted text so the visitor does not lose it.
func (s service) editState(form url.Values) (card.State, error) {
	state, err := card.ApplyEdits(card.Default(), form)
	if err != nil {
		text := url.Values{}
		for key, values := range form {
			if key != card.FieldLatitude && key != card.FieldLongitude {
				text[key] = values
			}
		}
		kept, _ := card.ApplyEdits(card.Default(), text)
		return kept, fieldError(err)
	}
	if pos, ok := parseGeolocation(form); ok {
		state = card.ApplyGeolocation(state, pos)
	}
	return state, nil
}

func fieldError(err error) error {
	var field *card.FieldError
	if errors.As(err, &field) {
		switch field.Field {
		case card.FieldLatitude, card.FieldLongitude:
			return apperrors.EK(apperrors.KindInvalidInput, "error.card."+field.Field, field.Error())
		}
	}
	return apperrors.EK(apperrors.KindInvalidInput, "error.card.invalid", err.Error())
}

func parseGeolocation(form url.Values) (card.Position, bool) {
	latRaw := strings.TrimSpace(form.Get(geoLatitudeField))
	lngRaw := strings.TrimSpace(form.Get(geoLongitudeField))
	if latRaw == "" || lngRaw == "" {
		return card.Position{}, false
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return card.Position{}, false
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return card.Position{}, false
	}
	return card.Position{Latitude: lat, Longitude: lng}, true
}

func parseStep(raw string) int {
	step, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || step < 0 {
		return 0
	}
	return step
}

func describe(message string) string {
	message = strings.Join(strings.Fields(message), " ")
	if utf8.RuneCountInString(message) <= descriptionLimit {
		return message
	}
	runes := []rune(message)
	return strings.TrimSpace(string(runes[:descriptionLimit-1])) + "…"
}

// absoluteURL resolves ref against base for link previews; non-http
// references are dropped.
func absoluteURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		parsed = base.ResolveReference(parsed)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	return parsed.String()
}
