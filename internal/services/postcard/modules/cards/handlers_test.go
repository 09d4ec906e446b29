package cards

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/louisbranch/postcard/internal/services/postcard/card"
	module "github.com/louisbranch/postcard/internal/services/postcard/module"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/visitor"
	"github.com/louisbranch/postcard/internal/services/postcard/prefs"
	"golang.org/x/net/html"
)

const testVisitorID = "6f1c2d7e-9b0a-4c55-8e3f-2a1b0c9d8e7f"

type failingStore struct{}

func (failingStore) Get(context.Context, string, string) (string, error) {
	return "", errors.New("disk on fire")
}

func (failingStore) Put(context.Context, string, string, string) error {
	return errors.New("disk on fire")
}

func (failingStore) Close() error { return nil }

func newTestHandler(t *testing.T, deps module.Dependencies) http.Handler {
	t.Helper()
	if deps.Prefs == nil {
		deps.Prefs = prefs.NewMemory()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(&bytes.Buffer{}, "", 0)
	}
	mount, err := New().Mount(deps)
	if err != nil {
		t.Fatalf("Mount() = %v", err)
	}
	if mount.Prefix != "/" {
		t.Fatalf("prefix = %q, want /", mount.Prefix)
	}
	return mount.Handler
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func withVisitor(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: testVisitorID})
	return req
}

func parseBody(t *testing.T, rr *httptest.ResponseRecorder) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(rr.Body.String()))
	if err != nil {
		t.Fatalf("html.Parse() = %v", err)
	}
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && match(node) {
			found = append(found, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func byID(doc *html.Node, id string) *html.Node {
	found := findAll(doc, func(n *html.Node) bool { return attr(n, "id") == id })
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func editableControls(doc *html.Node) []*html.Node {
	return findAll(doc, func(n *html.Node) bool {
		return (n.Data == "input" || n.Data == "textarea") && attr(n, "type") != "hidden" && !hasAttr(n, "readonly")
	})
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func namedControl(doc *html.Node, name string) *html.Node {
	found := findAll(doc, func(n *html.Node) bool { return attr(n, "name") == name })
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func TestDefaultCardRendersEditable(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, module.Dependencies{})
	rr := serve(h, httptest.NewRequest(http.MethodGet, "http://postcard.example/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	doc := parseBody(t, rr)

	message := namedControl(doc, card.FieldMessage)
	if message == nil || message.Data != "textarea" {
		t.Fatalf("message control = %v, want textarea", message)
	}
	if got := textOf(message); got != card.Default().Message {
		t.Fatalf("message = %q, want default", got)
	}
	sender := namedControl(doc, card.FieldSender)
	if sender == nil || attr(sender, "value") != "Brian Sunter" {
		t.Fatalf("sender control = %v, want Brian Sunter", sender)
	}
	if len(editableControls(doc)) < 7 {
		t.Fatalf("found %d editable controls, want all fields", len(editableControls(doc)))
	}

	var visitorCookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == visitor.CookieName {
			visitorCookie = c
		}
	}
	if visitorCookie == nil || visitorCookie.Value == "" {
		t.Fatal("expected visitor cookie on first visit")
	}
	if byID(doc, "tutorial") == nil {
		t.Fatal("expected tutorial for a new visitor")
	}
}

func TestSharedCardRendersReadOnly(t *testing.T) {
	t.Parallel()

	payload := base64.StdEncoding.EncodeToString([]byte(`{"frontImage":"https://x/img.jpg","latitude":10,"longitude":20,"message":"hi","to":"Bob","address":"Town","sender":"Alice"}`))
	h := newTestHandler(t, module.Dependencies{})
	rr := serve(h, httptest.NewRequest(http.MethodGet, "http://postcard.example/?card="+url.QueryEscape(payload), nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	doc := parseBody(t, rr)

	if controls := editableControls(doc); len(controls) != 0 {
		t.Fatalf("found %d editable controls in shared card", len(controls))
	}
	if got := strings.TrimSpace(textOf(byID(doc, "card-message"))); got != "hi" {
		t.Fatalf("message = %q, want hi", got)
	}
	address := textOf(byID(doc, "card-address"))
	for _, want := range []string{"Bob", "Town", "Alice"} {
		if !strings.Contains(address, want) {
			t.Fatalf("address = %q, want %q", address, want)
		}
	}
	maps := findAll(byID(doc, "card-stamp"), func(n *html.Node) bool { return hasAttr(n, "data-lat") })
	if len(maps) != 1 || attr(maps[0], "data-lat") != "10" || attr(maps[0], "data-lng") != "20" {
		t.Fatalf("stamp map = %v, want centered at 10,20", maps)
	}
	if byID(doc, "tutorial") != nil {
		t.Fatal("shared cards never show the tutorial")
	}
	if got := attr(byID(doc, "card-front-image"), "src"); got != "https://x/img.jpg" {
		t.Fatalf("front image = %q", got)
	}
}

func TestSharedCardHonorsZoomZero(t *testing.T) {
	t.Parallel()

	payload := base64.StdEncoding.EncodeToString([]byte(`{"latitude":25.76,"longitude":-80.19,"message":"hi"}`))
	h := newTestHandler(t, module.Dependencies{StampZoom: 0, TileURL: "https://t/{z}/{x}/{y}.png"})
	rr := serve(h, httptest.NewRequest(http.MethodGet, "http://postcard.example/?card="+url.QueryEscape(payload), nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	doc := parseBody(t, rr)

	tiles := findAll(byID(doc, "card-stamp"), func(n *html.Node) bool { return attr(n, "class") == "stamp-tile" })
	if len(tiles) != 1 {
		t.Fatalf("found %d stamp tiles, want 1", len(tiles))
	}
	if got, want := attr(tiles[0], "src"), "https://t/0/0/0.png"; got != want {
		t.Fatalf("tile src = %q, want %q", got, want)
	}
}

func TestBrokenCardFallsBackAndLogsReason(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := newTestHandler(t, module.Dependencies{Logger: log.New(&logs, "", 0)})
	req := httptest.NewRequest(http.MethodGet, "http://postcard.example/?card=%25%25%25", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rr := serve(h, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	doc := parseBody(t, rr)
	if namedControl(doc, card.FieldMessage) == nil {
		t.Fatal("expected editable default card")
	}
	if !strings.Contains(logs.String(), "card decode fallback reason=invalid_base64") {
		t.Fatalf("logs = %q, want decode fallback reason", logs.String())
	}
}

func TestTutorialGatingAcrossLoads(t *testing.T) {
	t.Parallel()

	store := prefs.NewMemory()
	h := newTestHandler(t, module.Dependencies{Prefs: store})

	first := parseBody(t, serve(h, withVisitor(httptest.NewRequest(http.MethodGet, "http://postcard.example/", nil))))
	if byID(first, "tutorial") == nil {
		t.Fatal("expected tutorial on first load")
	}

	if err := prefs.SetBool(context.Background(), store, testVisitorID, prefs.TutorialShownKey, true); err != nil {
		t.Fatalf("SetBool() = %v", err)
	}

	second := parseBody(t, serve(h, withVisitor(httptest.NewRequest(http.MethodGet, "http://postcard.example/", nil))))
	if byID(second, "tutorial") != nil {
		t.Fatal("expected no tutorial after it was seen")
	}
}

func TestTutorialStoreFailureStillShowsTutorial(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := newTestHandler(t, module.Dependencies{Prefs: failingStore{}, Logger: log.New(&logs, "", 0)})
	doc := parseBody(t, serve(h, withVisitor(httptest.NewRequest(http.MethodGet, "http://postcard.example/", nil))))

	if byID(doc, "tutorial") == nil {
		t.Fatal("expected tutorial when the flag cannot be read")
	}
	if !strings.Contains(logs.String(), "tutorial flag read failed") {
		t.Fatalf("logs = %q, want read failure", logs.String())
	}
}

func TestTutorialStepRendersServerSide(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, module.Dependencies{})
	doc := parseBody(t, serve(h, withVisitor(httptest.NewRequest(http.MethodGet, "http://postcard.example/?step=2&lang=en-US", nil))))

	overlay := byID(doc, "tutorial")
	if overlay == nil {
		t.Fatal("expected tutorial overlay")
	}
	if got := attr(overlay, "data-index"); got != "2" {
		t.Fatalf("data-index = %q, want 2", got)
	}
	if got := attr(byID(doc, "postcard"), "data-face"); got != "back" {
		t.Fatalf("face = %q, want back for the message step", got)
	}
	next := findAll(overlay, func(n *html.Node) bool { return hasAttr(n, "data-tutorial-next") })
	if len(next) != 1 {
		t.Fatalf("found %d next links, want 1", len(next))
	}
	nextURL, err := url.Parse(attr(next[0], "href"))
	if err != nil {
		t.Fatalf("parse next href: %v", err)
	}
	if got := nextURL.Query().Get("step"); got != "3" {
		t.Fatalf("next step = %q, want 3", got)
	}
	if got := nextURL.Query().Get("lang"); got != "en-US" {
		t.Fatalf("next lang = %q, want en-US", got)
	}
}

func TestSideParamFlipsSharedCard(t *testing.T) {
	t.Parallel()

	encoded, err := card.Encode(card.Default())
	if err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	h := newTestHandler(t, module.Dependencies{})
	doc := parseBody(t, serve(h, httptest.NewRequest(http.MethodGet, "http://postcard.example/?side=back&card="+url.QueryEscape(encoded), nil)))

	if got := attr(byID(doc, "postcard"), "data-face"); got != "back" {
		t.Fatalf("face = %q, want back", got)
	}
}

func TestEditFormBuildsShareLink(t *testing.T) {
	t.Parallel()

	form := url.Values{
		card.FieldFrontImage: {"https://img.example/beach.jpg"},
		card.FieldMessage:    {"Wish you were here"},
		card.FieldTo:         {"Ana"},
		card.FieldAddress:    {"1 Main St\nSpringfield"},
		card.FieldSender:     {"Bo"},
		card.FieldLatitude:   {"40.7128"},
		card.FieldLongitude:  {"-74.006"},
		sideParam:            {"back"},
	}
	req := httptest.NewRequest(http.MethodPost, "http://postcard.example/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h := newTestHandler(t, module.Dependencies{})
	rr := serve(h, withVisitor(req))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	doc := parseBody(t, rr)
	share, err := url.Parse(attr(byID(doc, "share-link"), "value"))
	if err != nil {
		t.Fatalf("parse share link: %v", err)
	}
	if share.Host != "postcard.example" {
		t.Fatalf("share host = %q", share.Host)
	}
	result := card.Decode(share.Query().Get(card.QueryParam))
	if !result.OK {
		t.Fatalf("share link reason = %q", result.Reason)
	}
	want := card.State{
		FrontImage: "https://img.example/beach.jpg",
		Latitude:   40.7128,
		Longitude:  -74.006,
		Message:    "Wish you were here",
		To:         "Ana",
		Address:    "1 Main St\nSpringfield",
		Sender:     "Bo",
	}
	if result.State != want {
		t.Fatalf("shared state = %+v, want %+v", result.State, want)
	}
	if got := attr(byID(doc, "postcard"), "data-editable"); got != "true" {
		t.Fatalf("data-editable = %q, want true", got)
	}
}

func TestEditFormRejectsBadLatitude(t *testing.T) {
	t.Parallel()

	form := url.Values{
		card.FieldMessage:  {"keep me"},
		card.FieldLatitude: {"123"},
	}
	req := httptest.NewRequest(http.MethodPost, "http://postcard.example/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h := newTestHandler(t, module.Dependencies{})
	rr := serve(h, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	doc := parseBody(t, rr)
	alerts := findAll(doc, func(n *html.Node) bool { return attr(n, "role") == "alert" })
	if len(alerts) != 1 || !strings.Contains(textOf(alerts[0]), "Latitude must be a number between -90 and 90.") {
		t.Fatalf("alerts = %v", alerts)
	}
	if got := textOf(namedControl(doc, card.FieldMessage)); got != "keep me" {
		t.Fatalf("message = %q, want submitted text kept", got)
	}
	if got := attr(namedControl(doc, card.FieldLatitude), "value"); got != "25.7617" {
		t.Fatalf("latitude = %q, want default", got)
	}
}

func TestEditFormAppliesGeolocation(t *testing.T) {
	t.Parallel()

	form := url.Values{
		geoLatitudeField:  {"-23.5505"},
		geoLongitudeField: {"-46.6333"},
	}
	req := httptest.NewRequest(http.MethodPost, "http://postcard.example/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h := newTestHandler(t, module.Dependencies{})
	doc := parseBody(t, serve(h, req))

	if got := attr(namedControl(doc, card.FieldLatitude), "value"); got != "-23.5505" {
		t.Fatalf("latitude = %q, want geolocated", got)
	}
	if got := attr(namedControl(doc, card.FieldLongitude), "value"); got != "-46.6333" {
		t.Fatalf("longitude = %q, want geolocated", got)
	}
}

func TestEncodeAPI(t *testing.T) {
	t.Parallel()

	state := card.Default()
	state.Message = "api"
	body, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("json.Marshal() = %v", err)
	}
	h := newTestHandler(t, module.Dependencies{PublicBaseURL: "https://cards.example"})
	rr := serve(h, httptest.NewRequest(http.MethodPost, "http://localhost/api/cards/encode", bytes.NewReader(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var got encodeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	result := card.Decode(got.Card)
	if !result.OK || result.State.Message != "api" || result.State.Editable {
		t.Fatalf("decoded = %+v", result)
	}
	if !strings.HasPrefix(got.URL, "https://cards.example/?card=") {
		t.Fatalf("url = %q, want configured base", got.URL)
	}
}

func TestEncodeAPIRejectsBadInput(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, module.Dependencies{})
	for name, body := range map[string]string{
		"malformed":    `{"message":`,
		"out of range": `{"latitude":91,"longitude":0}`,
	} {
		rr := serve(h, httptest.NewRequest(http.MethodPost, "http://localhost/api/cards/encode", strings.NewReader(body)))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want %d", name, rr.Code, http.StatusBadRequest)
		}
	}

	rr := serve(h, httptest.NewRequest(http.MethodGet, "http://localhost/api/cards/encode", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET encode status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestDecodeAPI(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, module.Dependencies{})
	rr := serve(h, httptest.NewRequest(http.MethodGet, "http://localhost/api/cards/decode?card=%25%25", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var got struct {
		OK     bool       `json:"ok"`
		Reason string     `json:"reason"`
		Card   card.State `json:"card"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.OK || got.Reason != string(card.ReasonBase64) {
		t.Fatalf("response = %+v, want invalid_base64", got)
	}
	if got.Card.Sender != "Brian Sunter" {
		t.Fatalf("card = %+v, want default", got.Card)
	}
}

func TestLinkPreviewUsesAbsoluteFrontImage(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, module.Dependencies{})
	doc := parseBody(t, serve(h, httptest.NewRequest(http.MethodGet, "http://postcard.example/", nil)))

	var ogImage string
	for _, meta := range findAll(doc, func(n *html.Node) bool { return n.Data == "meta" }) {
		if attr(meta, "property") == "og:image" {
			ogImage = attr(meta, "content")
		}
	}
	if ogImage != "http://postcard.example/static/front.svg" {
		t.Fatalf("og:image = %q", ogImage)
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, module.Dependencies{})
	rr := serve(h, httptest.NewRequest(http.MethodGet, "http://postcard.example/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestDescribeTruncatesLongMessages(t *testing.T) {
	t.Parallel()

	if got := describe("  hello\n  world "); got != "hello world" {
		t.Fatalf("describe() = %q", got)
	}
	long := strings.Repeat("a", descriptionLimit+10)
	if got := []rune(describe(long)); len(got) != descriptionLimit {
		t.Fatalf("describe() length = %d, want %d", len(got), descriptionLimit)
	}
}
