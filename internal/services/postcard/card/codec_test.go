package card

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	input := State{
		FrontImage: "https://example.com/front.jpg",
		Latitude:   -33.8688,
		Longitude:  151.2093,
		Message:    "Wish you were here <3 & more",
		To:         "Ana",
		Address:    "1 George St\nSydney NSW",
		Sender:     "Rui",
		Editable:   true,
	}
	encoded, err := Encode(input)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	result := Decode(encoded)
	if !result.OK {
		t.Fatalf("Decode() reason = %q, want ok", result.Reason)
	}
	want := input
	want.Editable = false
	if result.State != want {
		t.Fatalf("Decode() state = %+v, want %+v", result.State, want)
	}
}

func TestEncodeOmitsEditableFlag(t *testing.T) {
	t.Parallel()

	encoded, err := Encode(Default())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	if strings.Contains(strings.ToLower(string(payload)), "editable") {
		t.Fatalf("payload leaks editable flag: %s", payload)
	}
	if Decode(encoded).State.Editable {
		t.Fatal("decoded default card is editable, want read-only")
	}
}

func TestDecodeSpecExample(t *testing.T) {
	t.Parallel()

	raw := base64.StdEncoding.EncodeToString([]byte(`{"frontImage":"https://x/img.jpg","latitude":10,"longitude":20,"message":"hi","to":"Bob","address":"Town","sender":"Alice"}`))
	result := Decode(raw)
	if !result.OK {
		t.Fatalf("Decode() reason = %q, want ok", result.Reason)
	}
	want := State{FrontImage: "https://x/img.jpg", Latitude: 10, Longitude: 20, Message: "hi", To: "Bob", Address: "Town", Sender: "Alice"}
	if result.State != want {
		t.Fatalf("Decode() state = %+v, want %+v", result.State, want)
	}
}

func TestDecodeFailures(t *testing.T) {
	t.Parallel()

	b64 := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
	tests := []struct {
		name string
		raw  string
		want Reason
	}{
		{name: "empty", raw: "", want: ReasonEmpty},
		{name: "whitespace", raw: "   ", want: ReasonEmpty},
		{name: "not base64", raw: "%%%not-base64%%%", want: ReasonBase64},
		{name: "not json", raw: b64("hello"), want: ReasonJSON},
		{name: "json null", raw: b64("null"), want: ReasonJSON},
		{name: "json array", raw: b64(`[1,2]`), want: ReasonJSON},
		{name: "truncated json", raw: b64(`{"message":"hi"`), want: ReasonJSON},
		{name: "string latitude", raw: b64(`{"latitude":"ten","longitude":20}`), want: ReasonJSON},
		{name: "latitude out of range", raw: b64(`{"latitude":91,"longitude":20}`), want: ReasonCoordinates},
		{name: "longitude out of range", raw: b64(`{"latitude":0,"longitude":-180.5}`), want: ReasonCoordinates},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := Decode(tc.raw)
			if result.OK {
				t.Fatalf("Decode(%q) ok, want failure", tc.raw)
			}
			if result.Reason != tc.want {
				t.Fatalf("Decode(%q) reason = %q, want %q", tc.raw, result.Reason, tc.want)
			}
			if result.State != (State{}) {
				t.Fatalf("Decode(%q) state = %+v, want zero", tc.raw, result.State)
			}
		})
	}
}

func TestDecodeAcceptsBase64Variants(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"message":"??>>","latitude":1,"longitude":2}`)
	for name, raw := range map[string]string{
		"std":           base64.StdEncoding.EncodeToString(payload),
		"raw std":       base64.RawStdEncoding.EncodeToString(payload),
		"url":           base64.URLEncoding.EncodeToString(payload),
		"raw url":       base64.RawURLEncoding.EncodeToString(payload),
		"plus as space": strings.ReplaceAll(base64.StdEncoding.EncodeToString(payload), "+", " "),
	} {
		result := Decode(raw)
		if !result.OK {
			t.Fatalf("%s: Decode() reason = %q, want ok", name, result.Reason)
		}
		if result.State.Message != "??>>" {
			t.Fatalf("%s: message = %q, want %q", name, result.State.Message, "??>>")
		}
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	t.Parallel()

	for name, values := range map[string]url.Values{
		"missing": {},
		"empty":   {QueryParam: {""}},
		"invalid": {QueryParam: {"!!!"}},
	} {
		state, result := Resolve(values)
		if result.OK {
			t.Fatalf("%s: Resolve() ok, want failure", name)
		}
		if state != Default() {
			t.Fatalf("%s: state = %+v, want default", name, state)
		}
		if !state.Editable {
			t.Fatalf("%s: fallback card not editable", name)
		}
	}
}

func TestShareURLReplacesQuery(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://postcard.example/?card=old&lang=en#top")
	if err != nil {
		t.Fatalf("parse base: %v", err)
	}
	state := Default()
	link, err := ShareURL(base, state)
	if err != nil {
		t.Fatalf("ShareURL() error = %v", err)
	}
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if parsed.Host != "postcard.example" || parsed.Path != "/" {
		t.Fatalf("link = %q, want postcard.example root", link)
	}
	if parsed.Fragment != "" {
		t.Fatalf("fragment = %q, want empty", parsed.Fragment)
	}
	if got := parsed.Query().Get("lang"); got != "" {
		t.Fatalf("lang = %q, want dropped", got)
	}
	result := FromQuery(parsed.Query())
	if !result.OK {
		t.Fatalf("shared link decode reason = %q", result.Reason)
	}
	if result.State != state.Shared() {
		t.Fatalf("shared state = %+v, want %+v", result.State, state.Shared())
	}
}

func TestShareURLNilBase(t *testing.T) {
	t.Parallel()

	link, err := ShareURL(nil, Default())
	if err != nil {
		t.Fatalf("ShareURL() error = %v", err)
	}
	if !strings.HasPrefix(link, "/?card=") {
		t.Fatalf("link = %q, want relative root link", link)
	}
}
