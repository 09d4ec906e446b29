package requestmeta

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsHTTPSHonorsForwardedProtoOnlyWhenTrusted(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://postcard.example/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	if IsHTTPS(req, SchemePolicy{}) {
		t.Fatal("untrusted forwarded proto treated as https")
	}
	if !IsHTTPS(req, SchemePolicy{TrustForwardedProto: true}) {
		t.Fatal("trusted forwarded proto ignored")
	}
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://postcard.example:8080/?card=abc", nil)
	if got := BaseURL(req, SchemePolicy{}).String(); got != "http://postcard.example:8080/" {
		t.Fatalf("BaseURL() = %q", got)
	}
	if got := BaseURL(nil, SchemePolicy{}).String(); got != "/" {
		t.Fatalf("BaseURL(nil) = %q", got)
	}
}

func TestResolveBaseURLPrefersConfigured(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://internal:8080/", nil)
	if got := ResolveBaseURL(req, "https://cards.example?x=1", SchemePolicy{}).String(); got != "https://cards.example/" {
		t.Fatalf("ResolveBaseURL() = %q", got)
	}
	if got := ResolveBaseURL(req, "not a url", SchemePolicy{}).String(); got != "http://internal:8080/" {
		t.Fatalf("ResolveBaseURL(invalid) = %q", got)
	}
}

func TestHasSameOriginProof(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origin  string
		referer string
		want    bool
	}{
		{name: "matching origin", origin: "http://postcard.example", want: true},
		{name: "matching referer", referer: "http://postcard.example/?card=abc", want: true},
		{name: "other host", origin: "http://evil.example", want: false},
		{name: "other scheme", origin: "https://postcard.example", want: false},
		{name: "other port", origin: "http://postcard.example:8080", want: false},
		{name: "missing", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "http://postcard.example/tutorial/seen", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if got := HasSameOriginProof(req, SchemePolicy{}); got != tc.want {
				t.Fatalf("HasSameOriginProof() = %t, want %t", got, tc.want)
			}
		})
	}
}
