package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTagPrecedence(t *testing.T) {
	t.Run("query param wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/?lang=pt-BR", nil)
		req.Header.Set("Accept-Language", "en")
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en"})

		tag, persist := ResolveTag(req)
		if tag != language.BrazilianPortuguese {
			t.Fatalf("tag = %s, want pt-BR", tag)
		}
		if !persist {
			t.Fatal("expected persist to be true")
		}
	})

	t.Run("cookie wins over accept-language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		req.Header.Set("Accept-Language", "pt-BR")
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en-US"})

		tag, persist := ResolveTag(req)
		if tag != language.AmericanEnglish {
			t.Fatalf("tag = %s, want en-US", tag)
		}
		if persist {
			t.Fatal("expected persist to be false")
		}
	})

	t.Run("accept-language fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		req.Header.Set("Accept-Language", "pt-BR, en;q=0.9")

		if tag, _ := ResolveTag(req); tag != language.BrazilianPortuguese {
			t.Fatalf("tag = %s, want pt-BR", tag)
		}
	})

	t.Run("unsupported language uses default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		req.Header.Set("Accept-Language", "ja")

		if tag, _ := ResolveTag(req); tag != Default() {
			t.Fatalf("tag = %s, want default", tag)
		}
	})
}

func TestResolveLocalizerPersistsExplicitChoice(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/?lang=pt-BR", nil)
	printer, lang := ResolveLocalizer(rr, req)
	if lang != "pt-BR" {
		t.Fatalf("lang = %q, want pt-BR", lang)
	}
	if got := printer.Sprintf("tutorial.next"); got != "Próximo" {
		t.Fatalf("tutorial.next = %q, want Próximo", got)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookies = %+v, want pt-BR language cookie", cookies)
	}
}

func TestPrinterFormatsArguments(t *testing.T) {
	t.Parallel()

	if got := Printer(Default()).Sprintf("tutorial.progress", 2, 6); got != "Step 2 of 6" {
		t.Fatalf("tutorial.progress = %q", got)
	}
}
