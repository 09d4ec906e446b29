// Package weberror renders shared error responses for postcard modules.
package weberror

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/postcard/internal/services/postcard/i18n"
	apperrors "github.com/louisbranch/postcard/internal/services/postcard/platform/errors"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/httpx"
	"github.com/louisbranch/postcard/internal/services/postcard/templates"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc templates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteAppError writes a localized full-page error response.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc, lang := i18n.ResolveLocalizer(w, r)
	page := templates.Layout(templates.LayoutOptions{
		Title: templates.ErrorPageTitle(loc),
		Lang:  lang,
	})
	var body bytes.Buffer
	ctx := templ.WithChildren(httpx.RequestContext(r), templates.ErrorPage(statusCode, loc))
	if err := page.Render(ctx, &body); err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}
	_ = httpx.WriteHTML(w, statusCode, body.String())
}

// WriteModuleError writes err as a page, JSON or plain text response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	if httpx.WantsJSON(r) {
		_ = httpx.WriteJSONError(w, err)
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode)
		return
	}
	loc, _ := i18n.ResolveLocalizer(w, r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
