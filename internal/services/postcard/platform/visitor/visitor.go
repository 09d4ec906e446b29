// Package visitor identifies anonymous browsers with a long-lived cookie.
package visitor

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/postcard/internal/services/postcard/platform/requestmeta"
)

// CookieName stores the visitor id.
const CookieName = "pc_visitor"

const cookieMaxAge = 365 * 24 * time.Hour

// Read returns the visitor id carried by the request, if valid.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return "", false
	}
	id, err := uuid.Parse(strings.TrimSpace(cookie.Value))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Ensure returns the request's visitor id, issuing a new cookie when absent.
func Ensure(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) string {
	if id, ok := Read(r); ok {
		return id
	}
	id := uuid.NewString()
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(cookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   requestmeta.IsHTTPS(r, policy),
			SameSite: http.SameSiteLaxMode,
		})
	}
	return id
}
