package templates

import "net/http"

// ErrorPageTitle returns the document title for error pages.
func ErrorPageTitle(loc Localizer) string {
	return T(loc, "error.title")
}

func errorMessage(statusCode int, loc Localizer) string {
	switch statusCode {
	case http.StatusNotFound:
		return T(loc, "error.not_found")
	case http.StatusServiceUnavailable:
		return T(loc, "error.unavailable")
	default:
		return T(loc, "error.generic")
	}
}
