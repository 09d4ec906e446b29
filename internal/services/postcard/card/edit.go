package card

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Form field names used by the editable card.
const (
	FieldFrontImage = "frontImage"
	FieldLatitude   = "latitude"
	FieldLongitude  = "longitude"
	FieldMessage    = "message"
	FieldTo         = "to"
	FieldAddress    = "address"
	FieldSender     = "sender"
)

// FieldError reports a form value that could not be applied.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

// ApplyEdits returns a new editable card built from s and the submitted form.
//
// Absent fields keep the value from s.
func ApplyEdits(s State, form url.Values) (State, error) {
	next := s
	next.Editable = true
	for field, target := range map[string]*string{
		FieldFrontImage: &next.FrontImage,
		FieldMessage:    &next.Message,
		FieldTo:         &next.To,
		FieldAddress:    &next.Address,
		FieldSender:     &next.Sender,
	} {
		if values, ok := form[field]; ok && len(values) > 0 {
			// Shared links carry valid UTF-8 only.
			*target = strings.ToValidUTF8(values[0], "\uFFFD")
		}
	}
	next.FrontImage = strings.TrimSpace(next.FrontImage)
	if next.FrontImage == "" {
		next.FrontImage = DefaultFrontImage
	}

	lat, err := parseCoordinate(form, FieldLatitude, next.Latitude)
	if err != nil {
		return s, err
	}
	lng, err := parseCoordinate(form, FieldLongitude, next.Longitude)
	if err != nil {
		return s, err
	}
	if lat < -90 || lat > 90 {
		return s, &FieldError{Field: FieldLatitude, Value: form.Get(FieldLatitude), Reason: "must be between -90 and 90"}
	}
	if lng < -180 || lng > 180 {
		return s, &FieldError{Field: FieldLongitude, Value: form.Get(FieldLongitude), Reason: "must be between -180 and 180"}
	}
	next.Latitude = lat
	next.Longitude = lng
	return next, nil
}

func parseCoordinate(form url.Values, field string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return fallback, &FieldError{Field: field, Value: raw, Reason: "must be a number"}
	}
	return value, nil
}
