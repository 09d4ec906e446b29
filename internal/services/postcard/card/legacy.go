package card

import (
	"net/url"
	"strings"
)

// Older links carried each field separately, base64-encoded, with plain
// image URLs.
const (
	legacyMessage    = "message"
	legacyName       = "name"
	legacyTo         = "to"
	legacyStreet     = "street"
	legacyAddress    = "address"
	legacyState      = "state"
	legacyFrom       = "from"
	legacyFrontImage = "front_image"
	legacyStampImage = "stamp_image"
)

var legacyEncodedKeys = []string{
	legacyMessage, legacyName, legacyTo, legacyStreet, legacyAddress, legacyState, legacyFrom,
}

// DecodeLegacy decodes the per-field link format.
//
// name/street/state are the address lines of the earliest cards; to/address/from
// replaced them later. A field that fails base64 is treated as absent.
func DecodeLegacy(values url.Values) DecodeResult {
	fields := map[string]string{}
	present := 0
	for _, key := range legacyEncodedKeys {
		raw := strings.TrimSpace(values.Get(key))
		if raw == "" {
			continue
		}
		present++
		payload, err := decodeBase64(raw)
		if err != nil {
			continue
		}
		fields[key] = strings.TrimSpace(string(payload))
	}
	frontImage := strings.TrimSpace(values.Get(legacyFrontImage))
	stampImage := strings.TrimSpace(values.Get(legacyStampImage))

	if present == 0 && frontImage == "" && stampImage == "" {
		return failed(ReasonEmpty)
	}
	if present > 0 && len(fields) == 0 && frontImage == "" && stampImage == "" {
		return failed(ReasonBase64)
	}

	defaults := Default()
	state := State{
		FrontImage: firstNonEmpty(frontImage, defaults.FrontImage),
		StampImage: stampImage,
		Latitude:   defaults.Latitude,
		Longitude:  defaults.Longitude,
		Message:    fields[legacyMessage],
		To:         firstNonEmpty(fields[legacyTo], fields[legacyName]),
		Address:    joinLines(firstNonEmpty(fields[legacyAddress], fields[legacyStreet]), fields[legacyState]),
		Sender:     fields[legacyFrom],
	}
	return decoded(state)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func joinLines(lines ...string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
