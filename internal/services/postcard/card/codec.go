package card

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// QueryParam carries the encoded card in share links.
const QueryParam = "card"

// Reason explains why a decode attempt produced no card.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonEmpty       Reason = "empty"
	ReasonBase64      Reason = "invalid_base64"
	ReasonJSON        Reason = "invalid_json"
	ReasonCoordinates Reason = "invalid_coordinates"
)

// DecodeResult is the outcome of decoding shared card data.
//
// When OK is false State is the zero value and Reason is set.
type DecodeResult struct {
	State  State
	OK     bool
	Reason Reason
}

func decoded(state State) DecodeResult {
	return DecodeResult{State: state.Shared(), OK: true}
}

func failed(reason Reason) DecodeResult {
	return DecodeResult{Reason: reason}
}

var errInvalidBase64 = errors.New("invalid base64 payload")

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// Encode serializes s to JSON and then to standard base64.
func Encode(s State) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal card: %w", err)
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decode turns an encoded card parameter into a read-only state.
func Decode(raw string) DecodeResult {
	value := strings.TrimSpace(raw)
	if value == "" {
		return failed(ReasonEmpty)
	}
	payload, err := decodeBase64(value)
	if err != nil {
		return failed(ReasonBase64)
	}
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || payload[0] != '{' {
		return failed(ReasonJSON)
	}
	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return failed(ReasonJSON)
	}
	if !ValidCoordinates(state.Latitude, state.Longitude) {
		return failed(ReasonCoordinates)
	}
	return decoded(state)
}

// ShareURL returns base with its query replaced by the encoded card.
func ShareURL(base *url.URL, s State) (string, error) {
	encoded, err := Encode(s)
	if err != nil {
		return "", err
	}
	link := url.URL{Path: "/"}
	if base != nil {
		link = *base
	}
	link.RawQuery = url.Values{QueryParam: {encoded}}.Encode()
	link.Fragment = ""
	return link.String(), nil
}

// FromQuery decodes the card carried by page query parameters.
//
// The single card parameter wins; otherwise the older per-field parameters
// are tried.
func FromQuery(values url.Values) DecodeResult {
	if raw := strings.TrimSpace(values.Get(QueryParam)); raw != "" {
		return Decode(raw)
	}
	return DecodeLegacy(values)
}

// Resolve returns the decoded card, or the default card when decoding fails.
func Resolve(values url.Values) (State, DecodeResult) {
	result := FromQuery(values)
	if !result.OK {
		return Default(), result
	}
	return result.State, result
}

func decodeBase64(value string) ([]byte, error) {
	// Form decoding turns '+' into ' '.
	value = strings.ReplaceAll(value, " ", "+")
	for _, enc := range encodings {
		if payload, err := enc.DecodeString(value); err == nil {
			return payload, nil
		}
	}
	return nil, errInvalidBase64
}
