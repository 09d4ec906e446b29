// Package card defines postcard state and its URL encoding.
package card

import "strings"

// DefaultFrontImage is the front image served with the built-in card.
const DefaultFrontImage = "/static/front.svg"

// State is the full content of one postcard.
//
// Editable is never serialized: a shared link always opens read-only.
type State struct {
	FrontImage string  `json:"frontImage"`
	StampImage string  `json:"stampImage,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Message    string  `json:"message"`
	To         string  `json:"to"`
	Address    string  `json:"address"`
	Sender     string  `json:"sender"`
	Editable   bool    `json:"-"`
}

// Default returns the built-in editable card.
func Default() State {
	return State{
		FrontImage: DefaultFrontImage,
		Latitude:   25.7617,
		Longitude:  -80.1918,
		Message: "I feel bare. I didn't realize I wore my secrets as armor until " +
			"they were gone and now everyone sees me as I really am.",
		To:       "Shay Marie",
		Address:  "123 Suntree\nMelbourne, Fl 94107",
		Sender:   "Brian Sunter",
		Editable: true,
	}
}

// AddressLines splits the address into display lines, dropping blank ones.
func (s State) AddressLines() []string {
	raw := strings.Split(strings.ReplaceAll(s.Address, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// HasMapStamp reports whether the stamp renders as a map instead of an image.
func (s State) HasMapStamp() bool {
	return strings.TrimSpace(s.StampImage) == ""
}

// Shared returns a copy of s as a read-only card.
func (s State) Shared() State {
	s.Editable = false
	return s
}
