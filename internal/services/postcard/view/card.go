// Package view holds the interaction state machines behind the postcard page.
//
// The browser script mirrors these types; the server uses them to pick the
// face and tutorial step a page renders with.
package view

import "strings"

// Face is the visible side of the card.
type Face int

const (
	Front Face = iota
	Back
)

// String returns the query/markup name of the face.
func (f Face) String() string {
	if f == Back {
		return "back"
	}
	return "front"
}

// ParseFace reads a face name, defaulting to Front.
func ParseFace(raw string) Face {
	if strings.EqualFold(strings.TrimSpace(raw), "back") {
		return Back
	}
	return Front
}

// Target identifies what a pointer interaction landed on.
type Target int

const (
	// TargetBody is the card surface itself.
	TargetBody Target = iota
	// TargetControl is an input, link or map nested inside the card.
	TargetControl
)

// Card tracks which face of the postcard is showing.
type Card struct {
	face Face
}

// NewCard returns a card showing face.
func NewCard(face Face) *Card {
	return &Card{face: face}
}

// Face returns the visible face.
func (c *Card) Face() Face {
	return c.face
}

// Flipped reports whether the back is showing.
func (c *Card) Flipped() bool {
	return c.face == Back
}

// Click handles a pointer interaction. Clicks on nested controls never flip.
func (c *Card) Click(target Target) {
	if target != TargetBody {
		return
	}
	c.Toggle()
}

// Toggle flips to the other face.
func (c *Card) Toggle() {
	if c.face == Front {
		c.face = Back
		return
	}
	c.face = Front
}

// Show forces face to be visible.
func (c *Card) Show(face Face) {
	c.face = face
}
