package view

// DefaultSteps returns the tutorial for a fresh editable card.
func DefaultSteps() []Step {
	return []Step{
		{ID: "front", Target: "#card-front-image", TextKey: "tutorial.front", Action: ActionShowFront},
		{ID: "flip", Target: "#postcard", TextKey: "tutorial.flip", Action: ActionSettle},
		{ID: "message", Target: "#card-message", TextKey: "tutorial.message", Action: ActionShowBack},
		{ID: "stamp", Target: "#card-stamp", TextKey: "tutorial.stamp", Action: ActionShowBack},
		{ID: "address", Target: "#card-address", TextKey: "tutorial.address", Action: ActionShowBack},
		{ID: "share", Target: "#share-link", TextKey: "tutorial.share"},
	}
}
