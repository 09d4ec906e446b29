package templates

import "github.com/louisbranch/postcard/internal/services/postcard/view"

const (
	outcomeDismissed = "dismissed"
	outcomeCompleted = "completed"
)

// TutorialView is the server-rendered state of the tutorial overlay.
type TutorialView struct {
	Open  bool
	Steps []view.Step
	Index int
	// NextURL advances one step without script.
	NextURL      string
	SettleMillis int64
}

func (v TutorialView) visible() bool {
	return v.Open && len(v.Steps) > 0
}

// current clamps Index to the available steps.
func (v TutorialView) current() int {
	return min(max(v.Index, 0), len(v.Steps)-1)
}

func (v TutorialView) step() view.Step {
	return v.Steps[v.current()]
}

func (v TutorialView) last() bool {
	return v.current() == len(v.Steps)-1
}

func seenFormClass(outcome string) string {
	if outcome == outcomeCompleted {
		return "tutorial-done"
	}
	return "tutorial-skip"
}
