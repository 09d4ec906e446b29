package view

import (
	"sync"
	"time"
)

// Action is the side effect a tutorial step applies to the card.
type Action string

const (
	ActionNone      Action = ""
	ActionShowFront Action = "show_front"
	ActionShowBack  Action = "show_back"
	// ActionSettle flips the card and flips it back after a delay.
	ActionSettle Action = "settle"
)

// Step is one stop of the guided tutorial.
type Step struct {
	ID      string `json:"id"`
	Target  string `json:"target"`
	TextKey string `json:"-"`
	Text    string `json:"text"`
	Action  Action `json:"action,omitempty"`
}

// Scheduler runs f after d. The returned stop func cancels a pending call.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Tour walks the tutorial steps and applies their actions to a card.
type Tour struct {
	mu        sync.Mutex
	card      *Card
	steps     []Step
	index     int
	open      bool
	closed    bool
	settle    time.Duration
	scheduler Scheduler

	settling   bool
	generation uint64
	stop       func() bool
}

// NewTour creates an open tour at the first step. A nil scheduler applies
// settle flips immediately.
func NewTour(card *Card, steps []Step, settle time.Duration, scheduler Scheduler) *Tour {
	if card == nil {
		card = NewCard(Front)
	}
	t := &Tour{
		card:      card,
		steps:     append([]Step(nil), steps...),
		settle:    settle,
		scheduler: scheduler,
		open:      len(steps) > 0,
	}
	if t.open {
		t.apply(t.steps[0].Action)
	}
	return t
}

// Open reports whether the tour overlay is showing.
func (t *Tour) Open() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// Index returns the current step index.
func (t *Tour) Index() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index
}

// Current returns the current step, if the tour is open.
func (t *Tour) Current() (Step, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return Step{}, false
	}
	return t.steps[t.index], true
}

// Next advances one step; past the last step the tour completes. It returns
// true while the tour stays open.
func (t *Tour) Next() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return false
	}
	if t.index+1 >= len(t.steps) {
		t.open = false
		return false
	}
	t.index++
	t.apply(t.steps[t.index].Action)
	return true
}

// Seek moves to step index, applying every action up to it in order.
func (t *Tour) Seek(index int) {
	for t.Index() < index && t.Next() {
	}
}

// Dismiss closes the tour early. A settle in progress still completes.
func (t *Tour) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = false
}

// Close tears the tour down; a pending settle flip is dropped.
func (t *Tour) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = false
	t.closed = true
	t.generation++
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

// apply runs with t.mu held.
func (t *Tour) apply(action Action) {
	t.flushSettle()
	switch action {
	case ActionShowFront:
		t.card.Show(Front)
	case ActionShowBack:
		t.card.Show(Back)
	case ActionSettle:
		t.card.Toggle()
		if t.scheduler == nil {
			t.card.Toggle()
			return
		}
		t.settling = true
		generation := t.generation
		t.stop = t.scheduler.AfterFunc(t.settle, func() { t.settleBack(generation) })
	}
}

// flushSettle finishes a pending settle immediately so the next action
// starts from a resting card.
func (t *Tour) flushSettle() {
	if !t.settling {
		return
	}
	t.generation++
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	t.settling = false
	t.card.Toggle()
}

func (t *Tour) settleBack(generation uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || generation != t.generation || !t.settling {
		return
	}
	t.settling = false
	t.stop = nil
	t.card.Toggle()
}
