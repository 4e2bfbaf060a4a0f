package selection

type stateKind int

const (
	stateIdle stateKind = iota
	stateMaybeSelecting
	stateSelecting
	stateComplete
)

// State is the selection interaction state machine: Idle |
// MaybeSelecting{start} | Selecting{start, current?} |
// Complete{start, end}.
type State struct {
	kind    stateKind
	start   Cell
	current *Cell
	end     Cell
}

// NewState returns a state machine starting in Idle.
func NewState() *State {
	return &State{kind: stateIdle}
}

// BeginSelection transitions directly to Selecting with the given
// anchor and no current cell yet.
func (s *State) BeginSelection(c Cell) {
	s.kind = stateSelecting
	s.start = c
	s.current = nil
}

// MaybeSelecting transitions to MaybeSelecting: a down-click received
// while a prior selection was already Complete. Disambiguates "start a
// new selection" (the user moves before releasing) from "click to
// clear" (the user releases without moving).
func (s *State) MaybeSelecting(c Cell) {
	s.kind = stateMaybeSelecting
	s.start = c
	s.current = nil
}

// UpdateSelection handles a move interaction. From Selecting it simply
// tracks the current cell; from MaybeSelecting, any move to a
// different cell than the anchor promotes it to a real Selecting.
func (s *State) UpdateSelection(c Cell) {
	switch s.kind {
	case stateSelecting:
		cc := c
		s.current = &cc
	case stateMaybeSelecting:
		if c != s.start {
			s.kind = stateSelecting
			cc := c
			s.current = &cc
		}
	}
}

// IsSelecting reports whether the state machine is actively tracking a
// pointer-down interaction (Selecting or MaybeSelecting).
func (s *State) IsSelecting() bool {
	return s.kind == stateSelecting || s.kind == stateMaybeSelecting
}

// IsComplete reports whether the last interaction finished a selection.
func (s *State) IsComplete() bool {
	return s.kind == stateComplete
}

// CompleteSelection handles an up interaction. Only the Selecting
// state can complete, and only when the release lands on a different
// cell than the anchor: MaybeSelecting (a click with no move in
// between), a release back on the anchor cell, and Idle/Complete all
// return ok=false, which callers treat as a cancellation.
func (s *State) CompleteSelection(c Cell) (start, end Cell, ok bool) {
	if s.kind != stateSelecting || c == s.start {
		return Cell{}, Cell{}, false
	}

	s.end = c
	s.kind = stateComplete

	return s.start, c, true
}

// Clear resets the state machine to Idle.
func (s *State) Clear() {
	*s = State{kind: stateIdle}
}

// Tracker pairs the interaction state machine with the Query it is
// building: a selection's active Query, if any, and the mode/trim
// preferences new selections start with. The pixel-to-cell conversion
// driving Down/Move/Up stays outside this package — callers already
// have a Cell by the time they reach here.
type Tracker struct {
	state *State
	query *Query
	mode  Mode
	trim  bool
}

// NewTracker returns a tracker starting Idle, with Block-mode
// selections that trim trailing whitespace by default.
func NewTracker() *Tracker {
	return &Tracker{state: NewState(), mode: ModeBlock, trim: true}
}

// SetMode changes the mode new selections are created with.
func (t *Tracker) SetMode(m Mode) {
	t.mode = m
}

// SetTrimTrailingWhitespace changes whether new selections trim
// trailing whitespace per line.
func (t *Tracker) SetTrimTrailingWhitespace(v bool) {
	t.trim = v
}

// Query returns the tracker's active query, if any.
func (t *Tracker) Query() (*Query, bool) {
	return t.query, t.query != nil
}

// Clear discards any active selection and query.
func (t *Tracker) Clear() {
	t.state.Clear()
	t.query = nil
}

// Down starts (or restarts) a selection at cell c.
func (t *Tracker) Down(c Cell) {
	if t.state.IsComplete() {
		t.state.MaybeSelecting(c)
	} else {
		t.state.BeginSelection(c)
	}
	t.query = NewQuery(t.mode).Start(c).WithTrimTrailingWhitespace(t.trim)
}

// Move updates the in-progress selection's current cell. A no-op
// outside an active Selecting/MaybeSelecting interaction.
func (t *Tracker) Move(c Cell) {
	if !t.state.IsSelecting() {
		return
	}
	t.state.UpdateSelection(c)
	if t.query != nil {
		t.query.End(c)
	}
}

// Up finishes the interaction at cell c. ok is false when the
// interaction canceled (e.g. a click on an already-complete selection
// with no move in between), in which case the tracker clears itself.
func (t *Tracker) Up(c Cell) (start, end Cell, ok bool) {
	start, end, ok = t.state.CompleteSelection(c)
	if !ok {
		t.Clear()
		return Cell{}, Cell{}, false
	}
	if t.query != nil {
		t.query.End(end)
	}
	return start, end, true
}
