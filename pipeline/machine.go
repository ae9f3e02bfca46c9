package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrTerminalStatus is returned when a placed candidate is moved to rejected.
	ErrTerminalStatus = errors.New("placed candidates cannot be rejected")
	// ErrNotInPipeline is returned when a stage is set on a non-qualified candidate.
	ErrNotInPipeline = errors.New("candidate is not in the pipeline")
)

// State is the slice of a candidate record governed by the state machine.
type State struct {
	Qualified bool
	Status    Status
	Stage     *Stage
}

// Initial derives the creation state from the screening verdict.
func Initial(qualified bool) State {
	if qualified {
		stage := StageNewSubmissions
		return State{Qualified: true, Status: StatusQualified, Stage: &stage}
	}
	return State{Qualified: false, Status: StatusRejected}
}

// Valid reports whether the state satisfies the candidate invariant: qualified
// candidates hold a qualifying status and a stage, others hold no stage.
func (s State) Valid() bool {
	if s.Qualified {
		return s.Status.Qualifying() && s.Stage != nil
	}
	return s.Stage == nil
}

// WithStatus returns the state after moving to status to.
//
// Moving into a qualifying status enters the pipeline (at new_submissions when
// no stage was held); moving out of one leaves it and clears the stage.
func (s State) WithStatus(to Status) (State, error) {
	if _, err := ParseStatus(string(to)); err != nil {
		return s, err
	}
	if s.Status == StatusPlaced && to == StatusRejected {
		return s, ErrTerminalStatus
	}

	next := State{Status: to, Stage: s.Stage}
	if to.Qualifying() {
		next.Qualified = true
		if next.Stage == nil {
			stage := StageNewSubmissions
			next.Stage = &stage
		}
	} else {
		next.Qualified = false
		next.Stage = nil
	}
	return next, nil
}

// WithStage returns the state after moving to stage to. Any stage may follow
// any other; only membership and pipeline entry are checked.
func (s State) WithStage(to Stage) (State, error) {
	if _, err := ParseStage(string(to)); err != nil {
		return s, err
	}
	if !s.Qualified {
		return s, fmt.Errorf("%w: status is %s", ErrNotInPipeline, s.Status)
	}
	stage := to
	return State{Qualified: true, Status: s.Status, Stage: &stage}, nil
}
