package pipeline

import (
	"fmt"
	"sync"
)

// Move is a speculative stage change applied to a Board before the server
// has confirmed it.
type Move struct {
	CandidateID string
	From        Stage
	To          Stage

	seq uint64
}

// Column is one board column in display order.
type Column struct {
	Stage        Stage
	CandidateIDs []string
}

type card struct {
	confirmed    Stage
	confirmedSeq uint64
	shown        Stage
	latest       uint64
	pending      bool
}

// Board is a client-side view of the pipeline that applies stage moves
// optimistically and reconciles them against the server's answer.
//
// The confirmed stage is always the last one the server acknowledged. A
// failed move restores it; a stale move (superseded by a newer move for the
// same candidate) never changes what is shown.
type Board struct {
	mu    sync.Mutex
	cards map[string]*card
	order []string
	seq   uint64
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{cards: make(map[string]*card)}
}

// Load records the server-confirmed stage of a candidate, discarding any
// pending local state for it.
func (b *Board) Load(id string, stage Stage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.cards[id]
	if !ok {
		c = &card{}
		b.cards[id] = c
		b.order = append(b.order, id)
	}
	c.confirmed = stage
	c.shown = stage
	c.pending = false
	b.seq++
	c.latest = b.seq
	c.confirmedSeq = b.seq
}

// Move shows the candidate in stage to immediately and returns the move to be
// reconciled once the server responds.
func (b *Board) Move(id string, to Stage) (Move, error) {
	if _, err := ParseStage(string(to)); err != nil {
		return Move{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.cards[id]
	if !ok {
		return Move{}, fmt.Errorf("candidate %s is not on the board", id)
	}
	b.seq++
	m := Move{CandidateID: id, From: c.shown, To: to, seq: b.seq}
	c.shown = to
	c.latest = m.seq
	c.pending = true
	return m, nil
}

// Confirm records the stage the server reported for m. It returns false when
// m was superseded by a newer move, in which case the newer move stays
// visible. The confirmed stage only moves forward: an answer older than the
// last one recorded is ignored.
func (b *Board) Confirm(m Move, server Stage) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.cards[m.CandidateID]
	if !ok {
		return false
	}
	if m.seq > c.confirmedSeq {
		c.confirmed = server
		c.confirmedSeq = m.seq
	}
	if c.latest != m.seq {
		return false
	}
	c.shown = server
	c.pending = false
	return true
}

// Rollback restores the last confirmed stage after m failed. Stale moves are
// ignored and false is returned.
func (b *Board) Rollback(m Move) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.cards[m.CandidateID]
	if !ok || c.latest != m.seq {
		return false
	}
	c.shown = c.confirmed
	c.pending = false
	return true
}

// Stage returns the stage currently shown for a candidate.
func (b *Board) Stage(id string) (Stage, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.cards[id]
	if !ok {
		return "", false
	}
	return c.shown, true
}

// Pending reports whether the candidate has an unreconciled move.
func (b *Board) Pending(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.cards[id]
	return ok && c.pending
}

// Columns groups candidates by their shown stage, in board order.
func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()

	cols := make([]Column, len(Stages))
	index := make(map[Stage]int, len(Stages))
	for i, s := range Stages {
		cols[i] = Column{Stage: s, CandidateIDs: []string{}}
		index[s] = i
	}
	for _, id := range b.order {
		i, ok := index[b.cards[id].shown]
		if !ok {
			continue
		}
		cols[i].CandidateIDs = append(cols[i].CandidateIDs, id)
	}
	return cols
}
