package observability

import (
	"sync"
	"time"
)

// Phase is the state of the dispatch loop.
type Phase string

const (
	PhaseAwaitInput   Phase = "AWAIT_INPUT"
	PhaseGenerating   Phase = "GENERATING"
	PhaseInterpreting Phase = "INTERPRETING"
	PhaseExecuting    Phase = "EXECUTING"
	PhasePresenting   Phase = "PRESENTING"
	PhaseExiting      Phase = "EXITING"
)

const maxTransitions = 64

// Status records where the loop is and what it is working on.
type Status struct {
	mu         sync.RWMutex
	phase      Phase
	activeTurn string
	changedAt  time.Time
	history    []Phase
}

func NewStatus() *Status {
	return &Status{phase: PhaseAwaitInput, changedAt: time.Now()}
}

// Set moves to phase. A nil Status ignores updates.
func (s *Status) Set(phase Phase, turn string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
	s.activeTurn = turn
	s.changedAt = time.Now()
	s.history = append(s.history, phase)
	if len(s.history) > maxTransitions {
		s.history = s.history[len(s.history)-maxTransitions:]
	}
}

// Get retrieves the current phase, the input being handled and when the
// phase was entered.
func (s *Status) Get() (Phase, string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase, s.activeTurn, s.changedAt
}

// Transitions returns every phase entered so far.
func (s *Status) Transitions() []Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Phase(nil), s.history...)
}
