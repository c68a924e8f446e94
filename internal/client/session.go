package client

import (
	"context"
	"sync/atomic"
)

// Ticket identifies one submission within a Session.
type Ticket uint64

// Session orders submissions so a slow, older response cannot replace the view of a newer one.
type Session struct {
	seq atomic.Uint64
}

// Begin issues the ticket for a new submission, superseding all earlier ones.
func (s *Session) Begin() Ticket {
	return Ticket(s.seq.Add(1))
}

// Current reports whether t is still the latest submission.
func (s *Session) Current(t Ticket) bool {
	return s.seq.Load() == uint64(t)
}

// Result pairs an outcome with the ticket of the submission that produced it.
type Result struct {
	Ticket  Ticket
	Outcome Outcome
}

// Recommender is the part of Client a Session drives.
type Recommender interface {
	Recommend(ctx context.Context, semester string) Outcome
}

// Submit runs one request under a fresh ticket. Callers apply the result only if
// Current(result.Ticket) still holds when it arrives.
func (s *Session) Submit(ctx context.Context, r Recommender, semester string) Result {
	t := s.Begin()
	return Result{Ticket: t, Outcome: r.Recommend(ctx, semester)}
}
