// Package financestore mirrors the Money Market Fund slice: top-ups and the
// server-computed summary. The summary is an independent read and is never
// derived from the top-up list client-side, so the two may transiently
// disagree after a fresh create until the summary is re-fetched.
package financestore

import (
	"context"
	"slices"
	"sync"

	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/domain/models"
	"go.uber.org/zap"
)

type State struct {
	TopUps  []models.TopUp
	Summary *models.FinanceSummary
	Loading bool
	Err     string
}

type Store struct {
	gw  *gateway.Client
	log *zap.Logger

	mu    sync.Mutex
	state State
}

func New(gw *gateway.Client, logger *zap.Logger) *Store {
	return &Store{gw: gw, log: logger}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.TopUps = slices.Clone(s.state.TopUps)
	if st.Summary != nil {
		sum := *st.Summary
		sum.MonthlyBreakdown = slices.Clone(st.Summary.MonthlyBreakdown)
		st.Summary = &sum
	}
	return st
}

// FetchTopUps loads the contribution history.
func (s *Store) FetchTopUps(ctx context.Context) error {
	s.apply(pending)

	var topups []models.TopUp
	err := s.gw.Get(ctx, "/finance/topups/", &topups)
	if err != nil {
		msg := gateway.Message(err, "Failed to fetch top-ups")
		s.apply(func(st State) State { return rejected(st, msg) })
		return err
	}

	s.apply(func(st State) State {
		st.Loading = false
		st.TopUps = topups
		return st
	})
	return nil
}

// CreateTopUp submits a contribution and prepends the server's echo of the
// created record (most-recent-first). No optimistic status is assumed; the
// stored record is exactly what the server returned.
func (s *Store) CreateTopUp(ctx context.Context, input models.TopUpInput) (models.TopUp, error) {
	s.apply(pending)

	var created models.TopUp
	err := s.gw.Post(ctx, "/finance/topups/", input, &created)
	if err != nil {
		msg := gateway.Message(err, "Failed to create top-up")
		s.apply(func(st State) State { return rejected(st, msg) })
		return models.TopUp{}, err
	}

	s.apply(func(st State) State { return createFulfilled(st, created) })
	return created, nil
}

// FetchSummary loads the server-computed aggregate.
func (s *Store) FetchSummary(ctx context.Context) error {
	s.apply(pending)

	var summary models.FinanceSummary
	err := s.gw.Get(ctx, "/finance/summary/", &summary)
	if err != nil {
		msg := gateway.Message(err, "Failed to fetch finance summary")
		s.apply(func(st State) State { return rejected(st, msg) })
		return err
	}

	s.apply(func(st State) State {
		st.Loading = false
		st.Summary = &summary
		return st
	})
	return nil
}

// FetchAudits fetches the audit trail for direct display. The records are
// returned to the caller and deliberately not retained in state.
func (s *Store) FetchAudits(ctx context.Context) ([]map[string]any, error) {
	s.apply(func(st State) State {
		st.Loading = true
		return st
	})

	var audits []map[string]any
	err := s.gw.Get(ctx, "/finance/audits/", &audits)
	if err != nil {
		msg := gateway.Message(err, "Failed to fetch audits")
		s.apply(func(st State) State { return rejected(st, msg) })
		return nil, err
	}

	s.apply(func(st State) State {
		st.Loading = false
		return st
	})
	return audits, nil
}

// ClearTopUps empties the slice, e.g. on logout.
func (s *Store) ClearTopUps() {
	s.apply(func(st State) State {
		st.TopUps = nil
		st.Summary = nil
		return st
	})
}

// ClearError drops the stored error message.
func (s *Store) ClearError() {
	s.apply(func(st State) State {
		st.Err = ""
		return st
	})
}

func (s *Store) apply(f func(State) State) {
	s.mu.Lock()
	s.state = f(s.state)
	s.mu.Unlock()
}

func pending(st State) State {
	st.Loading = true
	st.Err = ""
	return st
}

func createFulfilled(st State, created models.TopUp) State {
	st.Loading = false
	st.TopUps = append([]models.TopUp{created}, st.TopUps...)
	return st
}

func rejected(st State, msg string) State {
	st.Loading = false
	st.Err = msg
	return st
}
