// Package memberstore mirrors the members directory.
package memberstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/app/system/normalize"
	"github.com/genet-ke/genethub/internal/domain/models"
	"go.uber.org/zap"
)

// State is the members slice. CurrentMember is the single-item detail slot;
// TotalCount is maintained independently of the list.
type State struct {
	Members       []models.Member
	CurrentMember *models.Member
	TotalCount    int
	Loading       bool
	Err           string
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
	st.Members = slices.Clone(s.state.Members)
	if st.CurrentMember != nil {
		m := *st.CurrentMember
		st.CurrentMember = &m
	}
	return st
}

// FetchMembers loads the full directory.
func (s *Store) FetchMembers(ctx context.Context) error {
	s.apply(listPending)

	var members []models.Member
	err := s.gw.Get(ctx, "/members/", &members)
	if err != nil {
		msg := gateway.Message(err, "Failed to fetch members")
		s.apply(func(st State) State { return rejected(st, msg) })
		return err
	}

	for i := range members {
		normalizeMember(&members[i])
	}
	s.apply(func(st State) State { return listFulfilled(st, members) })
	return nil
}

// FetchMemberByID loads one member into the detail slot.
func (s *Store) FetchMemberByID(ctx context.Context, id int64) error {
	s.apply(listPending)

	var member models.Member
	err := s.gw.Get(ctx, fmt.Sprintf("/members/%d/", id), &member)
	if err != nil {
		msg := gateway.Message(err, "Failed to fetch member")
		s.apply(func(st State) State { return rejected(st, msg) })
		return err
	}

	normalizeMember(&member)
	s.apply(func(st State) State { return memberFulfilled(st, member) })
	return nil
}

// FetchMemberCount refreshes TotalCount without touching the list or the
// loading flag; failure leaves state untouched.
func (s *Store) FetchMemberCount(ctx context.Context) error {
	var resp struct {
		Count int `json:"count"`
	}
	if err := s.gw.Get(ctx, "/members/count/", &resp); err != nil {
		s.log.Debug("member count fetch failed", zap.Error(err))
		return err
	}
	s.apply(func(st State) State {
		st.TotalCount = resp.Count
		return st
	})
	return nil
}

// SubmitJoinApplication forwards a join application. Fire-and-forget from
// the store's perspective: nothing is retained on success, and it has no
// effect on the authenticated session.
func (s *Store) SubmitJoinApplication(ctx context.Context, app models.JoinApplication) error {
	s.apply(listPending)

	err := s.gw.Post(ctx, "/members/join/", app, nil)
	if err != nil {
		msg := gateway.Message(err, "Failed to submit application")
		s.apply(func(st State) State { return rejected(st, msg) })
		return err
	}

	s.apply(func(st State) State {
		st.Loading = false
		return st
	})
	return nil
}

// ClearCurrentMember resets the detail slot without touching the list.
// Used when navigating away from a profile view.
func (s *Store) ClearCurrentMember() {
	s.apply(func(st State) State {
		st.CurrentMember = nil
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

// normalizeMember is the single normalization applied on every fetch path:
// skills become trimmed non-empty tags, and the joined date falls back to
// the server's creation timestamp.
func normalizeMember(m *models.Member) {
	m.Skills = normalize.Tags(m.Skills)
	if m.JoinedDate == "" {
		if m.CreatedAt != "" {
			m.JoinedDate = m.CreatedAt
		} else {
			m.JoinedDate = m.User.DateJoined
		}
	}
}

func listPending(st State) State {
	st.Loading = true
	st.Err = ""
	return st
}

func listFulfilled(st State, members []models.Member) State {
	st.Loading = false
	st.Members = members
	st.TotalCount = len(members)
	return st
}

func memberFulfilled(st State, member models.Member) State {
	st.Loading = false
	st.CurrentMember = &member
	return st
}

func rejected(st State, msg string) State {
	st.Loading = false
	st.Err = msg
	return st
}
