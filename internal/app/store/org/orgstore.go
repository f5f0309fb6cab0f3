// Package orgstore mirrors organization-wide content: announcements and
// events. This is the one store where not-found is an expected-empty
// condition rather than an error (empty events list, absent next event).
package orgstore

import (
	"context"
	"slices"
	"sync"

	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/domain/models"
	"go.uber.org/zap"
)

type State struct {
	Announcements []models.Announcement
	Events        []models.Event
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
	// Clone preserves nilness: a deliberately-empty events list stays
	// distinguishable from a never-fetched one.
	st.Announcements = slices.Clone(s.state.Announcements)
	st.Events = slices.Clone(s.state.Events)
	return st
}

// FetchAnnouncements loads all announcements.
func (s *Store) FetchAnnouncements(ctx context.Context) error {
	s.apply(pending)

	var announcements []models.Announcement
	err := s.gw.Get(ctx, "/org/announcements/", &announcements)
	if err != nil {
		msg := gateway.Message(err, "Failed to fetch announcements")
		s.apply(func(st State) State { return rejected(st, msg) })
		return err
	}

	s.apply(func(st State) State {
		st.Loading = false
		st.Announcements = announcements
		return st
	})
	return nil
}

// FetchRecentAnnouncements loads the dashboard subset. It overwrites the
// main announcement list (no merge); failure leaves state untouched.
func (s *Store) FetchRecentAnnouncements(ctx context.Context) error {
	var announcements []models.Announcement
	if err := s.gw.Get(ctx, "/org/announcements/recent/", &announcements); err != nil {
		s.log.Debug("recent announcements fetch failed", zap.Error(err))
		return err
	}
	s.apply(func(st State) State {
		st.Announcements = announcements
		return st
	})
	return nil
}

// FetchEvents loads all events. A not-found response is a legitimate empty
// state, not an error.
func (s *Store) FetchEvents(ctx context.Context) error {
	s.apply(pending)

	var events []models.Event
	err := s.gw.Get(ctx, "/org/events/", &events)
	if err != nil {
		if gateway.IsNotFound(err) {
			s.apply(func(st State) State {
				st.Loading = false
				st.Events = []models.Event{}
				return st
			})
			return nil
		}
		msg := gateway.Message(err, "Failed to fetch events")
		s.apply(func(st State) State { return rejected(st, msg) })
		return err
	}

	s.apply(func(st State) State {
		st.Loading = false
		st.Events = events
		return st
	})
	return nil
}

// FetchNextEvent loads the next upcoming event. Not-found means no upcoming
// events — a valid empty state that must not populate Err. A returned event
// is merged into the events list only when its id is not already present,
// so running both the full fetch and this one never duplicates an entry.
func (s *Store) FetchNextEvent(ctx context.Context) (*models.Event, error) {
	s.apply(func(st State) State {
		st.Loading = true
		return st
	})

	var event models.Event
	err := s.gw.Get(ctx, "/org/events/next/", &event)
	if err != nil {
		if gateway.IsNotFound(err) {
			s.apply(func(st State) State {
				st.Loading = false
				return st
			})
			return nil, nil
		}
		msg := gateway.Message(err, "Failed to fetch next event")
		s.apply(func(st State) State { return rejected(st, msg) })
		return nil, err
	}

	s.apply(func(st State) State { return nextEventFulfilled(st, event) })
	return &event, nil
}

// SubmitContact forwards a contact/enquiry message.
func (s *Store) SubmitContact(ctx context.Context, msg models.ContactMessage) error {
	s.apply(pending)

	err := s.gw.Post(ctx, "/org/contact/", msg, nil)
	if err != nil {
		m := gateway.Message(err, "Failed to send message")
		s.apply(func(st State) State { return rejected(st, m) })
		return err
	}

	s.apply(func(st State) State {
		st.Loading = false
		return st
	})
	return nil
}

// ClearOrgData empties both lists, e.g. on logout.
func (s *Store) ClearOrgData() {
	s.apply(func(st State) State {
		st.Announcements = nil
		st.Events = nil
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

func nextEventFulfilled(st State, event models.Event) State {
	st.Loading = false
	for _, e := range st.Events {
		if e.ID == event.ID {
			return st
		}
	}
	st.Events = append([]models.Event{event}, st.Events...)
	return st
}

func rejected(st State, msg string) State {
	st.Loading = false
	st.Err = msg
	return st
}
