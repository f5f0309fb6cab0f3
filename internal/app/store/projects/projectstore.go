// Package projectstore mirrors the Blessed Mind pipeline: ideas and their
// document-backed proposals. The store trusts that the view layer has
// already run the inputval gates; nothing is re-validated here.
package projectstore

import (
	"context"
	"io"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/domain/models"
	"go.uber.org/zap"
)

type State struct {
	Ideas     []models.Idea
	Proposals []models.Proposal
	Loading   bool
	Err       string
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
	st.Ideas = slices.Clone(s.state.Ideas)
	st.Proposals = slices.Clone(s.state.Proposals)
	return st
}

// FetchIdeas loads all ideas.
func (s *Store) FetchIdeas(ctx context.Context) error {
	return s.fetchIdeas(ctx, "/projects/ideas/", "Failed to fetch ideas")
}

// FetchIdeasByStatus loads ideas filtered by status, replacing the ideas
// list wholesale (any local status overrides are discarded).
func (s *Store) FetchIdeasByStatus(ctx context.Context, status models.IdeaStatus) error {
	q := url.Values{"status": {string(status)}}
	return s.fetchIdeas(ctx, "/projects/ideas/?"+q.Encode(), "Failed to fetch ideas by status")
}

func (s *Store) fetchIdeas(ctx context.Context, path, fallback string) error {
	s.apply(pending)

	var ideas []models.Idea
	err := s.gw.Get(ctx, path, &ideas)
	if err != nil {
		msg := gateway.Message(err, fallback)
		s.apply(func(st State) State { return rejected(st, msg) })
		return err
	}

	s.apply(func(st State) State {
		st.Loading = false
		st.Ideas = ideas
		return st
	})
	return nil
}

// CreateIdea submits a concept and prepends the created record.
func (s *Store) CreateIdea(ctx context.Context, input models.IdeaInput) (models.Idea, error) {
	s.apply(pending)

	var created models.Idea
	err := s.gw.Post(ctx, "/projects/ideas/", input, &created)
	if err != nil {
		msg := gateway.Message(err, "Failed to create idea")
		s.apply(func(st State) State { return rejected(st, msg) })
		return models.Idea{}, err
	}

	s.apply(func(st State) State {
		st.Loading = false
		st.Ideas = append([]models.Idea{created}, st.Ideas...)
		return st
	})
	return created, nil
}

// FetchProposals loads all proposals.
func (s *Store) FetchProposals(ctx context.Context) error {
	s.apply(pending)

	var proposals []models.Proposal
	err := s.gw.Get(ctx, "/projects/proposals/", &proposals)
	if err != nil {
		msg := gateway.Message(err, "Failed to fetch proposals")
		s.apply(func(st State) State { return rejected(st, msg) })
		return err
	}

	s.apply(func(st State) State {
		st.Loading = false
		st.Proposals = proposals
		return st
	})
	return nil
}

// UploadProposal submits the multipart elaboration of an idea (idea
// reference, document, description) and prepends the created record.
func (s *Store) UploadProposal(ctx context.Context, ideaID int64, filename string, file io.Reader, description string) (models.Proposal, error) {
	s.apply(pending)

	fields := map[string]string{
		"idea":        strconv.FormatInt(ideaID, 10),
		"description": description,
	}
	var created models.Proposal
	err := s.gw.PostMultipart(ctx, "/projects/proposals/", fields, "file", filename, file, &created)
	if err != nil {
		msg := gateway.Message(err, "Failed to upload proposal")
		s.apply(func(st State) State { return rejected(st, msg) })
		return models.Proposal{}, err
	}

	s.apply(func(st State) State {
		st.Loading = false
		st.Proposals = append([]models.Proposal{created}, st.Proposals...)
		return st
	})
	return created, nil
}

// UpdateIdeaStatus is a local-only override for reflecting an already-known
// status change in place. No network call is made, list order is preserved,
// and the override is not persisted: the next ideas fetch replaces the list
// wholesale and silently discards it.
func (s *Store) UpdateIdeaStatus(ideaID int64, status models.IdeaStatus) {
	s.apply(func(st State) State {
		for i := range st.Ideas {
			if st.Ideas[i].ID == ideaID {
				st.Ideas[i].Status = status
				break
			}
		}
		return st
	})
}

// ClearProjects empties both lists.
func (s *Store) ClearProjects() {
	s.apply(func(st State) State {
		st.Ideas = nil
		st.Proposals = nil
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

func rejected(st State, msg string) State {
	st.Loading = false
	st.Err = msg
	return st
}
