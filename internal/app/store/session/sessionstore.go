// Package sessionstore owns the client-side mirror of the authenticated
// session. Like every resource store it is a state container: operations
// talk to the gateway once (no retries), then apply a pure transition under
// the store's lock, and views read point-in-time snapshots. Across rapid
// dispatches of the same operation the last response to resolve wins.
package sessionstore

import (
	"context"
	"sync"

	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/domain/models"
	"go.uber.org/zap"
)

// State is the session slice. Err is only ever set by login failures; an
// unauthenticated identity probe is expected behavior, not an error a user
// should see.
type State struct {
	User          *models.User
	Authenticated bool
	Loading       bool
	Err           string
}

type Store struct {
	gw  *gateway.Client
	log *zap.Logger

	mu    sync.Mutex
	state State
}

// New constructs the session store. One instance per running application,
// injected through bootstrap deps.
func New(gw *gateway.Client, logger *zap.Logger) *Store {
	return &Store{gw: gw, log: logger}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

// Login authenticates against the API. A new attempt always clears the
// previous error while in flight.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.apply(loginPending)

	var resp loginResponse
	err := s.gw.Post(ctx, "/auth/login/", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		msg := gateway.Message(err, "Login failed")
		s.apply(func(st State) State { return loginRejected(st, msg) })
		return err
	}

	s.apply(func(st State) State { return loginFulfilled(st, resp.User) })
	return nil
}

// Logout ends the session. The local session is cleared even when the
// server call fails: a user-initiated logout is unambiguous and the client
// must not stay stuck "logged in".
func (s *Store) Logout(ctx context.Context) error {
	s.apply(logoutPending)

	err := s.gw.Post(ctx, "/auth/logout/", nil, nil)
	if err != nil {
		s.log.Warn("logout request failed; clearing local session anyway", zap.Error(err))
	}
	s.apply(logoutFulfilled)
	return err
}

// FetchCurrentUser probes for an existing authenticated session. Failure
// (including not-authenticated) clears the session without setting Err.
func (s *Store) FetchCurrentUser(ctx context.Context) error {
	s.apply(fetchUserPending)

	var user models.User
	err := s.gw.Get(ctx, "/auth/me/", &user)
	if err != nil {
		s.apply(fetchUserRejected)
		return err
	}

	s.apply(func(st State) State { return fetchUserFulfilled(st, user) })
	return nil
}

// ProfileUpdate is the payload for patching the signed-in user's profile.
type ProfileUpdate struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	County      string `json:"county"`
}

// UpdateProfile patches the signed-in user's profile and refreshes the
// local mirror from the server's echo. Failures surface to the caller
// only; they never disturb the session error slot.
func (s *Store) UpdateProfile(ctx context.Context, input ProfileUpdate) error {
	s.apply(fetchUserPending)

	var updated models.User
	err := s.gw.Patch(ctx, "/auth/me/", input, &updated)
	if err != nil {
		s.apply(func(st State) State {
			st.Loading = false
			return st
		})
		return err
	}

	s.apply(func(st State) State { return profileUpdated(st, input, updated) })
	return nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the signed-in user's password. No session state
// changes; the server keeps the session alive across the rotation.
func (s *Store) ChangePassword(ctx context.Context, current, next string) error {
	return s.gw.Post(ctx, "/auth/change-password/",
		changePasswordRequest{CurrentPassword: current, NewPassword: next}, nil)
}

// RequestPasswordReset asks the server to email reset instructions. The
// operation is anonymous and touches no session state.
func (s *Store) RequestPasswordReset(ctx context.Context, email string) error {
	return s.gw.Post(ctx, "/members/password-reset/",
		map[string]string{"email": email}, nil)
}

// ConfirmPasswordReset redeems an emailed uid/token pair for a new
// password. A validation rejection means the link is invalid or expired.
func (s *Store) ConfirmPasswordReset(ctx context.Context, uid, token, password string) error {
	return s.gw.Post(ctx, "/members/password-reset/confirm/",
		map[string]string{"uid": uid, "token": token, "password": password}, nil)
}

// ClearError drops the stored error message.
func (s *Store) ClearError() {
	s.apply(func(st State) State {
		st.Err = ""
		return st
	})
}

// SetUser installs a user directly, marking the session authenticated.
func (s *Store) SetUser(user models.User) {
	s.apply(func(st State) State {
		st.User = &user
		st.Authenticated = true
		return st
	})
}

// apply runs one pure transition under the lock.
func (s *Store) apply(f func(State) State) {
	s.mu.Lock()
	s.state = f(s.state)
	s.mu.Unlock()
}

// Transitions. Each is a pure function over State; fulfilled/rejected only
// ever follow their pending.

func loginPending(st State) State {
	st.Loading = true
	st.Err = ""
	return st
}

func loginFulfilled(st State, user models.User) State {
	st.Loading = false
	st.User = &user
	st.Authenticated = true
	st.Err = ""
	return st
}

func loginRejected(st State, msg string) State {
	st.Loading = false
	st.User = nil
	st.Authenticated = false
	st.Err = msg
	return st
}

func logoutPending(st State) State {
	st.Loading = true
	return st
}

// logoutFulfilled applies regardless of the server outcome.
func logoutFulfilled(st State) State {
	st.Loading = false
	st.User = nil
	st.Authenticated = false
	st.Err = ""
	return st
}

// fetchUserPending leaves Err alone: the probe is routine and must not
// disturb a login error the user is still looking at.
func fetchUserPending(st State) State {
	st.Loading = true
	return st
}

func fetchUserFulfilled(st State, user models.User) State {
	st.Loading = false
	st.User = &user
	st.Authenticated = true
	return st
}

// profileUpdated prefers the server's echo of the updated record; when the
// server answers with an empty body the patched fields are merged into the
// existing user so the UI never shows stale values.
func profileUpdated(st State, input ProfileUpdate, updated models.User) State {
	st.Loading = false
	if updated.ID != 0 {
		st.User = &updated
		st.Authenticated = true
		return st
	}
	if st.User != nil {
		u := *st.User
		u.FirstName = input.FirstName
		u.LastName = input.LastName
		u.Email = input.Email
		u.PhoneNumber = input.PhoneNumber
		u.County = input.County
		st.User = &u
	}
	return st
}

// fetchUserRejected maps to logged-out, never to an error message.
func fetchUserRejected(st State) State {
	st.Loading = false
	st.User = nil
	st.Authenticated = false
	return st
}
