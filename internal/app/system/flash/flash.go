// Package flash carries one-shot notification messages across redirects
// using a session cookie.
package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const sessionName = "genethub_flash"

// Message is a single toast shown on the next rendered page.
type Message struct {
	Kind string // "success" or "error"
	Text string
}

func init() {
	gob.Register(Message{})
}

// Store wraps a cookie session used only for flash messages.
type Store struct {
	cookies *sessions.CookieStore
	log     *zap.Logger
}

// New builds a flash store. When key is empty a random key is generated,
// which means flashes do not survive a process restart; fine for a
// locally run companion app.
func New(key string, logger *zap.Logger) *Store {
	secret := []byte(key)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs, log: logger}
}

// Success queues a success toast for the next page load.
func (s *Store) Success(w http.ResponseWriter, r *http.Request, text string) {
	s.add(w, r, Message{Kind: "success", Text: text})
}

// Error queues an error toast for the next page load.
func (s *Store) Error(w http.ResponseWriter, r *http.Request, text string) {
	s.add(w, r, Message{Kind: "error", Text: text})
}

func (s *Store) add(w http.ResponseWriter, r *http.Request, msg Message) {
	sess, _ := s.cookies.Get(r, sessionName)
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("flash save failed", zap.Error(err))
	}
}

// Pop returns and clears any queued messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	sess, _ := s.cookies.Get(r, sessionName)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("flash clear failed", zap.Error(err))
	}

	msgs := make([]Message, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(Message); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
