package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/genet-ke/genethub/internal/app/features/login"
	sessionstore "github.com/genet-ke/genethub/internal/app/store/session"
	"github.com/genet-ke/genethub/internal/testutil"
)

func newTestHandler(t *testing.T, api *testutil.FakeAPI) (*login.Handler, *sessionstore.Store) {
	t.Helper()
	gw := testutil.NewGateway(t, api)
	sessions := sessionstore.New(gw, zap.NewNop())
	return login.NewHandler(sessions, zap.NewNop()), sessions
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleLoginPost_Success(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/login/", http.StatusOK,
		`{"user": {"id": 4, "email": "amina@test.com", "role": "member"}, "message": "ok"}`)

	handler, sessions := newTestHandler(t, api)

	form := url.Values{"email": {"amina@test.com"}, "password": {"secret"}}
	rec := httptest.NewRecorder()
	handler.HandleLoginPost(rec, postForm("/login", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
	if snap := sessions.Snapshot(); !snap.Authenticated {
		t.Error("expected session store to be authenticated after login")
	}
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/login/", http.StatusOK,
		`{"user": {"id": 4, "email": "amina@test.com", "role": "member"}}`)

	handler, _ := newTestHandler(t, api)

	tests := []struct {
		name string
		ret  string
		want string
	}{
		{"rooted path honored", "/finance", "/finance"},
		{"empty falls back", "", "/dashboard"},
		{"offsite rejected", "https://evil.example/", "/dashboard"},
		{"scheme-relative rejected", "//evil.example/", "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{
				"email":    {"amina@test.com"},
				"password": {"secret"},
				"return":   {tt.ret},
			}
			rec := httptest.NewRecorder()
			handler.HandleLoginPost(rec, postForm("/login", form))

			if loc := rec.Header().Get("Location"); loc != tt.want {
				t.Errorf("Location = %q, want %q", loc, tt.want)
			}
		})
	}
}

func TestHandleLoginPost_BadCredentials(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/login/", http.StatusUnauthorized, `{"detail": "Invalid credentials"}`)

	handler, sessions := newTestHandler(t, api)

	form := url.Values{"email": {"amina@test.com"}, "password": {"wrong"}}
	rec := httptest.NewRecorder()
	// Handler will try to render a template which may panic without initialized templates
	func() {
		defer func() {
			if r := recover(); r != nil {
				// Template rendering may panic in tests - that's expected
			}
		}()
		handler.HandleLoginPost(rec, postForm("/login", form))
	}()

	snap := sessions.Snapshot()
	if snap.Authenticated {
		t.Error("expected session to stay unauthenticated")
	}
	if snap.Err == "" {
		t.Error("expected session store to carry the login error")
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	attempts := 0
	api.Handle("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid credentials"}`))
	})

	handler, _ := newTestHandler(t, api)

	form := url.Values{"email": {"amina@test.com"}, "password": {"wrong"}}
	for i := 0; i < 6; i++ {
		rec := httptest.NewRecorder()
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Template rendering may panic in tests - that's expected
				}
			}()
			handler.HandleLoginPost(rec, postForm("/login", form))
		}()
	}

	// The email window allows five attempts; the sixth must not reach the API.
	if attempts != 5 {
		t.Errorf("API saw %d attempts, want 5", attempts)
	}
}

func TestServeLogin_AlreadySignedInRedirects(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/login/", http.StatusOK,
		`{"user": {"id": 4, "email": "amina@test.com", "role": "member"}}`)

	handler, sessions := newTestHandler(t, api)

	// Sign in first.
	rec := httptest.NewRecorder()
	handler.HandleLoginPost(rec, postForm("/login", url.Values{
		"email": {"amina@test.com"}, "password": {"secret"},
	}))
	if snap := sessions.Snapshot(); !snap.Authenticated {
		t.Fatal("login setup failed")
	}

	rec = httptest.NewRecorder()
	handler.ServeLogin(rec, httptest.NewRequest("GET", "/login", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
}
