package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/genet-ke/genethub/internal/app/system/gateway"
)

// FakeAPI is an in-process stand-in for the remote membership API. Tests
// register routes, then point a gateway client at it via NewGateway.
type FakeAPI struct {
	t        *testing.T
	mux      *http.ServeMux
	srv      *httptest.Server
	csrfFail bool
}

// NewFakeAPI starts a fake API server that answers the CSRF exchange;
// tests add the endpoints they exercise. The server is torn down with
// the test.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	api := &FakeAPI{t: t, mux: http.NewServeMux()}
	api.mux.HandleFunc("/auth/csrf/", func(w http.ResponseWriter, r *http.Request) {
		if api.csrfFail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "test-csrf-token", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	})
	api.srv = httptest.NewServer(api.mux)
	t.Cleanup(api.srv.Close)
	return api
}

// FailCSRF makes the CSRF exchange answer 500 from now on.
func (a *FakeAPI) FailCSRF() {
	a.csrfFail = true
}

// URL returns the fake API's base URL.
func (a *FakeAPI) URL() string {
	return a.srv.URL
}

// Handle registers a route on the fake API.
func (a *FakeAPI) Handle(pattern string, h http.HandlerFunc) {
	a.mux.HandleFunc(pattern, h)
}

// Respond registers a route that answers every request with a fixed
// status and JSON body.
func (a *FakeAPI) Respond(pattern string, status int, body string) {
	a.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != "" {
			_, _ = w.Write([]byte(body))
		}
	})
}

// NewGateway builds a gateway client pointed at the fake API, using the
// same cookie and header names as the real deployment defaults.
func NewGateway(t *testing.T, api *FakeAPI) *gateway.Client {
	t.Helper()

	gw, err := gateway.New(gateway.Config{
		BaseURL:    api.URL(),
		Timeout:    5 * time.Second,
		CSRFCookie: "csrftoken",
		CSRFHeader: "X-CSRFToken",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("gateway.New failed: %v", err)
	}
	t.Cleanup(gw.Close)
	return gw
}
