package sessionstore_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	sessionstore "github.com/genet-ke/genethub/internal/app/store/session"
	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/domain/models"
	"github.com/genet-ke/genethub/internal/testutil"
)

func newStore(t *testing.T, api *testutil.FakeAPI) *sessionstore.Store {
	t.Helper()
	return sessionstore.New(testutil.NewGateway(t, api), zap.NewNop())
}

func TestStore_Login(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/login/", http.StatusOK,
		`{"user": {"id": 1, "full_name": "Amina Otieno", "email": "amina@genet.or.ke", "role": "member"},
		  "message": "Welcome back"}`)

	store := newStore(t, api)
	if err := store.Login(t.Context(), "amina@genet.or.ke", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	snap := store.Snapshot()
	if !snap.Authenticated {
		t.Error("expected Authenticated after login")
	}
	if snap.User == nil || snap.User.Email != "amina@genet.or.ke" {
		t.Errorf("User: got %+v, want amina@genet.or.ke", snap.User)
	}
	if snap.Loading {
		t.Error("expected Loading cleared")
	}
	if snap.Err != "" {
		t.Errorf("Err: got %q, want empty", snap.Err)
	}
}

func TestStore_Login_BadCredentials(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/login/", http.StatusUnauthorized, `{"detail": "Invalid credentials"}`)

	store := newStore(t, api)
	if err := store.Login(t.Context(), "amina@genet.or.ke", "wrong"); err == nil {
		t.Fatal("expected login error")
	}

	snap := store.Snapshot()
	if snap.Authenticated || snap.User != nil {
		t.Error("expected session cleared after rejected login")
	}
	if snap.Err != "Invalid credentials" {
		t.Errorf("Err: got %q, want server detail", snap.Err)
	}
}

func TestStore_Login_ClearsPreviousError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	fail := true
	api.Handle("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user": {"id": 1, "full_name": "Amina", "email": "amina@genet.or.ke", "role": "member"}}`))
	})

	store := newStore(t, api)
	_ = store.Login(t.Context(), "amina@genet.or.ke", "wrong")
	if store.Snapshot().Err == "" {
		t.Fatal("expected error recorded from first attempt")
	}

	fail = false
	if err := store.Login(t.Context(), "amina@genet.or.ke", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if snap := store.Snapshot(); snap.Err != "" {
		t.Errorf("Err: got %q, want cleared by successful retry", snap.Err)
	}
}

func TestStore_Logout_ClearsEvenWhenServerFails(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/logout/", http.StatusInternalServerError, `{}`)

	store := newStore(t, api)
	store.SetUser(*testutil.MemberUser())

	if err := store.Logout(t.Context()); err == nil {
		t.Fatal("expected server error to propagate")
	}

	snap := store.Snapshot()
	if snap.Authenticated || snap.User != nil {
		t.Error("expected session cleared despite server failure")
	}
	if snap.Err != "" {
		t.Errorf("Err: got %q, want empty after logout", snap.Err)
	}
}

func TestStore_FetchCurrentUser(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/me/", http.StatusOK,
		`{"id": 2, "full_name": "Brian Kiptoo", "email": "brian@genet.or.ke", "role": "admin"}`)

	store := newStore(t, api)
	if err := store.FetchCurrentUser(t.Context()); err != nil {
		t.Fatalf("FetchCurrentUser failed: %v", err)
	}

	snap := store.Snapshot()
	if !snap.Authenticated {
		t.Error("expected Authenticated after session restore")
	}
	if snap.User == nil || snap.User.Role != "admin" {
		t.Errorf("User: got %+v, want admin role", snap.User)
	}
}

func TestStore_FetchCurrentUser_NoSessionIsSilent(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/me/", http.StatusUnauthorized, `{"detail": "Not authenticated"}`)

	store := newStore(t, api)
	if err := store.FetchCurrentUser(t.Context()); err == nil {
		t.Fatal("expected error return for caller's benefit")
	}

	snap := store.Snapshot()
	if snap.Authenticated || snap.User != nil {
		t.Error("expected unauthenticated state")
	}
	if snap.Err != "" {
		t.Errorf("Err: got %q, want empty for routine probe failure", snap.Err)
	}
}

func TestStore_FetchCurrentUser_KeepsLoginError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/login/", http.StatusUnauthorized, `{"detail": "Invalid credentials"}`)
	api.Respond("/auth/me/", http.StatusUnauthorized, `{}`)

	store := newStore(t, api)
	_ = store.Login(t.Context(), "amina@genet.or.ke", "wrong")
	_ = store.FetchCurrentUser(t.Context())

	if snap := store.Snapshot(); snap.Err != "Invalid credentials" {
		t.Errorf("Err: got %q, want login error preserved across identity probe", snap.Err)
	}
}

func TestStore_SnapshotIsolation(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	store := newStore(t, api)
	store.SetUser(*testutil.MemberUser())

	snap := store.Snapshot()
	snap.User.FullName = "mutated"

	if got := store.Snapshot().User.FullName; got == "mutated" {
		t.Error("snapshot mutation leaked into store state")
	}
}

func TestStore_UpdateProfile_UsesServerEcho(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	var gotMethod string
	var received sessionstore.ProfileUpdate
	api.Handle("/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode profile payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 4, "first_name": "Amina", "last_name": "Bekele",
			"full_name": "Amina Bekele", "email": "amina@genet.or.ke",
			"county": "Kisumu", "role": "member"}`))
	})

	store := newStore(t, api)
	store.SetUser(models.User{ID: 4, FirstName: "Amina", County: "Nairobi", Role: "member"})

	input := sessionstore.ProfileUpdate{
		FirstName: "Amina",
		LastName:  "Bekele",
		Email:     "amina@genet.or.ke",
		County:    "Kisumu",
	}
	if err := store.UpdateProfile(t.Context(), input); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if received.County != "Kisumu" {
		t.Errorf("payload county: got %q, want Kisumu", received.County)
	}

	snap := store.Snapshot()
	if snap.User == nil || snap.User.County != "Kisumu" {
		t.Errorf("User: got %+v, want server echo applied", snap.User)
	}
	if !snap.Authenticated {
		t.Error("expected session to stay authenticated")
	}
}

func TestStore_UpdateProfile_EmptyEchoMergesInput(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/me/", http.StatusOK, ``)

	store := newStore(t, api)
	store.SetUser(models.User{ID: 4, FirstName: "Amina", PhoneNumber: "0700000000", Role: "member"})

	input := sessionstore.ProfileUpdate{
		FirstName: "Amina",
		LastName:  "Bekele",
		Email:     "amina@genet.or.ke",
		County:    "Kisumu",
	}
	if err := store.UpdateProfile(t.Context(), input); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	snap := store.Snapshot()
	if snap.User == nil {
		t.Fatal("expected user retained")
	}
	if snap.User.County != "Kisumu" || snap.User.LastName != "Bekele" {
		t.Errorf("User: got %+v, want patched fields merged", snap.User)
	}
	if snap.User.ID != 4 || snap.User.Role != "member" {
		t.Errorf("User: got %+v, want untouched fields kept", snap.User)
	}
}

func TestStore_UpdateProfile_FailureKeepsUser(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/auth/me/", http.StatusBadRequest, `{"message": "Email already in use"}`)

	store := newStore(t, api)
	store.SetUser(models.User{ID: 4, FirstName: "Amina", Email: "amina@genet.or.ke", Role: "member"})

	err := store.UpdateProfile(t.Context(), sessionstore.ProfileUpdate{
		FirstName: "Amina", LastName: "Bekele", Email: "taken@genet.or.ke",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := gateway.Message(err, ""); got != "Email already in use" {
		t.Errorf("message: got %q, want the server detail", got)
	}

	snap := store.Snapshot()
	if snap.User == nil || snap.User.Email != "amina@genet.or.ke" {
		t.Errorf("User: got %+v, want unchanged", snap.User)
	}
	if snap.Err != "" {
		t.Errorf("Err: got %q, want the session error slot untouched", snap.Err)
	}
	if snap.Loading {
		t.Error("expected Loading cleared")
	}
}

func TestStore_ChangePassword(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	var received map[string]string
	api.Handle("/auth/change-password/", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode password payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	store := newStore(t, api)
	if err := store.ChangePassword(t.Context(), "old-secret", "new-secret-42"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if received["current_password"] != "old-secret" || received["new_password"] != "new-secret-42" {
		t.Errorf("payload: got %v, want current and new password fields", received)
	}
}

func TestStore_RequestPasswordReset(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	var received map[string]string
	api.Handle("/members/password-reset/", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode reset payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	store := newStore(t, api)
	if err := store.RequestPasswordReset(t.Context(), "amina@genet.or.ke"); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}

	if received["email"] != "amina@genet.or.ke" {
		t.Errorf("payload: got %v, want the email", received)
	}
}

func TestStore_ConfirmPasswordReset_ExpiredLinkIsValidation(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/members/password-reset/confirm/", http.StatusBadRequest,
		`{"detail": "Invalid or expired reset link"}`)

	store := newStore(t, api)
	err := store.ConfirmPasswordReset(t.Context(), "dXNlcjQ", "tok-123", "new-secret-42")
	if err == nil {
		t.Fatal("expected error")
	}
	if gateway.KindOf(err) != gateway.KindValidation {
		t.Errorf("kind: got %v, want KindValidation", gateway.KindOf(err))
	}
}
