package financestore_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	financestore "github.com/genet-ke/genethub/internal/app/store/finance"
	"github.com/genet-ke/genethub/internal/domain/models"
	"github.com/genet-ke/genethub/internal/testutil"
)

func newStore(t *testing.T, api *testutil.FakeAPI) *financestore.Store {
	t.Helper()
	return financestore.New(testutil.NewGateway(t, api), zap.NewNop())
}

func TestStore_FetchTopUps(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/finance/topups/", http.StatusOK,
		`[{"id": 2, "amount": "1500.00", "month": "2026-08", "transaction_id": "QX88", "status": "Success"},
		  {"id": 1, "amount": "1000.00", "month": "2026-07", "transaction_id": "QX12", "status": "Success"}]`)

	store := newStore(t, api)
	if err := store.FetchTopUps(t.Context()); err != nil {
		t.Fatalf("FetchTopUps failed: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.TopUps) != 2 {
		t.Fatalf("got %d top-ups, want 2", len(snap.TopUps))
	}
	if snap.TopUps[0].ID != 2 {
		t.Errorf("order: got id %d first, want 2", snap.TopUps[0].ID)
	}
	if !snap.TopUps[0].Amount.Equal(decimal.RequireFromString("1500.00")) {
		t.Errorf("Amount: got %s, want 1500.00", snap.TopUps[0].Amount)
	}
}

func TestStore_FetchTopUps_RetryClearsPreviousError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	fail := true
	api.Handle("/finance/topups/", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "amount": "1000.00", "month": "2026-07", "transaction_id": "QX12", "status": "Success"}]`))
	})

	store := newStore(t, api)
	if err := store.FetchTopUps(t.Context()); err == nil {
		t.Fatal("expected first fetch to fail")
	}
	if snap := store.Snapshot(); snap.Err == "" {
		t.Fatal("expected Err set after failed fetch")
	}

	fail = false
	if err := store.FetchTopUps(t.Context()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}

	snap := store.Snapshot()
	if snap.Err != "" {
		t.Errorf("Err: got %q, want cleared on retry", snap.Err)
	}
	if len(snap.TopUps) != 1 {
		t.Errorf("got %d top-ups, want 1", len(snap.TopUps))
	}
}

func TestStore_CreateTopUp_PrependsServerEcho(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	var received models.TopUpInput
	// The list and create endpoints share a path; branch on method.
	api.Handle("/finance/topups/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"id": 1, "amount": "1000.00", "month": "2026-07", "transaction_id": "QX12", "status": "Success"}]`))
		case http.MethodPost:
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				t.Errorf("decode top-up payload: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": 7, "amount": "2500.00", "month": "2026-08", "transaction_id": "ABC123", "status": "Pending"}`))
		}
	})

	store := newStore(t, api)
	if err := store.FetchTopUps(t.Context()); err != nil {
		t.Fatal(err)
	}

	input := models.TopUpInput{
		Amount:        decimal.RequireFromString("2500.00"),
		Month:         "2026-08",
		TransactionID: "ABC123",
	}
	created, err := store.CreateTopUp(t.Context(), input)
	if err != nil {
		t.Fatalf("CreateTopUp failed: %v", err)
	}

	if received.TransactionID != "ABC123" {
		t.Errorf("submitted transaction_id: got %q, want %q", received.TransactionID, "ABC123")
	}
	if created.ID != 7 {
		t.Errorf("created.ID: got %d, want 7", created.ID)
	}
	if created.Status != models.TopUpPending {
		t.Errorf("created.Status: got %q, want the server's status, not an assumed one", created.Status)
	}

	snap := store.Snapshot()
	if len(snap.TopUps) != 2 {
		t.Fatalf("got %d top-ups, want 2", len(snap.TopUps))
	}
	if snap.TopUps[0].ID != 7 {
		t.Errorf("new record at index %d, want 0 (most-recent-first)", indexOf(snap.TopUps, 7))
	}
}

func TestStore_CreateTopUp_Failure(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/finance/topups/", http.StatusBadRequest, `{"message": "Duplicate transaction reference"}`)

	store := newStore(t, api)
	_, err := store.CreateTopUp(t.Context(), models.TopUpInput{
		Amount:        decimal.RequireFromString("100.00"),
		Month:         "2026-08",
		TransactionID: "DUP1",
	})
	if err == nil {
		t.Fatal("expected error")
	}

	snap := store.Snapshot()
	if snap.Err != "Duplicate transaction reference" {
		t.Errorf("Err: got %q, want server detail", snap.Err)
	}
	if len(snap.TopUps) != 0 {
		t.Error("rejected create must not grow the list")
	}
}

func TestStore_FetchSummary(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/finance/summary/", http.StatusOK,
		`{"total_savings": "125000.50", "monthly_contributions": "8200.00",
		  "total_members_contributed": 34, "pending_approvals": 3,
		  "monthly_breakdown": [{"month": "2026-08", "total": "8200.00"}]}`)

	store := newStore(t, api)
	if err := store.FetchSummary(t.Context()); err != nil {
		t.Fatalf("FetchSummary failed: %v", err)
	}

	snap := store.Snapshot()
	if snap.Summary == nil {
		t.Fatal("expected summary populated")
	}
	if !snap.Summary.TotalSavings.Equal(decimal.RequireFromString("125000.50")) {
		t.Errorf("TotalSavings: got %s, want 125000.50", snap.Summary.TotalSavings)
	}
	if snap.Summary.PendingApprovals != 3 {
		t.Errorf("PendingApprovals: got %d, want 3", snap.Summary.PendingApprovals)
	}
	if len(snap.Summary.MonthlyBreakdown) != 1 {
		t.Errorf("MonthlyBreakdown: got %d entries, want 1", len(snap.Summary.MonthlyBreakdown))
	}
}

func TestStore_FetchAudits_NotRetained(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/finance/audits/", http.StatusOK,
		`[{"id": 1, "action": "approved", "actor": "treasurer"}]`)

	store := newStore(t, api)
	audits, err := store.FetchAudits(t.Context())
	if err != nil {
		t.Fatalf("FetchAudits failed: %v", err)
	}

	if len(audits) != 1 {
		t.Fatalf("got %d audits, want 1", len(audits))
	}
	if audits[0]["action"] != "approved" {
		t.Errorf("action: got %v, want approved", audits[0]["action"])
	}

	snap := store.Snapshot()
	if len(snap.TopUps) != 0 || snap.Summary != nil {
		t.Error("audit fetch must not touch retained state")
	}
}

func TestStore_ClearTopUps(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Respond("/finance/topups/", http.StatusOK,
		`[{"id": 1, "amount": "1000.00", "month": "2026-07", "transaction_id": "QX12", "status": "Success"}]`)
	api.Respond("/finance/summary/", http.StatusOK, `{"total_savings": "1000.00"}`)

	store := newStore(t, api)
	if err := store.FetchTopUps(t.Context()); err != nil {
		t.Fatal(err)
	}
	if err := store.FetchSummary(t.Context()); err != nil {
		t.Fatal(err)
	}

	store.ClearTopUps()

	snap := store.Snapshot()
	if len(snap.TopUps) != 0 || snap.Summary != nil {
		t.Errorf("state after clear: %+v, want empty", snap)
	}
}

func indexOf(topups []models.TopUp, id int64) int {
	for i, tu := range topups {
		if tu.ID == id {
			return i
		}
	}
	return -1
}
