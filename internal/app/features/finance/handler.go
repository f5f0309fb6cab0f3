// internal/app/features/finance/handler.go
package finance

import (
	"net/http"
	"strings"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	financestore "github.com/genet-ke/genethub/internal/app/store/finance"
	"github.com/genet-ke/genethub/internal/app/system/flash"
	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/app/system/inputval"
	"github.com/genet-ke/genethub/internal/app/system/viewdata"
	"github.com/genet-ke/genethub/internal/domain/models"
)

type Handler struct {
	Finance *financestore.Store
	Flash   *flash.Store
	Log     *zap.Logger
}

func NewHandler(finance *financestore.Store, fl *flash.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Finance: finance,
		Flash:   fl,
		Log:     logger,
	}
}

type fundData struct {
	viewdata.BaseVM
	TopUps  []models.TopUp
	Summary *models.FinanceSummary
	Error   string
	Form    topUpForm
}

type topUpForm struct {
	Amount        string
	Month         string
	TransactionID string
	Notes         string
	Error         string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /finance – fund overview                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeFund refreshes the top-up list and the server-computed summary
// concurrently, then renders both. The two are independent reads and may
// transiently disagree after a fresh top-up.
func (h *Handler) ServeFund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = h.Finance.FetchTopUps(ctx)
	}()
	go func() {
		defer wg.Done()
		_ = h.Finance.FetchSummary(ctx)
	}()
	wg.Wait()

	h.renderFund(w, r, topUpForm{})
}

func (h *Handler) renderFund(w http.ResponseWriter, r *http.Request, form topUpForm) {
	snap := h.Finance.Snapshot()
	data := fundData{
		BaseVM:  viewdata.NewBaseVM(r, "Money Market Fund", "/dashboard"),
		TopUps:  snap.TopUps,
		Summary: snap.Summary,
		Error:   snap.Err,
		Form:    form,
	}
	data.Flashes = h.Flash.Pop(w, r)

	templates.Render(w, r, "finance_fund", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /finance/topups – record a contribution                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleTopUpPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	form := topUpForm{
		Amount:        strings.TrimSpace(r.FormValue("amount")),
		Month:         strings.TrimSpace(r.FormValue("month")),
		TransactionID: strings.TrimSpace(r.FormValue("transaction_id")),
		Notes:         strings.TrimSpace(r.FormValue("notes")),
	}

	amount, err := decimal.NewFromString(form.Amount)
	if err != nil {
		form.Error = "Amount must be a number."
		h.renderFund(w, r, form)
		return
	}

	if err := inputval.TopUp(amount, form.Month, form.TransactionID); err != nil {
		form.Error = err.Error()
		h.renderFund(w, r, form)
		return
	}

	_, err = h.Finance.CreateTopUp(r.Context(), models.TopUpInput{
		Amount:        amount,
		Month:         form.Month,
		TransactionID: form.TransactionID,
		Notes:         form.Notes,
	})
	if err != nil {
		form.Error = gateway.Message(err, "Failed to record top-up")
		h.renderFund(w, r, form)
		return
	}

	h.Flash.Success(w, r, "Top-up recorded. It is pending approval.")
	http.Redirect(w, r, "/finance", http.StatusSeeOther)
}
