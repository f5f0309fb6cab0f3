// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	financestore "github.com/genet-ke/genethub/internal/app/store/finance"
	memberstore "github.com/genet-ke/genethub/internal/app/store/members"
	orgstore "github.com/genet-ke/genethub/internal/app/store/org"
	"github.com/genet-ke/genethub/internal/app/system/timeouts"
	"github.com/genet-ke/genethub/internal/app/system/viewdata"
	"github.com/genet-ke/genethub/internal/domain/models"
)

type Handler struct {
	Members *memberstore.Store
	Finance *financestore.Store
	Org     *orgstore.Store
	Log     *zap.Logger
}

func NewHandler(members *memberstore.Store, finance *financestore.Store, org *orgstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Members: members,
		Finance: finance,
		Org:     org,
		Log:     logger,
	}
}

type dashboardData struct {
	viewdata.BaseVM
	MemberCount   int
	Summary       *models.FinanceSummary
	Announcements []models.Announcement
	NextEvent     *models.Event
	FinanceErr    string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeDashboard refreshes the four headline reads concurrently, then
// renders from store snapshots. Each fetch degrades independently: a
// failed count or announcement refresh keeps the previous value, and the
// absence of a next event is a normal state, not an error.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	// One slow API read must not hold the whole page.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		wg        sync.WaitGroup
		nextEvent *models.Event
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		_ = h.Members.FetchMemberCount(ctx)
	}()
	go func() {
		defer wg.Done()
		_ = h.Finance.FetchSummary(ctx)
	}()
	go func() {
		defer wg.Done()
		_ = h.Org.FetchRecentAnnouncements(ctx)
	}()
	go func() {
		defer wg.Done()
		nextEvent, _ = h.Org.FetchNextEvent(ctx)
	}()
	wg.Wait()

	finance := h.Finance.Snapshot()

	data := dashboardData{
		BaseVM:        viewdata.NewBaseVM(r, "Dashboard", "/"),
		MemberCount:   h.Members.Snapshot().TotalCount,
		Summary:       finance.Summary,
		Announcements: h.Org.Snapshot().Announcements,
		NextEvent:     nextEvent,
		FinanceErr:    finance.Err,
	}

	templates.Render(w, r, "dashboard", data)
}
