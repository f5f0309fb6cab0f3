// internal/app/features/events/handler.go
package events

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	orgstore "github.com/genet-ke/genethub/internal/app/store/org"
	"github.com/genet-ke/genethub/internal/app/system/viewdata"
	"github.com/genet-ke/genethub/internal/domain/models"
)

type Handler struct {
	Org *orgstore.Store
	Log *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewHandler(org *orgstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Org: org,
		Log: logger,
		now: time.Now,
	}
}

// WithClock overrides the handler's notion of "today". Used by tests.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

type listData struct {
	viewdata.BaseVM
	Upcoming []models.Event
	Past     []models.Event
	Error    string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /events                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList refreshes the events list and renders it split into upcoming
// and past. An empty calendar is a normal state, not an error.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_ = h.Org.FetchEvents(r.Context())
	snap := h.Org.Snapshot()

	upcoming, past := orgstore.PartitionEvents(snap.Events, h.now(), h.Log)

	data := listData{
		BaseVM:   viewdata.NewBaseVM(r, "Events", "/dashboard"),
		Upcoming: upcoming,
		Past:     past,
		Error:    snap.Err,
	}

	templates.Render(w, r, "events_list", data)
}
