// internal/app/features/announcements/handler.go
package announcements

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	orgstore "github.com/genet-ke/genethub/internal/app/store/org"
	"github.com/genet-ke/genethub/internal/app/system/htmlsanitize"
	"github.com/genet-ke/genethub/internal/app/system/viewdata"
	"github.com/genet-ke/genethub/internal/domain/models"
)

type Handler struct {
	Org *orgstore.Store
	Log *zap.Logger
}

func NewHandler(org *orgstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Org: org, Log: logger}
}

// announcementVM pairs the raw record with its sanitized body.
type announcementVM struct {
	models.Announcement
	Body template.HTML
}

type listData struct {
	viewdata.BaseVM
	Announcements []announcementVM
	Error         string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /announcements                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_ = h.Org.FetchAnnouncements(r.Context())
	snap := h.Org.Snapshot()

	vms := make([]announcementVM, 0, len(snap.Announcements))
	for _, a := range snap.Announcements {
		// Announcement bodies come from the API as limited HTML; strip
		// everything beyond basic formatting before rendering.
		vms = append(vms, announcementVM{
			Announcement: a,
			Body:         htmlsanitize.SanitizeToHTML(a.Content),
		})
	}

	data := listData{
		BaseVM:        viewdata.NewBaseVM(r, "Announcements", "/dashboard"),
		Announcements: vms,
		Error:         snap.Err,
	}

	templates.Render(w, r, "announcements_list", data)
}
