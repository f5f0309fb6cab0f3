// internal/app/features/members/handler.go
package members

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	memberstore "github.com/genet-ke/genethub/internal/app/store/members"
	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/app/system/normalize"
	"github.com/genet-ke/genethub/internal/app/system/viewdata"
	"github.com/genet-ke/genethub/internal/domain/models"
)

type Handler struct {
	Members *memberstore.Store
	Log     *zap.Logger
}

func NewHandler(members *memberstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Members: members,
		Log:     logger,
	}
}

type listData struct {
	viewdata.BaseVM
	Members    []models.Member
	TotalCount int
	Search     string
	Error      string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /members – directory                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList refreshes the directory and renders it. The search box
// filters the fetched list locally; the API has no member search.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	// Arriving at the list discards any previously viewed profile.
	h.Members.ClearCurrentMember()

	_ = h.Members.FetchMembers(r.Context())
	snap := h.Members.Snapshot()

	search := normalize.QueryParam(query.Get(r, "q"))
	shown := snap.Members
	if search != "" {
		shown = filterMembers(snap.Members, search)
	}

	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Members", "/dashboard"),
		Members:    shown,
		TotalCount: snap.TotalCount,
		Search:     search,
		Error:      snap.Err,
	}

	templates.Render(w, r, "members_list", data)
}

// filterMembers matches the query against name, profession, county, and
// skills, case-insensitively.
func filterMembers(members []models.Member, q string) []models.Member {
	q = strings.ToLower(q)
	var out []models.Member
	for _, m := range members {
		if memberMatches(m, q) {
			out = append(out, m)
		}
	}
	return out
}

func memberMatches(m models.Member, q string) bool {
	if strings.Contains(strings.ToLower(m.User.FullName), q) ||
		strings.Contains(strings.ToLower(m.User.FirstName), q) ||
		strings.Contains(strings.ToLower(m.User.LastName), q) ||
		strings.Contains(strings.ToLower(m.Profession), q) ||
		strings.Contains(strings.ToLower(m.County), q) {
		return true
	}
	for _, s := range m.Skills {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

type detailData struct {
	viewdata.BaseVM
	Member *models.Member
	Error  string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /members/{id} – profile                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	fetchErr := h.Members.FetchMemberByID(r.Context(), id)
	if gateway.IsNotFound(fetchErr) {
		http.NotFound(w, r)
		return
	}

	snap := h.Members.Snapshot()
	data := detailData{
		BaseVM: viewdata.NewBaseVM(r, "Member profile", "/members"),
		Member: snap.CurrentMember,
		Error:  snap.Err,
	}

	templates.Render(w, r, "members_detail", data)
}
