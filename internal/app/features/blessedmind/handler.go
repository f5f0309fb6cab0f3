// internal/app/features/blessedmind/handler.go
package blessedmind

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	projectstore "github.com/genet-ke/genethub/internal/app/store/projects"
	"github.com/genet-ke/genethub/internal/app/system/auth"
	"github.com/genet-ke/genethub/internal/app/system/flash"
	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/app/system/inputval"
	"github.com/genet-ke/genethub/internal/app/system/viewdata"
	"github.com/genet-ke/genethub/internal/domain/models"
)

// Handler serves the Blessed Mind pipeline: idea submissions and their
// document-backed proposals.
type Handler struct {
	Projects *projectstore.Store
	Flash    *flash.Store
	Log      *zap.Logger
}

func NewHandler(projects *projectstore.Store, fl *flash.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projects,
		Flash:    fl,
		Log:      logger,
	}
}

type ideasData struct {
	viewdata.BaseVM
	Ideas        []models.Idea
	Proposals    []models.Proposal
	Categories   []string
	StatusFilter string
	Error        string
	IdeaForm     ideaForm
	ProposalForm proposalForm
}

type ideaForm struct {
	Title       string
	Category    string
	Description string
	Error       string
}

type proposalForm struct {
	IdeaID      string
	Description string
	Error       string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /blessedmind – pipeline overview (?status= filters the ideas list)      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePipeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := models.IdeaStatus(strings.TrimSpace(query.Get(r, "status")))
	if status != "" && !status.Known() {
		// A crafted ?status= value never reaches the API.
		status = ""
	}
	if status != "" {
		_ = h.Projects.FetchIdeasByStatus(ctx, status)
	} else {
		_ = h.Projects.FetchIdeas(ctx)
	}
	_ = h.Projects.FetchProposals(ctx)

	h.renderPipeline(w, r, string(status), ideaForm{}, proposalForm{})
}

func (h *Handler) renderPipeline(w http.ResponseWriter, r *http.Request, status string, idf ideaForm, prf proposalForm) {
	snap := h.Projects.Snapshot()
	data := ideasData{
		BaseVM:       viewdata.NewBaseVM(r, "Blessed Mind", "/dashboard"),
		Ideas:        snap.Ideas,
		Proposals:    snap.Proposals,
		Categories:   models.IdeaCategories,
		StatusFilter: status,
		Error:        snap.Err,
		IdeaForm:     idf,
		ProposalForm: prf,
	}
	data.Flashes = h.Flash.Pop(w, r)

	templates.Render(w, r, "blessedmind_pipeline", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /blessedmind/ideas – submit an idea                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleIdeaPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	form := ideaForm{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}

	if err := inputval.Idea(form.Title, form.Category, form.Description); err != nil {
		form.Error = err.Error()
		h.renderPipeline(w, r, "", form, proposalForm{})
		return
	}

	_, err := h.Projects.CreateIdea(r.Context(), models.IdeaInput{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
	})
	if err != nil {
		form.Error = gateway.Message(err, "Failed to submit idea")
		h.renderPipeline(w, r, "", form, proposalForm{})
		return
	}

	h.Flash.Success(w, r, "Idea submitted for review.")
	http.Redirect(w, r, "/blessedmind", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /blessedmind/proposals – upload a proposal document                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleProposalPost(w http.ResponseWriter, r *http.Request) {
	// The file-size gate is also enforced at the parser: a body past the
	// ceiling (plus form overhead) never reaches validation.
	if err := r.ParseMultipartForm(inputval.MaxProposalFileSize + 1<<20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	form := proposalForm{
		IdeaID:      strings.TrimSpace(r.FormValue("idea")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}

	ideaID, err := strconv.ParseInt(form.IdeaID, 10, 64)
	if err != nil {
		form.Error = "Select the idea this proposal elaborates."
		h.renderPipeline(w, r, "", ideaForm{}, form)
		return
	}

	if err := inputval.ProposalDescription(form.Description); err != nil {
		form.Error = err.Error()
		h.renderPipeline(w, r, "", ideaForm{}, form)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		form.Error = "Attach the proposal document (PDF)."
		h.renderPipeline(w, r, "", ideaForm{}, form)
		return
	}
	defer file.Close()

	if err := inputval.ProposalFile(header.Filename, header.Size, header.Header.Get("Content-Type")); err != nil {
		form.Error = err.Error()
		h.renderPipeline(w, r, "", ideaForm{}, form)
		return
	}

	_, err = h.Projects.UploadProposal(r.Context(), ideaID, header.Filename, file, form.Description)
	if err != nil {
		form.Error = gateway.Message(err, "Failed to upload proposal")
		h.renderPipeline(w, r, "", ideaForm{}, form)
		return
	}

	h.Flash.Success(w, r, "Proposal uploaded.")
	http.Redirect(w, r, "/blessedmind", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /blessedmind/ideas/{id}/status – local status override                 |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleStatusPost records an already-known status change locally without
// a server round-trip. The next full fetch overwrites it. Admin only.
func (h *Handler) HandleStatusPost(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok || !u.IsAdmin() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	status := models.IdeaStatus(strings.TrimSpace(r.FormValue("status")))
	if !status.Known() {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	h.Projects.UpdateIdeaStatus(id, status)
	http.Redirect(w, r, "/blessedmind", http.StatusSeeOther)
}
