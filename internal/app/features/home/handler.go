package home

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	memberstore "github.com/genet-ke/genethub/internal/app/store/members"
	orgstore "github.com/genet-ke/genethub/internal/app/store/org"
	"github.com/genet-ke/genethub/internal/app/system/flash"
	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/app/system/inputval"
	"github.com/genet-ke/genethub/internal/app/system/normalize"
	"github.com/genet-ke/genethub/internal/app/system/viewdata"
	"github.com/genet-ke/genethub/internal/domain/models"
)

// Handler serves the public pages: landing, join application, contact.
type Handler struct {
	Members *memberstore.Store
	Org     *orgstore.Store
	Flash   *flash.Store
	Log     *zap.Logger
}

func NewHandler(members *memberstore.Store, org *orgstore.Store, fl *flash.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Members: members,
		Org:     org,
		Flash:   fl,
		Log:     logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	// Best-effort headline stat; the landing page renders fine without it.
	_ = h.Members.FetchMemberCount(r.Context())

	data := struct {
		viewdata.BaseVM
		MemberCount int
	}{
		BaseVM:      viewdata.NewBaseVM(r, "Welcome", "/"),
		MemberCount: h.Members.Snapshot().TotalCount,
	}
	data.Flashes = h.Flash.Pop(w, r)

	templates.Render(w, r, "home", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /join – application form                                                |
*─────────────────────────────────────────────────────────────────────────────*/

type joinFormData struct {
	viewdata.BaseVM
	Error string
	Form  models.JoinApplication
}

func (h *Handler) ServeJoin(w http.ResponseWriter, r *http.Request) {
	data := joinFormData{
		BaseVM: viewdata.NewBaseVM(r, "Join GENET", "/"),
	}
	data.Flashes = h.Flash.Pop(w, r)

	templates.Render(w, r, "home_join", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /join                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleJoinPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	app := models.JoinApplication{
		FirstName:    normalize.Name(r.FormValue("first_name")),
		LastName:     normalize.Name(r.FormValue("last_name")),
		Email:        normalize.Email(r.FormValue("email")),
		Phone:        strings.TrimSpace(r.FormValue("phone")),
		County:       strings.TrimSpace(r.FormValue("county")),
		Profession:   strings.TrimSpace(r.FormValue("profession")),
		Skills:       strings.TrimSpace(r.FormValue("skills")),
		Motivation:   strings.TrimSpace(r.FormValue("motivation")),
		PortfolioURL: strings.TrimSpace(r.FormValue("portfolio_url")),
	}

	if err := inputval.JoinApplication(app); err != nil {
		h.renderJoinWithError(w, r, err.Error(), app)
		return
	}

	if err := h.Members.SubmitJoinApplication(r.Context(), app); err != nil {
		h.renderJoinWithError(w, r, gateway.Message(err, "Failed to submit application"), app)
		return
	}

	h.Flash.Success(w, r, "Application received. We'll be in touch soon.")
	http.Redirect(w, r, "/join", http.StatusSeeOther)
}

func (h *Handler) renderJoinWithError(w http.ResponseWriter, r *http.Request, msg string, form models.JoinApplication) {
	data := joinFormData{
		BaseVM: viewdata.NewBaseVM(r, "Join GENET", "/"),
		Error:  msg,
		Form:   form,
	}
	templates.Render(w, r, "home_join", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /contact + POST /contact                                                |
*─────────────────────────────────────────────────────────────────────────────*/

type contactFormData struct {
	viewdata.BaseVM
	Error string
	Form  models.ContactMessage
}

func (h *Handler) ServeContact(w http.ResponseWriter, r *http.Request) {
	data := contactFormData{
		BaseVM: viewdata.NewBaseVM(r, "Contact Us", "/"),
	}
	data.Flashes = h.Flash.Pop(w, r)

	templates.Render(w, r, "home_contact", data)
}

func (h *Handler) HandleContactPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	msg := models.ContactMessage{
		Name:    normalize.Name(r.FormValue("name")),
		Email:   normalize.Email(r.FormValue("email")),
		Subject: strings.TrimSpace(r.FormValue("subject")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}

	if msg.Name == "" || msg.Message == "" || !inputval.IsValidEmail(msg.Email) {
		h.renderContactWithError(w, r, "Please fill in your name, a valid email, and a message.", msg)
		return
	}

	if err := h.Org.SubmitContact(r.Context(), msg); err != nil {
		h.renderContactWithError(w, r, gateway.Message(err, "Failed to send message"), msg)
		return
	}

	h.Flash.Success(w, r, "Message sent. Thank you for reaching out.")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

func (h *Handler) renderContactWithError(w http.ResponseWriter, r *http.Request, msg string, form models.ContactMessage) {
	data := contactFormData{
		BaseVM: viewdata.NewBaseVM(r, "Contact Us", "/"),
		Error:  msg,
		Form:   form,
	}
	templates.Render(w, r, "home_contact", data)
}
