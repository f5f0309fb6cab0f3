package login

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	sessionstore "github.com/genet-ke/genethub/internal/app/store/session"
	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/app/system/normalize"
	"github.com/genet-ke/genethub/internal/app/system/ratelimit"
	"github.com/genet-ke/genethub/internal/app/system/viewdata"
)

type Handler struct {
	Sessions *sessionstore.Store
	Limiter  *ratelimit.LoginLimiter
	Log      *zap.Logger
}

func NewHandler(sessions *sessionstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Sessions: sessions,
		Limiter:  ratelimit.NewLoginLimiter(),
		Log:      logger,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if snap := h.Sessions.Snapshot(); snap.Authenticated {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	ret := r.FormValue("return")

	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your email and password.", email, ret)
		return
	}

	if allowed, reason := h.Limiter.Check(r, email); !allowed {
		h.Log.Warn("login rate limited",
			zap.String("email", email),
			zap.String("ip", ratelimit.ClientIP(r)))
		h.renderFormWithError(w, r, reason, email, ret)
		return
	}

	if err := h.Sessions.Login(r.Context(), email, password); err != nil {
		h.Log.Info("login failed", zap.String("email", email), zap.Error(err))
		h.renderFormWithError(w, r, gateway.Message(err, "Login failed"), email, ret)
		return
	}

	h.Limiter.ResetEmail(email)
	http.Redirect(w, r, safeReturn(ret), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email, ret string) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: ret,
	})
}

// safeReturn keeps post-login redirects on-site: only rooted paths pass,
// everything else falls back to the dashboard.
func safeReturn(ret string) string {
	if ret == "" || !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") {
		return "/dashboard"
	}
	return ret
}
