// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"go.uber.org/zap"

	sessionstore "github.com/genet-ke/genethub/internal/app/store/session"
)

type Handler struct {
	Sessions *sessionstore.Store
	Log      *zap.Logger
}

func NewHandler(sessions *sessionstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Sessions: sessions,
		Log:      logger,
	}
}

// HandleLogout handles POST /logout. The local session is cleared even
// when the server call fails, so the redirect home is unconditional.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context()); err != nil {
		h.Log.Warn("server-side logout failed", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
