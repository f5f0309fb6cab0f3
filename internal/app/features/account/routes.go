// internal/app/features/account/routes.go
package account

import (
	"github.com/go-chi/chi/v5"

	"github.com/genet-ke/genethub/internal/app/system/auth"
)

// SettingsRoutes serves the signed-in account settings page.
func SettingsRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeSettings)
		pr.Post("/profile", h.HandleProfilePost)
		pr.Post("/password", h.HandlePasswordPost)
	})

	return r
}

// ForgotPasswordRoutes serves the public reset-request form.
func ForgotPasswordRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeForgotPassword)
	r.Post("/", h.HandleForgotPasswordPost)
	return r
}

// ResetPasswordRoutes serves the emailed-link confirmation form.
func ResetPasswordRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{uid}/{token}", h.ServeResetPassword)
	r.Post("/", h.HandleResetPasswordPost)
	return r
}
