// internal/app/features/blessedmind/routes.go
package blessedmind

import (
	"github.com/go-chi/chi/v5"

	"github.com/genet-ke/genethub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServePipeline)
		pr.Post("/ideas", h.HandleIdeaPost)
		pr.Post("/ideas/{id}/status", h.HandleStatusPost)
		pr.Post("/proposals", h.HandleProposalPost)
	})

	return r
}
