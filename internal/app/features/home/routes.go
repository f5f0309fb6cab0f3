package home

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRoot)
	r.Get("/join", h.ServeJoin)
	r.Post("/join", h.HandleJoinPost)
	r.Get("/contact", h.ServeContact)
	r.Post("/contact", h.HandleContactPost)
	return r
}
