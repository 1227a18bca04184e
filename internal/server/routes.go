package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gift_ledger/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/gifts", func(r chi.Router) {
			r.Post("/create", handler(s.postCreateGift))
			r.Post("/complete", handler(s.postCompleteGift))
			r.Post("/cancel", handler(s.postCancelGift))
			r.Get("/{postId}", handler(s.getGiftsByPost))
			r.Get("/{postId}/totals", handler(s.getPostGiftTotals))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
