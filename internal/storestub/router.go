package storestub

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/flugede/storefront-ui/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware заглушки магазина.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.Logger(h.logger))

	r.Get("/page-state/", h.PageState)
	r.Get("/search-suggestions/", h.SearchSuggestions)

	r.Group(func(r chi.Router) {
		r.Use(h.csrf.Middleware)

		r.Post("/subscribe/", h.Subscribe)
		r.Post("/apply-coupon/", h.ApplyCoupon)
		r.Post("/cart/update/{itemID}/", h.UpdateCart)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
