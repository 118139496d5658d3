package httpx

import (
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/starboy1402/garments-tracker-api/internal/access"
	"github.com/starboy1402/garments-tracker-api/internal/auth"
)

// API carries every dependency the handlers need; cmd/api wires it once.
type API struct {
	Sessions  *auth.Sessions
	Users     UserStore
	Products  ProductStore
	Orders    OrderStore
	Analytics AnalyticsStore
	Producer  EventPublisher
	Redis     *redis.Client
	Service   string
}

// Register mounts the full REST surface under /api.
func (a *API) Register(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		// public
		r.Post("/auth/jwt", a.issueToken)
		r.Post("/auth/logout", a.logout)
		r.Post("/users", a.registerUser)
		r.Get("/products", a.listProducts)
		r.Get("/products/home", a.listHomeProducts)

		// session required
		r.Group(func(r chi.Router) {
			r.Use(a.Authenticate)

			r.Get("/users/{email}", a.getUser) // self or admin
			r.Get("/products/{id}", a.getProduct)

			r.With(a.Require(access.ManageUsers)).Get("/users", a.listUsers)
			r.With(a.Require(access.ManageUsers)).Patch("/users/{id}", a.setUserStatus)

			r.With(a.Require(access.ManageProducts)).Post("/products", a.createProduct)
			r.With(a.Require(access.ManageProducts)).Put("/products/{id}", a.updateProduct)
			r.With(a.Require(access.ManageProducts)).Delete("/products/{id}", a.deleteProduct)
			r.With(a.Require(access.ToggleHome)).Patch("/products/{id}/toggle-home", a.toggleHomeProduct)
			r.With(a.Require(access.ManageProducts)).Get("/manager/products", a.listManagerProducts)

			r.Post("/orders", a.createOrder) // status-aware gate inside
			r.Get("/orders/{id}", a.getOrder)
			r.With(a.Require(access.ViewAllOrders)).Get("/orders", a.listAllOrders)
			r.With(a.Require(access.ReviewOrders)).Patch("/orders/{id}/status", a.decideOrder)
			r.With(a.Require(access.CancelOwnOrder)).Patch("/orders/{id}/cancel", a.cancelOrder)
			r.With(a.Require(access.TrackProduction)).Post("/orders/{id}/tracking", a.addTracking)
			r.With(a.Require(access.ReviewOrders)).Get("/manager/orders/pending", a.listPendingOrders)
			r.With(a.Require(access.TrackProduction)).Get("/manager/orders/approved", a.listApprovedOrders)
			r.With(a.Require(access.ViewOwnOrders)).Get("/buyer/orders", a.listBuyerOrders)

			r.With(a.Require(access.ViewAnalytics)).Get("/analytics", a.getAnalytics)
		})
	})
}
