package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(Timeout)
	r.Use(CORS)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", handler.Login)

		r.Group(func(r chi.Router) {
			r.Use(handler.RequireSession)

			r.Post("/auth/logout", handler.Logout)
			r.Get("/auth/me", handler.Me)

			r.Get("/users", handler.ListUsers)
			r.Post("/users", handler.CreateUser)
			r.Patch("/users/{id}/password", handler.UpdateUserPassword)
			r.Delete("/users/{id}", handler.DeleteUser)

			r.Get("/shops", handler.ListShops)
			r.Post("/shops", handler.CreateShop)
			r.Get("/shops/{id}", handler.GetShop)
			r.Patch("/shops/{id}", handler.PatchShop)
			r.Delete("/shops/{id}", handler.DeleteShop)

			r.Get("/logs", handler.ListAudit)
			r.Get("/logs/count", handler.CountAudit)

			r.Post("/reports/monthly", handler.GenerateMonthlyReport)
		})
	})

	return r
}
