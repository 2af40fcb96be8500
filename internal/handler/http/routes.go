// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/treasured-fragrances/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Init builds the router with every storefront route.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	if h.trustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(
		h.withTraceID,
		h.withLogging,
		middleware.Recoverer,
		cors.Handler(h.corsOptions()),
		h.withRateLimit,
		withGZip,
	)

	router.Get("/healthz", h.healthz)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/forgot-password", h.forgotPassword)
			r.Post("/verify-code", h.verifyCode)
			r.Post("/reset-password", h.resetPassword)
			r.With(h.auth).Get("/profile", h.profile)
		})

		r.With(h.auth, h.requireRole(models.RoleAdmin)).Get("/admin/dashboard", h.dashboard)

		r.Route("/cart", func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/", h.getCart)
			r.Post("/add", h.addToCart)
			r.Put("/update/{productId}", h.updateCartQuantity)
			r.Delete("/{productId}", h.removeFromCart)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Get("/{id}", h.getProduct)
			r.Get("/name/{name}", h.getProductByName)

			r.Group(func(r chi.Router) {
				r.Use(h.auth, h.requireRole(models.RoleAdmin))
				r.Post("/", h.createProduct)
				r.Put("/{id}", h.updateProduct)
				r.Delete("/{id}", h.deleteProduct)
			})
		})

		r.Route("/upload", func(r chi.Router) {
			r.Use(h.auth, h.requireRole(models.RoleAdmin))
			r.Post("/presign", h.presignUpload)
			r.Post("/delete", h.deleteImage)
		})
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(routeNotFound)

	return router
}

func (h *Handler) corsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: h.corsOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}
