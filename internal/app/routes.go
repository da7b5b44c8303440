// Package app собирает приложение: хранилище, кеш, сервисы, маршруты и HTTP-сервер.
package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/subscription-commerce/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/subscription-commerce/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/subscription-commerce/internal/http/handlers/health"
	planlist "github.com/magabrotheeeer/subscription-commerce/internal/http/handlers/plan/list"
	profileget "github.com/magabrotheeeer/subscription-commerce/internal/http/handlers/profile/get"
	profileremove "github.com/magabrotheeeer/subscription-commerce/internal/http/handlers/profile/remove"
	profileupdate "github.com/magabrotheeeer/subscription-commerce/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/subscription-commerce/internal/http/handlers/purchase"
	sublist "github.com/magabrotheeeer/subscription-commerce/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/subscription-commerce/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-commerce/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/subscription-commerce/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/subscription-commerce/internal/services/catalog"
	profileservice "github.com/magabrotheeeer/subscription-commerce/internal/services/profile"
	subservice "github.com/magabrotheeeer/subscription-commerce/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.AuthService,
	catalogService *catalogservice.CatalogService,
	profileService *profileservice.ProfileService,
	subscriptionService *subservice.SubscriptionService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/subscription-plans", planlist.New(logger, catalogService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/profile", profileget.New(logger, profileService).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, profileService).ServeHTTP)
			r.Patch("/profile", profileupdate.New(logger, profileService).ServeHTTP)
			r.Delete("/profile", profileremove.New(logger, profileService).ServeHTTP)
			r.Get("/subscriptions", sublist.New(logger, subscriptionService).ServeHTTP)
			r.Post("/purchase-subscription", purchase.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
