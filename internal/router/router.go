package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"team-dashboard/internal/config"
	"team-dashboard/internal/handler"
	"team-dashboard/internal/metrics"
	"team-dashboard/internal/middleware"
	"team-dashboard/internal/model"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Template *handler.TemplateHandler
	Player   *handler.PlayerHandler
	Task     *handler.TaskHandler
	Feed     *handler.FeedHandler
	Media    *handler.MediaHandler
}

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	m *metrics.Metrics,
	metricsHandler http.Handler,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics(m))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metricsHandler)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
			auth.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleAdmin)).Post("/register", h.Auth.Register)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleAdmin))
			users.Get("/", h.User.List)
			users.Get("/{id}", h.User.Get)
			users.Put("/{id}/role", h.User.UpdateRole)
			users.Put("/{id}/suspension", h.User.UpdateSuspension)
		})

		api.Route("/templates", func(templates chi.Router) {
			templates.Use(authMiddleware.RequireAuth)
			templates.Get("/", h.Template.List)
			templates.With(authMiddleware.RequireRoles(model.RoleAdmin)).Post("/", h.Template.Create)

			templates.Route("/{template_id}", func(scoped chi.Router) {
				scoped.Group(func(admin chi.Router) {
					admin.Use(authMiddleware.RequireRoles(model.RoleAdmin))
					admin.Put("/", h.Template.Update)
					admin.Delete("/", h.Template.Delete)
					admin.Get("/members", h.Template.Members)
					admin.Put("/members/{user_id}", h.Template.AddMember)
					admin.Delete("/members/{user_id}", h.Template.RemoveMember)
				})

				scoped.Group(func(member chi.Router) {
					member.Use(authMiddleware.RequireTemplateAccess)
					member.Get("/", h.Template.Get)

					member.Route("/players", func(players chi.Router) {
						players.Get("/", h.Player.List)
						players.Post("/", h.Player.Create)
						players.Get("/{id}", h.Player.Get)
						players.Put("/{id}", h.Player.Update)
						players.Delete("/{id}", h.Player.Delete)
					})

					member.Route("/tasks", func(tasks chi.Router) {
						tasks.Get("/", h.Task.List)
						tasks.Post("/", h.Task.Create)
						tasks.Get("/{id}", h.Task.Get)
						tasks.Put("/{id}", h.Task.Update)
						tasks.Delete("/{id}", h.Task.Delete)
					})
				})
			})
		})

		api.Route("/messages", func(messages chi.Router) {
			messages.Use(authMiddleware.RequireAuth)
			messages.Get("/", h.Feed.ListMessages)
			messages.Post("/", h.Feed.PostMessage)
			messages.Delete("/{id}", h.Feed.DeleteMessage)
		})

		api.Route("/quotes", func(quotes chi.Router) {
			quotes.Use(authMiddleware.RequireAuth)
			quotes.Get("/", h.Feed.ListQuotes)
			quotes.Post("/", h.Feed.AddQuote)
			quotes.With(authMiddleware.RequireRoles(model.RoleAdmin)).Delete("/{id}", h.Feed.DeleteQuote)
		})

		api.Route("/commendations", func(commendations chi.Router) {
			commendations.Use(authMiddleware.RequireAuth)
			commendations.Get("/", h.Feed.ListCommendations)
			commendations.Post("/", h.Feed.AddCommendation)
		})

		api.Route("/media", func(media chi.Router) {
			media.Use(authMiddleware.RequireAuth)
			media.Get("/", h.Media.List)
			media.Post("/", h.Media.Upload)
			media.Get("/{id}", h.Media.Download)
			media.Get("/{id}/thumbnail", h.Media.Thumbnail)
			media.With(authMiddleware.RequireRoles(model.RoleAdmin)).Delete("/{id}", h.Media.Delete)
		})
	})

	return r
}
