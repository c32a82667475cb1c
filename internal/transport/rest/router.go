package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/httprate"

	"github.com/mwicaksana/construction-management/internal"
	"github.com/mwicaksana/construction-management/internal/auth"
	"github.com/mwicaksana/construction-management/internal/dashboard"
	"github.com/mwicaksana/construction-management/internal/materialspec"
	"github.com/mwicaksana/construction-management/internal/notification"
	"github.com/mwicaksana/construction-management/internal/project"
	"github.com/mwicaksana/construction-management/internal/scope"
	"github.com/mwicaksana/construction-management/internal/shopdrawing"
	"github.com/mwicaksana/construction-management/internal/task"
	"github.com/mwicaksana/construction-management/internal/transport/middleware"
	"github.com/mwicaksana/construction-management/internal/transport/swagger"
	"github.com/mwicaksana/construction-management/internal/user"
	"github.com/mwicaksana/construction-management/pkg/logger"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Project      *project.Handler
	Scope        *scope.Handler
	Task         *task.Handler
	Drawing      *shopdrawing.Handler
	Spec         *materialspec.Handler
	Notification *notification.Handler
	Dashboard    *dashboard.Handler
	Health       *HealthHandler
}

// NewRouter assembles the full route tree. Route-level permission gates
// are a first coarse check; services re-check capabilities on the
// operations where the route alone cannot decide.
func NewRouter(cfg *internal.Config, h Handlers, isDevelopment bool) chi.Router {
	log := logger.L()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.SecureHeaders(isDevelopment))

	r.Get("/ping", h.Health.pingHandler)
	r.Get("/health", h.Health.healthCheckHandler)

	r.Get("/openapi.yml", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, "api/openapi.yml")
	})
	r.Mount("/swagger", swagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(httprate.LimitByIP(cfg.Server.LoginRateLimit, time.Minute)).
				Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.With(h.Auth.AuthMiddleware).Post("/logout", h.Auth.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.AuthMiddleware)

			r.Get("/users/me", h.User.Me)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAny("manage_users"))
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/role-templates", h.User.RoleTemplates)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}/role", h.User.AssignRole)
				r.With(middleware.RequireAdmin()).Post("/{id}/permissions", h.User.Grant)
				r.With(middleware.RequireAdmin()).Delete("/{id}/permissions", h.User.Revoke)
				r.Put("/{id}/active", h.User.SetActive)
			})

			r.Route("/projects", func(r chi.Router) {
				r.With(middleware.RequireAny("view_projects")).Get("/", h.Project.List)
				r.With(middleware.RequireAny("create_projects")).Post("/", h.Project.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequireAny("view_projects")).Get("/", h.Project.Get)
					r.With(middleware.RequireAny("edit_projects")).Put("/", h.Project.Update)
					r.With(middleware.RequireAny("edit_projects")).Put("/status", h.Project.UpdateStatus)
					r.With(middleware.RequireAny("delete_projects")).Delete("/", h.Project.Delete)
				})

				r.Route("/{projectID}/scope", func(r chi.Router) {
					r.With(middleware.RequireAny("view_projects")).Get("/", h.Scope.List)
					r.With(middleware.RequireAny("manage_scope")).Post("/", h.Scope.Create)
				})

				r.Route("/{projectID}/tasks", func(r chi.Router) {
					r.With(middleware.RequireAny("view_projects")).Get("/", h.Task.ListByProject)
					r.With(middleware.RequireAny("manage_tasks")).Post("/", h.Task.Create)
				})

				r.Route("/{projectID}/drawings", func(r chi.Router) {
					r.With(middleware.RequireAny("view_projects")).Get("/", h.Drawing.ListByProject)
					r.With(middleware.RequireAny("view_projects")).Post("/", h.Drawing.Submit)
				})

				r.Route("/{projectID}/specs", func(r chi.Router) {
					r.With(middleware.RequireAny("view_projects")).Get("/", h.Spec.ListByProject)
					r.With(middleware.RequireAny("view_projects")).Post("/", h.Spec.Submit)
				})
			})

			r.Route("/scope/{id}", func(r chi.Router) {
				r.With(middleware.RequireAny("view_projects")).Get("/", h.Scope.Get)
				r.With(middleware.RequireAny("manage_scope")).Put("/", h.Scope.Update)
				r.With(middleware.RequireAny("manage_scope")).Delete("/", h.Scope.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/mine", h.Task.ListMine)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequireAny("view_projects")).Get("/", h.Task.Get)
					r.With(middleware.RequireAny("manage_tasks")).Put("/", h.Task.Update)
					r.With(middleware.RequireAny("manage_tasks")).Put("/assign", h.Task.Assign)
					r.With(middleware.RequireAny("manage_tasks")).Put("/status", h.Task.Transition)
					r.With(middleware.RequireAny("manage_tasks")).Delete("/", h.Task.Delete)
				})
			})

			r.Route("/drawings", func(r chi.Router) {
				r.With(middleware.RequireAll("view_projects", "approve_shop_drawings")).Get("/review-queue", h.Drawing.ReviewQueue)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequireAny("view_projects")).Get("/", h.Drawing.Get)
					r.Post("/resubmit", h.Drawing.Resubmit)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAny("approve_shop_drawings"))
						r.Post("/approve", h.Drawing.Approve)
						r.Post("/reject", h.Drawing.Reject)
						r.Post("/request-revision", h.Drawing.RequestRevision)
					})
				})
			})

			r.Route("/specs", func(r chi.Router) {
				r.With(middleware.RequireAll("view_projects", "approve_material_specs")).Get("/pending", h.Spec.PendingQueue)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequireAny("view_projects")).Get("/", h.Spec.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAny("approve_material_specs"))
						r.Post("/approve", h.Spec.Approve)
						r.Post("/reject", h.Spec.Reject)
					})
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Put("/{id}/read", h.Notification.MarkRead)
				r.Put("/read-all", h.Notification.MarkAllRead)
			})

			r.With(middleware.RequireAny("view_dashboard")).Get("/dashboard", h.Dashboard.Summary)
		})
	})

	return r
}
