package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/events-admin-console/internal/http/handlers"
	"github.com/pribylovaa/events-admin-console/internal/http/middleware"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
)

// Options — параметры сборки HTTP-роутера консоли.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// UploadTimeout — дедлайн multipart-загрузок вместо Timeout.
	UploadTimeout time.Duration
	BasePath      string // например, "/api"; если пустой — роуты регистрируются на корне.
	LoginPath     string // куда уводить оператора без сессии (Location)
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
// store — то же хранилище, что у шлюза: по нему RequireSession решает,
// есть ли у консоли сессия.
func NewRouter(h *handlers.Handlers, store tokenstore.Store, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // X-Request-Id до логирования: он же уйдёт в бэкенд
		middleware.Logging(opts.Logger), // request-scoped логгер в контексте
	)
	if opts.Timeout > 0 || opts.UploadTimeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout, opts.UploadTimeout))
	}

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, store, opts.LoginPath)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, store, opts.LoginPath)
	return root
}

// registerRoutes — единая точка регистрации всех эндпойнтов консоли.
func registerRoutes(r chi.Router, h *handlers.Handlers, store tokenstore.Store, loginPath string) {
	// auth — без проверки сессии
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/session", h.Session)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(store, loginPath))

		// events
		r.Get("/events", h.ListEvents)
		r.Get("/events/{id}", h.GetEvent)
		r.Post("/events/{id}/approve", h.ApproveEvent)
		r.Post("/events/{id}/reject", h.RejectEvent)

		// participants
		r.Get("/participants", h.ListParticipants)
		r.Patch("/participants/{id}/status", h.SetParticipantStatus)

		// store
		r.Get("/store/products", h.ListProducts)
		r.Post("/store/products", h.CreateProduct)
		r.Patch("/store/products/{id}", h.UpdateProduct)
		r.Delete("/store/products/{id}", h.DeleteProduct)

		// posts
		r.Get("/posts", h.ListPosts)
		r.Post("/posts/{id}/hide", h.HidePost)
		r.Delete("/posts/{id}", h.DeletePost)

		// dashboard
		r.Get("/dashboard", h.Dashboard)
	})
}
