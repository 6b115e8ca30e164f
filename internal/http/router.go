package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/pokedex-api/internal/http/handlers"
	"github.com/pribylovaa/pokedex-api/internal/http/middleware"
	"github.com/pribylovaa/pokedex-api/internal/metrics"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
// m == nil отключает метрики запросов и решений гейта.
func NewRouter(h *handlers.Handlers, auth middleware.Authenticator, m *metrics.Metrics, opts Options) http.Handler {
	var (
		httpRec middleware.HTTPRecorder
		authRec middleware.AuthRecorder
	)
	if m != nil {
		httpRec, authRec = m, m
	}

	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(httpRec),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	gate := middleware.RequireAuth(auth, authRec)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, gate)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, gate)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, gate middleware.Middleware) {
	// auth
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)

	// catalog
	r.Get("/pokemon/{id}", h.GetPokemonByID)
	r.Get("/pokemon/name/{name}", h.GetPokemonByName)

	// защищённые маршруты
	r.Group(func(r chi.Router) {
		r.Use(gate)

		r.Post("/auth/logout", h.Logout)
		r.Post("/user/pokemon/add", h.AddPokemon)
		r.Get("/user/pokemon/inventory", h.Inventory)
	})
}
