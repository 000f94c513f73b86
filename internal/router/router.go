package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "ferrastock/docs" // registra o documento Swagger gerado pelo swag
	"ferrastock/internal/api/dashboard"
	"ferrastock/internal/api/item"
	"ferrastock/internal/api/stock"
	"ferrastock/internal/api/supplier"
	"ferrastock/internal/api/user"
	"ferrastock/internal/pkg/cache"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/pkg/middleware"
)

// Handlers reúne os Handlers já inicializados em main.go.
type Handlers struct {
	Stock     *stock.Handler
	Item      *item.Handler
	Supplier  *supplier.Handler
	Dashboard *dashboard.Handler
	User      *user.Handler
}

// Config carrega as dependências transversais do roteador.
type Config struct {
	Resolver        middleware.IdentityResolver
	Cache           cache.Client
	RateLimitMax    int
	RateLimitPeriod time.Duration
	Logger          logger.Logger
}

// NewRouter configura e retorna o roteador HTTP da aplicação.
//
//	GET  /ping           health check
//	GET  /swagger/*      documentação
//	     /api/v1/auth/*  registro e login (públicos)
//	     /api/v1/...     demais rotas, todas com Bearer token
func NewRouter(h Handlers, cfg Config) http.Handler {
	r := chi.NewRouter()

	// /items/ -> /items
	r.Use(chimiddleware.StripSlashes)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Mount("/api/v1", v1Router(h, cfg))

	return r
}

func v1Router(h Handlers, cfg Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RateLimiter(cfg.Cache, cfg.RateLimitMax, cfg.RateLimitPeriod, cfg.Logger))

	h.User.RegisterPublicRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(cfg.Resolver))

		h.User.RegisterProtectedRoutes(r)
		h.Stock.RegisterRoutes(r)
		h.Item.RegisterRoutes(r)
		h.Supplier.RegisterRoutes(r)
		h.Dashboard.RegisterRoutes(r)
	})

	return r
}
