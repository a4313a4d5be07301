package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/product-api/docs"
	"github.com/rogerio-castellano/product-api/internal/http/handlers"
	"github.com/rogerio-castellano/product-api/internal/http/middleware"
	"github.com/rogerio-castellano/product-api/internal/http/respond"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type Options struct {
	Handler *handlers.Handler
	Tokens  middleware.TokenParser
	Logger  *zap.Logger
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(o Options) http.Handler {
	h := o.Handler
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimw.Recoverer)
	if o.RateLimiter != nil {
		r.Use(o.RateLimiter.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/health", h.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.GetProductsHandler)
		r.Post("/", h.CreateProductHandler)
		r.Get("/{id}", h.GetProductByIDHandler)
		r.Patch("/{id}", h.UpdateProductHandler)
		r.Delete("/{id}", h.DeleteProductHandler)
	})

	r.Post("/login", h.LoginHandler)
	r.Post("/register", h.RegisterHandler)
	r.With(middleware.Auth(o.Tokens)).Get("/user", h.GetUserHandler)

	return r
}
