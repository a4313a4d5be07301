package handlers

import (
	"context"
	"time"

	"github.com/rogerio-castellano/product-api/internal/auth"
	"github.com/rogerio-castellano/product-api/internal/repo"
	"go.uber.org/zap"
)

// Dependencies are the collaborators a Handler is built from.
type Dependencies struct {
	Products repo.ProductRepository
	Users    repo.UserRepository
	Tokens   *auth.TokenManager
	Logger   *zap.Logger
	// Ping reports storage health. Nil means the storage is always healthy.
	Ping func(ctx context.Context) error
}

// Handler serves the product, auth and user endpoints.
type Handler struct {
	products repo.ProductRepository
	users    repo.UserRepository
	tokens   *auth.TokenManager
	validate *Validation
	log      *zap.Logger
	ping     func(ctx context.Context) error
	now      func() time.Time
}

func NewHandler(d Dependencies) *Handler {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		products: d.Products,
		users:    d.Users,
		tokens:   d.Tokens,
		validate: NewValidation(),
		log:      log,
		ping:     d.Ping,
		now:      time.Now,
	}
}
