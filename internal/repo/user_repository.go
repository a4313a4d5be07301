package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/product-api/internal/models"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id int) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}

var ErrUserNotFound = errors.New("user not found")

const defaultQueryTimeout = 3 * time.Second
