package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/product-api/internal/auth"
	"github.com/rogerio-castellano/product-api/internal/http/middleware"
	"github.com/rogerio-castellano/product-api/internal/models"
	"github.com/rogerio-castellano/product-api/internal/repo"
)

// RegisterHandler godoc
// @Summary Register new user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body RegisterRequest true "username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} ValidationErrorResult
// @Router /register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.serverError(w, r, "failed to hash password", err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), models.User{
		Username:     req.Username,
		PasswordHash: hashed,
	})
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		h.writeJSON(w, r, http.StatusConflict, map[string]string{"message": "username already exists"})
		return
	}
	if err != nil {
		h.serverError(w, r, "failed to register user", err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		h.serverError(w, r, "failed to generate token", err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, RegisterResult{Message: "user registered", Token: token})
}

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsRequest
	if !h.decode(w, r, &credentials) {
		return
	}

	user, err := h.users.GetByUsername(r.Context(), credentials.Username)
	if err != nil && !errors.Is(err, repo.ErrUserNotFound) {
		h.serverError(w, r, "could not fetch user", err)
		return
	}
	if err != nil || !auth.CheckPassword(user.PasswordHash, credentials.Password) {
		h.writeJSON(w, r, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		h.serverError(w, r, "could not generate token", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(h.tokens.TTL().Seconds()),
	})
}

// GetUserHandler godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /user [get]
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), middleware.UserID(r))
	if errors.Is(err, repo.ErrUserNotFound) {
		h.unauthenticated(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "could not fetch user", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, user)
}
