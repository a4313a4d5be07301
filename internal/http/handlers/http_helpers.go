package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rogerio-castellano/product-api/internal/http/middleware"
	"github.com/rogerio-castellano/product-api/internal/http/respond"
	"go.uber.org/zap"
)

const maxBodyBytes = 1048576 // one megabyte

var errMultipleJSONValues = errors.New("body must have only a single json value")

// readJSON tries to read the body of a request and converts it into JSON.
// An empty body leaves data untouched.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errMultipleJSONValues
	}
	return nil
}

// decode reads the request body into data and validates it, writing the
// error response itself when something is wrong.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, data any) bool {
	if err := readJSON(w, r, data); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			h.writeJSON(w, r, http.StatusUnprocessableEntity, typeError(typeErr).Result())
			return false
		}
		h.writeJSON(w, r, http.StatusBadRequest, map[string]string{"message": "Invalid JSON payload"})
		return false
	}

	if errs := h.validate.Validate(data); len(errs) > 0 {
		h.writeJSON(w, r, http.StatusUnprocessableEntity, errs.Result())
		return false
	}
	return true
}

// writeJSON writes data with status. Data that cannot be encoded turns into
// the generic 500 body.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	err := respond.JSON(w, status, data)
	if errors.Is(err, respond.ErrEncode) {
		h.serverError(w, r, "could not encode response", err)
		return
	}
	if err != nil {
		h.log.Warn("failed to write JSON response",
			zap.String("request_id", middleware.RequestID(r.Context())),
			zap.Error(err),
		)
	}
}

// serverError logs err and answers with the generic failure body, never
// exposing err to the client.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log.Error(msg,
		zap.String("request_id", middleware.RequestID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	h.writeJSON(w, r, http.StatusInternalServerError, StatusResult{Status: statusFail, Message: "Internal server error"})
}

func (h *Handler) productNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusNotFound, StatusResult{Status: statusFail, Message: "Product not found"})
}

func (h *Handler) unauthenticated(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
}
