package handlers

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/rogerio-castellano/product-api/internal/models"
	"github.com/spf13/cast"
)

// Numeric accepts a JSON number or a string holding a finite number.
type Numeric float64

func (n *Numeric) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*n = Numeric(v)
		return nil
	case string:
		if s := strings.TrimSpace(v); s != "" {
			if f, err := cast.ToFloat64E(s); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				*n = Numeric(f)
				return nil
			}
		}
	}

	return &json.UnmarshalTypeError{
		Value: reflect.ValueOf(raw).Kind().String(),
		Type:  reflect.TypeOf(*n),
	}
}

type CreateProductRequest struct {
	ProductID   *Numeric `json:"product_id" validate:"required,int64range"`
	Name        *string  `json:"name" validate:"required,notblank"`
	Price       *Numeric `json:"price" validate:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
}

func (req CreateProductRequest) toProduct(now time.Time) models.Product {
	return models.Product{
		ProductID:   int64(*req.ProductID),
		Name:        *req.Name,
		Price:       float64(*req.Price),
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateProductRequest carries a partial update. Nil fields are left as they are.
type UpdateProductRequest struct {
	ProductID   *Numeric `json:"product_id" validate:"omitempty,int64range"`
	Name        *string  `json:"name" validate:"omitempty,notblank"`
	Price       *Numeric `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
}

func (req UpdateProductRequest) apply(p *models.Product) {
	if req.ProductID != nil {
		p.ProductID = int64(*req.ProductID)
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = float64(*req.Price)
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	if req.Brand != nil {
		p.Brand = req.Brand
	}
}

type ProductResult struct {
	Product models.Product `json:"product"`
	Status  string         `json:"status"`
}

type ProductsResult struct {
	Products []models.Product `json:"products"`
}

type StatusResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ValidationErrorResult struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type HealthResult struct {
	Status string `json:"status"`
}

const (
	statusSuccess = "success"
	statusFail    = "fail"
)
