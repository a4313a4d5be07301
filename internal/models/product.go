package models

import "time"

// Product represents a product entity in the catalog.
type Product struct {
	ID          int       `json:"id"`
	ProductID   int64     `json:"product_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Brand       *string   `json:"brand"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
