package seed

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rogerio-castellano/product-api/internal/models"
	"github.com/rogerio-castellano/product-api/internal/repo"
	"go.uber.org/zap"
)

const (
	minProductID = 100_000_000
	maxProductID = 999_999_999
	minPrice     = 100
	maxPrice     = 1000
)

// Generator produces random products.
type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewGenerator returns a Generator seeded with seed. A zero seed picks a
// random one.
func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed), now: time.Now}
}

// Product returns one fake product ready to be stored.
func (g *Generator) Product() models.Product {
	now := g.now().UTC()
	description := g.faker.Paragraph(1, 3+g.faker.Number(0, 2), 6+g.faker.Number(0, 6), " ")
	category := capitalize(g.faker.Word())
	brand := g.faker.Company()

	return models.Product{
		ProductID:   int64(g.faker.Number(minProductID, maxProductID)),
		Name:        g.faker.Sentence(2 + g.faker.Number(0, 4)),
		Price:       float64(g.faker.Number(minPrice, maxPrice)),
		Description: &description,
		Category:    &category,
		Brand:       &brand,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Seed stores n fake products and returns how many were created.
func Seed(ctx context.Context, products repo.ProductRepository, g *Generator, n int, log *zap.Logger) (int, error) {
	for i := 0; i < n; i++ {
		if _, err := products.Create(ctx, g.Product()); err != nil {
			return i, fmt.Errorf("failed to seed product %d: %w", i+1, err)
		}
	}
	log.Info("seeded products", zap.Int("count", n))
	return n, nil
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
