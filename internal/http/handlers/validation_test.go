package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNumericUnmarshal(t *testing.T) {
	tests := []struct {
		input     string
		expect    float64
		expectErr bool
	}{
		{input: `12`, expect: 12},
		{input: `12.5`, expect: 12.5},
		{input: `"7"`, expect: 7},
		{input: `" 3.25 "`, expect: 3.25},
		{input: `"abc"`, expectErr: true},
		{input: `"NaN"`, expectErr: true},
		{input: `"Infinity"`, expectErr: true},
		{input: `"-Inf"`, expectErr: true},
		{input: `"1e400"`, expectErr: true},
		{input: `1e400`, expectErr: true},
		{input: `""`, expectErr: true},
		{input: `true`, expectErr: true},
		{input: `[1]`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var n Numeric
			err := json.Unmarshal([]byte(tt.input), &n)
			if tt.expectErr {
				var typeErr *json.UnmarshalTypeError
				if !errors.As(err, &typeErr) {
					t.Fatalf("expected a type error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if float64(n) != tt.expect {
				t.Errorf("expected %v, got %v", tt.expect, float64(n))
			}
		})
	}
}

func TestValidationResult(t *testing.T) {
	v := NewValidation()

	t.Run("Valid request", func(t *testing.T) {
		id, price, name := Numeric(1), Numeric(2), "Table"
		if errs := v.Validate(&CreateProductRequest{ProductID: &id, Name: &name, Price: &price}); errs != nil {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("Zero values still count as present", func(t *testing.T) {
		id, price, name := Numeric(0), Numeric(0), "Free sample"
		if errs := v.Validate(&CreateProductRequest{ProductID: &id, Name: &name, Price: &price}); errs != nil {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("Product id beyond int64", func(t *testing.T) {
		price, name := Numeric(1), "Table"
		for _, id := range []Numeric{1e30, -1e30, Numeric(math.MaxInt64)} {
			res := v.Validate(&CreateProductRequest{ProductID: &id, Name: &name, Price: &price}).Result()
			if got := res.Errors["product_id"]; len(got) != 1 || got[0] != "The product_id field is out of range." {
				t.Errorf("expected out of range error for %v, got %v", float64(id), res.Errors)
			}
		}

		lowest := Numeric(math.MinInt64)
		if errs := v.Validate(&CreateProductRequest{ProductID: &lowest, Name: &name, Price: &price}); errs != nil {
			t.Errorf("expected MinInt64 to be accepted, got %v", errs)
		}
		if errs := v.Validate(&UpdateProductRequest{ProductID: &lowest}); errs != nil {
			t.Errorf("expected MinInt64 to be accepted on update, got %v", errs)
		}
	})

	t.Run("Every missing field is reported", func(t *testing.T) {
		res := v.Validate(&CreateProductRequest{}).Result()

		if res.Message != "The product_id field is required. (and 2 more errors)" {
			t.Errorf("unexpected message %q", res.Message)
		}
		for _, field := range []string{"product_id", "name", "price"} {
			if len(res.Errors[field]) != 1 {
				t.Errorf("expected one error for %s, got %v", field, res.Errors[field])
			}
		}
	})

	t.Run("Single additional error", func(t *testing.T) {
		res := v.Validate(&RegisterRequest{Username: "al", Password: "123"}).Result()
		if !strings.HasSuffix(res.Message, "(and 1 more error)") {
			t.Errorf("unexpected message %q", res.Message)
		}
		if got := res.Errors["username"]; len(got) != 1 || got[0] != "The username field must be at least 3 characters." {
			t.Errorf("unexpected username errors %v", got)
		}
	})

	t.Run("Blank name on update", func(t *testing.T) {
		blank := " "
		res := v.Validate(&UpdateProductRequest{Name: &blank}).Result()
		if len(res.Errors["name"]) != 1 {
			t.Errorf("expected name error, got %v", res.Errors)
		}
	})

	t.Run("Empty update is valid", func(t *testing.T) {
		if errs := v.Validate(&UpdateProductRequest{}); errs != nil {
			t.Errorf("expected no errors, got %v", errs)
		}
	})
}
