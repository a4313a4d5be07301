package respond

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	headers := http.Header{"Retry-After": []string{"1"}}

	if err := JSON(w, http.StatusTooManyRequests, map[string]string{"message": "slow down"}, headers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("unexpected content type %q", got)
	}
	if got := w.Header().Get("Retry-After"); got != "1" {
		t.Errorf("expected Retry-After header, got %q", got)
	}
	if got := w.Body.String(); got != `{"message":"slow down"}` {
		t.Errorf("unexpected body %s", got)
	}
}

func TestJSONEncodeFailureWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()

	err := JSON(w, http.StatusOK, map[string]float64{"price": math.NaN()})
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
	if w.Body.Len() != 0 || w.Header().Get("Content-Type") != "" {
		t.Errorf("expected an untouched response, got headers %v body %q", w.Header(), w.Body.String())
	}
}
