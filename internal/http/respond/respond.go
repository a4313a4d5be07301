package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrEncode is returned by JSON when data cannot be marshaled. Nothing has
// been written to the response in that case.
var ErrEncode = errors.New("failed to encode JSON")

// JSON takes a response status code and arbitrary data and writes a json response to the client
func JSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}
	return nil
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) error {
	return JSON(w, status, map[string]string{"message": msg})
}
