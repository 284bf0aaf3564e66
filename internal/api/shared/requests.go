package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxRequestBodyBytes caps the size of JSON request bodies.
const MaxRequestBodyBytes int64 = 1 << 20

// ErrEmptyBody is returned when a JSON body is required but missing.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes the request body into the given struct.
// The body is limited to MaxRequestBodyBytes.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}
