package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aamoria/wellness-api/apierr"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON object into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.Validation("request body is required")
		}
		return apierr.Validation("invalid request body: %v", err)
	}
	return nil
}
