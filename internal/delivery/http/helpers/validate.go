package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ordermail/internal/domain"
)

// maxBodyBytes caps request bodies; order payloads are a few KB.
const maxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that support validation.
// MissingFields returns the names of required fields that are absent; nil or empty means valid.
type Validator interface {
	MissingFields() []string
}

// DecodeAndValidate decodes the request body into dest and, if dest implements
// Validator, checks it. An empty body decodes as an empty object. On failure it
// writes a 400 JSON error and returns false; otherwise returns true.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		WriteJSONError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if missing := v.MissingFields(); len(missing) > 0 {
			WriteMissingFields(w, missing)
			return false
		}
	}
	return true
}

// WriteMissingFields writes a 400 naming the required fields that were not supplied.
func WriteMissingFields(w http.ResponseWriter, fields []string) {
	verr := &domain.ValidationError{Fields: fields}
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Error(), MissingFields: fields})
}
