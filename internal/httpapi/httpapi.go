// Package httpapi exposes the dogs and defects services over HTTP.
package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; a dog record is a few hundred bytes.
const maxBodyBytes = 1 << 20

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON writes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contract.Logger().Warn("failed to encode response",
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err))
	}
}

// writeError maps domain errors to status codes. Storage details are logged, not returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *schema.ValidationError
		notFoundErr   *schema.NotFoundError
		storageErr    *schema.StorageError
	)
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: validationErr.Message})
	case errors.As(err, &notFoundErr):
		writeJSON(w, r, http.StatusNotFound, errorBody{Error: notFoundErr.Error()})
	default:
		msg := "internal error"
		if errors.As(err, &storageErr) {
			msg = storageMessage(storageErr.Op)
		}
		contract.Logger().Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err))
		writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: msg})
	}
}

func storageMessage(op string) string {
	switch op {
	case "save":
		return "failed to save the dataset"
	case "read":
		return "failed to read defect records"
	default:
		return "failed to read the dataset"
	}
}

// decodeFields reads a dog request body. An empty body is treated as an empty object.
func decodeFields(r *http.Request, w http.ResponseWriter) (schema.DogFields, error) {
	var fields schema.DogFields
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fields, schema.NewValidationError("invalid body: %v", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		if schema.IsValidation(err) {
			return fields, err
		}
		return fields, schema.NewValidationError("invalid body: %v", err)
	}
	return fields, nil
}
