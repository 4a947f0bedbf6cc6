// Package handler contains the HTTP handlers for every entity group.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"depot-rest-api/internal/errs"
	"depot-rest-api/pkg/apierror"
)

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) *apierror.Error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierror.BadRequest("invalid request body")
	}
	return nil
}

// queryID parses an unsigned integer query parameter.
func queryID(r *http.Request, name string) (uint64, *apierror.Error) {
	id, err := strconv.ParseUint(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0, apierror.BadRequest(name + " must be a positive integer")
	}
	return id, nil
}

// storeError logs a store failure server-side and flattens it to the envelope.
// Specific SQL details never reach the caller.
func storeError(log *zap.Logger, err error, message string) *apierror.Error {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return apierror.NotFound(message)
	case errors.Is(err, errs.ErrInsufficientStock):
		return apierror.BadRequest("insufficient stock, operation failed")
	case errors.Is(err, errs.ErrConstraintViolation):
		return apierror.BadRequest(message)
	default:
		log.Warn("store failure", zap.Error(err))
		return apierror.InternalError(message)
	}
}
