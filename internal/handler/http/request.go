package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
)

// optionalIntQuery parses an optional integer query parameter. A malformed
// value is reported as a validation error on that field.
func optionalIntQuery(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: key, Message: "must be an integer"}}
	}
	return &v, nil
}
