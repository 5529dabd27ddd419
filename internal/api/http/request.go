package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/kevserarslan/car-rental-management/internal/domain"
)

const (
	maxBodySize = 1048576 // 1MB
	dateLayout  = "2006-01-02"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationError carries the per-field failures of a request body.
type ValidationError struct {
	Details []ErrorDetail
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// ReadJSON decodes a single JSON value from the body into dst.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError), errors.Is(err, io.ErrUnexpectedEOF):
			return domain.Validation("Malformed JSON")
		case errors.As(err, &unmarshalTypeError):
			return domain.Validation("Invalid type for field %s", unmarshalTypeError.Field)
		case errors.As(err, &maxBytesError):
			return domain.Validation("Request body too large")
		case errors.Is(err, io.EOF):
			return domain.Validation("Request body is empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return domain.Validation("Unknown field %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		default:
			return err
		}
	}

	if decoder.More() {
		return domain.Validation("Body must contain only a single JSON value")
	}
	return nil
}

// ReadAndValidate reads JSON and validates it using struct tags
func ReadAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := ReadJSON(w, r, dst); err != nil {
		return err
	}
	return Validate(dst)
}

func Validate(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	details := make([]ErrorDetail, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, ErrorDetail{
			Field:   fe.Field(),
			Message: validationMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return &ValidationError{Details: details}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gt":
		return "Value must be greater than " + fe.Param()
	case "gte":
		return "Value must be greater than or equal to " + fe.Param()
	case "lte":
		return "Value must be less than or equal to " + fe.Param()
	case "datetime":
		return "Date must use the format " + fe.Param()
	case "oneof":
		return "Value must be one of: " + fe.Param()
	default:
		return "Invalid value"
	}
}

// pathID parses the named mux variable as a positive integer id.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("Invalid %s: %s", name, raw)
	}
	return id, nil
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// parseDate parses a calendar date (YYYY-MM-DD) as midnight UTC.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.Validation("Invalid %s, expected YYYY-MM-DD: %s", field, value)
	}
	return t, nil
}

// parseTimestamp accepts RFC 3339 or a bare date.
func parseTimestamp(field, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t, nil
	}
	return parseDate(field, value)
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, domain.Validation("Missing query parameter: %s", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.Validation("Invalid %s: %s", name, raw)
	}
	return v, nil
}

func queryDefault(r *http.Request, name, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(name)); v != "" {
		return v
	}
	return fallback
}
