package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"finpal-server/src/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// maxAmount is the first value a NUMERIC(14, 2) column cannot hold.
var maxAmount = decimal.New(1, 12)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("money", validMoney); err != nil {
		panic(err)
	}

	return v
}

// validMoney accepts amounts with at most two decimal places that fit the
// amount columns. The custom type func has already turned the field into a
// float64, so the exact value is read from the parent struct.
func validMoney(fl validator.FieldLevel) bool {
	d, ok := exactDecimal(fl)
	if !ok {
		return false
	}
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxAmount)
}

func exactDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	parent := fl.Parent()
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return decimal.Decimal{}, false
	}
	field := parent.FieldByName(fl.StructFieldName())
	if !field.IsValid() {
		return decimal.Decimal{}, false
	}
	switch v := field.Interface().(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Decimal{}, false
		}
		return *v, true
	}
	return decimal.Decimal{}, false
}

// Validate checks v against its `validate` tags.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperr.Validation(describe(fieldErrs[0]), err)
	}
	return apperr.Validation("Invalid request body", err)
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long", field)
	case "money":
		return fmt.Sprintf("%s must have at most 2 decimal places and be less than %s", field, maxAmount.String())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// DecodeJSON reads a JSON body into dst and validates it.
func DecodeJSON(r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("Request body is required", err)
		}
		return apperr.Validation("Invalid JSON body", err)
	}
	return Validate(dst)
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	return validate.Var(s, "datetime=2006-01-02") == nil
}
