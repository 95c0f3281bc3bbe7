// Package validation turns submitted form values into validated input or per-field errors.
// Every text field is trimmed and checked for emptiness, invalid UTF-8 and HTML markup;
// numeric fields are checked here and returned as typed values.
package validation

import (
	"html"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

// maxPrice is the first value that no longer fits a decimal(10,2) column.
var maxPrice = decimal.New(1, 8)

var (
	validate = newValidator()
	policy   = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})
	v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})
	v.RegisterValidation("nomarkup", func(fl validator.FieldLevel) bool {
		return !HasMarkup(fl.Field().String())
	})
	v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
	v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return d.LessThan(maxPrice) && d.Equal(d.Truncate(2))
	})
	v.RegisterValidation("stock", func(fl validator.FieldLevel) bool {
		n, err := strconv.ParseInt(fl.Field().String(), 10, 64)
		return err == nil && n >= 0 && n <= math.MaxInt32
	})
	return v
}

// HasMarkup reports whether s contains anything a strict HTML policy would remove. Plain
// text such as "a < b" or "Milk & cheese" is not markup; "<b>" and "a<b" are.
func HasMarkup(s string) bool {
	s = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
	return html.UnescapeString(policy.Sanitize(s)) != html.UnescapeString(s)
}

// FieldError is a user-facing message attached to one form field.
type FieldError struct {
	Field string
	Msg   string
}

// FieldErrors is the set of problems found in one submission.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Msg
	}
	return strings.Join(msgs, "; ")
}

// For returns the first message for field, or "".
func (e FieldErrors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Msg
		}
	}
	return ""
}

// Field builds a single-entry FieldErrors.
func Field(field, msg string) FieldErrors {
	return FieldErrors{{Field: field, Msg: msg}}
}

var labels = map[string]string{
	"name":            "Name",
	"description":     "Description",
	"category":        "Category",
	"price":           "Price",
	"number_in_stock": "Number in stock",
}

var messages = map[string]string{
	"name":                  "Name must not be empty.",
	"description":           "Description must not be empty.",
	"category":              "Category must not be empty.",
	"price":                 "Price must not be empty.",
	"price.price":           "Price must be a non-negative number.",
	"price.money":           "Price must be below 100000000 with at most two decimal places.",
	"number_in_stock":       "Number in stock must not be empty.",
	"number_in_stock.stock": "Number in stock must be a non-negative whole number.",
}

var tagMessages = map[string]string{
	"utf8":     " must be valid UTF-8 text.",
	"nomarkup": " must not contain HTML markup.",
}

func message(field, tag string) (string, bool) {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg, true
	}
	if suffix, ok := tagMessages[tag]; ok {
		return labels[field] + suffix, true
	}
	msg, ok := messages[field]
	return msg, ok
}

func check(form any) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Field("form", err.Error())
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := message(fe.Field(), fe.Tag())
		if !ok {
			msg = fe.Error()
		}
		out = append(out, FieldError{Field: fe.Field(), Msg: msg})
	}
	return out
}
