package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field path (json names, dot separated) to a message.
type FieldErrors map[string]string

type CustomValidator struct {
	validator *validator.Validate
	messages  map[string]string
}

type Option func(*CustomValidator)

// WithVocabulary registers tag so that a string field passes only when its
// value is one of values. Values may contain spaces, unlike oneof.
func WithVocabulary(tag string, values []string) Option {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return func(cv *CustomValidator) {
		cv.validator.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			_, ok := allowed[fl.Field().String()]
			return ok
		})
	}
}

// WithMessages overrides messages. Keys are "<field>.<tag>" where field is
// the json name of the failing leaf field, or just "<tag>".
func WithMessages(messages map[string]string) Option {
	return func(cv *CustomValidator) {
		for k, v := range messages {
			cv.messages[k] = v
		}
	}
}

func NewValidator(opts ...Option) *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	cv := &CustomValidator{
		validator: v,
		messages:  map[string]string{},
	}
	for _, opt := range opts {
		opt(cv)
	}
	return cv
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ValidatePartial validates only the named fields. Names are Go field
// names relative to i, nested ones dot separated (e.g. "Totals.Active").
func (cv *CustomValidator) ValidatePartial(i interface{}, fields ...string) error {
	return cv.validator.StructPartial(i, fields...)
}

func (cv *CustomValidator) FormatValidationErrors(err error) FieldErrors {
	errs := make(FieldErrors)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs
	}

	for _, e := range validationErrors {
		path := fieldPath(e.Namespace())
		if _, seen := errs[path]; seen {
			continue
		}
		errs[path] = cv.message(e)
	}

	return errs
}

func (cv *CustomValidator) message(e validator.FieldError) string {
	if msg, ok := cv.messages[e.Field()+"."+e.Tag()]; ok {
		return msg
	}
	if msg, ok := cv.messages[e.Tag()]; ok {
		return msg
	}

	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " es requerido"
	case "email":
		return "Formato de correo inválido"
	case "url":
		return "Formato de URL inválido"
	case "min":
		return field + " debe tener al menos " + e.Param() + " elementos"
	case "max":
		return field + " debe tener como máximo " + e.Param() + " elementos"
	case "gte":
		return field + " debe ser mayor o igual a " + e.Param()
	case "lte", "ltefield":
		return field + " excede el máximo permitido"
	case "datetime":
		return field + " no tiene el formato " + e.Param()
	default:
		return field + " no es válido"
	}
}

// fieldPath drops the root struct name from a namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
