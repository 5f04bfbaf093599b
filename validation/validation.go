// Package validation checks request structs with go-playground/validator
// and reports failures as paging.ErrInvalidArgument.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	paging "github.com/nrfta/videohub"
)

// Error lists invalid fields by their JSON name.
type Error struct {
	Fields map[string]string
}

// Field returns an Error for a single field.
func Field(name, msg string) *Error {
	return &Error{Fields: map[string]string{name: msg}}
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, len(names))
	for i, name := range names {
		msgs[i] = e.Fields[name]
	}
	return "invalid argument: " + strings.Join(msgs, " ")
}

// Is makes Error match paging.ErrInvalidArgument.
func (e *Error) Is(target error) bool {
	return target == paging.ErrInvalidArgument
}

var messages = map[string]string{
	"required": "The field '%s' is required.",
	"uuid":     "The field '%s' must be a valid UUID.",
	"max":      "The field '%s' must be no longer than %s characters.",
}

// Validator validates structs tagged with `validate`.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator that names fields by their json tag.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct checks s and returns an *Error naming every failing field. When s
// is a pointer, its uuid-tagged string fields are lower-cased first so ids
// reach the store and cache keys in canonical form.
func (v *Validator) Struct(s any) error {
	canonicalize(s)

	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", paging.ErrInvalidArgument, err)
	}

	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	for _, e := range fieldErrs {
		msg, ok := messages[e.Tag()]
		switch {
		case !ok:
			out.Fields[e.Field()] = fmt.Sprintf("Field '%s' is invalid: %s", e.Field(), e.Tag())
		case strings.Count(msg, "%s") == 2:
			out.Fields[e.Field()] = fmt.Sprintf(msg, e.Field(), e.Param())
		default:
			out.Fields[e.Field()] = fmt.Sprintf(msg, e.Field())
		}
	}
	return out
}

func canonicalize(s any) {
	rv := reflect.ValueOf(s)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}

	rt := rv.Type()
	for i := range rt.NumField() {
		field := rv.Field(i)
		if field.Kind() != reflect.String || !field.CanSet() {
			continue
		}
		if slices.Contains(strings.Split(rt.Field(i).Tag.Get("validate"), ","), "uuid") {
			field.SetString(strings.ToLower(field.String()))
		}
	}
}
