package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps field names to a list of validation error messages.
type FieldErrors map[string][]string

// ValidationError satisfies httpx.DomainProblem structurally so it can be
// rendered as a problem response without importing httpx.
type ValidationError struct {
	summary string
	fields  FieldErrors
}

func (e *ValidationError) Error() string { return e.summary }

// Fields returns the per-field messages.
func (e *ValidationError) Fields() FieldErrors { return e.fields }

func (e *ValidationError) ProblemCode() string    { return "ErrValidation" }
func (e *ValidationError) ProblemStatus() int     { return 400 }
func (e *ValidationError) ProblemTitle() string   { return "Validation error" }
func (e *ValidationError) ProblemDetail() string  { return e.summary }
func (e *ValidationError) ProblemTypeURI() string { return "urn:problem:validation-error" }
func (e *ValidationError) ProblemContext() any    { return map[string]any{"fields": e.fields} }

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Prefer json, then mapstructure tag names over Go field names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "mapstructure"} {
				name := strings.Split(fld.Tag.Get(tag), ",")[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return lowerFirst(fld.Name)
		})
	})
	return validate
}

// Email reports whether s is a syntactically valid email address.
func Email(s string) bool {
	return instance().Var(s, "required,email") == nil
}

// ValidateStruct validates v according to its `validate` tags. On failure it
// returns a *ValidationError whose summary reads like "invalid email" or
// "url is required, and 2 other errors".
func ValidateStruct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{summary: "validation failed", fields: FieldErrors{}}
	}
	fields := make(FieldErrors)
	for _, fe := range verrs {
		name := fieldPath(fe)
		fields[name] = append(fields[name], messageForTag(fe))
	}
	return &ValidationError{summary: summarize(fields), fields: fields}
}

// fieldPath drops the root struct name from the namespace, so nested fields
// read "database.url" rather than "Config.database.url".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless", "required_if":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return "is invalid"
	}
}

func summarize(fields FieldErrors) string {
	if msgs, ok := fields["email"]; ok {
		for _, m := range msgs {
			if strings.Contains(m, "valid email") {
				return withOthers("invalid email", countOthers(fields, "email"))
			}
		}
	}
	name, msg := first(fields)
	if name == "" {
		return "validation failed"
	}
	return withOthers(name+" "+msg, totalCount(fields)-1)
}

func withOthers(s string, others int) string {
	if others <= 0 {
		return s
	}
	return fmt.Sprintf("%s, and %d other error%s", s, others, plural(others))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(strings.ToLower(string(r[0])))[0]
	return string(r)
}

// first returns the alphabetically first field so summaries are stable.
func first(m FieldErrors) (string, string) {
	var name string
	for k, list := range m {
		if len(list) > 0 && (name == "" || k < name) {
			name = k
		}
	}
	if name == "" {
		return "", ""
	}
	return name, m[name][0]
}

func totalCount(m FieldErrors) int {
	n := 0
	for _, list := range m {
		n += len(list)
	}
	return n
}

func countOthers(m FieldErrors, field string) int {
	return totalCount(m) - len(m[field])
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
