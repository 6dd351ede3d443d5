// Package validation checks decoded JSON payloads against declarative
// schemas and reports the first violated constraint in a human-readable form.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind is the JSON type a field must have.
type Kind int

const (
	String Kind = iota
	Bool
)

// Field describes one payload field. Rules uses validator tag syntax
// (min, max, email, oneof) and applies to string fields only.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Rules    string
}

// Schema is an ordered set of fields. Fields are checked in order and
// fields the schema does not mention are ignored.
type Schema struct {
	Name   string
	Fields []Field
}

// Error is the first constraint a payload violated.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

var validate = validator.New()

// Check validates payload against schema and returns nil or an *Error.
func Check(schema Schema, payload map[string]any) error {
	for _, f := range schema.Fields {
		value, present := payload[f.Name]
		if !present || value == nil {
			if f.Required {
				return fieldErr(f.Name, "is required")
			}
			continue
		}

		switch f.Kind {
		case Bool:
			if _, ok := value.(bool); !ok {
				return fieldErr(f.Name, "must be a boolean")
			}
		case String:
			s, ok := value.(string)
			if !ok {
				return fieldErr(f.Name, "must be a string")
			}
			if s == "" {
				return fieldErr(f.Name, "is not allowed to be empty")
			}
			if f.Rules == "" {
				continue
			}
			if err := validate.Var(s, f.Rules); err != nil {
				return ruleErr(f.Name, err)
			}
		}
	}
	return nil
}

func fieldErr(name, msg string) *Error {
	return &Error{Field: name, Message: fmt.Sprintf("%q %s", name, msg)}
}

// ruleErr turns the first validator failure into a readable message.
func ruleErr(name string, err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fieldErr(name, "is invalid")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "min":
		return fieldErr(name, fmt.Sprintf("length must be at least %s characters long", fe.Param()))
	case "max":
		return fieldErr(name, fmt.Sprintf("length must be less than or equal to %s characters long", fe.Param()))
	case "email":
		return fieldErr(name, "must be a valid email")
	case "oneof":
		return fieldErr(name, fmt.Sprintf("must be one of [%s]", strings.Join(strings.Fields(fe.Param()), ", ")))
	default:
		return fieldErr(name, "is invalid")
	}
}
