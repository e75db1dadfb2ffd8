package validation

import (
	"fmt"
	"strings"
)

// Field is a named value read from an entity instance.
type Field struct {
	Name  string
	Value interface{}
}

// FieldProvider is the capability an entity implements so the engine can
// inspect it: its publicly readable fields in declaration order. The stable
// order keeps violation lists deterministic for identical inputs.
type FieldProvider interface {
	ValidationFields() []Field
}

// Validate checks every field of the instance against the catalog and
// returns the full list of human-readable violations, in field declaration
// order. An empty list means the instance is valid. Validate never fails:
// absent values, non-numeric values under a Range rule and absent catalog
// entries are all simply skipped.
func Validate(instance FieldProvider, catalog *Catalog) []string {
	violations := []string{}
	if instance == nil {
		return append(violations, "instance to validate is nil")
	}

	for _, field := range instance.ValidationFields() {
		for _, constraint := range catalog.constraintsFor(field.Name) {
			switch constraint.kind {
			case KindRequired:
				if msg, ok := checkRequired(field); !ok {
					violations = append(violations, msg)
				}
			case KindRange:
				if msg, ok := checkRange(field, constraint); !ok {
					violations = append(violations, msg)
				}
			case KindPattern:
				if msg, ok := checkPattern(field, constraint); !ok {
					violations = append(violations, msg)
				}
			}
		}
	}
	return violations
}

func checkRequired(field Field) (string, bool) {
	if isAbsent(field.Value) {
		return fmt.Sprintf("field '%s' is required and must not be empty", field.Name), false
	}
	if s, ok := stringValue(field.Value); ok && strings.TrimSpace(s) == "" {
		return fmt.Sprintf("field '%s' is required and must not be empty", field.Name), false
	}
	return "", true
}

func checkRange(field Field, constraint Constraint) (string, bool) {
	if isAbsent(field.Value) {
		return "", true
	}
	value, ok := numericValue(field.Value)
	if !ok {
		return "", true
	}
	if value < constraint.min || value > constraint.max {
		return fmt.Sprintf("field '%s' (%v) must be between %v and %v",
			field.Name, value, constraint.min, constraint.max), false
	}
	return "", true
}

func checkPattern(field Field, constraint Constraint) (string, bool) {
	s, ok := stringValue(field.Value)
	if !ok || strings.TrimSpace(s) == "" {
		return "", true
	}
	if !constraint.pattern.MatchString(s) {
		return fmt.Sprintf("field '%s' ('%s') does not match the required format (%s)",
			field.Name, s, constraint.expr), false
	}
	return "", true
}

func isAbsent(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case *string:
		return v == nil
	case *int:
		return v == nil
	case *float64:
		return v == nil
	}
	return false
}

func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}

// numericValue folds every numeric kind into one canonical representation so
// range math never depends on the field's concrete width.
func numericValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case *int:
		if v == nil {
			return 0, false
		}
		return float64(*v), true
	case *float64:
		if v == nil {
			return 0, false
		}
		return *v, true
	}
	return 0, false
}
