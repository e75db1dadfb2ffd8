package validation

import "regexp"

// Kind discriminates constraint descriptors.
type Kind int

// Constraint kinds.
const (
	KindRequired Kind = iota
	KindRange
	KindPattern
)

// Constraint is one declarative rule attached to a field: Required, a
// numeric Range or a string Pattern.
type Constraint struct {
	kind    Kind
	min     float64
	max     float64
	pattern *regexp.Regexp
	expr    string
}

// Required declares that a field must be present and, for strings, not blank.
func Required() Constraint {
	return Constraint{kind: KindRequired}
}

// Range declares an inclusive numeric range for a field. It only applies to
// numeric-valued fields and is skipped when the value is absent.
func Range(min, max float64) Constraint {
	return Constraint{kind: KindRange, min: min, max: max}
}

// Pattern declares a regular expression a string field must match. The
// expression is compiled once at catalog construction; an invalid expression
// panics, as catalogs are built from literals at startup.
func Pattern(expr string) Constraint {
	return Constraint{kind: KindPattern, pattern: regexp.MustCompile(expr), expr: expr}
}

// Kind exposes the constraint discriminator.
func (c Constraint) Kind() Kind { return c.kind }

// Catalog maps field names to their declared constraints for one entity
// type. It is pure metadata, declared once per type and consulted by
// Validate; a field with no entry simply has no constraints.
type Catalog struct {
	rules map[string][]Constraint
}

// NewCatalog builds an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{rules: make(map[string][]Constraint)}
}

// Field attaches constraints to a named field, returning the catalog for
// chaining.
func (c *Catalog) Field(name string, constraints ...Constraint) *Catalog {
	c.rules[name] = append(c.rules[name], constraints...)
	return c
}

// constraintsFor returns the declared constraints for a field, nil when none.
func (c *Catalog) constraintsFor(name string) []Constraint {
	if c == nil {
		return nil
	}
	return c.rules[name]
}
