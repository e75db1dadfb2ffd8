package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	fields []Field
}

func (r *record) ValidationFields() []Field { return r.fields }

func TestValidateRequired(t *testing.T) {
	catalog := NewCatalog().
		Field("Name", Required()).
		Field("Code", Required())

	instance := &record{fields: []Field{
		{Name: "Name", Value: "   "},
		{Name: "Code", Value: "CS101"},
	}}

	violations := Validate(instance, catalog)
	require.Len(t, violations, 1)
	assert.Equal(t, "field 'Name' is required and must not be empty", violations[0])
}

func TestValidateRequiredAbsentPointer(t *testing.T) {
	catalog := NewCatalog().Field("Name", Required())
	instance := &record{fields: []Field{
		{Name: "Name", Value: (*string)(nil)},
	}}

	violations := Validate(instance, catalog)
	require.Len(t, violations, 1)
}

func TestValidateRange(t *testing.T) {
	catalog := NewCatalog().Field("Credits", Range(1, 10))

	valid := &record{fields: []Field{{Name: "Credits", Value: 10}}}
	assert.Empty(t, Validate(valid, catalog))

	invalid := &record{fields: []Field{{Name: "Credits", Value: 11}}}
	violations := Validate(invalid, catalog)
	require.Len(t, violations, 1)
	assert.Equal(t, "field 'Credits' (11) must be between 1 and 10", violations[0])
}

func TestValidateRangeSkipsNonNumeric(t *testing.T) {
	catalog := NewCatalog().Field("Credits", Range(1, 10))
	instance := &record{fields: []Field{{Name: "Credits", Value: "many"}}}

	assert.Empty(t, Validate(instance, catalog))
}

func TestValidatePattern(t *testing.T) {
	catalog := NewCatalog().Field("Code", Pattern(`^[A-Z]{2,3}[0-9]{3}$`))

	valid := &record{fields: []Field{{Name: "Code", Value: "MAT201"}}}
	assert.Empty(t, Validate(valid, catalog))

	invalid := &record{fields: []Field{{Name: "Code", Value: "cs101"}}}
	violations := Validate(invalid, catalog)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "field 'Code'")
	assert.Contains(t, violations[0], "cs101")
}

func TestValidatePatternSkipsBlank(t *testing.T) {
	catalog := NewCatalog().Field("Code", Pattern(`^[A-Z]{2,3}[0-9]{3}$`))
	instance := &record{fields: []Field{{Name: "Code", Value: ""}}}

	assert.Empty(t, Validate(instance, catalog))
}

func TestValidateUnknownFieldHasNoConstraints(t *testing.T) {
	catalog := NewCatalog().Field("Name", Required())
	instance := &record{fields: []Field{
		{Name: "Name", Value: "ok"},
		{Name: "Nickname", Value: ""},
	}}

	assert.Empty(t, Validate(instance, catalog))
}

func TestValidateDeterministicOrder(t *testing.T) {
	catalog := NewCatalog().
		Field("ID", Required()).
		Field("Name", Required()).
		Field("Credits", Range(1, 10))

	instance := &record{fields: []Field{
		{Name: "ID", Value: ""},
		{Name: "Name", Value: ""},
		{Name: "Credits", Value: 0},
	}}

	first := Validate(instance, catalog)
	second := Validate(instance, catalog)
	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Contains(t, first[0], "'ID'")
	assert.Contains(t, first[1], "'Name'")
	assert.Contains(t, first[2], "'Credits'")
}

func TestValidateNilInstance(t *testing.T) {
	violations := Validate(nil, NewCatalog())
	require.Len(t, violations, 1)
}
