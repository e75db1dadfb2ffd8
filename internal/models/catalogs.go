package models

import "github.com/noah-isme/uni-records-api/internal/validation"

// CourseCodePattern is the canonical course code format: two or three
// uppercase letters followed by exactly three digits.
const CourseCodePattern = `^[A-Z]{2,3}[0-9]{3}$`

// Per-type constraint catalogs, declared once and consulted by the
// validation engine. They deliberately re-state invariants the constructors
// already enforce: construction guards what must never be violated in
// memory, the catalogs support soft, batched re-validation after edits.
var (
	studentCatalog = validation.NewCatalog().
			Field("ID", validation.Required()).
			Field("FirstName", validation.Required()).
			Field("LastName", validation.Required()).
			Field("Program", validation.Required())

	professorCatalog = validation.NewCatalog().
				Field("ID", validation.Required()).
				Field("FirstName", validation.Required()).
				Field("LastName", validation.Required()).
				Field("Department", validation.Required()).
				Field("BaseSalary", validation.Range(1000, 100000))

	courseCatalog = validation.NewCatalog().
			Field("Code", validation.Required()).
			Field("Code", validation.Pattern(CourseCodePattern)).
			Field("Name", validation.Required()).
			Field("Credits", validation.Range(1, 10))
)

// StudentCatalog returns the constraint catalog for Student.
func StudentCatalog() *validation.Catalog { return studentCatalog }

// ProfessorCatalog returns the constraint catalog for Professor.
func ProfessorCatalog() *validation.Catalog { return professorCatalog }

// CourseCatalog returns the constraint catalog for Course.
func CourseCatalog() *validation.Catalog { return courseCatalog }

// ValidationFields exposes the student's readable fields in declaration
// order.
func (s *Student) ValidationFields() []validation.Field {
	return []validation.Field{
		{Name: "ID", Value: s.ID},
		{Name: "FirstName", Value: s.FirstName},
		{Name: "LastName", Value: s.LastName},
		{Name: "Program", Value: s.Program},
		{Name: "EnrollmentNumber", Value: s.EnrollmentNumber},
	}
}

// ValidationFields exposes the professor's readable fields in declaration
// order.
func (p *Professor) ValidationFields() []validation.Field {
	return []validation.Field{
		{Name: "ID", Value: p.ID},
		{Name: "FirstName", Value: p.FirstName},
		{Name: "LastName", Value: p.LastName},
		{Name: "Department", Value: p.Department},
		{Name: "Contract", Value: string(p.Contract)},
		{Name: "BaseSalary", Value: p.BaseSalary},
	}
}

// ValidationFields exposes the course's readable fields in declaration
// order.
func (c *Course) ValidationFields() []validation.Field {
	return []validation.Field{
		{Name: "Code", Value: c.Code},
		{Name: "Name", Value: c.Name},
		{Name: "Credits", Value: c.Credits},
	}
}
