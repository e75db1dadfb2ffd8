package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-records-api/internal/validation"
)

func TestStudentCatalog(t *testing.T) {
	birth := time.Now().AddDate(-20, 0, 0)
	student, err := NewStudent("S1", "Ana", "Gomez", birth, "Computer Science", "", 15)
	require.NoError(t, err)
	assert.Empty(t, validation.Validate(student, StudentCatalog()))

	student.Program = " "
	violations := validation.Validate(student, StudentCatalog())
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "'Program'")
}

func TestProfessorCatalogSalaryRange(t *testing.T) {
	birth := time.Now().AddDate(-40, 0, 0)
	professor, err := NewProfessor("P1", "Luis", "Marin", birth, "Mathematics", ContractFullTime, 500, 25)
	require.NoError(t, err)

	violations := validation.Validate(professor, ProfessorCatalog())
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "'BaseSalary'")

	professor.BaseSalary = 1000
	assert.Empty(t, validation.Validate(professor, ProfessorCatalog()))
}

func TestCourseCatalogCodePattern(t *testing.T) {
	for _, code := range []string{"CS101", "MAT201", "FIS999"} {
		course := &Course{Code: code, Name: "X", Credits: 5}
		assert.Empty(t, validation.Validate(course, CourseCatalog()), code)
	}
	for _, code := range []string{"cs101", "C101", "CSCI101", "CS10", "CS1011"} {
		course := &Course{Code: code, Name: "X", Credits: 5}
		assert.NotEmpty(t, validation.Validate(course, CourseCatalog()), code)
	}
}

func TestCourseCatalogCreditsRange(t *testing.T) {
	course := &Course{Code: "CS101", Name: "Programming I", Credits: 11}
	violations := validation.Validate(course, CourseCatalog())
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "'Credits'")
}
