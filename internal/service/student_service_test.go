package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-records-api/internal/models"
	"github.com/noah-isme/uni-records-api/internal/repository"
	"github.com/noah-isme/uni-records-api/pkg/config"
	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
)

func newStudentService(f *academicFixture) *StudentService {
	return NewStudentService(f.students, f.ledger, config.AcademicConfig{MinStudentAge: 15}, nil, nil, nil)
}

func birthDateYearsAgo(years int) string {
	return time.Now().AddDate(-years, 0, 0).Format("2006-01-02")
}

func TestStudentServiceCreate(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)

	student, err := service.Create(CreateStudentRequest{
		ID:        "S1",
		FirstName: "Ana",
		LastName:  "Gomez",
		BirthDate: birthDateYearsAgo(20),
		Program:   "Computer Science",
	})
	require.NoError(t, err)
	assert.Equal(t, "S1", student.ID)
	assert.Equal(t, "Ana Gomez", student.FullName)
	assert.Equal(t, 1, f.students.Len())
}

func TestStudentServiceCreateMissingFields(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)

	_, err := service.Create(CreateStudentRequest{ID: "S1"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestStudentServiceCreateBadBirthDate(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)

	_, err := service.Create(CreateStudentRequest{
		ID:        "S1",
		FirstName: "Ana",
		LastName:  "Gomez",
		BirthDate: "15/03/2005",
		Program:   "CS",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestStudentServiceCreateUnderage(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)

	_, err := service.Create(CreateStudentRequest{
		ID:        "S1",
		FirstName: "Ana",
		LastName:  "Gomez",
		BirthDate: time.Now().AddDate(-14, 0, 0).Format("2006-01-02"),
		Program:   "CS",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvariant))
	assert.Equal(t, 0, f.students.Len())
}

func TestStudentServiceCreateDuplicate(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)

	req := CreateStudentRequest{
		ID:        "S1",
		FirstName: "Ana",
		LastName:  "Gomez",
		BirthDate: birthDateYearsAgo(20),
		Program:   "CS",
	}
	_, err := service.Create(req)
	require.NoError(t, err)

	_, err = service.Create(req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateKey))
}

func TestStudentServiceListByProgram(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)

	for i, program := range []string{"CS", "Math", "CS"} {
		_, err := service.Create(CreateStudentRequest{
			ID:        fmt.Sprintf("S%d", i+1),
			FirstName: "Ana",
			LastName:  "Gomez",
			BirthDate: birthDateYearsAgo(20),
			Program:   program,
		})
		require.NoError(t, err)
	}

	assert.Len(t, service.List(""), 3)
	assert.Len(t, service.List("cs"), 2)
	assert.Empty(t, service.List("History"))
}

func TestStudentServiceUpdate(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")

	newName := "Maria"
	updated, err := service.Update("S1", UpdateStudentRequest{FirstName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Maria Gomez", updated.FullName)

	stored, ok := f.students.FindByID("S1")
	require.True(t, ok)
	assert.Equal(t, "Maria", stored.FirstName)
}

func TestStudentServiceUpdateRejectsInvalidCandidate(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")

	blank := "  "
	_, err := service.Update("S1", UpdateStudentRequest{Program: &blank})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	// The stored entity is untouched after a rejected edit.
	stored, ok := f.students.FindByID("S1")
	require.True(t, ok)
	assert.Equal(t, "CS", stored.Program)
}

func TestStudentServiceDelete(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")

	require.NoError(t, service.Delete("S1"))
	assert.Equal(t, 0, f.students.Len())

	err := service.Delete("S1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestStudentServiceDeleteRefusedWhileEnrolled(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)
	_, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)

	err = service.Delete("S1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.Equal(t, 1, f.students.Len())
}

func TestStudentServiceValidate(t *testing.T) {
	f := newAcademicFixture(t)
	service := newStudentService(f)
	student := f.addStudent(t, "S1", "Ana", "Gomez", "CS")

	violations, err := service.Validate("S1")
	require.NoError(t, err)
	assert.Empty(t, violations)

	student.Program = ""
	violations, err = service.Validate("S1")
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "'Program'")
}

func TestStudentServiceValidationErrorCarriesDetails(t *testing.T) {
	repo := repository.NewIdentityRepository[*models.Student]()
	service := NewStudentService(repo, nil, config.AcademicConfig{MinStudentAge: 15}, nil, nil, nil)

	student, err := models.NewStudent("S1", "Ana", "Gomez", time.Now().AddDate(-20, 0, 0), "CS", "", 15)
	require.NoError(t, err)
	require.NoError(t, repo.Add(student))

	blank := " "
	_, err = service.Update("S1", UpdateStudentRequest{Program: &blank})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Len(t, appErr.Details, 1)
}
