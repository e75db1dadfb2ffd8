package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-records-api/internal/models"
	"github.com/noah-isme/uni-records-api/internal/repository"
	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
)

type courseFixture struct {
	*academicFixture
	professors *repository.IdentityRepository[*models.Professor]
	service    *CourseService
}

func newCourseFixture(t *testing.T) *courseFixture {
	t.Helper()
	f := &courseFixture{
		academicFixture: newAcademicFixture(t),
		professors:      repository.NewIdentityRepository[*models.Professor](),
	}
	f.service = NewCourseService(f.courses, f.professors, f.ledger, nil, nil, nil)
	return f
}

func (f *courseFixture) addProfessor(t *testing.T, id string) *models.Professor {
	t.Helper()
	professor, err := models.NewProfessor(id, "Luis", "Marin", time.Now().AddDate(-40, 0, 0), "Mathematics", models.ContractFullTime, 4500, 25)
	require.NoError(t, err)
	require.NoError(t, f.professors.Add(professor))
	return professor
}

func TestCourseServiceCreate(t *testing.T) {
	f := newCourseFixture(t)

	course, err := f.service.Create(CreateCourseRequest{Code: "CS101", Name: "Programming I", Credits: 6})
	require.NoError(t, err)
	assert.Equal(t, "CS101", course.Code)
	assert.Nil(t, course.Professor)
	assert.Equal(t, 1, f.courses.Len())
}

func TestCourseServiceCreateRejectsLowercaseCode(t *testing.T) {
	f := newCourseFixture(t)

	_, err := f.service.Create(CreateCourseRequest{Code: "cs101", Name: "Programming I", Credits: 6})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, 0, f.courses.Len())
}

func TestCourseServiceCreateRejectsCreditsOutOfRange(t *testing.T) {
	f := newCourseFixture(t)

	_, err := f.service.Create(CreateCourseRequest{Code: "CS101", Name: "Programming I", Credits: 11})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestCourseServiceCreateDuplicateCode(t *testing.T) {
	f := newCourseFixture(t)

	req := CreateCourseRequest{Code: "CS101", Name: "Programming I", Credits: 6}
	_, err := f.service.Create(req)
	require.NoError(t, err)

	_, err = f.service.Create(req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateKey))
}

func TestCourseServiceAssignProfessor(t *testing.T) {
	f := newCourseFixture(t)
	f.addCourse(t, "CS101", "Programming I", 6)
	f.addProfessor(t, "P1")

	course, err := f.service.AssignProfessor("CS101", AssignProfessorRequest{ProfessorID: "P1"})
	require.NoError(t, err)
	require.NotNil(t, course.Professor)
	assert.Equal(t, "P1", course.Professor.ID)
}

func TestCourseServiceAssignUnknownProfessor(t *testing.T) {
	f := newCourseFixture(t)
	f.addCourse(t, "CS101", "Programming I", 6)

	_, err := f.service.AssignProfessor("CS101", AssignProfessorRequest{ProfessorID: "ghost"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestCourseServiceDanglingProfessorResolvesNil(t *testing.T) {
	f := newCourseFixture(t)
	f.addCourse(t, "CS101", "Programming I", 6)
	f.addProfessor(t, "P1")

	_, err := f.service.AssignProfessor("CS101", AssignProfessorRequest{ProfessorID: "P1"})
	require.NoError(t, err)

	f.professors.Remove("P1")
	course, err := f.service.Get("CS101")
	require.NoError(t, err)
	assert.Nil(t, course.Professor)
}

func TestCourseServiceClearProfessor(t *testing.T) {
	f := newCourseFixture(t)
	f.addCourse(t, "CS101", "Programming I", 6)
	f.addProfessor(t, "P1")

	_, err := f.service.AssignProfessor("CS101", AssignProfessorRequest{ProfessorID: "P1"})
	require.NoError(t, err)

	course, err := f.service.ClearProfessor("CS101")
	require.NoError(t, err)
	assert.Nil(t, course.Professor)
}

func TestCourseServiceUpdate(t *testing.T) {
	f := newCourseFixture(t)
	f.addCourse(t, "CS101", "Programming I", 6)

	credits := 8
	course, err := f.service.Update("CS101", UpdateCourseRequest{Credits: &credits})
	require.NoError(t, err)
	assert.Equal(t, 8, course.Credits)

	credits = 0
	_, err = f.service.Update("CS101", UpdateCourseRequest{Credits: &credits})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	stored, ok := f.courses.FindByID("CS101")
	require.True(t, ok)
	assert.Equal(t, 8, stored.Credits)
}

func TestCourseServiceDeleteRefusedWhileEnrolled(t *testing.T) {
	f := newCourseFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)
	_, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)

	err = f.service.Delete("CS101")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestCourseServiceDelete(t *testing.T) {
	f := newCourseFixture(t)
	f.addCourse(t, "CS101", "Programming I", 6)

	require.NoError(t, f.service.Delete("CS101"))
	assert.Equal(t, 0, f.courses.Len())

	err := f.service.Delete("CS101")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
