package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-records-api/internal/models"
	"github.com/noah-isme/uni-records-api/internal/repository"
	"github.com/noah-isme/uni-records-api/pkg/config"
	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
)

type academicFixture struct {
	students *repository.IdentityRepository[*models.Student]
	courses  *repository.IdentityRepository[*models.Course]
	ledger   *LedgerService
}

func newAcademicFixture(t *testing.T) *academicFixture {
	t.Helper()
	f := &academicFixture{
		students: repository.NewIdentityRepository[*models.Student](),
		courses:  repository.NewIdentityRepository[*models.Course](),
	}
	f.ledger = NewLedgerService(f.students, f.courses, config.AcademicConfig{
		PassingGrade:    7.0,
		RiskThreshold:   7.0,
		RankingLimit:    10,
		GradeScaleFloor: 0,
		GradeScaleCeil:  10,
	}, nil, nil)
	return f
}

func (f *academicFixture) addStudent(t *testing.T, id, first, last, program string) *models.Student {
	t.Helper()
	student, err := models.NewStudent(id, first, last, time.Now().AddDate(-20, 0, 0), program, "", 15)
	require.NoError(t, err)
	require.NoError(t, f.students.Add(student))
	return student
}

func (f *academicFixture) addCourse(t *testing.T, code, name string, credits int) *models.Course {
	t.Helper()
	course, err := models.NewCourse(code, name, credits)
	require.NoError(t, err)
	require.NoError(t, f.courses.Add(course))
	return course
}

func TestLedgerEnroll(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)

	enrollment, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)
	assert.Equal(t, "S1", enrollment.StudentID)
	assert.Equal(t, "CS101", enrollment.CourseCode)
	assert.NotEmpty(t, enrollment.ID)
	assert.Empty(t, enrollment.Grades)
	assert.Len(t, f.ledger.Enrollments(), 1)
}

func TestLedgerEnrollUnknownStudent(t *testing.T) {
	f := newAcademicFixture(t)
	f.addCourse(t, "CS101", "Programming I", 6)

	_, err := f.ledger.Enroll("ghost", "CS101")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestLedgerEnrollUnknownCourse(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")

	_, err := f.ledger.Enroll("S1", "XX999")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestLedgerEnrollTwiceRejected(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)

	_, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)

	_, err = f.ledger.Enroll("S1", "CS101")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyEnrolled))
	assert.Len(t, f.ledger.Enrollments(), 1)
}

func TestLedgerPairKeyIsCaseInsensitive(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)

	_, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)

	// Grades land on the same enrollment whatever the casing.
	enrollment, err := f.ledger.AddGrade("s1", "cs101", 9)
	require.NoError(t, err)
	assert.Equal(t, []float64{9}, enrollment.Grades)

	assert.Len(t, f.ledger.EnrollmentsForStudent("s1"), 1)
	assert.True(t, f.ledger.HasEnrollmentsForCourse("cs101"))
}

func TestLedgerAddGradeOutOfRange(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)
	_, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)

	_, err = f.ledger.AddGrade("S1", "CS101", 10.5)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrGradeOutOfRange))

	_, err = f.ledger.AddGrade("S1", "CS101", -1)
	require.Error(t, err)

	_, err = f.ledger.AddGrade("S1", "CS101", 0)
	assert.NoError(t, err)
	_, err = f.ledger.AddGrade("S1", "CS101", 10)
	assert.NoError(t, err)
}

func TestLedgerAddGradeWithoutEnrollment(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)

	_, err := f.ledger.AddGrade("S1", "CS101", 8)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNoActiveEnrollment))
}

func TestLedgerGeneralAverageExcludesUngradedCourses(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)
	f.addCourse(t, "MAT201", "Calculus", 8)

	_, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)
	_, err = f.ledger.Enroll("S1", "MAT201")
	require.NoError(t, err)

	_, err = f.ledger.AddGrade("S1", "CS101", 8)
	require.NoError(t, err)

	// The ungraded course is excluded, not counted as zero.
	assert.InDelta(t, 8.0, f.ledger.GeneralAverage("S1"), 1e-9)
}

func TestLedgerGeneralAverageAcrossCourses(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)
	f.addCourse(t, "MAT201", "Calculus", 8)

	_, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)
	_, err = f.ledger.Enroll("S1", "MAT201")
	require.NoError(t, err)

	_, err = f.ledger.AddGrade("S1", "CS101", 6)
	require.NoError(t, err)
	_, err = f.ledger.AddGrade("S1", "MAT201", 8)
	require.NoError(t, err)

	assert.InDelta(t, 7.0, f.ledger.GeneralAverage("S1"), 1e-9)
}

func TestLedgerGeneralAverageNoGrades(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")

	assert.Equal(t, 0.0, f.ledger.GeneralAverage("S1"))
}

func TestLedgerPassingThreshold(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)

	_, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)
	_, err = f.ledger.AddGrade("S1", "CS101", 6)
	require.NoError(t, err)
	enrollment, err := f.ledger.AddGrade("S1", "CS101", 8)
	require.NoError(t, err)

	assert.InDelta(t, 7.0, enrollment.Average(), 1e-9)
	assert.Equal(t, models.EnrollmentPassed, enrollment.Status(f.ledger.PassingGrade()))
}

func TestLedgerStudentsForCourseDistinct(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addStudent(t, "S2", "Bea", "Ruiz", "Math")
	f.addCourse(t, "CS101", "Programming I", 6)

	_, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)
	_, err = f.ledger.Enroll("S2", "CS101")
	require.NoError(t, err)

	students := f.ledger.StudentsForCourse("cs101")
	require.Len(t, students, 2)
	assert.Equal(t, "S1", students[0].ID)
	assert.Equal(t, "S2", students[1].ID)
}

func TestLedgerDistinctStudentsKeepsFirstEnrolledOrder(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addStudent(t, "S2", "Bea", "Ruiz", "Math")
	f.addCourse(t, "CS101", "Programming I", 6)
	f.addCourse(t, "MAT201", "Calculus", 8)

	_, err := f.ledger.Enroll("S2", "MAT201")
	require.NoError(t, err)
	_, err = f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)
	_, err = f.ledger.Enroll("S2", "CS101")
	require.NoError(t, err)

	distinct := f.ledger.DistinctStudents()
	require.Len(t, distinct, 2)
	assert.Equal(t, "S2", distinct[0].ID)
	assert.Equal(t, "S1", distinct[1].ID)
}

func TestLedgerEnrollmentGuards(t *testing.T) {
	f := newAcademicFixture(t)
	f.addStudent(t, "S1", "Ana", "Gomez", "CS")
	f.addCourse(t, "CS101", "Programming I", 6)

	assert.False(t, f.ledger.HasEnrollmentsForStudent("S1"))
	assert.False(t, f.ledger.HasEnrollmentsForCourse("CS101"))

	_, err := f.ledger.Enroll("S1", "CS101")
	require.NoError(t, err)

	assert.True(t, f.ledger.HasEnrollmentsForStudent("S1"))
	assert.True(t, f.ledger.HasEnrollmentsForCourse("CS101"))
}
