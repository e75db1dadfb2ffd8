package models

import (
	"time"

	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
)

// Grade bounds shared by the ledger and the enrollment itself.
const (
	GradeMin = 0.0
	GradeMax = 10.0
)

// EnrollmentStatus describes the academic outcome of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentInProgress EnrollmentStatus = "IN_PROGRESS"
	EnrollmentPassed     EnrollmentStatus = "PASSED"
	EnrollmentFailed     EnrollmentStatus = "FAILED"
)

// Enrollment links one student to one course and accumulates its grade
// history. Its identity within the ledger is the case-insensitive
// (student id, course code) pair; the ID field is the exposed resource id.
type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	CourseCode string    `json:"course_code"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Grades     []float64 `json:"grades"`
}

// NewEnrollment creates an enrollment dated now with an empty grade history.
func NewEnrollment(id, studentID, courseCode string, enrolledAt time.Time) *Enrollment {
	return &Enrollment{
		ID:         id,
		StudentID:  studentID,
		CourseCode: courseCode,
		EnrolledAt: enrolledAt,
		Grades:     []float64{},
	}
}

// AddGrade appends a grade to the history. Grades outside [GradeMin,
// GradeMax] are rejected.
func (e *Enrollment) AddGrade(grade float64) error {
	if grade < GradeMin || grade > GradeMax {
		return appErrors.ErrGradeOutOfRange
	}
	e.Grades = append(e.Grades, grade)
	return nil
}

// Average returns the arithmetic mean of the recorded grades, 0 when none.
func (e *Enrollment) Average() float64 {
	if len(e.Grades) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range e.Grades {
		sum += g
	}
	return sum / float64(len(e.Grades))
}

// HasGrades reports whether at least one grade has been recorded.
func (e *Enrollment) HasGrades() bool { return len(e.Grades) > 0 }

// HasPassed reports whether the average reaches the passing grade. An
// enrollment with no grades has not passed.
func (e *Enrollment) HasPassed(passingGrade float64) bool {
	if !e.HasGrades() {
		return false
	}
	return e.Average() >= passingGrade
}

// Status derives the academic outcome from the grade history.
func (e *Enrollment) Status(passingGrade float64) EnrollmentStatus {
	switch {
	case !e.HasGrades():
		return EnrollmentInProgress
	case e.HasPassed(passingGrade):
		return EnrollmentPassed
	default:
		return EnrollmentFailed
	}
}
