package dto

import (
	"time"

	"github.com/noah-isme/uni-records-api/internal/models"
)

// StudentResponse is the API projection of a Student.
type StudentResponse struct {
	ID               string      `json:"id"`
	Role             models.Role `json:"role"`
	FirstName        string      `json:"first_name"`
	LastName         string      `json:"last_name"`
	FullName         string      `json:"full_name"`
	BirthDate        time.Time   `json:"birth_date"`
	Age              int         `json:"age"`
	Program          string      `json:"program"`
	EnrollmentNumber string      `json:"enrollment_number,omitempty"`
}

// NewStudentResponse projects a Student.
func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:               s.ID,
		Role:             s.Role(),
		FirstName:        s.FirstName,
		LastName:         s.LastName,
		FullName:         s.FullName(),
		BirthDate:        s.BirthDate,
		Age:              s.Age(),
		Program:          s.Program,
		EnrollmentNumber: s.EnrollmentNumber,
	}
}

// NewStudentResponses projects a slice of Students.
func NewStudentResponses(students []*models.Student) []StudentResponse {
	result := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		result = append(result, NewStudentResponse(s))
	}
	return result
}

// ProfessorResponse is the API projection of a Professor.
type ProfessorResponse struct {
	ID         string              `json:"id"`
	Role       models.Role         `json:"role"`
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name"`
	FullName   string              `json:"full_name"`
	BirthDate  time.Time           `json:"birth_date"`
	Age        int                 `json:"age"`
	Department string              `json:"department"`
	Contract   models.ContractType `json:"contract"`
	BaseSalary float64             `json:"base_salary"`
}

// NewProfessorResponse projects a Professor.
func NewProfessorResponse(p *models.Professor) ProfessorResponse {
	return ProfessorResponse{
		ID:         p.ID,
		Role:       p.Role(),
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		FullName:   p.FullName(),
		BirthDate:  p.BirthDate,
		Age:        p.Age(),
		Department: p.Department,
		Contract:   p.Contract,
		BaseSalary: p.BaseSalary,
	}
}

// AssignedProfessor summarises the professor a course resolves to.
type AssignedProfessor struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}

// CourseResponse is the API projection of a Course with its professor
// reference resolved at read time.
type CourseResponse struct {
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Credits   int                `json:"credits"`
	Professor *AssignedProfessor `json:"professor,omitempty"`
}

// NewCourseResponse projects a Course; professor may be nil when unassigned
// or no longer resolvable.
func NewCourseResponse(c *models.Course, professor *models.Professor) CourseResponse {
	resp := CourseResponse{Code: c.Code, Name: c.Name, Credits: c.Credits}
	if professor != nil {
		resp.Professor = &AssignedProfessor{
			ID:         professor.ID,
			FullName:   professor.FullName(),
			Department: professor.Department,
		}
	}
	return resp
}

// EnrollmentResponse is the API projection of an Enrollment with derived
// values.
type EnrollmentResponse struct {
	ID         string                  `json:"id"`
	StudentID  string                  `json:"student_id"`
	CourseCode string                  `json:"course_code"`
	EnrolledAt time.Time               `json:"enrolled_at"`
	Grades     []float64               `json:"grades"`
	Average    float64                 `json:"average"`
	Status     models.EnrollmentStatus `json:"status"`
}

// NewEnrollmentResponse projects an Enrollment using the passing grade in
// force.
func NewEnrollmentResponse(e *models.Enrollment, passingGrade float64) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         e.ID,
		StudentID:  e.StudentID,
		CourseCode: e.CourseCode,
		EnrolledAt: e.EnrolledAt,
		Grades:     append([]float64{}, e.Grades...),
		Average:    e.Average(),
		Status:     e.Status(passingGrade),
	}
}
