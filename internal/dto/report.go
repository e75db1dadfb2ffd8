package dto

import "github.com/noah-isme/uni-records-api/internal/models"

// StudentReportRow is one course line of a student academic report.
type StudentReportRow struct {
	CourseCode string                  `json:"course_code"`
	CourseName string                  `json:"course_name"`
	Credits    int                     `json:"credits"`
	Average    float64                 `json:"average"`
	Status     models.EnrollmentStatus `json:"status"`
}

// StudentReport summarises a student's enrollments with per-course averages
// and statuses. Message is set instead of Courses when the student has no
// enrollments.
type StudentReport struct {
	StudentID string             `json:"student_id"`
	FullName  string             `json:"full_name"`
	Program   string             `json:"program"`
	Courses   []StudentReportRow `json:"courses"`
	Message   string             `json:"message,omitempty"`
}

// RankedStudentResponse pairs a student projection with a general average.
type RankedStudentResponse struct {
	Student StudentResponse `json:"student"`
	Average float64         `json:"average"`
}

// NewRankedStudentResponses projects ranking rows.
func NewRankedStudentResponses(rows []models.RankedStudent) []RankedStudentResponse {
	result := make([]RankedStudentResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, RankedStudentResponse{
			Student: NewStudentResponse(row.Student),
			Average: row.Average,
		})
	}
	return result
}

// CoursePopularityResponse reports distinct student counts per course.
type CoursePopularityResponse struct {
	Course   CourseResponse `json:"course"`
	Students int            `json:"students"`
}
