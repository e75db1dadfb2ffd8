package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-records-api/internal/dto"
	"github.com/noah-isme/uni-records-api/internal/models"
	"github.com/noah-isme/uni-records-api/pkg/config"
	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
	"github.com/noah-isme/uni-records-api/pkg/export"
)

// Export formats and report names accepted by the export endpoints.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"

	ReportTopStudents    = "top-students"
	ReportStudentsAtRisk = "at-risk"
	ReportPopularCourses = "popular-courses"
	ReportPrograms       = "programs"
)

type reportLedger interface {
	EnrollmentsForStudent(studentID string) []*models.Enrollment
	PassingGrade() float64
}

type reportStudentReader interface {
	FindByID(id string) (*models.Student, bool)
}

type analyticsProvider interface {
	TopStudents(limit int) []models.RankedStudent
	StudentsAtRisk(threshold float64) []models.RankedStudent
	MostPopularCourses() []models.CoursePopularity
	StatsByProgram() []models.ProgramStats
	OverallAverage() float64
}

// ReportService renders academic reports as structured payloads, plain text
// and CSV/PDF exports.
type ReportService struct {
	ledger    reportLedger
	students  reportStudentReader
	courses   courseReader
	analytics analyticsProvider
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	reports   config.ReportsConfig
	logger    *zap.Logger
}

// NewReportService constructs ReportService.
func NewReportService(ledger reportLedger, students reportStudentReader, courses courseReader, analytics analyticsProvider, reports config.ReportsConfig, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		ledger:    ledger,
		students:  students,
		courses:   courses,
		analytics: analytics,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		reports:   reports,
		logger:    logger,
	}
}

// StudentReport builds the per-course summary for one student. A student
// without enrollments yields an explicit message, not an empty table.
func (s *ReportService) StudentReport(studentID string) (dto.StudentReport, error) {
	student, ok := s.students.FindByID(studentID)
	if !ok {
		return dto.StudentReport{}, appErrors.Clone(appErrors.ErrNotFound,
			fmt.Sprintf("student with id '%s' not found", studentID))
	}

	report := dto.StudentReport{
		StudentID: student.ID,
		FullName:  student.FullName(),
		Program:   student.Program,
		Courses:   []dto.StudentReportRow{},
	}

	enrollments := s.ledger.EnrollmentsForStudent(studentID)
	if len(enrollments) == 0 {
		report.Message = "no enrollments found for this student"
		return report, nil
	}

	passing := s.ledger.PassingGrade()
	for _, e := range enrollments {
		row := dto.StudentReportRow{
			CourseCode: e.CourseCode,
			Average:    e.Average(),
			Status:     e.Status(passing),
		}
		if course, ok := s.courses.FindByID(e.CourseCode); ok {
			row.CourseName = course.Name
			row.Credits = course.Credits
		}
		report.Courses = append(report.Courses, row)
	}
	return report, nil
}

// StudentReportText renders the student report in the classic console form.
func (s *ReportService) StudentReportText(studentID string) (string, error) {
	report, err := s.StudentReport(studentID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- ACADEMIC REPORT: %s ---\n", report.FullName)
	fmt.Fprintf(&sb, "ID: %s | Program: %s\n", report.StudentID, report.Program)
	sb.WriteString(strings.Repeat("-", 50) + "\n")
	if report.Message != "" {
		sb.WriteString(report.Message + "\n")
		return sb.String(), nil
	}
	for _, row := range report.Courses {
		fmt.Fprintf(&sb, "Course: %s\n", row.CourseName)
		fmt.Fprintf(&sb, "  Average: %.2f | Status: %s\n", row.Average, row.Status)
	}
	return sb.String(), nil
}

// ExportStudentReport renders the student report in the requested format and
// returns content bytes plus MIME type.
func (s *ReportService) ExportStudentReport(studentID, format string) ([]byte, string, error) {
	report, err := s.StudentReport(studentID)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Course", "Name", "Credits", "Average", "Status"},
	}
	for _, row := range report.Courses {
		data.Rows = append(data.Rows, map[string]string{
			"Course":  row.CourseCode,
			"Name":    row.CourseName,
			"Credits": fmt.Sprintf("%d", row.Credits),
			"Average": fmt.Sprintf("%.2f", row.Average),
			"Status":  string(row.Status),
		})
	}

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return content, "text/csv", nil
	case FormatPDF:
		preamble := []string{
			fmt.Sprintf("Student: %s", report.FullName),
			fmt.Sprintf("ID: %s", report.StudentID),
			fmt.Sprintf("Program: %s", report.Program),
		}
		title := strings.TrimSpace(s.reports.Institution + " academic report")
		content, err := s.pdf.RenderWithPreamble(data, title, preamble)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return content, "application/pdf", nil
	}
	return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
}

// ExportAnalytics renders one of the aggregate reports in the requested
// format.
func (s *ReportService) ExportAnalytics(report, format string) ([]byte, string, error) {
	data, title, err := s.analyticsDataset(report)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return content, "text/csv", nil
	case FormatPDF:
		content, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return content, "application/pdf", nil
	}
	return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
}

func (s *ReportService) analyticsDataset(report string) (export.Dataset, string, error) {
	switch report {
	case ReportTopStudents:
		data := export.Dataset{Headers: []string{"Rank", "ID", "Student", "Program", "Average"}}
		for i, row := range s.analytics.TopStudents(0) {
			data.Rows = append(data.Rows, map[string]string{
				"Rank":    fmt.Sprintf("%d", i+1),
				"ID":      row.Student.ID,
				"Student": row.Student.FullName(),
				"Program": row.Student.Program,
				"Average": fmt.Sprintf("%.2f", row.Average),
			})
		}
		return data, "top students", nil
	case ReportStudentsAtRisk:
		data := export.Dataset{Headers: []string{"ID", "Student", "Program", "Average"}}
		for _, row := range s.analytics.StudentsAtRisk(0) {
			data.Rows = append(data.Rows, map[string]string{
				"ID":      row.Student.ID,
				"Student": row.Student.FullName(),
				"Program": row.Student.Program,
				"Average": fmt.Sprintf("%.2f", row.Average),
			})
		}
		return data, "students at risk", nil
	case ReportPopularCourses:
		data := export.Dataset{Headers: []string{"Code", "Course", "Students"}}
		for _, row := range s.analytics.MostPopularCourses() {
			data.Rows = append(data.Rows, map[string]string{
				"Code":     row.Course.Code,
				"Course":   row.Course.Name,
				"Students": fmt.Sprintf("%d", row.Students),
			})
		}
		return data, "most popular courses", nil
	case ReportPrograms:
		data := export.Dataset{Headers: []string{"Program", "Students", "Average"}}
		for _, row := range s.analytics.StatsByProgram() {
			data.Rows = append(data.Rows, map[string]string{
				"Program":  row.Program,
				"Students": fmt.Sprintf("%d", row.Students),
				"Average":  fmt.Sprintf("%.2f", row.Average),
			})
		}
		return data, "statistics by program", nil
	}
	return export.Dataset{}, "", appErrors.Clone(appErrors.ErrValidation,
		"report must be one of top-students, at-risk, popular-courses, programs")
}
