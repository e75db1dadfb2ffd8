package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-records-api/internal/models"
	"github.com/noah-isme/uni-records-api/pkg/config"
	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
)

type studentResolver interface {
	FindByID(id string) (*models.Student, bool)
}

type courseResolver interface {
	FindByID(code string) (*models.Course, bool)
}

// LedgerService owns the enrollment records: the many-to-many link between
// students and courses keyed by the case-insensitive (student id, course
// code) pair, with at most one enrollment per pair. Entities themselves are
// owned by the repositories; the ledger only holds identifier references.
type LedgerService struct {
	mu          sync.RWMutex
	enrollments map[string]*models.Enrollment
	order       []string

	students studentResolver
	courses  courseResolver
	academic config.AcademicConfig
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewLedgerService constructs a LedgerService.
func NewLedgerService(students studentResolver, courses courseResolver, academic config.AcademicConfig, metrics *MetricsService, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if academic.PassingGrade == 0 {
		academic.PassingGrade = 7.0
	}
	if academic.GradeScaleCeil == 0 {
		academic.GradeScaleCeil = models.GradeMax
	}
	return &LedgerService{
		enrollments: make(map[string]*models.Enrollment),
		students:    students,
		courses:     courses,
		academic:    academic,
		metrics:     metrics,
		logger:      logger,
	}
}

// PassingGrade returns the passing threshold in force.
func (s *LedgerService) PassingGrade() float64 { return s.academic.PassingGrade }

func pairKey(studentID, courseCode string) string {
	return strings.ToUpper(studentID + "-" + courseCode)
}

// Enroll registers a student in a course. Both identifiers must resolve and
// the pair must not already exist.
func (s *LedgerService) Enroll(studentID, courseCode string) (*models.Enrollment, error) {
	student, ok := s.students.FindByID(studentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound,
			fmt.Sprintf("student with id '%s' not found", studentID))
	}
	course, ok := s.courses.FindByID(courseCode)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound,
			fmt.Sprintf("course with code '%s' not found", courseCode))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(studentID, courseCode)
	if _, exists := s.enrollments[key]; exists {
		return nil, appErrors.Clone(appErrors.ErrAlreadyEnrolled,
			fmt.Sprintf("student is already enrolled in course %s", course.Name))
	}

	enrollment := models.NewEnrollment(uuid.NewString(), student.ID, course.Code, time.Now())
	s.enrollments[key] = enrollment
	s.order = append(s.order, key)

	s.metrics.IncEnrollments()
	s.logger.Info("student_enrolled",
		zap.String("student_id", student.ID),
		zap.String("course_code", course.Code))
	return enrollment, nil
}

// AddGrade appends a grade to the enrollment for the given pair. The grade
// must fall within the configured scale and the enrollment must exist.
func (s *LedgerService) AddGrade(studentID, courseCode string, grade float64) (*models.Enrollment, error) {
	if grade < s.academic.GradeScaleFloor || grade > s.academic.GradeScaleCeil {
		return nil, appErrors.Clone(appErrors.ErrGradeOutOfRange,
			fmt.Sprintf("grade must be between %v and %v", s.academic.GradeScaleFloor, s.academic.GradeScaleCeil))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	enrollment, exists := s.enrollments[pairKey(studentID, courseCode)]
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNoActiveEnrollment,
			fmt.Sprintf("no active enrollment for student '%s' in course '%s'", studentID, courseCode))
	}
	if err := enrollment.AddGrade(grade); err != nil {
		return nil, err
	}

	s.metrics.IncGradesRecorded()
	s.logger.Info("grade_recorded",
		zap.String("student_id", enrollment.StudentID),
		zap.String("course_code", enrollment.CourseCode),
		zap.Float64("grade", grade))
	return enrollment, nil
}

// Enrollments returns a snapshot of all enrollments in creation order.
func (s *LedgerService) Enrollments() []*models.Enrollment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Enrollment, 0, len(s.order))
	for _, key := range s.order {
		result = append(result, s.enrollments[key])
	}
	return result
}

// EnrollmentsForStudent returns the student's enrollments, matching the id
// case-insensitively.
func (s *LedgerService) EnrollmentsForStudent(studentID string) []*models.Enrollment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Enrollment
	for _, key := range s.order {
		e := s.enrollments[key]
		if strings.EqualFold(e.StudentID, studentID) {
			result = append(result, e)
		}
	}
	return result
}

// StudentsForCourse returns the distinct students enrolled in a course,
// matching the code case-insensitively. Students whose record no longer
// resolves are skipped.
func (s *LedgerService) StudentsForCourse(courseCode string) []*models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Student
	seen := make(map[string]struct{})
	for _, key := range s.order {
		e := s.enrollments[key]
		if !strings.EqualFold(e.CourseCode, courseCode) {
			continue
		}
		id := strings.ToUpper(e.StudentID)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if student, ok := s.students.FindByID(e.StudentID); ok {
			result = append(result, student)
		}
	}
	return result
}

// DistinctStudents returns the distinct enrolled students in first-enrolled
// order.
func (s *LedgerService) DistinctStudents() []*models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Student
	seen := make(map[string]struct{})
	for _, key := range s.order {
		e := s.enrollments[key]
		id := strings.ToUpper(e.StudentID)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if student, ok := s.students.FindByID(e.StudentID); ok {
			result = append(result, student)
		}
	}
	return result
}

// GeneralAverage computes the mean of the student's per-course averages over
// courses with at least one grade. Ungraded courses are excluded from the
// mean, not treated as zero; a student with no graded courses averages 0.
func (s *LedgerService) GeneralAverage(studentID string) float64 {
	sum := 0.0
	count := 0
	for _, e := range s.EnrollmentsForStudent(studentID) {
		if !e.HasGrades() {
			continue
		}
		sum += e.Average()
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// HasEnrollmentsForStudent reports whether any enrollment references the
// student. Used to refuse deleting a student the ledger still points at.
func (s *LedgerService) HasEnrollmentsForStudent(studentID string) bool {
	return len(s.EnrollmentsForStudent(studentID)) > 0
}

// HasEnrollmentsForCourse reports whether any enrollment references the
// course.
func (s *LedgerService) HasEnrollmentsForCourse(courseCode string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, key := range s.order {
		if strings.EqualFold(s.enrollments[key].CourseCode, courseCode) {
			return true
		}
	}
	return false
}
