package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-records-api/internal/dto"
	"github.com/noah-isme/uni-records-api/internal/models"
	"github.com/noah-isme/uni-records-api/internal/validation"
	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
)

type courseStore interface {
	Add(item *models.Course) error
	Remove(id string) bool
	FindByID(id string) (*models.Course, bool)
	All() []*models.Course
	Len() int
}

type professorReader interface {
	FindByID(id string) (*models.Professor, bool)
}

type courseLedgerGuard interface {
	HasEnrollmentsForCourse(courseCode string) bool
}

// CreateCourseRequest describes course creation payload.
type CreateCourseRequest struct {
	Code    string `json:"code" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Credits int    `json:"credits" validate:"required"`
}

// UpdateCourseRequest describes a partial course edit. The code is the
// course identity and cannot change.
type UpdateCourseRequest struct {
	Name    *string `json:"name"`
	Credits *int    `json:"credits"`
}

// AssignProfessorRequest names the professor to assign to a course.
type AssignProfessorRequest struct {
	ProfessorID string `json:"professor_id" validate:"required"`
}

// CourseService manages the course catalogue and professor assignments.
type CourseService struct {
	repo       courseStore
	professors professorReader
	ledger     courseLedgerGuard
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseStore, professors professorReader, ledger courseLedgerGuard, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, professors: professors, ledger: ledger, metrics: metrics, validator: validate, logger: logger}
}

// resolve returns the course's assigned professor, nil when unassigned or no
// longer present.
func (s *CourseService) resolve(course *models.Course) *models.Professor {
	if course.ProfessorID == nil {
		return nil
	}
	professor, ok := s.professors.FindByID(*course.ProfessorID)
	if !ok {
		return nil
	}
	return professor
}

// Create registers a new course after construction invariants and catalog
// validation (code format, credit range) pass.
func (s *CourseService) Create(req CreateCourseRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CourseResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := models.NewCourse(req.Code, req.Name, req.Credits)
	if err != nil {
		return dto.CourseResponse{}, err
	}
	if violations := validation.Validate(course, models.CourseCatalog()); len(violations) > 0 {
		return dto.CourseResponse{}, validationError(violations)
	}
	if err := s.repo.Add(course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.metrics.SetCourseCount(s.repo.Len())
	s.logger.Info("course_created", zap.String("course_code", course.Code))
	return dto.NewCourseResponse(course, nil), nil
}

// Get returns one course by code with its professor reference resolved.
func (s *CourseService) Get(code string) (dto.CourseResponse, error) {
	course, ok := s.repo.FindByID(code)
	if !ok {
		return dto.CourseResponse{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return dto.NewCourseResponse(course, s.resolve(course)), nil
}

// List returns all courses in creation order.
func (s *CourseService) List() []dto.CourseResponse {
	courses := s.repo.All()
	result := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		result = append(result, dto.NewCourseResponse(course, s.resolve(course)))
	}
	return result
}

// Update applies a partial edit, re-validating the candidate before
// committing.
func (s *CourseService) Update(code string, req UpdateCourseRequest) (dto.CourseResponse, error) {
	course, ok := s.repo.FindByID(code)
	if !ok {
		return dto.CourseResponse{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	candidate := *course
	if req.Name != nil {
		if err := candidate.SetName(*req.Name); err != nil {
			return dto.CourseResponse{}, err
		}
	}
	if req.Credits != nil {
		candidate.Credits = *req.Credits
	}
	if violations := validation.Validate(&candidate, models.CourseCatalog()); len(violations) > 0 {
		return dto.CourseResponse{}, validationError(violations)
	}

	*course = candidate
	s.logger.Info("course_updated", zap.String("course_code", course.Code))
	return dto.NewCourseResponse(course, s.resolve(course)), nil
}

// Delete removes a course. Deletion is refused while enrollments reference
// the course.
func (s *CourseService) Delete(code string) error {
	if _, ok := s.repo.FindByID(code); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if s.ledger != nil && s.ledger.HasEnrollmentsForCourse(code) {
		return appErrors.Clone(appErrors.ErrConflict, "course has enrollments and cannot be deleted")
	}
	if !s.repo.Remove(code) {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	s.metrics.SetCourseCount(s.repo.Len())
	s.logger.Info("course_deleted", zap.String("course_code", code))
	return nil
}

// AssignProfessor records which professor teaches the course. The professor
// must exist at assignment time.
func (s *CourseService) AssignProfessor(code string, req AssignProfessorRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CourseResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	course, ok := s.repo.FindByID(code)
	if !ok {
		return dto.CourseResponse{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	professor, ok := s.professors.FindByID(req.ProfessorID)
	if !ok {
		return dto.CourseResponse{}, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
	}

	course.AssignProfessor(professor.ID)
	s.logger.Info("professor_assigned",
		zap.String("course_code", course.Code),
		zap.String("professor_id", professor.ID))
	return dto.NewCourseResponse(course, professor), nil
}

// ClearProfessor removes the course's professor assignment.
func (s *CourseService) ClearProfessor(code string) (dto.CourseResponse, error) {
	course, ok := s.repo.FindByID(code)
	if !ok {
		return dto.CourseResponse{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	course.ClearProfessor()
	s.logger.Info("professor_unassigned", zap.String("course_code", course.Code))
	return dto.NewCourseResponse(course, nil), nil
}

// Validate re-runs the declarative catalog over a stored course.
func (s *CourseService) Validate(code string) ([]string, error) {
	course, ok := s.repo.FindByID(code)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return validation.Validate(course, models.CourseCatalog()), nil
}
