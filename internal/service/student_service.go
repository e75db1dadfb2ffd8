package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-records-api/internal/dto"
	"github.com/noah-isme/uni-records-api/internal/models"
	"github.com/noah-isme/uni-records-api/internal/validation"
	"github.com/noah-isme/uni-records-api/pkg/config"
	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
)

const birthDateLayout = "2006-01-02"

type studentStore interface {
	Add(item *models.Student) error
	Remove(id string) bool
	FindByID(id string) (*models.Student, bool)
	All() []*models.Student
	FindWhere(predicate func(*models.Student) bool) []*models.Student
	Len() int
}

type studentLedgerGuard interface {
	HasEnrollmentsForStudent(studentID string) bool
}

// CreateStudentRequest describes student registration payload.
type CreateStudentRequest struct {
	ID               string `json:"id" validate:"required"`
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	BirthDate        string `json:"birth_date" validate:"required"`
	Program          string `json:"program" validate:"required"`
	EnrollmentNumber string `json:"enrollment_number"`
}

// UpdateStudentRequest describes a partial student edit.
type UpdateStudentRequest struct {
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	Program          *string `json:"program"`
	EnrollmentNumber *string `json:"enrollment_number"`
}

// StudentService manages the student roster: construction invariants,
// declarative validation and repository bookkeeping.
type StudentService struct {
	repo      studentStore
	ledger    studentLedgerGuard
	academic  config.AcademicConfig
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(repo studentStore, ledger studentLedgerGuard, academic config.AcademicConfig, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if academic.MinStudentAge == 0 {
		academic.MinStudentAge = 15
	}
	return &StudentService{repo: repo, ledger: ledger, academic: academic, metrics: metrics, validator: validate, logger: logger}
}

// Create registers a new student: transport payload validation, entity
// construction (age invariant), declarative catalog validation, then
// insertion.
func (s *StudentService) Create(req CreateStudentRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return dto.StudentResponse{}, appErrors.Clone(appErrors.ErrValidation, "birth_date must use the YYYY-MM-DD format")
	}

	student, err := models.NewStudent(req.ID, req.FirstName, req.LastName, birthDate, req.Program, req.EnrollmentNumber, s.academic.MinStudentAge)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	if violations := validation.Validate(student, models.StudentCatalog()); len(violations) > 0 {
		return dto.StudentResponse{}, validationError(violations)
	}
	if err := s.repo.Add(student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.metrics.SetStudentCount(s.repo.Len())
	s.logger.Info("student_created", zap.String("student_id", student.ID))
	return dto.NewStudentResponse(student), nil
}

// Get returns one student by id.
func (s *StudentService) Get(id string) (dto.StudentResponse, error) {
	student, ok := s.repo.FindByID(id)
	if !ok {
		return dto.StudentResponse{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return dto.NewStudentResponse(student), nil
}

// List returns all students in registration order, optionally filtered by
// program.
func (s *StudentService) List(program string) []dto.StudentResponse {
	if program == "" {
		return dto.NewStudentResponses(s.repo.All())
	}
	return dto.NewStudentResponses(s.repo.FindWhere(func(st *models.Student) bool {
		return strings.EqualFold(st.Program, program)
	}))
}

// Update applies a partial edit. The candidate is validated against the
// catalog before any change reaches the stored entity.
func (s *StudentService) Update(id string, req UpdateStudentRequest) (dto.StudentResponse, error) {
	student, ok := s.repo.FindByID(id)
	if !ok {
		return dto.StudentResponse{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	candidate := *student
	if req.FirstName != nil {
		if err := candidate.SetFirstName(*req.FirstName); err != nil {
			return dto.StudentResponse{}, err
		}
	}
	if req.LastName != nil {
		if err := candidate.SetLastName(*req.LastName); err != nil {
			return dto.StudentResponse{}, err
		}
	}
	if req.Program != nil {
		candidate.Program = *req.Program
	}
	if req.EnrollmentNumber != nil {
		candidate.EnrollmentNumber = *req.EnrollmentNumber
	}
	if violations := validation.Validate(&candidate, models.StudentCatalog()); len(violations) > 0 {
		return dto.StudentResponse{}, validationError(violations)
	}

	*student = candidate
	s.logger.Info("student_updated", zap.String("student_id", student.ID))
	return dto.NewStudentResponse(student), nil
}

// Delete removes a student. Deletion is refused while the ledger still holds
// enrollments referencing the student, so no enrollment is ever orphaned.
func (s *StudentService) Delete(id string) error {
	if _, ok := s.repo.FindByID(id); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if s.ledger != nil && s.ledger.HasEnrollmentsForStudent(id) {
		return appErrors.Clone(appErrors.ErrConflict, "student has enrollments and cannot be deleted")
	}
	if !s.repo.Remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.metrics.SetStudentCount(s.repo.Len())
	s.logger.Info("student_deleted", zap.String("student_id", id))
	return nil
}

// Validate re-runs the declarative catalog over a stored student and returns
// the violation list without failing; an empty list means valid.
func (s *StudentService) Validate(id string) ([]string, error) {
	student, ok := s.repo.FindByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return validation.Validate(student, models.StudentCatalog()), nil
}

func validationError(violations []string) error {
	err := appErrors.Clone(appErrors.ErrValidation, strings.Join(violations, "; "))
	err.Details = violations
	return err
}
