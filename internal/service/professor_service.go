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

type professorStore interface {
	Add(item *models.Professor) error
	Remove(id string) bool
	FindByID(id string) (*models.Professor, bool)
	All() []*models.Professor
	Len() int
}

// CreateProfessorRequest describes professor registration payload.
type CreateProfessorRequest struct {
	ID         string  `json:"id" validate:"required"`
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	BirthDate  string  `json:"birth_date" validate:"required"`
	Department string  `json:"department" validate:"required"`
	Contract   string  `json:"contract" validate:"required"`
	BaseSalary float64 `json:"base_salary"`
}

// UpdateProfessorRequest describes a partial professor edit.
type UpdateProfessorRequest struct {
	FirstName  *string  `json:"first_name"`
	LastName   *string  `json:"last_name"`
	Department *string  `json:"department"`
	Contract   *string  `json:"contract"`
	BaseSalary *float64 `json:"base_salary"`
}

// ProfessorService manages the professor roster.
type ProfessorService struct {
	repo      professorStore
	academic  config.AcademicConfig
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfessorService constructs ProfessorService.
func NewProfessorService(repo professorStore, academic config.AcademicConfig, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ProfessorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if academic.MinProfessorAge == 0 {
		academic.MinProfessorAge = 25
	}
	return &ProfessorService{repo: repo, academic: academic, metrics: metrics, validator: validate, logger: logger}
}

// Create registers a new professor. The salary range is not a construction
// invariant: an out-of-range salary surfaces as catalog violations instead.
func (s *ProfessorService) Create(req CreateProfessorRequest) (dto.ProfessorResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ProfessorResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return dto.ProfessorResponse{}, appErrors.Clone(appErrors.ErrValidation, "birth_date must use the YYYY-MM-DD format")
	}
	contract, ok := models.ParseContractType(req.Contract)
	if !ok {
		return dto.ProfessorResponse{}, appErrors.Clone(appErrors.ErrValidation, "contract must be FULL_TIME, PART_TIME or HOURLY")
	}

	professor, err := models.NewProfessor(req.ID, req.FirstName, req.LastName, birthDate, req.Department, contract, req.BaseSalary, s.academic.MinProfessorAge)
	if err != nil {
		return dto.ProfessorResponse{}, err
	}
	if violations := validation.Validate(professor, models.ProfessorCatalog()); len(violations) > 0 {
		return dto.ProfessorResponse{}, validationError(violations)
	}
	if err := s.repo.Add(professor); err != nil {
		return dto.ProfessorResponse{}, err
	}

	s.metrics.SetProfessorCount(s.repo.Len())
	s.logger.Info("professor_created", zap.String("professor_id", professor.ID))
	return dto.NewProfessorResponse(professor), nil
}

// Get returns one professor by id.
func (s *ProfessorService) Get(id string) (dto.ProfessorResponse, error) {
	professor, ok := s.repo.FindByID(id)
	if !ok {
		return dto.ProfessorResponse{}, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
	}
	return dto.NewProfessorResponse(professor), nil
}

// List returns all professors in registration order.
func (s *ProfessorService) List() []dto.ProfessorResponse {
	professors := s.repo.All()
	result := make([]dto.ProfessorResponse, 0, len(professors))
	for _, p := range professors {
		result = append(result, dto.NewProfessorResponse(p))
	}
	return result
}

// Update applies a partial edit, re-validating the candidate against the
// catalog before committing.
func (s *ProfessorService) Update(id string, req UpdateProfessorRequest) (dto.ProfessorResponse, error) {
	professor, ok := s.repo.FindByID(id)
	if !ok {
		return dto.ProfessorResponse{}, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
	}

	candidate := *professor
	if req.FirstName != nil {
		if err := candidate.SetFirstName(*req.FirstName); err != nil {
			return dto.ProfessorResponse{}, err
		}
	}
	if req.LastName != nil {
		if err := candidate.SetLastName(*req.LastName); err != nil {
			return dto.ProfessorResponse{}, err
		}
	}
	if req.Department != nil {
		candidate.Department = *req.Department
	}
	if req.Contract != nil {
		contract, ok := models.ParseContractType(*req.Contract)
		if !ok {
			return dto.ProfessorResponse{}, appErrors.Clone(appErrors.ErrValidation, "contract must be FULL_TIME, PART_TIME or HOURLY")
		}
		candidate.Contract = contract
	}
	if req.BaseSalary != nil {
		candidate.BaseSalary = *req.BaseSalary
	}
	if violations := validation.Validate(&candidate, models.ProfessorCatalog()); len(violations) > 0 {
		return dto.ProfessorResponse{}, validationError(violations)
	}

	*professor = candidate
	s.logger.Info("professor_updated", zap.String("professor_id", professor.ID))
	return dto.NewProfessorResponse(professor), nil
}

// Delete removes a professor. Courses referencing the professor keep the
// dangling id; course reads resolve it to an unassigned professor.
func (s *ProfessorService) Delete(id string) error {
	if !s.repo.Remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "professor not found")
	}
	s.metrics.SetProfessorCount(s.repo.Len())
	s.logger.Info("professor_deleted", zap.String("professor_id", id))
	return nil
}

// Validate re-runs the declarative catalog over a stored professor.
func (s *ProfessorService) Validate(id string) ([]string, error) {
	professor, ok := s.repo.FindByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
	}
	return validation.Validate(professor, models.ProfessorCatalog()), nil
}

// FindByDepartment returns professors of one department.
func (s *ProfessorService) FindByDepartment(department string) []dto.ProfessorResponse {
	var result []dto.ProfessorResponse
	for _, p := range s.repo.All() {
		if strings.EqualFold(p.Department, department) {
			result = append(result, dto.NewProfessorResponse(p))
		}
	}
	return result
}
