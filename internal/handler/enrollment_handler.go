package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-records-api/internal/dto"
	"github.com/noah-isme/uni-records-api/internal/service"
	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
	"github.com/noah-isme/uni-records-api/pkg/response"
)

// EnrollRequest describes enrollment creation payload.
type EnrollRequest struct {
	StudentID  string `json:"student_id" binding:"required"`
	CourseCode string `json:"course_code" binding:"required"`
}

// GradeRequest describes grade submission payload. The grade is a pointer so
// a missing field is distinguishable from a legitimate 0.
type GradeRequest struct {
	StudentID  string   `json:"student_id" binding:"required"`
	CourseCode string   `json:"course_code" binding:"required"`
	Grade      *float64 `json:"grade" binding:"required"`
}

// EnrollmentHandler exposes the enrollment ledger endpoints.
type EnrollmentHandler struct {
	ledger *service.LedgerService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(ledger *service.LedgerService) *EnrollmentHandler {
	return &EnrollmentHandler{ledger: ledger}
}

// Create godoc
// @Summary Enroll student in course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.ledger.Enroll(req.StudentID, req.CourseCode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewEnrollmentResponse(enrollment, h.ledger.PassingGrade()))
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Param studentId query string false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	enrollments := h.ledger.Enrollments()
	if studentID := c.Query("studentId"); studentID != "" {
		enrollments = h.ledger.EnrollmentsForStudent(studentID)
	}
	passing := h.ledger.PassingGrade()
	result := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		result = append(result, dto.NewEnrollmentResponse(e, passing))
	}
	response.JSON(c, http.StatusOK, result)
}

// AddGrade godoc
// @Summary Record a grade for an enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body GradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /enrollments/grades [post]
func (h *EnrollmentHandler) AddGrade(c *gin.Context) {
	var req GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.ledger.AddGrade(req.StudentID, req.CourseCode, *req.Grade)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewEnrollmentResponse(enrollment, h.ledger.PassingGrade()))
}
