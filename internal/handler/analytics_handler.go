package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-records-api/internal/dto"
	"github.com/noah-isme/uni-records-api/internal/models"
	"github.com/noah-isme/uni-records-api/internal/service"
	"github.com/noah-isme/uni-records-api/pkg/response"
)

// AnalyticsHandler exposes the aggregate queries over the enrollment ledger.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// TopStudents godoc
// @Summary Best students by general average
// @Tags Analytics
// @Produce json
// @Param limit query int false "Maximum rows"
// @Success 200 {object} response.Envelope
// @Router /analytics/top-students [get]
func (h *AnalyticsHandler) TopStudents(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	rows := h.analytics.TopStudents(limit)
	response.JSON(c, http.StatusOK, dto.NewRankedStudentResponses(rows))
}

// StudentsAtRisk godoc
// @Summary Students below the risk threshold
// @Tags Analytics
// @Produce json
// @Param threshold query number false "Risk threshold"
// @Success 200 {object} response.Envelope
// @Router /analytics/at-risk [get]
func (h *AnalyticsHandler) StudentsAtRisk(c *gin.Context) {
	threshold := 0.0
	if raw := c.Query("threshold"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			threshold = parsed
		}
	}
	rows := h.analytics.StudentsAtRisk(threshold)
	response.JSON(c, http.StatusOK, dto.NewRankedStudentResponses(rows))
}

// PopularCourses godoc
// @Summary Courses by distinct enrolled students
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/popular-courses [get]
func (h *AnalyticsHandler) PopularCourses(c *gin.Context) {
	rows := h.analytics.MostPopularCourses()
	result := make([]dto.CoursePopularityResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.CoursePopularityResponse{
			Course:   dto.NewCourseResponse(row.Course, nil),
			Students: row.Students,
		})
	}
	response.JSON(c, http.StatusOK, result)
}

// OverallAverage godoc
// @Summary Mean of all students' general averages
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/overall-average [get]
func (h *AnalyticsHandler) OverallAverage(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"overall_average": h.analytics.OverallAverage()})
}

// ProgramStats godoc
// @Summary Per-program student counts and averages
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/programs [get]
func (h *AnalyticsHandler) ProgramStats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.analytics.StatsByProgram())
}

// SearchStudents godoc
// @Summary Search distinct enrolled students
// @Tags Analytics
// @Produce json
// @Param program query string false "Program equals (case-insensitive)"
// @Param name query string false "Name contains (case-insensitive)"
// @Param minAge query int false "Minimum age"
// @Param maxAge query int false "Maximum age"
// @Success 200 {object} response.Envelope
// @Router /analytics/students/search [get]
func (h *AnalyticsHandler) SearchStudents(c *gin.Context) {
	program := c.Query("program")
	name := strings.ToLower(c.Query("name"))
	minAge, _ := strconv.Atoi(c.DefaultQuery("minAge", "0"))
	maxAge, _ := strconv.Atoi(c.DefaultQuery("maxAge", "0"))

	students := h.analytics.FindStudents(func(s *models.Student) bool {
		if program != "" && !strings.EqualFold(s.Program, program) {
			return false
		}
		if name != "" && !strings.Contains(strings.ToLower(s.FullName()), name) {
			return false
		}
		if minAge > 0 && s.Age() < minAge {
			return false
		}
		if maxAge > 0 && s.Age() > maxAge {
			return false
		}
		return true
	})
	response.JSON(c, http.StatusOK, dto.NewStudentResponses(students))
}
