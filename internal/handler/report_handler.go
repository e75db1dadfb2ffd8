package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-records-api/internal/service"
	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
	"github.com/noah-isme/uni-records-api/pkg/response"
)

// ReportHandler exposes academic report renditions.
type ReportHandler struct {
	reports        *service.ReportService
	exportsEnabled bool
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService, exportsEnabled bool) *ReportHandler {
	return &ReportHandler{reports: reports, exportsEnabled: exportsEnabled}
}

// StudentReport godoc
// @Summary Student academic report
// @Tags Reports
// @Produce json
// @Param id path string true "Student ID"
// @Param format query string false "Rendition: json (default) or text"
// @Success 200 {object} response.Envelope
// @Router /reports/students/{id} [get]
func (h *ReportHandler) StudentReport(c *gin.Context) {
	studentID := c.Param("id")
	if c.Query("format") == "text" {
		text, err := h.reports.StudentReportText(studentID)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.String(http.StatusOK, text)
		return
	}
	report, err := h.reports.StudentReport(studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// ExportStudentReport godoc
// @Summary Export student academic report
// @Tags Reports
// @Produce octet-stream
// @Param id path string true "Student ID"
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /reports/students/{id}/export [get]
func (h *ReportHandler) ExportStudentReport(c *gin.Context) {
	if !h.exportsEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "report exports are disabled"))
		return
	}
	studentID := c.Param("id")
	format := c.DefaultQuery("format", service.FormatCSV)
	content, contentType, err := h.reports.ExportStudentReport(studentID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("student-report-%s.%s", studentID, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, content)
}

// ExportAnalytics godoc
// @Summary Export an aggregate report
// @Tags Reports
// @Produce octet-stream
// @Param report query string true "top-students, at-risk, popular-courses or programs"
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /reports/analytics/export [get]
func (h *ReportHandler) ExportAnalytics(c *gin.Context) {
	if !h.exportsEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "report exports are disabled"))
		return
	}
	report := c.Query("report")
	format := c.DefaultQuery("format", service.FormatCSV)
	content, contentType, err := h.reports.ExportAnalytics(report, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("%s.%s", report, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, content)
}
