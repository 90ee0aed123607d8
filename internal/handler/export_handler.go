package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
	"github.com/aventureros/clubsync-api/pkg/response"
)

type attendanceExporter interface {
	AttendanceCSV(ctx context.Context, classID, date string) ([]byte, error)
	AttendancePDF(ctx context.Context, classID, date string) ([]byte, error)
}

// ExportHandler serves attendance sheet downloads.
type ExportHandler struct {
	exports  attendanceExporter
	identity identityResolver
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports attendanceExporter, identity identityResolver) *ExportHandler {
	return &ExportHandler{exports: exports, identity: identity}
}

func (h *ExportHandler) params(c *gin.Context) (classID, date string, err error) {
	date = strings.TrimSpace(c.Query("date"))
	if date == "" {
		return "", "", appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	if _, parseErr := time.Parse("2006-01-02", date); parseErr != nil {
		return "", "", appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}
	classID = strings.TrimSpace(c.Query("class_id"))
	if classID == "" {
		classID, err = h.identity.Resolve(c.Request.Context())
		if err != nil {
			return "", "", err
		}
	}
	return classID, date, nil
}

// AttendanceCSV godoc
// @Summary Attendance sheet as CSV
// @Tags Exports
// @Produce text/csv
// @Param date query string true "Session date (YYYY-MM-DD)"
// @Param class_id query string false "Class ID, defaults to the hydrated identity"
// @Success 200 {string} string
// @Router /exports/progress.csv [get]
func (h *ExportHandler) AttendanceCSV(c *gin.Context) {
	classID, date, err := h.params(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := h.exports.AttendanceCSV(c.Request.Context(), classID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="attendance-`+date+`.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}

// AttendancePDF godoc
// @Summary Attendance sheet as PDF
// @Tags Exports
// @Produce application/pdf
// @Param date query string true "Session date (YYYY-MM-DD)"
// @Param class_id query string false "Class ID, defaults to the hydrated identity"
// @Success 200 {string} string
// @Router /exports/progress.pdf [get]
func (h *ExportHandler) AttendancePDF(c *gin.Context) {
	classID, date, err := h.params(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := h.exports.AttendancePDF(c.Request.Context(), classID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="attendance-`+date+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
