package report

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/regwatch/core/internal/models"
	"github.com/regwatch/core/internal/modules/regulation"
	"github.com/regwatch/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	regs := rg.Group("/regulations")
	regs.GET("/:id/report-data", h.reportData)
	regs.POST("/:id/reports", authMW, h.generate)

	reports := rg.Group("/reports")
	reports.GET("", h.list)
	reports.GET("/:id/download", h.download)
}

type generateReportDTO struct {
	IncludeRecommendations *bool `json:"include_recommendations"`
}

// GET /regulations/:id/report-data
func (h *Handler) reportData(c *gin.Context) {
	data, err := h.svc.Data(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, regulation.ErrNotFound) {
			response.NotFoundMsg(c, "Regulation not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, data)
}

// POST /regulations/:id/reports?format=pdf|xlsx  [auth]
func (h *Handler) generate(c *gin.Context) {
	var dto generateReportDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	includeRecommendations := true
	if dto.IncludeRecommendations != nil {
		includeRecommendations = *dto.IncludeRecommendations
	}
	format := c.DefaultQuery("format", models.ReportFormatPDF)

	row, err := h.svc.Generate(c.Request.Context(), c.Param("id"), format, includeRecommendations)
	if err != nil {
		switch {
		case errors.Is(err, regulation.ErrNotFound):
			response.NotFoundMsg(c, "Regulation not found")
		case errors.Is(err, ErrBadFormat):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, row)
}

// GET /reports
func (h *Handler) list(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, rows)
}

// GET /reports/:id/download
func (h *Handler) download(c *gin.Context) {
	row, err := h.svc.ResolveFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrReportNotFound):
			response.NotFoundMsg(c, "Report not found")
		case errors.Is(err, ErrFileMissing):
			response.NotFoundMsg(c, "File not found")
		default:
			response.InternalError(c, err)
		}
		return
	}

	contentType := "application/pdf"
	if row.Format == models.ReportFormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	filename := fmt.Sprintf("compliance_report_%s.%s", row.ID, row.Format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", contentType)
	c.File(row.FilePath)
}
