package regulation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/regwatch/core/internal/modules/processing/extract"
	"github.com/regwatch/core/internal/pkg/pagination"
	"github.com/regwatch/core/internal/pkg/response"
)

type Handler struct {
	svc        *Service
	uploadsDir string
}

func NewHandler(svc *Service, uploadsDir string) *Handler {
	return &Handler{svc: svc, uploadsDir: uploadsDir}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/regulations")

	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.GET("/:id/checks", h.listChecks)

	g.POST("/upload", authMW, h.upload)
	g.POST("/:id/check", authMW, h.check)
}

// POST /regulations/upload  [auth]
func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if !extract.IsSupported(file.Filename) {
		response.BadRequest(c, "Unsupported file type")
		return
	}

	regulationType := strings.TrimSpace(c.PostForm("regulation_type"))
	jurisdiction := strings.TrimSpace(c.PostForm("jurisdiction"))
	var effectiveDate *string
	if v := strings.TrimSpace(c.PostForm("effective_date")); v != "" {
		effectiveDate = &v
	}

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		response.InternalError(c, err)
		return
	}
	storedPath := filepath.Join(h.uploadsDir, fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		response.InternalError(c, err)
		return
	}

	reg, task, err := h.svc.Create(c.Request.Context(), file.Filename, storedPath, regulationType, jurisdiction, effectiveDate)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Created(c, uploadResultDTO{
		RegulationID: reg.ID,
		Status:       reg.Status,
		TaskID:       task.ID,
	})
}

// GET /regulations
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	regs, total, err := h.svc.List(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	totalPages := int((total + int64(q.Size) - 1) / int64(q.Size))
	response.Paged(c, regs, response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPages,
		Size:        q.Size,
		HasNextPage: q.Page < totalPages,
	})
}

// GET /regulations/:id
func (h *Handler) get(c *gin.Context) {
	reg, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Regulation not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, reg)
}

// POST /regulations/:id/check  [auth]
func (h *Handler) check(c *gin.Context) {
	var dto checkComplianceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	row, err := h.svc.CheckCompliance(c.Request.Context(), c.Param("id"), dto.CompanyPolicies)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFoundMsg(c, "Regulation not found")
		case errors.Is(err, ErrNotProcessed):
			response.BadRequest(c, "Regulation not processed yet")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, row)
}

// GET /regulations/:id/checks
func (h *Handler) listChecks(c *gin.Context) {
	rows, err := h.svc.Assessments(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Regulation not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, rows)
}
