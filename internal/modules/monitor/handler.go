package monitor

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/regwatch/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/monitor")

	g.GET("/sources", h.listSources)
	g.POST("/sources", authMW, h.addSource)
	g.POST("/sources/:id/poll", authMW, h.pollSource)
	g.POST("/run", authMW, h.run)
}

type addSourceDTO struct {
	Name           string `json:"name"            binding:"required"`
	URL            string `json:"url"             binding:"required"`
	Jurisdiction   string `json:"jurisdiction"`
	RegulationType string `json:"regulation_type"`
	DueDays        *int   `json:"due_days"`
}

// POST /monitor/sources  [auth]
func (h *Handler) addSource(c *gin.Context) {
	var dto addSourceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(dto.Name) == "" || strings.TrimSpace(dto.URL) == "" {
		response.BadRequest(c, "name and url are required")
		return
	}

	src, err := h.svc.AddSource(c.Request.Context(), dto.Name, dto.URL, dto.Jurisdiction, dto.RegulationType, dto.DueDays)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, src)
}

// GET /monitor/sources
func (h *Handler) listSources(c *gin.Context) {
	sources, err := h.svc.Sources(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, sources)
}

// POST /monitor/sources/:id/poll  [auth]
func (h *Handler) pollSource(c *gin.Context) {
	changed, err := h.svc.Poll(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			response.NotFoundMsg(c, "Source not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"changed": changed})
}

// POST /monitor/run  [auth]
func (h *Handler) run(c *gin.Context) {
	changes, checked, err := h.svc.PollAll(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"changes": changes, "checked": checked})
}
