package insight

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/caresync-api/internal/handler"
	"github.com/jwalitptl/caresync-api/internal/model"
	insightService "github.com/jwalitptl/caresync-api/internal/service/insight"
	apperrors "github.com/jwalitptl/caresync-api/pkg/errors"
)

type Handler struct {
	service insightService.InsightServicer
	now     func() time.Time
}

func NewHandler(service insightService.InsightServicer, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{service: service, now: now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	insights := r.Group("/insights")
	{
		insights.POST("/summary", h.Summary)
		insights.POST("/reflection", h.Reflection)
		insights.POST("/side-effects", h.SideEffects)
	}
}

func (h *Handler) Summary(c *gin.Context) {
	insight, err := h.service.Summary(c.Request.Context(), h.now())
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.OK(c, insight)
}

func (h *Handler) Reflection(c *gin.Context) {
	insight, err := h.service.Reflection(c.Request.Context())
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.OK(c, insight)
}

func (h *Handler) SideEffects(c *gin.Context) {
	var req model.SideEffectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Fail(c, apperrors.NewValidation("invalid request body", err))
		return
	}

	insight, err := h.service.SideEffects(c.Request.Context(), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.OK(c, insight)
}
