package notification

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/caresync-api/internal/handler"
	"github.com/jwalitptl/caresync-api/internal/model"
	notificationService "github.com/jwalitptl/caresync-api/internal/service/notification"
	apperrors "github.com/jwalitptl/caresync-api/pkg/errors"
)

type Handler struct {
	service notificationService.NotificationServicer
}

func NewHandler(service notificationService.NotificationServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("/settings", h.GetSettings)
		notifications.PUT("/settings", h.UpdateSettings)
		notifications.POST("/test/:channel", h.TestChannel)
	}
}

func (h *Handler) GetSettings(c *gin.Context) {
	handler.OK(c, h.service.Settings())
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req model.UpdateChannelSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Fail(c, apperrors.NewValidation("invalid request body", err))
		return
	}
	handler.OK(c, h.service.Update(&req))
}

// TestChannel reports a failed delivery in the body with a 200 status; only an
// unknown channel is a request error.
func (h *Handler) TestChannel(c *gin.Context) {
	res, err := h.service.Test(c.Request.Context(), c.Param("channel"))
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.OK(c, res)
}
