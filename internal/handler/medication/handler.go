package medication

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/caresync-api/internal/handler"
	"github.com/jwalitptl/caresync-api/internal/model"
	medicationService "github.com/jwalitptl/caresync-api/internal/service/medication"
	apperrors "github.com/jwalitptl/caresync-api/pkg/errors"
)

type Handler struct {
	service medicationService.MedicationServicer
	now     func() time.Time
}

func NewHandler(service medicationService.MedicationServicer, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{service: service, now: now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	meds := r.Group("/medications")
	{
		meds.POST("", h.AddMedication)
		meds.GET("", h.ListMedications)
		meds.GET("/today", h.Today)
		meds.GET("/reminders/status", h.ReminderStatus)
		meds.GET("/adherence", h.Adherence)
		meds.GET("/frequencies", h.Frequencies)
		meds.POST("/:id/taken", h.logStatus(model.AdherenceTaken))
		meds.POST("/:id/missed", h.logStatus(model.AdherenceMissed))
	}
}

func (h *Handler) AddMedication(c *gin.Context) {
	var req model.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Fail(c, apperrors.NewValidation("invalid request body", err))
		return
	}

	med, err := h.service.Add(c.Request.Context(), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}

	handler.Created(c, "Added "+med.Name, med)
}

func (h *Handler) ListMedications(c *gin.Context) {
	meds, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Fail(c, err)
		return
	}
	if meds == nil {
		meds = []*model.Medication{}
	}
	handler.OK(c, meds)
}

// Today evaluates the schedule and sends reminders for due-soon medications.
func (h *Handler) Today(c *gin.Context) {
	view, err := h.service.Today(c.Request.Context(), h.now())
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.OK(c, view)
}

func (h *Handler) ReminderStatus(c *gin.Context) {
	statuses, err := h.service.ReminderStatus(c.Request.Context(), h.now())
	if err != nil {
		handler.Fail(c, err)
		return
	}
	if len(statuses) == 0 {
		c.JSON(http.StatusOK, handler.NewMessageResponse("All medications are up to date!", statuses))
		return
	}
	handler.OK(c, statuses)
}

func (h *Handler) Adherence(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			handler.Fail(c, apperrors.NewValidation("days must be a positive number", err))
			return
		}
		days = n
	}

	stats, err := h.service.Adherence(c.Request.Context(), h.now(), days)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.OK(c, stats)
}

func (h *Handler) Frequencies(c *gin.Context) {
	handler.OK(c, model.Frequencies)
}

func (h *Handler) logStatus(status model.AdherenceStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			handler.Fail(c, apperrors.NewValidation("invalid medication ID", err))
			return
		}

		now := h.now()
		if err := h.service.Log(c.Request.Context(), id, now, status); err != nil {
			handler.Fail(c, err)
			return
		}

		handler.OK(c, gin.H{
			"medication_id": id,
			"status":        status,
			"date":          model.DateOf(now),
		})
	}
}
