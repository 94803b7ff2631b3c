package wellness

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/caresync-api/internal/handler"
	"github.com/jwalitptl/caresync-api/internal/model"
	wellnessService "github.com/jwalitptl/caresync-api/internal/service/wellness"
	apperrors "github.com/jwalitptl/caresync-api/pkg/errors"
)

type Handler struct {
	service wellnessService.WellnessServicer
	now     func() time.Time
}

func NewHandler(service wellnessService.WellnessServicer, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{service: service, now: now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	moods := r.Group("/moods")
	{
		moods.POST("", h.LogMood)
		moods.GET("", h.ListMoods)
		moods.GET("/today", h.TodayMood)
		moods.GET("/trend", h.Trend)
		moods.GET("/scale", h.Scale)
	}

	journals := r.Group("/journals")
	{
		journals.POST("", h.AddJournal)
		journals.GET("", h.ListJournals)
	}
}

func (h *Handler) LogMood(c *gin.Context) {
	var req model.LogMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Fail(c, apperrors.NewValidation("invalid request body", err))
		return
	}

	mood, err := h.service.LogMood(c.Request.Context(), h.now(), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Created(c, "Mood saved!", mood)
}

func (h *Handler) ListMoods(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	moods, err := h.service.Moods(c.Request.Context(), limit)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	if moods == nil {
		moods = []*model.MoodEntry{}
	}
	handler.OK(c, moods)
}

func (h *Handler) TodayMood(c *gin.Context) {
	mood, err := h.service.TodayMood(c.Request.Context(), h.now())
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.OK(c, mood)
}

// Trend lists recent moods oldest first.
func (h *Handler) Trend(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	moods, err := h.service.Trend(c.Request.Context(), limit)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	if moods == nil {
		moods = []*model.MoodEntry{}
	}
	handler.OK(c, moods)
}

func (h *Handler) Scale(c *gin.Context) {
	handler.OK(c, model.MoodScale)
}

func (h *Handler) AddJournal(c *gin.Context) {
	var req model.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Fail(c, apperrors.NewValidation("invalid request body", err))
		return
	}

	entry, err := h.service.AddJournal(c.Request.Context(), h.now(), &req)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	handler.Created(c, "Journal entry saved!", entry)
}

func (h *Handler) ListJournals(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	entries, err := h.service.Journals(c.Request.Context(), limit)
	if err != nil {
		handler.Fail(c, err)
		return
	}
	if entries == nil {
		entries = []*model.JournalEntry{}
	}
	handler.OK(c, entries)
}

func limitParam(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		handler.Fail(c, apperrors.NewValidation("limit must be a positive number", err))
		return 0, false
	}
	return n, true
}
