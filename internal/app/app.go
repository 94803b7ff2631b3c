// Package app assembles the store, notifiers, services and HTTP router from
// configuration. Both the API server and the CLI start from here.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/caresync-api/internal/ai"
	"github.com/jwalitptl/caresync-api/internal/config"
	"github.com/jwalitptl/caresync-api/internal/email"
	"github.com/jwalitptl/caresync-api/internal/handler"
	insightHandler "github.com/jwalitptl/caresync-api/internal/handler/insight"
	medicationHandler "github.com/jwalitptl/caresync-api/internal/handler/medication"
	notificationHandler "github.com/jwalitptl/caresync-api/internal/handler/notification"
	wellnessHandler "github.com/jwalitptl/caresync-api/internal/handler/wellness"
	"github.com/jwalitptl/caresync-api/internal/middleware"
	"github.com/jwalitptl/caresync-api/internal/notifier"
	"github.com/jwalitptl/caresync-api/internal/repository/sqlstore"
	"github.com/jwalitptl/caresync-api/internal/router"
	insightService "github.com/jwalitptl/caresync-api/internal/service/insight"
	medicationService "github.com/jwalitptl/caresync-api/internal/service/medication"
	notificationService "github.com/jwalitptl/caresync-api/internal/service/notification"
	"github.com/jwalitptl/caresync-api/internal/service/reminder"
	wellnessService "github.com/jwalitptl/caresync-api/internal/service/wellness"
	"github.com/jwalitptl/caresync-api/pkg/logger"
	"github.com/jwalitptl/caresync-api/pkg/metrics"
)

const suppressionWindow = 24 * time.Hour

// App holds the wired services. Close releases the store.
type App struct {
	Config  *config.Config
	Log     *logger.Logger
	DB      *sqlx.DB
	Metrics *metrics.Metrics

	Medications   medicationService.MedicationServicer
	Wellness      wellnessService.WellnessServicer
	Insights      insightService.InsightServicer
	Notifications notificationService.NotificationServicer

	now func() time.Time
}

type Option func(*App)

// WithClock replaces time.Now for every time-dependent operation.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewLogger builds the process logger from the log section.
func NewLogger(cfg config.LogConfig, out io.Writer) *logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Level),
		TimeFormat: time.RFC3339,
		Output:     out,
		JSON:       cfg.Format == "json",
	})
}

func New(cfg *config.Config, log *logger.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{Config: cfg, Log: log, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	if cfg.Monitoring.PrometheusEnabled {
		a.Metrics = metrics.New(cfg.Monitoring.Namespace)
	}

	db, err := sqlstore.NewDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	a.DB = db

	base := sqlstore.NewBaseRepository(db, a.Metrics)
	medRepo := sqlstore.NewMedicationRepository(base)
	moodRepo := sqlstore.NewMoodRepository(base)
	journalRepo := sqlstore.NewJournalRepository(base)

	emailSvc, err := email.NewService(cfg.Notifications.Email)
	if err != nil {
		log.Warn(err, "email channel unavailable")
	}
	recipient := cfg.Notifications.Email.Recipient
	if recipient == "" {
		recipient = cfg.Notifications.Email.Address
	}
	notifiers := notifier.NewSet(
		notifier.NewEmailNotifier(emailSvc, recipient),
		notifier.NewPlatformDesktopNotifier(),
		notifier.NewMobileNotifier(log),
	)

	var suppressor reminder.Suppressor
	if cfg.Reminders.SuppressRepeats {
		suppressor = reminder.NewSuppressor(suppressionWindow)
	}
	dispatcher := reminder.NewDispatcher(notifiers, suppressor, a.Metrics, log)

	notifications := notificationService.NewService(cfg.Notifications.ChannelSettings, dispatcher, log)
	a.Notifications = notifications
	a.Medications = medicationService.NewService(medRepo, dispatcher, notifications, a.Metrics, log)
	a.Wellness = wellnessService.NewService(moodRepo, journalRepo, log)

	var primary ai.Generator
	if cfg.AI.Enabled() {
		primary = ai.NewChatGenerator(cfg.AI)
	} else {
		log.Info("AI API key not set, insights use built-in responses")
	}
	a.Insights = insightService.NewService(moodRepo, journalRepo, medRepo, insightService.Options{
		Primary:    primary,
		SummaryTTL: cfg.AI.SummaryCacheTTL,
		Metrics:    a.Metrics,
		Log:        log,
	})

	return a, nil
}

// Router builds the HTTP surface over the wired services.
func (a *App) Router() *router.Router {
	srv := a.Config.Server

	cors := middleware.DefaultCORSConfig()
	if len(srv.CORSOrigins) > 0 {
		cors.AllowOrigins = srv.CORSOrigins
	}

	var h *handler.Handler
	if a.Metrics != nil {
		h = handler.NewHandler(a.DB, a.Metrics.Registry, a.now)
	} else {
		h = handler.NewHandler(a.DB, nil, a.now)
	}

	r := router.NewRouter(h, a.Metrics, router.RouterConfig{
		RateLimitEnabled: srv.RateLimit.Enabled,
		RateLimit:        rate.Limit(srv.RateLimit.RequestsPerSecond),
		RateBurst:        srv.RateLimit.Burst,
		Timeout:          time.Duration(srv.TimeoutSeconds) * time.Second,
		MaxBodyBytes:     srv.MaxBodyBytes,
		CORSConfig:       cors,
		SecurityConfig:   middleware.DefaultSecurityConfig(),
	},
		medicationHandler.NewHandler(a.Medications, a.now),
		wellnessHandler.NewHandler(a.Wellness, a.now),
		notificationHandler.NewHandler(a.Notifications),
		insightHandler.NewHandler(a.Insights, a.now),
	)
	r.Setup()
	return r
}

func (a *App) Now() time.Time {
	return a.now()
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:           a.Router().Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.Log.Info("server exited properly")
	return nil
}
