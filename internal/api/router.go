package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"mealbot/internal/generator"
	"mealbot/internal/models"
)

const defaultTimeout = 60 * time.Second

// RecipeSource возвращает каталог рецептов владельца
type RecipeSource interface {
	ListForOwner(ctx context.Context, ownerID int64) ([]models.Recipe, error)
}

// PlanStore хранит сгенерированные планы
type PlanStore interface {
	Create(ctx context.Context, chatID int64, plan *models.MealPlan) error
	GetByID(ctx context.Context, id string) (*models.MealPlan, error)
	ListRecentByChatID(ctx context.Context, chatID int64, limit int) ([]models.MealPlan, error)
	UpdateStatus(ctx context.Context, id string, status models.MealPlanStatus) error
}

// Handlers - HTTP обработчики планов питания
type Handlers struct {
	recipes   RecipeSource
	plans     PlanStore
	generator *generator.Generator
	logger    *zap.Logger
	startedAt time.Time
}

// NewHandlers создаёт обработчики
func NewHandlers(recipes RecipeSource, plans PlanStore, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		recipes:   recipes,
		plans:     plans,
		generator: generator.New(logger.Named("generator")),
		logger:    logger,
		startedAt: time.Now(),
	}
}

// NewRouter собирает chi роутер с общими middleware
func NewRouter(h *Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultTimeout))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(req.Context(), w, http.StatusNotFound, "route_not_found", fmt.Sprintf("no route for %s", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(req.Context(), w, http.StatusMethodNotAllowed, "method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path))
	})

	r.Get("/health", h.health)

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/meal-plans", h.createPlan)
		v1.Get("/meal-plans/{planID}", h.getPlan)
		v1.Patch("/meal-plans/{planID}", h.updatePlanStatus)
		v1.Get("/meal-plans/{planID}/calendar.ics", h.planCalendar)
		v1.Get("/owners/{ownerID}/meal-plans", h.listPlans)
	})

	return r
}

// requestLogger пишет в zap строку на каждый запрос
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
