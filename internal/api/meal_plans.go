package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mealbot/internal/calendar"
	"mealbot/internal/catalog"
	"mealbot/internal/generator"
	"mealbot/internal/models"
	"mealbot/internal/repository"
)

const (
	maxRequestBody   = 1 << 20
	defaultListLimit = 10
	maxListLimit     = 50
)

type createPlanRequest struct {
	OwnerID   int64            `json:"owner_id"`
	DaysCount int              `json:"days_count"`
	Target    models.Nutrients `json:"target"`
	Recipes   []models.Recipe  `json:"recipes,omitempty"`
}

type planResponse struct {
	*models.MealPlan
	Summary models.PlanSummary `json:"summary"`
}

type updateStatusRequest struct {
	Status models.MealPlanStatus `json:"status"`
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) createPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPlanRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid_request", "invalid JSON payload")
		return
	}

	recipes := req.Recipes
	if len(recipes) > 0 {
		recipes = catalog.Validate(recipes, h.logger)
	} else {
		var err error
		recipes, err = h.recipes.ListForOwner(ctx, req.OwnerID)
		if err != nil {
			h.logger.Error("не удалось загрузить рецепты", zap.Int64("owner_id", req.OwnerID), zap.Error(err))
			writeError(ctx, w, http.StatusInternalServerError, "internal", "failed to load recipes")
			return
		}
	}

	plan, err := h.generator.Generate(generator.Request{
		DaysCount: req.DaysCount,
		Target:    req.Target,
		Recipes:   recipes,
	})
	if err != nil {
		var validationErr generator.ValidationError
		switch {
		case errors.As(err, &validationErr):
			writeFieldError(ctx, w, validationErr.Field, validationErr.Message)
		case errors.Is(err, generator.ErrNoRecipes):
			writeError(ctx, w, http.StatusUnprocessableEntity, "no_recipes", err.Error())
		default:
			h.logger.Error("ошибка генерации плана", zap.Error(err))
			writeError(ctx, w, http.StatusInternalServerError, "internal", "failed to generate plan")
		}
		return
	}

	if err := h.plans.Create(ctx, req.OwnerID, plan); err != nil {
		h.logger.Error("не удалось сохранить план", zap.String("plan_id", plan.ID), zap.Error(err))
		writeError(ctx, w, http.StatusInternalServerError, "internal", "failed to store plan")
		return
	}

	writeJSON(w, http.StatusCreated, planResponse{MealPlan: plan, Summary: plan.Summary()})
}

// planIDParam достаёт ID плана из пути. Некорректный UUID - это 404:
// такого плана не может существовать.
func planIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "planID"))
	if err != nil {
		writeError(r.Context(), w, http.StatusNotFound, "not_found", "meal plan not found")
		return "", false
	}
	return id.String(), true
}

func (h *Handlers) getPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	planID, ok := planIDParam(w, r)
	if !ok {
		return
	}

	plan, err := h.plans.GetByID(ctx, planID)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(ctx, w, http.StatusNotFound, "not_found", "meal plan not found")
		return
	}
	if err != nil {
		h.logger.Error("не удалось загрузить план", zap.Error(err))
		writeError(ctx, w, http.StatusInternalServerError, "internal", "failed to load plan")
		return
	}

	writeJSON(w, http.StatusOK, planResponse{MealPlan: plan, Summary: plan.Summary()})
}

func (h *Handlers) planCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	planID, ok := planIDParam(w, r)
	if !ok {
		return
	}

	start := time.Now().UTC().AddDate(0, 0, 1)
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			writeFieldError(ctx, w, "start", "start must be a date in YYYY-MM-DD format")
			return
		}
		start = parsed
	}

	plan, err := h.plans.GetByID(ctx, planID)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(ctx, w, http.StatusNotFound, "not_found", "meal plan not found")
		return
	}
	if err != nil {
		h.logger.Error("не удалось загрузить план", zap.Error(err))
		writeError(ctx, w, http.StatusInternalServerError, "internal", "failed to load plan")
		return
	}

	ics := calendar.GenerateICS("План питания", calendar.PlanEvents(plan, start), time.Now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="meal_plan_%s.ics"`, start.Format(time.DateOnly)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics))
}

func (h *Handlers) updatePlanStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	planID, ok := planIDParam(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid_request", "invalid JSON payload")
		return
	}
	if !req.Status.Valid() {
		writeFieldError(ctx, w, "status", "status must be one of draft, active, archived")
		return
	}

	err := h.plans.UpdateStatus(ctx, planID, req.Status)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(ctx, w, http.StatusNotFound, "not_found", "meal plan not found")
		return
	}
	if err != nil {
		h.logger.Error("не удалось обновить статус плана", zap.Error(err))
		writeError(ctx, w, http.StatusInternalServerError, "internal", "failed to update plan")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listPlans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
	if err != nil {
		writeFieldError(ctx, w, "owner_id", "owner_id must be an integer")
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			writeFieldError(ctx, w, "limit", "limit must be between 1 and 50")
			return
		}
	}

	plans, err := h.plans.ListRecentByChatID(ctx, ownerID, limit)
	if err != nil {
		h.logger.Error("не удалось загрузить планы", zap.Error(err))
		writeError(ctx, w, http.StatusInternalServerError, "internal", "failed to list plans")
		return
	}
	if plans == nil {
		plans = []models.MealPlan{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"meal_plans": plans})
}
