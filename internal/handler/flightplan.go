package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flightplan/flightplan/internal/model"
	"github.com/flightplan/flightplan/internal/repository"
)

// FlightPlanStore is the CRUD contract for flight plans.
// Implemented by *repository.Repository.
type FlightPlanStore interface {
	ListFlightPlans(ctx context.Context) ([]model.FlightPlan, error)
	GetFlightPlan(ctx context.Context, id string) (*model.FlightPlan, error)
	CreateFlightPlan(ctx context.Context, plan model.FlightPlan) (*model.FlightPlan, error)
	UpdateFlightPlan(ctx context.Context, plan model.FlightPlan) (bool, error)
	DeleteFlightPlan(ctx context.Context, id string) (bool, error)
}

// FlightPlanHandler handles HTTP requests for flight plan operations.
type FlightPlanHandler struct {
	store  FlightPlanStore
	logger *slog.Logger
}

// NewFlightPlanHandler creates a new FlightPlanHandler.
func NewFlightPlanHandler(logger *slog.Logger, store FlightPlanStore) *FlightPlanHandler {
	return &FlightPlanHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /api/v1/flightplan.
// An empty store yields 204 with no body.
func (h *FlightPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.store.ListFlightPlans(r.Context())
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	if len(plans) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, plans)
}

// Get handles GET /api/v1/flightplan/{id}.
func (h *FlightPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	plan, err := h.store.GetFlightPlan(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFlightPlanNotFound) {
			writeError(w, http.StatusNotFound, "FLIGHT_PLAN_NOT_FOUND", "No flight plan with id "+id)
			return
		}
		h.handleStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// Create handles POST /api/v1/flightplan.
// The stored record, including the assigned id, is echoed back.
func (h *FlightPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var plan model.FlightPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	created, err := h.store.CreateFlightPlan(r.Context(), plan)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	h.logger.Info("flight plan created",
		slog.String("flight_plan_id", created.FlightPlanID),
		slog.String("aircraft", created.AircraftIdentification),
	)

	writeJSON(w, http.StatusOK, created)
}

// Update handles PUT /api/v1/flightplan.
// The plan is matched by its id; a zero-row match yields 404.
func (h *FlightPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var plan model.FlightPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if plan.FlightPlanID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Flight plan id is required")
		return
	}

	updated, err := h.store.UpdateFlightPlan(r.Context(), plan)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	if !updated {
		writeError(w, http.StatusNotFound, "FLIGHT_PLAN_NOT_FOUND", "No flight plan with id "+plan.FlightPlanID)
		return
	}

	h.logger.Info("flight plan updated", slog.String("flight_plan_id", plan.FlightPlanID))

	w.WriteHeader(http.StatusOK)
}

// Delete handles DELETE /api/v1/flightplan/{id}.
func (h *FlightPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.store.DeleteFlightPlan(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	if !deleted {
		writeError(w, http.StatusNotFound, "FLIGHT_PLAN_NOT_FOUND", "No flight plan with id "+id)
		return
	}

	h.logger.Info("flight plan deleted", slog.String("flight_plan_id", id))

	w.WriteHeader(http.StatusOK)
}

// handleStoreError maps repository failures to a 500 response.
// Pool exhaustion and transport failures are not retried here; retry
// policy belongs to the caller.
func (h *FlightPlanHandler) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrPoolExhausted) {
		h.logger.Error("connection pool exhausted",
			slog.String("path", r.URL.Path),
		)
	} else {
		h.logger.Error("store error",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	writeError(w, http.StatusInternalServerError, "STORE_ERROR", "Could not complete request")
}
