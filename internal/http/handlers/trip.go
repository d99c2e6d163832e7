package handlers

import (
	"net/http"
	"time"

	"hos-trip-planner/internal/logx"
)

// logSheetDefaultDays is the window used when a log-sheet request omits dates.
const logSheetDefaultDays = 8

// TripHandler serves trip planning and log-sheet endpoints.
type TripHandler struct {
	planner    tripPlanner
	trips      tripStore
	drivers    driverUsecase
	compliance complianceUsecase
	logger     logx.Logger
	now        func() time.Time
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(logger logx.Logger, p tripPlanner, trips tripStore, drivers driverUsecase, compliance complianceUsecase) *TripHandler {
	logger = logx.OrNop(logger)
	return &TripHandler{
		planner:    p,
		trips:      trips,
		drivers:    drivers,
		compliance: compliance,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Plan handles POST /trips/plan.
// @Summary Plan a trip
// @Description Registers the driver, stores the trip and builds an HOS-compliant daily schedule
// @Tags trips
// @Accept json
// @Produce json
// @Success 200 {object} planTripResponse
// @Failure 400 {object} ErrorResponse "missing data, invalid input or planning failure"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /trips/plan [post]
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req planTripRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Trip == nil || req.Driver == nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "Both trip and driver data are required.")
		return
	}
	if errs := req.Trip.validate(); len(errs) > 0 {
		writeJSON(h.logger, w, r, http.StatusBadRequest, validationResponse{TripErrors: errs})
		return
	}
	if errs := req.Driver.validate(); len(errs) > 0 {
		writeJSON(h.logger, w, r, http.StatusBadRequest, validationResponse{DriverErrors: errs})
		return
	}

	ctx := r.Context()
	trip := req.Trip.toModel()
	tripID, err := h.trips.Create(ctx, trip)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	trip.ID = tripID

	driverID, err := h.drivers.Register(ctx, req.Driver.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	res := h.planner.Plan(ctx, *trip)
	if !res.OK() {
		writeJSON(h.logger, w, r, http.StatusBadRequest, planFailedResponse{
			Detail: "Trip planning failed.",
			Errors: res.Errors(),
		})
		return
	}

	body := resultToResponse(tripID, driverID, res)
	if violations := res.PlanViolations(); len(violations) > 0 {
		writeJSON(h.logger, w, r, http.StatusBadRequest, planViolationsResponse{
			Detail:         "HOS or planning errors found.",
			PlanningErrors: violations,
			Result:         body,
		})
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, body)
}

// LogSheets handles POST /trips/{tripID}/logs.
// Without from/to the sheets cover the last eight days ending today.
func (h *TripHandler) LogSheets(w http.ResponseWriter, r *http.Request) {
	tripID, err := idFromURL(r, "tripID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid trip id")
		return
	}
	var req logSheetsRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.DriverID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "driver_id is required")
		return
	}

	to := h.now()
	if req.To != "" {
		if to, err = parseDate(req.To); err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
			return
		}
	}
	from := to.AddDate(0, 0, -(logSheetDefaultDays - 1))
	if req.From != "" {
		if from, err = parseDate(req.From); err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	sheets, err := h.compliance.GenerateLogSheets(r.Context(), tripID, req.DriverID, from, to)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, logSheetsToResponse(tripID, sheets))
}
