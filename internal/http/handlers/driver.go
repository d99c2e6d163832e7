package handlers

import (
	"net/http"
	"time"

	"hos-trip-planner/internal/logx"
)

// DriverHandler serves driver cycle and duty-log endpoints.
type DriverHandler struct {
	drivers    driverUsecase
	compliance complianceUsecase
	logger     logx.Logger
	now        func() time.Time
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(logger logx.Logger, drivers driverUsecase, compliance complianceUsecase) *DriverHandler {
	logger = logx.OrNop(logger)
	return &DriverHandler{
		drivers:    drivers,
		compliance: compliance,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Cycle handles GET /drivers/{id}/cycle.
func (h *DriverHandler) Cycle(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.drivers.Cycle(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, cycleResponse{
		DriverID:         c.DriverID,
		UsedMinutes:      c.UsedMinutes,
		RemainingMinutes: c.RemainingMinutes,
	})
}

// HOS handles GET /drivers/{id}/hos?date=YYYY-MM-DD. The date defaults to today.
func (h *DriverHandler) HOS(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	date := h.now()
	if s := r.URL.Query().Get("date"); s != "" {
		if date, err = parseDate(s); err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	report, err := h.compliance.Report(r.Context(), id, date)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, reportToResponse(report))
}

// RecordLog handles POST /drivers/{id}/logs.
func (h *DriverHandler) RecordLog(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req dutyLogRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	entry, err := req.toModel(id)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid duty log: "+err.Error())
		return
	}

	report, err := h.compliance.Record(r.Context(), entry)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, dutyLogResponse{
		ID:          entry.ID,
		Status:      string(entry.Status),
		StatusLabel: entry.Status.Label(),
		Report:      reportToResponse(report),
	})
}
