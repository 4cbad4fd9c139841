package handlers

import (
	"net/http"

	"github.com/arenaops/esports-platform/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss}
}

// GetHandler handles GET /schedule: derived events across tournaments,
// grouped by day. Accepts the same filter query params as the tournament
// list.
func (h *ScheduleHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTournamentFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	days, err := h.scheduleService.GetSchedule(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"days": days}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
