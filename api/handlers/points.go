package handlers

import (
	"net/http"
	"strconv"

	"github.com/festrack/festrack/api/structs"
	pointsservice "github.com/festrack/festrack/app/modules/points/application"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// ManualAward records an admin bonus, penalty or achievement award.
func (h *Handlers) ManualAward(w http.ResponseWriter, r *http.Request) {
	var req structs.ManualAwardRequest
	if !h.decode(w, r, &req) {
		return
	}
	err := h.points.AwardManual(r.Context(), sharedtypes.PointAward{
		TeamID:    req.TeamID,
		StudentID: req.StudentID,
		EventID:   req.EventID,
		PointType: sharedtypes.PointType(req.PointType),
		Points:    req.Points,
		Reason:    req.Reason,
		AwardedBy: principal(r, ""),
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) ListEventPoints(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	records, err := h.points.ListRecordsForEvent(r.Context(), eventID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, records)
}

func (h *Handlers) ListTeamPoints(w http.ResponseWriter, r *http.Request) {
	teamID, err := idParam(r, "teamID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	records, err := h.points.ListRecordsForTeam(r.Context(), teamID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, records)
}

// TopPerformers returns the highest-scoring students of one event.
func (h *Handlers) TopPerformers(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := h.points.TopPerformers(r.Context(), eventID, limit)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, rows)
}

// GlobalLeaderboard returns the cross-event standings, normalized per event so
// small and large events weigh the same.
func (h *Handlers) GlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.points.GlobalLeaderboard(r.Context(), h.roster)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, board)
}

// LeaderboardChart renders the team standings as a PNG bar chart.
func (h *Handlers) LeaderboardChart(w http.ResponseWriter, r *http.Request) {
	board, err := h.points.GlobalLeaderboard(r.Context(), h.roster)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	png, err := pointsservice.GenerateLeaderboardChart(board.Teams)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.Error("failed to write chart response")
	}
}
