package handlers

import (
	"net/http"

	"github.com/festrack/festrack/api/structs"
	competitionservice "github.com/festrack/festrack/app/modules/competition/application"
)

func (h *Handlers) Assign(w http.ResponseWriter, r *http.Request) {
	programID, err := idParam(r, "programID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	var req structs.AssignRequest
	if !h.decode(w, r, &req) {
		return
	}
	assignment, err := h.competition.Assign(r.Context(), competitionservice.AssignInput{
		ProgramID:  programID,
		StudentID:  req.StudentID,
		AssignedBy: principal(r, ""),
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, assignment)
}

// BulkAssign enters many students into a program. With team_block set the
// batch is an all-or-nothing team entry validated against the program's team
// size; otherwise each row succeeds or fails on its own.
func (h *Handlers) BulkAssign(w http.ResponseWriter, r *http.Request) {
	programID, err := idParam(r, "programID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	var req structs.BulkAssignRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.TeamBlock {
		assignments, err := h.competition.AssignTeam(r.Context(), programID, req.StudentIDs, principal(r, ""))
		if err != nil {
			h.respondServiceError(w, err)
			return
		}
		h.respondJSON(w, http.StatusCreated, assignments)
		return
	}

	result, err := h.competition.BulkAssign(r.Context(), programID, req.StudentIDs, principal(r, ""))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) ListAssignments(w http.ResponseWriter, r *http.Request) {
	programID, err := idParam(r, "programID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	assignments, err := h.competition.ListAssignments(r.Context(), programID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, assignments)
}

// CallingSheet returns a program's participants with chest numbers in calling
// order, for the stage announcer.
func (h *Handlers) CallingSheet(w http.ResponseWriter, r *http.Request) {
	programID, err := idParam(r, "programID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	rows, err := h.competition.CallingSheet(r.Context(), programID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, rows)
}

func (h *Handlers) EnterMarks(w http.ResponseWriter, r *http.Request) {
	programID, err := idParam(r, "programID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	var req structs.EnterMarksRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.competition.EnterMarks(r.Context(), competitionservice.EnterMarksInput{
		ProgramID:     programID,
		ParticipantID: req.ParticipantID,
		Judge1:        req.Judge1,
		Judge2:        req.Judge2,
		Judge3:        req.Judge3,
		Comments:      req.Comments,
		EnteredBy:     principal(r, ""),
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) ListResults(w http.ResponseWriter, r *http.Request) {
	programID, err := idParam(r, "programID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	results, err := h.competition.ListResults(r.Context(), programID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, results)
}
