package handlers

import (
	"net/http"

	"github.com/festrack/festrack/api/middleware"
	"github.com/festrack/festrack/api/structs"
	eventservice "github.com/festrack/festrack/app/modules/event/application"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req structs.CreateEventRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := eventservice.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		Venue:       req.Venue,
		CreatedBy:   principal(r, req.CreatedBy),
	}
	if req.StartDate != nil {
		input.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		input.EndDate = *req.EndDate
	}

	event, err := h.events.CreateEvent(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, event)
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, events)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "eventID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	event, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, event)
}

func (h *Handlers) TransitionEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "eventID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	var req structs.TransitionEventRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.events.TransitionEventStatus(r.Context(), id, sharedtypes.EventStatus(req.Status)); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "eventID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.events.DeleteEvent(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	var req structs.CreateAnnouncementRequest
	if !h.decode(w, r, &req) {
		return
	}
	announcement, err := h.events.CreateAnnouncement(r.Context(), eventID, req.Title, req.Message, req.Important, principal(r, ""))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, announcement)
}

func (h *Handlers) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	announcements, err := h.events.ListAnnouncements(r.Context(), eventID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, announcements)
}

func (h *Handlers) CreateProgram(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	var req structs.CreateProgramRequest
	if !h.decode(w, r, &req) {
		return
	}

	program, err := h.events.CreateProgram(r.Context(), eventservice.CreateProgramInput{
		EventID:                eventID,
		Name:                   req.Name,
		Description:            req.Description,
		Category:               sharedtypes.Category(req.Category),
		ProgramType:            sharedtypes.ProgramType(req.ProgramType),
		IsTeamBased:            req.IsTeamBased,
		MaxParticipants:        req.MaxParticipants,
		MaxParticipantsPerTeam: req.MaxParticipantsPerTeam,
		TeamSize:               req.TeamSize,
		Venue:                  req.Venue,
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		ScheduleText:           req.ScheduleText,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, program)
}

func (h *Handlers) ListPrograms(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	programs, err := h.events.ListPrograms(r.Context(), eventID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, programs)
}

func (h *Handlers) GetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "programID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	program, err := h.events.GetProgram(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, program)
}

func (h *Handlers) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "programID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.events.DeleteProgram(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) FinishProgram(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "programID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.events.FinishProgram(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// principal names the acting user for audit columns: the token subject when
// authenticated, the request-supplied fallback otherwise.
func principal(r *http.Request, fallback string) string {
	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil && claims.Subject != "" {
		return claims.Subject
	}
	return fallback
}
