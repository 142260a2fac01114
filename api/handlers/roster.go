package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/festrack/festrack/api/middleware"
	"github.com/festrack/festrack/api/structs"
	rosterservice "github.com/festrack/festrack/app/modules/roster/application"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

func (h *Handlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req structs.CreateTeamRequest
	if !h.decode(w, r, &req) {
		return
	}
	team, err := h.roster.CreateTeam(r.Context(), req.Name, req.Description)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	// The generated password is returned exactly once, at creation.
	h.respondJSON(w, http.StatusCreated, structs.CreateTeamResponse{
		ID:           team.ID,
		Name:         team.Name,
		TeamNumber:   team.TeamNumber,
		TeamUsername: team.TeamUsername,
		TeamPassword: team.TeamPassword,
	})
}

func (h *Handlers) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.roster.ListTeams(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	for i := range teams {
		teams[i].TeamPassword = ""
	}
	h.respondJSON(w, http.StatusOK, teams)
}

func (h *Handlers) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "teamID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	team, err := h.roster.GetTeam(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	team.TeamPassword = ""
	h.respondJSON(w, http.StatusOK, team)
}

func (h *Handlers) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "teamID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.roster.DeleteTeam(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "teamID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	members, err := h.roster.ListTeamMembers(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, members)
}

func (h *Handlers) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req structs.CreateStudentRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.TeamID != nil && !middleware.CanActForTeam(r.Context(), *req.TeamID) {
		h.respondError(w, http.StatusForbidden, errors.New("cannot register students for another team"))
		return
	}

	student, err := h.roster.CreateStudent(r.Context(), rosterservice.CreateStudentInput{
		Name:      req.Name,
		StudentID: req.StudentID,
		Category:  sharedtypes.Category(req.Category),
		Grade:     req.Grade,
		Section:   req.Section,
		TeamID:    req.TeamID,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, student)
}

func (h *Handlers) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.roster.ListStudents(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, students)
}

func (h *Handlers) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "studentID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	student, err := h.roster.GetStudent(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, student)
}

// MoveStudentRequest moves a student between teams; a null team_id detaches.
type MoveStudentRequest struct {
	TeamID *int64 `json:"team_id"`
}

func (h *Handlers) MoveStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "studentID")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}
	var req MoveStudentRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.roster.MoveStudentToTeam(r.Context(), id, req.TeamID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// maxUploadSize caps roster spreadsheet uploads at 8 MiB.
const maxUploadSize = 8 << 20

// ImportStudents accepts a multipart xlsx upload and registers students with
// per-row partial success: parse failures and registration failures are
// collected per row, good rows always land.
func (h *Handlers) ImportStudents(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Errorf("failed to parse upload: %w", err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, errors.New("missing file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	parsed, err := h.parser.Parse(data)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	teamIDs, err := h.teamIDsByName(r)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	inputs := make([]rosterservice.CreateStudentInput, 0, len(parsed.Rows))
	var rowErrors []rosterservice.RowError
	for _, parseErr := range parsed.Errors {
		rowErrors = append(rowErrors, rosterservice.RowError{Row: parseErr.Row, Err: parseErr.Err.Error()})
	}
	for _, row := range parsed.Rows {
		input := rosterservice.CreateStudentInput{
			Name:      row.Name,
			StudentID: row.StudentID,
			Category:  row.Category,
			Grade:     row.Grade,
			Section:   row.Section,
		}
		if row.TeamName != "" {
			id, ok := teamIDs[row.TeamName]
			if !ok {
				rowErrors = append(rowErrors, rosterservice.RowError{
					Row: 0, Err: fmt.Sprintf("unknown team %q for student %s", row.TeamName, row.StudentID),
				})
				continue
			}
			input.TeamID = &id
		}
		inputs = append(inputs, input)
	}

	result, err := h.roster.ImportStudents(r.Context(), inputs)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	result.Errors = append(rowErrors, result.Errors...)
	h.respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) teamIDsByName(r *http.Request) (map[string]int64, error) {
	teams, err := h.roster.ListTeams(r.Context())
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(teams))
	for _, team := range teams {
		byName[team.Name] = team.ID
	}
	return byName, nil
}
