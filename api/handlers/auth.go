package handlers

import (
	"net/http"

	"github.com/festrack/festrack/api/structs"
	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// Login exchanges team manager credentials for a signed token scoped to the
// managed team.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req structs.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	team, err := h.roster.AuthenticateTeam(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	token, err := h.tokens.GenerateToken(team.TeamUsername, sharedtypes.RoleTeamManager, team.ID, h.tokenTTL)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, structs.LoginResponse{
		Token:  token,
		Role:   string(sharedtypes.RoleTeamManager),
		TeamID: team.ID,
	})
}
