package jwt

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// Claims carries the acting principal's identity for the API layer: role and,
// for team managers, the team they manage.
type Claims struct {
	jwt.RegisteredClaims
	Role   sharedtypes.Role `json:"role"`
	TeamID int64            `json:"team_id,omitempty"`
}
