package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.GenerateToken("manager-7", sharedtypes.RoleTeamManager, 7, 0)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "manager-7", claims.Subject)
	require.Equal(t, sharedtypes.RoleTeamManager, claims.Role)
	require.Equal(t, int64(7), claims.TeamID)
}

func TestService_ExpiredToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.GenerateToken("admin-1", sharedtypes.RoleAdmin, 0, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_WrongSecret(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	other := NewService("other-secret", time.Hour)

	token, err := svc.GenerateToken("admin-1", sharedtypes.RoleAdmin, 0, 0)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}
