package rosterservice

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/uptrace/bun"

	rosterdb "github.com/festrack/festrack/app/modules/roster/infrastructure/repositories"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrInvalidCredentials indicates a failed team manager login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CreateTeam creates a team with generated manager credentials and the next
// team number. The whole sequence runs in one transaction so concurrent
// creations cannot claim the same number.
func (s *Service) CreateTeam(ctx context.Context, name, description string) (_ *rosterdb.Team, err error) {
	defer func(start time.Time) { s.observe(ctx, "CreateTeam", err, start) }(time.Now())

	team := &rosterdb.Team{
		Name:        name,
		Description: description,
	}

	err = s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		username, err := s.generateTeamUsername(ctx, tx, name)
		if err != nil {
			return err
		}
		password, err := generatePassword(8)
		if err != nil {
			return err
		}
		team.TeamUsername = username
		team.TeamPassword = password

		maxNumber, err := s.repo.MaxTeamNumber(ctx, tx)
		if err != nil {
			return err
		}
		team.TeamNumber = maxNumber + 1

		return s.repo.CreateTeam(ctx, tx, team)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "team created",
		slog.Int64("team_id", team.ID),
		slog.String("name", team.Name),
		slog.Int("team_number", team.TeamNumber),
	)
	return team, nil
}

// GetTeam returns a single team.
func (s *Service) GetTeam(ctx context.Context, id int64) (*rosterdb.Team, error) {
	return s.repo.GetTeam(ctx, nil, id)
}

// ListTeams returns all teams ordered by team number.
func (s *Service) ListTeams(ctx context.Context) ([]rosterdb.Team, error) {
	return s.repo.ListTeams(ctx, nil)
}

// ListTeamMembers returns the students on a team.
func (s *Service) ListTeamMembers(ctx context.Context, teamID int64) ([]rosterdb.Student, error) {
	return s.repo.ListTeamMembers(ctx, nil, teamID)
}

// ResetTeamNumbering renumbers all teams densely from 1 by creation order.
func (s *Service) ResetTeamNumbering(ctx context.Context) (err error) {
	defer func(start time.Time) { s.observe(ctx, "ResetTeamNumbering", err, start) }(time.Now())
	return s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		return s.repo.ResetTeamNumbering(ctx, tx)
	})
}

// DeleteTeam removes a team and, in order: its program assignments, results
// and chest numbers; its points records; then the team row itself. Remaining
// teams are renumbered densely and former members are detached so their chest
// numbers get reallocated on the next assignment.
func (s *Service) DeleteTeam(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { s.observe(ctx, "DeleteTeam", err, start) }(time.Now())

	err = s.runInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		if _, err := s.repo.GetTeam(ctx, tx, id); err != nil {
			return err
		}
		if err := s.competition.DeleteForTeam(ctx, tx, id); err != nil {
			return err
		}
		if err := s.points.DeleteForTeam(ctx, tx, id); err != nil {
			return err
		}
		if err := s.repo.DetachStudentsFromTeam(ctx, tx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteTeam(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.ResetTeamNumbering(ctx, tx)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "team deleted", slog.Int64("team_id", id))
	return nil
}

// AuthenticateTeam verifies generated manager credentials and returns the
// team. Unknown usernames and wrong passwords both map to
// ErrInvalidCredentials so the API cannot be used to probe usernames.
func (s *Service) AuthenticateTeam(ctx context.Context, username, password string) (*rosterdb.Team, error) {
	team, err := s.repo.GetTeamByUsername(ctx, nil, username)
	if err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(team.TeamPassword), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return team, nil
}

// generateTeamUsername slugs the team name and suffixes a counter until the
// username is free.
func (s *Service) generateTeamUsername(ctx context.Context, tx bun.IDB, name string) (string, error) {
	base := strings.ToLower(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.ReplaceAll(base, "-", "_")
	username := base + "_team"

	for counter := 1; ; counter++ {
		taken, err := s.repo.TeamUsernameExists(ctx, tx, username)
		if err != nil {
			return "", err
		}
		if !taken {
			return username, nil
		}
		username = fmt.Sprintf("%s_team_%d", base, counter)
	}
}

func generatePassword(length int) (string, error) {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
