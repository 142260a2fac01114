// Package handlers implements the HTTP API on top of the application
// services. Handlers decode and validate DTOs, call one service operation,
// and map error kinds to status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/festrack/festrack/api/structs"
	competitionservice "github.com/festrack/festrack/app/modules/competition/application"
	competitiondb "github.com/festrack/festrack/app/modules/competition/infrastructure/repositories"
	eventservice "github.com/festrack/festrack/app/modules/event/application"
	eventdb "github.com/festrack/festrack/app/modules/event/infrastructure/repositories"
	pointsservice "github.com/festrack/festrack/app/modules/points/application"
	pointsdb "github.com/festrack/festrack/app/modules/points/infrastructure/repositories"
	rosterservice "github.com/festrack/festrack/app/modules/roster/application"
	"github.com/festrack/festrack/app/modules/roster/application/parsers"
	rosterdb "github.com/festrack/festrack/app/modules/roster/infrastructure/repositories"
	"github.com/festrack/festrack/pkg/jwt"
)

// Handlers bundles the services behind the HTTP API.
type Handlers struct {
	events      *eventservice.Service
	roster      *rosterservice.Service
	competition *competitionservice.Service
	points      *pointsservice.Service
	parser      *parsers.XLSXParser
	tokens      jwt.Service
	tokenTTL    time.Duration
	validate    *validator.Validate
	logger      *slog.Logger
}

func New(
	events *eventservice.Service,
	roster *rosterservice.Service,
	competition *competitionservice.Service,
	points *pointsservice.Service,
	tokens jwt.Service,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		events:      events,
		roster:      roster,
		competition: competition,
		points:      points,
		parser:      parsers.NewXLSXParser(),
		tokens:      tokens,
		tokenTTL:    tokenTTL,
		validate:    validator.New(),
		logger:      logger,
	}
}

// decode reads the JSON body into dst and validates it. On failure it writes
// the error response and returns false.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Errorf("failed to decode request body: %w", err))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, err error) {
	h.respondJSON(w, status, structs.ErrorResponse{Error: err.Error()})
}

// respondServiceError maps service and repository error kinds to HTTP status
// codes: not-found to 404, uniqueness and capacity conflicts to 409,
// validation failures to 400.
func (h *Handlers) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eventdb.ErrNotFound),
		errors.Is(err, rosterdb.ErrNotFound),
		errors.Is(err, competitiondb.ErrNotFound),
		errors.Is(err, pointsdb.ErrNotFound):
		h.respondError(w, http.StatusNotFound, err)
	case errors.Is(err, rosterdb.ErrDuplicateTeamName),
		errors.Is(err, rosterdb.ErrDuplicateStudentID),
		errors.Is(err, competitiondb.ErrDuplicateAssignment),
		errors.Is(err, competitiondb.ErrDuplicateResult):
		h.respondError(w, http.StatusConflict, err)
	case isCapacityError(err):
		h.respondError(w, http.StatusConflict, err)
	case isValidationError(err):
		h.respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, rosterservice.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, err)
	default:
		h.respondError(w, http.StatusInternalServerError, err)
	}
}

func isCapacityError(err error) bool {
	var capacity *competitionservice.CapacityExceededError
	return errors.As(err, &capacity)
}

func isValidationError(err error) bool {
	var (
		transition  *eventservice.InvalidTransitionError
		program     *eventservice.InvalidProgramError
		student     *rosterservice.InvalidStudentError
		category    *competitionservice.CategoryMismatchError
		teamSize    *competitionservice.TeamSizeMismatchError
		affiliation *competitionservice.UnaffiliatedStudentError
	)
	switch {
	case errors.As(err, &transition),
		errors.As(err, &program),
		errors.As(err, &student),
		errors.As(err, &category),
		errors.As(err, &teamSize),
		errors.As(err, &affiliation),
		errors.Is(err, pointsservice.ErrNoRecipient),
		errors.Is(err, pointsservice.ErrInvalidPointType):
		return true
	}
	return false
}

// idParam parses an int64 chi URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
