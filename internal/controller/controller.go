// Package controller holds the request helpers shared by the admin and user handlers.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/quiz"
	"github.com/lshigami/quizdesk/internal/service"
	"github.com/rs/zerolog/log"
)

// StatusFor maps service and session errors to an HTTP status code.
func StatusFor(err error) int {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, quiz.ErrSessionNotFound),
		errors.Is(err, quiz.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, quiz.ErrNotInProgress),
		errors.Is(err, quiz.ErrGradingInFlight):
		return http.StatusConflict
	case errors.Is(err, quiz.ErrIndexOutOfRange),
		errors.Is(err, quiz.ErrWrongQuestionType),
		errors.Is(err, quiz.ErrEmptyAnswer):
		return http.StatusBadRequest
	case errors.Is(err, quiz.ErrGraderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a dto.ErrorResponse with the mapped status.
func RespondError(ctx *gin.Context, message string, err error) {
	status := StatusFor(err)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("path", ctx.FullPath()).Int("status", status).Msg(message)
	ctx.JSON(status, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
}

// BindError answers a request whose body or query failed to bind.
func BindError(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind request")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request", Details: []string{err.Error()}})
}

// UintParam reads a positive integer path parameter. On failure it writes a 400
// and returns false.
func UintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s", name), Details: []string{raw}})
		return 0, false
	}
	return uint(id), true
}

// IntParam reads a non-negative integer path parameter.
func IntParam(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Param(name)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s", name), Details: []string{raw}})
		return 0, false
	}
	return n, true
}

// UUIDParam reads a UUID path parameter.
func UUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	raw := ctx.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s", name), Details: []string{err.Error()}})
		return uuid.Nil, false
	}
	return id, true
}

// ParseIDList parses a comma separated list of ids such as "3,1,7".
func ParseIDList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("invalid question id %q", part)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// RespondErrorWithStatus is RespondError with an explicit status.
func RespondErrorWithStatus(ctx *gin.Context, status int, message string, err error) {
	log.Error().Err(err).Str("path", ctx.FullPath()).Int("status", status).Msg(message)
	ctx.JSON(status, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
}
