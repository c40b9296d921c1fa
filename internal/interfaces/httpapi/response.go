package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
	"github.com/riskibarqy/group-stage/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "group-stage"

	internalErrorMessage    = "internal server error"
	unavailableErrorMessage = "service temporarily unavailable"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorClasses is checked in order; the first usecase class wrapped by an
// error decides its status.
var errorClasses = []struct {
	class  error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}},
	{usecase.ErrConflict, mappedError{HTTPStatus: http.StatusConflict, Reason: "alreadyExists", Status: "ALREADY_EXISTS"}},
	{usecase.ErrDependencyUnavailable, mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}},
}

// refusalReasons gives clients a stable reason per rejected tournament rule.
var refusalReasons = []struct {
	err    error
	reason string
}{
	{tournament.ErrTeamExists, "teamExists"},
	{tournament.ErrDuplicateMatch, "duplicateMatch"},
	{tournament.ErrTeamNotFound, "teamNotFound"},
	{tournament.ErrMatchNotFound, "matchNotFound"},
	{tournament.ErrCrossGroupMatch, "crossGroupMatch"},
	{tournament.ErrSelfMatch, "selfMatch"},
	{tournament.ErrNegativeGoals, "negativeGoals"},
	{team.ErrInvalidRegistrationDate, "invalidRegistrationDate"},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError answers with the mapped class. Messages of 5xx errors are
// replaced so driver and network details stay in the logs.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	switch mapped.HTTPStatus {
	case http.StatusInternalServerError:
		writeInternalError(ctx, w)
	case http.StatusServiceUnavailable:
		writeErrorBody(ctx, w, mapped, unavailableErrorMessage)
	default:
		writeErrorBody(ctx, w, mapped, err.Error())
	}
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorBody(ctx, w, internalError, internalErrorMessage)
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, mapped mappedError, message string) {
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
		},
	})
}

// mapError picks the class status for err and, when a tournament rule was
// refused, the rule's reason in place of the class reason.
func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	mapped := internalError
	for _, c := range errorClasses {
		if errors.Is(err, c.class) {
			mapped = c.mapped
			break
		}
	}
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		return mapped
	}
	for _, r := range refusalReasons {
		if errors.Is(err, r.err) {
			mapped.Reason = r.reason
			break
		}
	}
	return mapped
}
