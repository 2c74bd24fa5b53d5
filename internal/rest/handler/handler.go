// Package handler contains the REST endpoint glue. Handlers decode
// requests, call into the service layer and translate sentinel errors
// to HTTP status codes; no business rules live here.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/bytedance/sonic"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// pathID parses a numeric path parameter.
func pathID(req bunrouter.Request, name string) (int64, error) {
	return strconv.ParseInt(req.Param(name), 10, 64)
}

// decode reads a JSON request body into v.
func decode(req bunrouter.Request, v any) error {
	return sonic.ConfigDefault.NewDecoder(req.Body).Decode(v)
}

// writeError maps service errors to HTTP status codes. Unrecognized
// errors are logged and reported as internal errors without detail.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, types.ErrUserNotFound),
		errors.Is(err, types.ErrBugNotFound),
		errors.Is(err, types.ErrCommentNotFound),
		errors.Is(err, types.ErrTagNotFound),
		errors.Is(err, types.ErrVoteNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, types.ErrSelfVote),
		errors.Is(err, types.ErrNotAuthorized),
		errors.Is(err, types.ErrActorBanned),
		errors.Is(err, types.ErrNotModerator),
		errors.Is(err, types.ErrNotBugAuthor):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, types.ErrBugAlreadySolved),
		errors.Is(err, types.ErrCannotSolveWithoutComments),
		errors.Is(err, types.ErrCommentNotOnBug):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, enum.ErrUnknownRole),
		errors.Is(err, enum.ErrUnknownBugStatus),
		errors.Is(err, enum.ErrUnknownVoteType),
		errors.Is(err, enum.ErrUnknownVoteTarget),
		errors.Is(err, enum.ErrUnknownActionType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Error("Request failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}

	return nil
}

// badRequest reports a malformed request body or parameter.
func badRequest(w http.ResponseWriter, msg string) error {
	http.Error(w, msg, http.StatusBadRequest)
	return nil
}

// created writes a JSON response with a 201 status.
func created(w http.ResponseWriter, value any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	return sonic.ConfigDefault.NewEncoder(w).Encode(value)
}
