package handler

import (
	"net/http"

	"github.com/bugboard/bugboard/internal/database"
	"github.com/bugboard/bugboard/internal/database/service"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// BugHandler handles bug-related REST endpoints.
type BugHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewBugHandler creates a new bug handler.
func NewBugHandler(db database.Client, logger *zap.Logger) *BugHandler {
	return &BugHandler{
		db:     db,
		logger: logger,
	}
}

// ReportBug creates a new bug in the received state.
func (h *BugHandler) ReportBug(w http.ResponseWriter, req bunrouter.Request) error {
	var in struct {
		AuthorID    int64   `json:"authorId"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
		TagIDs      []int64 `json:"tagIds"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if in.Title == "" {
		return badRequest(w, "title is required")
	}

	bug, err := h.db.Service().Bug().Create(req.Context(), in.AuthorID, in.Title, in.Description, in.Image, in.TagIDs)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return created(w, bug)
}

// GetBug returns a single bug with its author and tags.
func (h *BugHandler) GetBug(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid bug ID")
	}

	bug, err := h.db.Service().Bug().Get(req.Context(), id)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, bug)
}

// ListBugs returns all bugs, newest first.
func (h *BugHandler) ListBugs(w http.ResponseWriter, req bunrouter.Request) error {
	bugs, err := h.db.Service().Bug().List(req.Context())
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, bugs)
}

// CountBugs returns the total number of bugs.
func (h *BugHandler) CountBugs(w http.ResponseWriter, req bunrouter.Request) error {
	count, err := h.db.Service().Bug().Count(req.Context())
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, bunrouter.H{"count": count})
}

// UpdateBug edits a bug as the given actor. Only supplied fields
// change; the status string goes through the usual transition guards.
func (h *BugHandler) UpdateBug(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid bug ID")
	}

	var in struct {
		ActorID     int64   `json:"actorId"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Image       *string `json:"image"`
		Status      *string `json:"status"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	params := service.UpdateBugParams{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
	}

	if in.Status != nil {
		status, err := enum.ParseBugStatus(*in.Status)
		if err != nil {
			return writeError(w, h.logger, err)
		}

		params.Status = &status
	}

	bug, err := h.db.Service().Bug().Update(req.Context(), id, in.ActorID, params)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, bug)
}

// AcceptComment marks a comment as the accepted answer and solves the
// bug. Only the bug author may do this.
func (h *BugHandler) AcceptComment(w http.ResponseWriter, req bunrouter.Request) error {
	bugID, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid bug ID")
	}

	commentID, err := pathID(req, "commentID")
	if err != nil {
		return badRequest(w, "invalid comment ID")
	}

	var in struct {
		ActorID int64 `json:"actorId"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	bug, err := h.db.Service().Bug().AcceptComment(req.Context(), bugID, commentID, in.ActorID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, bug)
}

// DeleteBug removes a bug and cascades through its comments, votes and
// tag links.
func (h *BugHandler) DeleteBug(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid bug ID")
	}

	var in struct {
		ActorID int64 `json:"actorId"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if err := h.db.Service().Bug().Delete(req.Context(), id, in.ActorID); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
