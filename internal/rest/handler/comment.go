package handler

import (
	"net/http"

	"github.com/bugboard/bugboard/internal/database"
	"github.com/bugboard/bugboard/internal/database/service"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// CommentHandler handles comment-related REST endpoints.
type CommentHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(db database.Client, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		db:     db,
		logger: logger,
	}
}

// AddComment posts a comment on a bug.
func (h *CommentHandler) AddComment(w http.ResponseWriter, req bunrouter.Request) error {
	bugID, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid bug ID")
	}

	var in struct {
		AuthorID int64  `json:"authorId"`
		Text     string `json:"text"`
		Image    string `json:"image"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if in.Text == "" {
		return badRequest(w, "text is required")
	}

	comment, err := h.db.Service().Comment().Add(req.Context(), bugID, in.AuthorID, in.Text, in.Image)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return created(w, comment)
}

// ListComments returns a bug's comments with derived vote counts.
func (h *CommentHandler) ListComments(w http.ResponseWriter, req bunrouter.Request) error {
	bugID, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid bug ID")
	}

	comments, err := h.db.Service().Comment().ListByBug(req.Context(), bugID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, comments)
}

// UpdateComment edits a comment as the given actor.
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid comment ID")
	}

	var in struct {
		ActorID int64   `json:"actorId"`
		Text    *string `json:"text"`
		Image   *string `json:"image"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	comment, err := h.db.Service().Comment().Update(req.Context(), id, in.ActorID, service.UpdateCommentParams{
		Text:  in.Text,
		Image: in.Image,
	})
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, comment)
}

// DeleteComment removes a comment, reversing its vote effects.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid comment ID")
	}

	var in struct {
		ActorID int64 `json:"actorId"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if err := h.db.Service().Comment().Delete(req.Context(), id, in.ActorID); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
