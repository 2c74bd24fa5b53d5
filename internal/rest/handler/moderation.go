package handler

import (
	"net/http"

	"github.com/bugboard/bugboard/internal/database"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ModerationHandler handles moderation REST endpoints.
type ModerationHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewModerationHandler creates a new moderation handler.
func NewModerationHandler(db database.Client, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{
		db:     db,
		logger: logger,
	}
}

// BanUser bans a user and records the action.
func (h *ModerationHandler) BanUser(w http.ResponseWriter, req bunrouter.Request) error {
	var in struct {
		ModeratorID int64  `json:"moderatorId"`
		UserID      int64  `json:"userId"`
		Reason      string `json:"reason"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if err := h.db.Service().Moderation().BanUser(req.Context(), in.ModeratorID, in.UserID, in.Reason); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// UnbanUser lifts a user's ban and records the action.
func (h *ModerationHandler) UnbanUser(w http.ResponseWriter, req bunrouter.Request) error {
	var in struct {
		ModeratorID int64 `json:"moderatorId"`
		UserID      int64 `json:"userId"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if err := h.db.Service().Moderation().UnbanUser(req.Context(), in.ModeratorID, in.UserID); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// RemoveBug deletes a bug on a moderator's authority.
func (h *ModerationHandler) RemoveBug(w http.ResponseWriter, req bunrouter.Request) error {
	bugID, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid bug ID")
	}

	var in struct {
		ModeratorID int64 `json:"moderatorId"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if err := h.db.Service().Moderation().RemoveBug(req.Context(), in.ModeratorID, bugID); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// EditBug rewrites a bug's title and description on a moderator's
// authority.
func (h *ModerationHandler) EditBug(w http.ResponseWriter, req bunrouter.Request) error {
	bugID, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid bug ID")
	}

	var in struct {
		ModeratorID int64  `json:"moderatorId"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if err := h.db.Service().Moderation().EditBug(req.Context(), in.ModeratorID, bugID, in.Title, in.Description); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// RemoveComment deletes a comment on a moderator's authority.
func (h *ModerationHandler) RemoveComment(w http.ResponseWriter, req bunrouter.Request) error {
	commentID, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid comment ID")
	}

	var in struct {
		ModeratorID int64 `json:"moderatorId"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if err := h.db.Service().Moderation().RemoveComment(req.Context(), in.ModeratorID, commentID); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// EditComment rewrites a comment's text on a moderator's authority.
func (h *ModerationHandler) EditComment(w http.ResponseWriter, req bunrouter.Request) error {
	commentID, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid comment ID")
	}

	var in struct {
		ModeratorID int64  `json:"moderatorId"`
		Text        string `json:"text"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if err := h.db.Service().Moderation().EditComment(req.Context(), in.ModeratorID, commentID, in.Text); err != nil {
		return writeError(w, h.logger, err)
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// ListActions returns the moderation audit trail, newest first.
func (h *ModerationHandler) ListActions(w http.ResponseWriter, req bunrouter.Request) error {
	actions, err := h.db.Service().Moderation().Actions(req.Context())
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, actions)
}
