package handler

import (
	"net/http"

	"github.com/bugboard/bugboard/internal/database"
	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// TagHandler handles tag-related REST endpoints. Tags have no business
// rules, so the handler talks to the model layer directly.
type TagHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(db database.Client, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		db:     db,
		logger: logger,
	}
}

// ListTags returns all tags.
func (h *TagHandler) ListTags(w http.ResponseWriter, req bunrouter.Request) error {
	tags, err := h.db.Model().Tag().List(req.Context(), h.db.DB())
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, tags)
}

// GetTag returns a single tag.
func (h *TagHandler) GetTag(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid tag ID")
	}

	tag, err := h.db.Model().Tag().Get(req.Context(), h.db.DB(), id)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, tag)
}

// CreateTag adds a new tag.
func (h *TagHandler) CreateTag(w http.ResponseWriter, req bunrouter.Request) error {
	var in struct {
		Name string `json:"name"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if in.Name == "" {
		return badRequest(w, "name is required")
	}

	tag := &types.Tag{Name: in.Name}
	if err := h.db.Model().Tag().Create(req.Context(), h.db.DB(), tag); err != nil {
		return writeError(w, h.logger, err)
	}

	return created(w, tag)
}
