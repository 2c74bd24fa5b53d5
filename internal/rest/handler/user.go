package handler

import (
	"net/http"

	"github.com/bugboard/bugboard/internal/database"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// UserHandler handles user-related REST endpoints.
type UserHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(db database.Client, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		db:     db,
		logger: logger,
	}
}

// RegisterUser creates a new account. The role defaults to user when
// absent.
func (h *UserHandler) RegisterUser(w http.ResponseWriter, req bunrouter.Request) error {
	var in struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	if in.Username == "" || in.Email == "" || in.Password == "" {
		return badRequest(w, "username, email and password are required")
	}

	role := enum.RoleUser

	if in.Role != "" {
		parsed, err := enum.ParseRole(in.Role)
		if err != nil {
			return writeError(w, h.logger, err)
		}

		role = parsed
	}

	user, err := h.db.Service().User().Create(req.Context(), in.Username, in.Email, in.Phone, in.Password, role)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return created(w, user)
}

// Login verifies a username/password pair and returns the account.
func (h *UserHandler) Login(w http.ResponseWriter, req bunrouter.Request) error {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	user, err := h.db.Service().User().GetByUsername(req.Context(), in.Username)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	if !h.db.Service().User().CheckPassword(user, in.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return nil
	}

	return bunrouter.JSON(w, user)
}

// GetUser returns a single user by ID.
func (h *UserHandler) GetUser(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid user ID")
	}

	user, err := h.db.Service().User().Get(req.Context(), id)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, user)
}

// ListUsers returns all users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, req bunrouter.Request) error {
	users, err := h.db.Service().User().List(req.Context())
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, users)
}

// ListUserBugs returns the bugs reported by a user.
func (h *UserHandler) ListUserBugs(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid user ID")
	}

	bugs, err := h.db.Service().Bug().ListByAuthor(req.Context(), id)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, bugs)
}
