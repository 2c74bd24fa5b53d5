package service

import (
	"context"
	"fmt"

	"github.com/bugboard/bugboard/internal/database/dbretry"
	"github.com/bugboard/bugboard/internal/database/models"
	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles account management. Scores are never touched
// here; they belong to the vote engine and the cascade reversal.
type UserService struct {
	db     *bun.DB
	users  *models.UserModel
	logger *zap.Logger
}

// NewUser creates a new user service.
func NewUser(db *bun.DB, users *models.UserModel, logger *zap.Logger) *UserService {
	return &UserService{
		db:     db,
		users:  users,
		logger: logger.Named("user_service"),
	}
}

// Create registers a new user with a hashed password and a zero score.
func (s *UserService) Create(
	ctx context.Context, username, email, phone, password string, role enum.Role,
) (*types.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	zero := 0.0
	user := &types.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
		Score:        &zero,
	}

	if err := s.users.Create(ctx, s.db, user); err != nil {
		return nil, err
	}

	s.logger.Debug("User created",
		zap.Int64("userID", user.ID),
		zap.String("username", username))

	return user, nil
}

// Get retrieves one user.
func (s *UserService) Get(ctx context.Context, id int64) (*types.User, error) {
	return s.users.Get(ctx, s.db, id)
}

// GetByUsername retrieves a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*types.User, error) {
	return s.users.GetByUsername(ctx, s.db, username)
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]*types.User, error) {
	return s.users.List(ctx, s.db)
}

// UpdateUserParams carries the optional fields of a profile update.
type UpdateUserParams struct {
	Username *string
	Email    *string
	Phone    *string
	Password *string
	Role     *enum.Role
}

// Update edits a user's profile fields.
func (s *UserService) Update(ctx context.Context, id int64, params UpdateUserParams) (*types.User, error) {
	var user *types.User

	err := dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error

		user, err = s.users.Get(ctx, tx, id)
		if err != nil {
			return err
		}

		if params.Username != nil {
			user.Username = *params.Username
		}

		if params.Email != nil {
			user.Email = *params.Email
		}

		if params.Phone != nil {
			user.Phone = *params.Phone
		}

		if params.Role != nil {
			user.Role = *params.Role
		}

		if params.Password != nil && *params.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			user.PasswordHash = string(hash)
		}

		return s.users.Update(ctx, tx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user account. Returns false if no such user exists.
func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.users.Delete(ctx, s.db, id)
}

// CheckPassword verifies a candidate password against the stored hash.
func (s *UserService) CheckPassword(user *types.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
