package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserModel handles database operations for users. Methods take a
// bun.IDB so they run against either the pool or an open transaction.
type UserModel struct {
	logger *zap.Logger
}

// NewUser creates a new user model.
func NewUser(logger *zap.Logger) *UserModel {
	return &UserModel{
		logger: logger.Named("db_user"),
	}
}

// Get retrieves a user by ID.
func (m *UserModel) Get(ctx context.Context, db bun.IDB, id int64) (*types.User, error) {
	var user types.User

	err := db.NewSelect().
		Model(&user).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByUsername retrieves a user by username.
func (m *UserModel) GetByUsername(ctx context.Context, db bun.IDB, username string) (*types.User, error) {
	var user types.User

	err := db.NewSelect().
		Model(&user).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// List retrieves all users ordered by ID.
func (m *UserModel) List(ctx context.Context, db bun.IDB) ([]*types.User, error) {
	var users []*types.User

	err := db.NewSelect().
		Model(&users).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Create inserts a new user and fills in its generated ID.
func (m *UserModel) Create(ctx context.Context, db bun.IDB, user *types.User) error {
	user.CreatedAt = time.Now()

	_, err := db.NewInsert().
		Model(user).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update persists changes to an existing user row.
func (m *UserModel) Update(ctx context.Context, db bun.IDB, user *types.User) error {
	res, err := db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if affected == 0 {
		return types.ErrUserNotFound
	}

	return nil
}

// Delete removes a user row. Returns true if a row was deleted.
func (m *UserModel) Delete(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	res, err := db.NewDelete().
		Model((*types.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return affected > 0, nil
}

// AdjustScore applies a relative score delta in a single statement so
// concurrent adjustments to the same row serialize on the row lock
// instead of racing through read-modify-write.
func (m *UserModel) AdjustScore(ctx context.Context, db bun.IDB, userID int64, delta float64) error {
	if delta == 0 {
		return nil
	}

	_, err := db.NewUpdate().
		Model((*types.User)(nil)).
		Set("score = COALESCE(score, 0) + ?", delta).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to adjust user score: %w", err)
	}

	m.logger.Debug("Adjusted user score",
		zap.Int64("userID", userID),
		zap.Float64("delta", delta))

	return nil
}

// SetBanned flips the banned flag. Returns true if the stored value
// actually changed, so callers can treat redundant calls as no-ops.
func (m *UserModel) SetBanned(ctx context.Context, db bun.IDB, userID int64, banned bool) (bool, error) {
	res, err := db.NewUpdate().
		Model((*types.User)(nil)).
		Set("banned = ?", banned).
		Where("id = ?", userID).
		Where("banned = ?", !banned).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to set banned flag: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to set banned flag: %w", err)
	}

	return affected > 0, nil
}
