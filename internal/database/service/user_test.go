package service_test

import (
	"testing"

	"github.com/bugboard/bugboard/internal/database/service"
	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	user, err := env.svc.User().Create(ctx, "alice", "alice@example.com", "+15550100", "hunter2", enum.RoleUser)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, enum.RoleUser, user.Role)
	assert.False(t, user.Banned)
	require.NotNil(t, user.Score)
	assert.InDelta(t, 0, *user.Score, 0.0001)
	assert.NotEqual(t, "hunter2", user.PasswordHash)
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	user, err := env.svc.User().Create(ctx, "alice", "", "", "correct horse", enum.RoleUser)
	require.NoError(t, err)

	assert.True(t, env.svc.User().CheckPassword(user, "correct horse"))
	assert.False(t, env.svc.User().CheckPassword(user, "battery staple"))
}

func TestGetUserByUsername(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	created := env.createUser(t, "alice", enum.RoleUser)

	found, err := env.svc.User().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = env.svc.User().GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, types.ErrUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	user := env.createUser(t, "alice", enum.RoleUser)

	email := "new@example.com"
	role := enum.RoleModerator
	password := "new secret"

	updated, err := env.svc.User().Update(ctx, user.ID, service.UpdateUserParams{
		Email:    &email,
		Role:     &role,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, enum.RoleModerator, updated.Role)
	assert.True(t, env.svc.User().CheckPassword(updated, "new secret"))
	assert.False(t, env.svc.User().CheckPassword(updated, "hunter2"))
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	user := env.createUser(t, "alice", enum.RoleUser)

	deleted, err := env.svc.User().Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = env.svc.User().Get(ctx, user.ID)
	require.ErrorIs(t, err, types.ErrUserNotFound)

	deleted, err = env.svc.User().Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
