package service_test

import (
	"testing"

	"github.com/bugboard/bugboard/internal/database"
	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/bugboard/bugboard/internal/notifier"
	"github.com/bugboard/bugboard/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBanUserRecordsAuditAndNotifies(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	moderator := env.createUser(t, "moderator", enum.RoleModerator)
	target := env.createUser(t, "target", enum.RoleUser)

	err := env.svc.Moderation().BanUser(ctx, moderator.ID, target.ID, "spam")
	require.NoError(t, err)

	banned, err := env.svc.User().Get(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, banned.Banned)

	actions, err := env.svc.Moderation().Actions(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, enum.ActionTypeBanUser, actions[0].ActionType)
	assert.Equal(t, moderator.ID, actions[0].ModeratorID)
	require.NotNil(t, actions[0].TargetUserID)
	assert.Equal(t, target.ID, *actions[0].TargetUserID)
	assert.Equal(t, "spam", actions[0].Details)

	assert.Equal(t, 1, env.notifier.banCount())
}

func TestBanUserAlreadyBannedNotRenotified(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	moderator := env.createUser(t, "moderator", enum.RoleModerator)
	target := env.createUser(t, "target", enum.RoleUser)

	require.NoError(t, env.svc.Moderation().BanUser(ctx, moderator.ID, target.ID, "spam"))
	require.NoError(t, env.svc.Moderation().BanUser(ctx, moderator.ID, target.ID, "still spam"))

	// The second ban is a state no-op: audited, not re-notified
	actions, err := env.svc.Moderation().Actions(ctx)
	require.NoError(t, err)
	assert.Len(t, actions, 2)
	assert.Equal(t, 1, env.notifier.banCount())
}

func TestBanUserRequiresModerator(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	user := env.createUser(t, "user", enum.RoleUser)
	target := env.createUser(t, "target", enum.RoleUser)

	err := env.svc.Moderation().BanUser(ctx, user.ID, target.ID, "grudge")
	require.ErrorIs(t, err, types.ErrNotModerator)

	actions, err := env.svc.Moderation().Actions(ctx)
	require.NoError(t, err)
	assert.Empty(t, actions)
	assert.Zero(t, env.notifier.banCount())
}

func TestBannedModeratorCannotModerate(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	moderator := env.createUser(t, "moderator", enum.RoleModerator)
	target := env.createUser(t, "target", enum.RoleUser)

	_, err := env.repo.User().SetBanned(ctx, env.db, moderator.ID, true)
	require.NoError(t, err)

	err = env.svc.Moderation().BanUser(ctx, moderator.ID, target.ID, "spam")
	require.ErrorIs(t, err, types.ErrActorBanned)
}

func TestUnbanUser(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	moderator := env.createUser(t, "moderator", enum.RoleModerator)
	target := env.createUser(t, "target", enum.RoleUser)

	require.NoError(t, env.svc.Moderation().BanUser(ctx, moderator.ID, target.ID, "spam"))
	require.NoError(t, env.svc.Moderation().UnbanUser(ctx, moderator.ID, target.ID))

	unbanned, err := env.svc.User().Get(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, unbanned.Banned)

	actions, err := env.svc.Moderation().Actions(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	// Newest first
	assert.Equal(t, enum.ActionTypeUnbanUser, actions[0].ActionType)

	assert.Equal(t, 1, env.notifier.unbanCount())

	// Unbanning a user who is not banned changes nothing to notify
	require.NoError(t, env.svc.Moderation().UnbanUser(ctx, moderator.ID, target.ID))
	assert.Equal(t, 1, env.notifier.unbanCount())
}

func TestRemoveBugAsModerator(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	moderator := env.createUser(t, "moderator", enum.RoleModerator)
	author := env.createUser(t, "author", enum.RoleUser)
	voter := env.createUser(t, "voter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "offensive title", "", "", nil)
	require.NoError(t, err)

	_, err = env.svc.Vote().CastVote(ctx, voter.ID, enum.VoteTargetBug, bug.ID, enum.VoteTypeUp)
	require.NoError(t, err)

	require.NoError(t, env.svc.Moderation().RemoveBug(ctx, moderator.ID, bug.ID))

	// Removal runs the same cascade as an author delete
	_, err = env.svc.Bug().Get(ctx, bug.ID)
	require.ErrorIs(t, err, types.ErrBugNotFound)
	assert.InDelta(t, 0, env.score(t, author.ID), 0.0001)

	actions, err := env.svc.Moderation().Actions(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, enum.ActionTypeRemoveBug, actions[0].ActionType)
	require.NotNil(t, actions[0].TargetBugID)
	assert.Equal(t, bug.ID, *actions[0].TargetBugID)
}

func TestEditBugAsModerator(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	moderator := env.createUser(t, "moderator", enum.RoleModerator)
	author := env.createUser(t, "author", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "bad title", "bad text", "", nil)
	require.NoError(t, err)

	require.NoError(t, env.svc.Moderation().EditBug(ctx, moderator.ID, bug.ID, "clean title", "clean text"))

	reloaded, err := env.svc.Bug().Get(ctx, bug.ID)
	require.NoError(t, err)
	assert.Equal(t, "clean title", reloaded.Title)
	assert.Equal(t, "clean text", reloaded.Description)

	actions, err := env.svc.Moderation().Actions(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, enum.ActionTypeEditBug, actions[0].ActionType)
}

func TestRemoveAndEditCommentAsModerator(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	moderator := env.createUser(t, "moderator", enum.RoleModerator)
	author := env.createUser(t, "author", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "title", "", "", nil)
	require.NoError(t, err)

	kept, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "rude but salvageable", "")
	require.NoError(t, err)

	removed, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "beyond saving", "")
	require.NoError(t, err)

	require.NoError(t, env.svc.Moderation().EditComment(ctx, moderator.ID, kept.ID, "cleaned up"))
	require.NoError(t, env.svc.Moderation().RemoveComment(ctx, moderator.ID, removed.ID))

	edited, err := env.svc.Comment().Get(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "cleaned up", edited.Text)

	_, err = env.svc.Comment().Get(ctx, removed.ID)
	require.ErrorIs(t, err, types.ErrCommentNotFound)

	actions, err := env.svc.Moderation().Actions(ctx)
	require.NoError(t, err)
	assert.Len(t, actions, 2)
}

func TestModerationMutationFailureLeavesNoAudit(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	moderator := env.createUser(t, "moderator", enum.RoleModerator)

	err := env.svc.Moderation().RemoveBug(ctx, moderator.ID, 12345)
	require.ErrorIs(t, err, types.ErrBugNotFound)

	err = env.svc.Moderation().EditComment(ctx, moderator.ID, 12345, "nothing to edit")
	require.ErrorIs(t, err, types.ErrCommentNotFound)

	// The audit append shares the mutation's transaction, so a failed
	// mutation leaves no trace.
	actions, err := env.svc.Moderation().Actions(ctx)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestBanAuditRecordedWhenNotificationFails(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	// An email channel pointed at a closed port: every delivery
	// attempt fails and is swallowed by the dispatcher.
	cfg := &config.Config{Email: config.Email{
		Enabled: true,
		Host:    "127.0.0.1",
		Port:    1,
		From:    "noreply@example.com",
	}}

	dispatcher, err := notifier.NewDispatcher(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(dispatcher.Close)

	svc := database.NewService(env.db, env.repo, dispatcher, zap.NewNop())

	moderator := env.createUser(t, "moderator", enum.RoleModerator)
	target := env.createUser(t, "target", enum.RoleUser)

	require.NoError(t, svc.Moderation().BanUser(ctx, moderator.ID, target.ID, "spam"))

	banned, err := svc.User().Get(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, banned.Banned)

	actions, err := svc.Moderation().Actions(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, enum.ActionTypeBanUser, actions[0].ActionType)
}
