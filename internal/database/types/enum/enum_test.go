package enum_test

import (
	"testing"

	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]enum.Role{
		"user":      enum.RoleUser,
		"User":      enum.RoleUser,
		"moderator": enum.RoleModerator,
		"MODERATOR": enum.RoleModerator,
		"mod":       enum.RoleModerator,
		" user ":    enum.RoleUser,
	} {
		got, err := enum.ParseRole(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := enum.ParseRole("admin")
	assert.ErrorIs(t, err, enum.ErrUnknownRole)
}

func TestParseBugStatus(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]enum.BugStatus{
		"received":    enum.BugStatusReceived,
		"in_progress": enum.BugStatusInProgress,
		"In progress": enum.BugStatusInProgress,
		"solved":      enum.BugStatusSolved,
		"Solved":      enum.BugStatusSolved,
	} {
		got, err := enum.ParseBugStatus(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := enum.ParseBugStatus("closed")
	assert.ErrorIs(t, err, enum.ErrUnknownBugStatus)
}

func TestBugStatusDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Received", enum.BugStatusReceived.Display())
	assert.Equal(t, "In progress", enum.BugStatusInProgress.Display())
	assert.Equal(t, "Solved", enum.BugStatusSolved.Display())
}

func TestParseVoteType(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]enum.VoteType{
		"up":       enum.VoteTypeUp,
		"upvote":   enum.VoteTypeUp,
		"like":     enum.VoteTypeUp,
		"LIKE":     enum.VoteTypeUp,
		"down":     enum.VoteTypeDown,
		"downvote": enum.VoteTypeDown,
		"dislike":  enum.VoteTypeDown,
	} {
		got, err := enum.ParseVoteType(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := enum.ParseVoteType("sideways")
	assert.ErrorIs(t, err, enum.ErrUnknownVoteType)
}

func TestParseVoteTarget(t *testing.T) {
	t.Parallel()

	got, err := enum.ParseVoteTarget("bug")
	require.NoError(t, err)
	assert.Equal(t, enum.VoteTargetBug, got)

	got, err = enum.ParseVoteTarget("Comment")
	require.NoError(t, err)
	assert.Equal(t, enum.VoteTargetComment, got)

	_, err = enum.ParseVoteTarget("tag")
	assert.ErrorIs(t, err, enum.ErrUnknownVoteTarget)
}

func TestParseActionType(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]enum.ActionType{
		"ban_user":       enum.ActionTypeBanUser,
		"unban_user":     enum.ActionTypeUnbanUser,
		"remove_bug":     enum.ActionTypeRemoveBug,
		"edit_bug":       enum.ActionTypeEditBug,
		"remove_comment": enum.ActionTypeRemoveComment,
		"edit_comment":   enum.ActionTypeEditComment,
	} {
		got, err := enum.ParseActionType(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := enum.ParseActionType("shadowban")
	assert.ErrorIs(t, err, enum.ErrUnknownActionType)
}
