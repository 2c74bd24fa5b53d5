package service_test

import (
	"testing"

	"github.com/bugboard/bugboard/internal/database/service"
	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstCommentAdvancesLifecycle(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "crash on save", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, enum.BugStatusReceived, bug.Status)

	_, err = env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "first", "")
	require.NoError(t, err)

	reloaded, err := env.svc.Bug().Get(ctx, bug.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.BugStatusInProgress, reloaded.Status)

	// Further comments leave the status where it is
	_, err = env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "second", "")
	require.NoError(t, err)

	reloaded, err = env.svc.Bug().Get(ctx, bug.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.BugStatusInProgress, reloaded.Status)
}

func TestAddCommentOnSolvedBugRejected(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "crash on save", "", "", nil)
	require.NoError(t, err)

	comment, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "the answer", "")
	require.NoError(t, err)

	_, err = env.svc.Bug().AcceptComment(ctx, bug.ID, comment.ID, author.ID)
	require.NoError(t, err)

	_, err = env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "too late", "")
	require.ErrorIs(t, err, types.ErrBugAlreadySolved)
}

func TestListCommentsDerivesVoteCounts(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)
	alice := env.createUser(t, "alice", enum.RoleUser)
	bob := env.createUser(t, "bob", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "crash on save", "", "", nil)
	require.NoError(t, err)

	liked, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "helpful", "")
	require.NoError(t, err)

	disliked, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "unhelpful", "")
	require.NoError(t, err)

	_, err = env.svc.Vote().LikeComment(ctx, alice.ID, liked.ID)
	require.NoError(t, err)
	_, err = env.svc.Vote().LikeComment(ctx, bob.ID, liked.ID)
	require.NoError(t, err)
	_, err = env.svc.Vote().DislikeComment(ctx, alice.ID, disliked.ID)
	require.NoError(t, err)

	comments, err := env.svc.Comment().ListByBug(ctx, bug.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	counts := make(map[int64]int, len(comments))
	for _, comment := range comments {
		counts[comment.ID] = comment.VoteCount
	}

	assert.Equal(t, 2, counts[liked.ID])
	assert.Equal(t, -1, counts[disliked.ID])
}

func TestUpdateCommentAuthorization(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)
	moderator := env.createUser(t, "moderator", enum.RoleModerator)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "crash on save", "", "", nil)
	require.NoError(t, err)

	comment, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "original", "")
	require.NoError(t, err)

	text := "edited"

	_, err = env.svc.Comment().Update(ctx, comment.ID, author.ID, service.UpdateCommentParams{Text: &text})
	require.ErrorIs(t, err, types.ErrNotAuthorized)

	updated, err := env.svc.Comment().Update(ctx, comment.ID, moderator.ID, service.UpdateCommentParams{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
}

func TestDeleteCommentReversesVotes(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)
	voter := env.createUser(t, "voter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "crash on save", "", "", nil)
	require.NoError(t, err)

	comment, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "downvoted", "")
	require.NoError(t, err)

	_, err = env.svc.Vote().DislikeComment(ctx, voter.ID, comment.ID)
	require.NoError(t, err)

	assert.InDelta(t, -2.5, env.score(t, commenter.ID), 0.0001)
	assert.InDelta(t, -1.5, env.score(t, voter.ID), 0.0001)

	require.NoError(t, env.svc.Comment().Delete(ctx, comment.ID, commenter.ID))

	assert.InDelta(t, 0, env.score(t, commenter.ID), 0.0001)
	assert.InDelta(t, 0, env.score(t, voter.ID), 0.0001)

	_, err = env.svc.Comment().Get(ctx, comment.ID)
	require.ErrorIs(t, err, types.ErrCommentNotFound)
}

func TestDeleteAcceptedCommentClearsReference(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "crash on save", "", "", nil)
	require.NoError(t, err)

	comment, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "the answer", "")
	require.NoError(t, err)

	_, err = env.svc.Bug().AcceptComment(ctx, bug.ID, comment.ID, author.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.Comment().Delete(ctx, comment.ID, commenter.ID))

	// The reference is gone but the bug stays solved
	reloaded, err := env.svc.Bug().Get(ctx, bug.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.AcceptedCommentID)
	assert.Equal(t, enum.BugStatusSolved, reloaded.Status)
}
