package service_test

import (
	"testing"

	"github.com/bugboard/bugboard/internal/database/service"
	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBugWithTags(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)

	ui := &types.Tag{Name: "ui"}
	require.NoError(t, env.repo.Tag().Create(ctx, env.db, ui))

	crash := &types.Tag{Name: "crash"}
	require.NoError(t, env.repo.Tag().Create(ctx, env.db, crash))

	bug, err := env.svc.Bug().Create(ctx, author.ID, "panel misaligned", "details", "", []int64{ui.ID, crash.ID})
	require.NoError(t, err)
	assert.Equal(t, enum.BugStatusReceived, bug.Status)

	reloaded, err := env.svc.Bug().Get(ctx, bug.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Tags, 2)

	names := []string{reloaded.Tags[0].Name, reloaded.Tags[1].Name}
	assert.ElementsMatch(t, []string{"ui", "crash"}, names)

	require.NotNil(t, reloaded.Author)
	assert.Equal(t, author.ID, reloaded.Author.ID)
}

func TestCreateBugUnknownTagRejected(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)

	_, err := env.svc.Bug().Create(ctx, author.ID, "panel misaligned", "", "", []int64{4242})
	require.ErrorIs(t, err, types.ErrTagNotFound)

	count, err := env.svc.Bug().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUpdateBugAuthorization(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	stranger := env.createUser(t, "stranger", enum.RoleUser)
	moderator := env.createUser(t, "moderator", enum.RoleModerator)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "old title", "", "", nil)
	require.NoError(t, err)

	title := "new title"

	_, err = env.svc.Bug().Update(ctx, bug.ID, stranger.ID, service.UpdateBugParams{Title: &title})
	require.ErrorIs(t, err, types.ErrNotAuthorized)

	updated, err := env.svc.Bug().Update(ctx, bug.ID, author.ID, service.UpdateBugParams{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)

	modTitle := "moderated title"

	updated, err = env.svc.Bug().Update(ctx, bug.ID, moderator.ID, service.UpdateBugParams{Title: &modTitle})
	require.NoError(t, err)
	assert.Equal(t, "moderated title", updated.Title)
}

func TestUpdateBugBannedActorRejected(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "title", "", "", nil)
	require.NoError(t, err)

	_, err = env.repo.User().SetBanned(ctx, env.db, author.ID, true)
	require.NoError(t, err)

	title := "new title"

	_, err = env.svc.Bug().Update(ctx, bug.ID, author.ID, service.UpdateBugParams{Title: &title})
	require.ErrorIs(t, err, types.ErrActorBanned)
}

func TestSolveWithoutCommentsRejected(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "title", "", "", nil)
	require.NoError(t, err)

	solved := enum.BugStatusSolved

	_, err = env.svc.Bug().Update(ctx, bug.ID, author.ID, service.UpdateBugParams{Status: &solved})
	require.ErrorIs(t, err, types.ErrCannotSolveWithoutComments)

	// With a comment in place the direct transition is allowed
	_, err = env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "fixed in trunk", "")
	require.NoError(t, err)

	updated, err := env.svc.Bug().Update(ctx, bug.ID, author.ID, service.UpdateBugParams{Status: &solved})
	require.NoError(t, err)
	assert.Equal(t, enum.BugStatusSolved, updated.Status)
}

func TestAcceptComment(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "title", "", "", nil)
	require.NoError(t, err)

	first, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "answer one", "")
	require.NoError(t, err)

	second, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "answer two", "")
	require.NoError(t, err)

	// Only the bug author may accept
	_, err = env.svc.Bug().AcceptComment(ctx, bug.ID, first.ID, commenter.ID)
	require.ErrorIs(t, err, types.ErrNotBugAuthor)

	accepted, err := env.svc.Bug().AcceptComment(ctx, bug.ID, first.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.BugStatusSolved, accepted.Status)
	require.NotNil(t, accepted.AcceptedCommentID)
	assert.Equal(t, first.ID, *accepted.AcceptedCommentID)

	// Accepting another comment supersedes the previous acceptance
	accepted, err = env.svc.Bug().AcceptComment(ctx, bug.ID, second.ID, author.ID)
	require.NoError(t, err)
	require.NotNil(t, accepted.AcceptedCommentID)
	assert.Equal(t, second.ID, *accepted.AcceptedCommentID)

	firstReloaded, err := env.svc.Comment().Get(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, firstReloaded.Accepted)

	secondReloaded, err := env.svc.Comment().Get(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, secondReloaded.Accepted)
}

func TestAcceptCommentFromOtherBugRejected(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "first bug", "", "", nil)
	require.NoError(t, err)

	other, err := env.svc.Bug().Create(ctx, author.ID, "second bug", "", "", nil)
	require.NoError(t, err)

	comment, err := env.svc.Comment().Add(ctx, other.ID, commenter.ID, "wrong bug", "")
	require.NoError(t, err)

	_, err = env.svc.Bug().AcceptComment(ctx, bug.ID, comment.ID, author.ID)
	require.ErrorIs(t, err, types.ErrCommentNotOnBug)
}

func TestDeleteBugCascadeReversesScores(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	reporter := env.createUser(t, "reporter", enum.RoleUser)
	commenter := env.createUser(t, "commenter", enum.RoleUser)
	voter := env.createUser(t, "voter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, reporter.ID, "crash on save", "", "", nil)
	require.NoError(t, err)

	comment, err := env.svc.Comment().Add(ctx, bug.ID, commenter.ID, "repro attached", "")
	require.NoError(t, err)

	// Bug upvote (+2.5 reporter), comment downvote (-2.5 commenter,
	// -1.5 voter penalty)
	_, err = env.svc.Vote().CastVote(ctx, voter.ID, enum.VoteTargetBug, bug.ID, enum.VoteTypeUp)
	require.NoError(t, err)
	_, err = env.svc.Vote().DislikeComment(ctx, voter.ID, comment.ID)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, env.score(t, reporter.ID), 0.0001)
	assert.InDelta(t, -2.5, env.score(t, commenter.ID), 0.0001)
	assert.InDelta(t, -1.5, env.score(t, voter.ID), 0.0001)

	require.NoError(t, env.svc.Bug().Delete(ctx, bug.ID, reporter.ID))

	// Every score effect is reversed and every row is gone
	assert.InDelta(t, 0, env.score(t, reporter.ID), 0.0001)
	assert.InDelta(t, 0, env.score(t, commenter.ID), 0.0001)
	assert.InDelta(t, 0, env.score(t, voter.ID), 0.0001)

	_, err = env.svc.Bug().Get(ctx, bug.ID)
	require.ErrorIs(t, err, types.ErrBugNotFound)

	_, err = env.svc.Comment().Get(ctx, comment.ID)
	require.ErrorIs(t, err, types.ErrCommentNotFound)

	total, err := env.svc.Vote().VoteCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDeleteBugAuthorization(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	stranger := env.createUser(t, "stranger", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "title", "", "", nil)
	require.NoError(t, err)

	err = env.svc.Bug().Delete(ctx, bug.ID, stranger.ID)
	require.ErrorIs(t, err, types.ErrNotAuthorized)

	// The banned check fires before authorization
	_, err = env.repo.User().SetBanned(ctx, env.db, stranger.ID, true)
	require.NoError(t, err)

	err = env.svc.Bug().Delete(ctx, bug.ID, stranger.ID)
	require.ErrorIs(t, err, types.ErrActorBanned)
}

func TestScoreScenarioUpvoteThenSwitchThenDelete(t *testing.T) {
	t.Parallel()

	env := setupTest(t)
	ctx := t.Context()

	author := env.createUser(t, "author", enum.RoleUser)
	voter := env.createUser(t, "voter", enum.RoleUser)

	bug, err := env.svc.Bug().Create(ctx, author.ID, "crash on save", "", "", nil)
	require.NoError(t, err)

	// 0 -> 2.5 -> -1.5 -> 0
	assert.InDelta(t, 0, env.score(t, author.ID), 0.0001)

	_, err = env.svc.Vote().CastVote(ctx, voter.ID, enum.VoteTargetBug, bug.ID, enum.VoteTypeUp)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, env.score(t, author.ID), 0.0001)

	_, err = env.svc.Vote().CastVote(ctx, voter.ID, enum.VoteTargetBug, bug.ID, enum.VoteTypeDown)
	require.NoError(t, err)
	assert.InDelta(t, -1.5, env.score(t, author.ID), 0.0001)

	require.NoError(t, env.svc.Bug().Delete(ctx, bug.ID, author.ID))
	assert.InDelta(t, 0, env.score(t, author.ID), 0.0001)
}
