package service

import (
	"context"

	"github.com/bugboard/bugboard/internal/database/models"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// advanceOnFirstComment moves a bug from received to in_progress once
// it has at least one comment. Both the comment-creation and the
// vote-casting paths call this; the count check plus the guarded
// status update make it idempotent under concurrent callers.
func advanceOnFirstComment(
	ctx context.Context, db bun.IDB, comments *models.CommentModel, bugs *models.BugModel, bugID int64,
) error {
	count, err := comments.CountByBug(ctx, db, bugID)
	if err != nil {
		return err
	}

	if count == 0 {
		return nil
	}

	_, err = bugs.AdvanceStatus(ctx, db, bugID, enum.BugStatusReceived, enum.BugStatusInProgress)

	return err
}
