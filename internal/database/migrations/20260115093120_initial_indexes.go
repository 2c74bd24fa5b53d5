package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- One live vote per voter per target
			CREATE UNIQUE INDEX IF NOT EXISTS idx_votes_voter_target
			ON votes (voter_id, target_kind, target_id);

			CREATE INDEX IF NOT EXISTS idx_votes_target
			ON votes (target_kind, target_id);

			-- Bug listing indexes
			CREATE INDEX IF NOT EXISTS idx_bugs_author
			ON bugs (author_id, created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_bugs_status
			ON bugs (status, created_at DESC);

			-- Comment listing indexes
			CREATE INDEX IF NOT EXISTS idx_comments_bug
			ON comments (bug_id, created_at ASC);

			CREATE INDEX IF NOT EXISTS idx_comments_author
			ON comments (author_id);

			-- Audit log indexes
			CREATE INDEX IF NOT EXISTS idx_moderation_actions_time
			ON moderation_actions (created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_moderation_actions_moderator
			ON moderation_actions (moderator_id, created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_bug_tags_tag
			ON bug_tags (tag_id);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_votes_voter_target;
			DROP INDEX IF EXISTS idx_votes_target;
			DROP INDEX IF EXISTS idx_bugs_author;
			DROP INDEX IF EXISTS idx_bugs_status;
			DROP INDEX IF EXISTS idx_comments_bug;
			DROP INDEX IF EXISTS idx_comments_author;
			DROP INDEX IF EXISTS idx_moderation_actions_time;
			DROP INDEX IF EXISTS idx_moderation_actions_moderator;
			DROP INDEX IF EXISTS idx_bug_tags_tag;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes: %w", err)
		}

		return nil
	})
}
