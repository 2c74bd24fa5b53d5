package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// Deletion cascades run in application transactions so score
		// reversal happens before rows go away. The constraints here
		// only reject orphaned inserts.
		_, err := db.NewRaw(`
			ALTER TABLE bugs
			ADD CONSTRAINT fk_bugs_author
			FOREIGN KEY (author_id) REFERENCES users (id);

			ALTER TABLE comments
			ADD CONSTRAINT fk_comments_bug
			FOREIGN KEY (bug_id) REFERENCES bugs (id);

			ALTER TABLE comments
			ADD CONSTRAINT fk_comments_author
			FOREIGN KEY (author_id) REFERENCES users (id);

			ALTER TABLE votes
			ADD CONSTRAINT fk_votes_voter
			FOREIGN KEY (voter_id) REFERENCES users (id);

			ALTER TABLE bug_tags
			ADD CONSTRAINT fk_bug_tags_bug
			FOREIGN KEY (bug_id) REFERENCES bugs (id);

			ALTER TABLE bug_tags
			ADD CONSTRAINT fk_bug_tags_tag
			FOREIGN KEY (tag_id) REFERENCES tags (id);

			ALTER TABLE moderation_actions
			ADD CONSTRAINT fk_moderation_actions_moderator
			FOREIGN KEY (moderator_id) REFERENCES users (id);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to add foreign keys: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			ALTER TABLE bugs DROP CONSTRAINT IF EXISTS fk_bugs_author;
			ALTER TABLE comments DROP CONSTRAINT IF EXISTS fk_comments_bug;
			ALTER TABLE comments DROP CONSTRAINT IF EXISTS fk_comments_author;
			ALTER TABLE votes DROP CONSTRAINT IF EXISTS fk_votes_voter;
			ALTER TABLE bug_tags DROP CONSTRAINT IF EXISTS fk_bug_tags_bug;
			ALTER TABLE bug_tags DROP CONSTRAINT IF EXISTS fk_bug_tags_tag;
			ALTER TABLE moderation_actions DROP CONSTRAINT IF EXISTS fk_moderation_actions_moderator;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop foreign keys: %w", err)
		}

		return nil
	})
}
