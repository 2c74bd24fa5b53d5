package migrations

import (
	"context"
	"fmt"

	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.User)(nil),
			(*types.Bug)(nil),
			(*types.Comment)(nil),
			(*types.Vote)(nil),
			(*types.Tag)(nil),
			(*types.BugTag)(nil),
			(*types.ModerationAction)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table: %w", err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []string{
			"moderation_actions",
			"bug_tags",
			"tags",
			"votes",
			"comments",
			"bugs",
			"users",
		}

		for _, table := range tables {
			_, err := db.NewRaw(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}

		return nil
	})
}
