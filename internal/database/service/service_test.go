package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/bugboard/bugboard/internal/database"
	"github.com/bugboard/bugboard/internal/database/types"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"
)

// fakeNotifier records ban/unban notifications for assertions.
type fakeNotifier struct {
	mu     sync.Mutex
	bans   []string
	unbans []int64
}

func (n *fakeNotifier) NotifyBan(user *types.User, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.bans = append(n.bans, fmt.Sprintf("%d:%s", user.ID, reason))
}

func (n *fakeNotifier) NotifyUnban(user *types.User) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.unbans = append(n.unbans, user.ID)
}

func (n *fakeNotifier) banCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.bans)
}

func (n *fakeNotifier) unbanCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.unbans)
}

type testEnv struct {
	db       *bun.DB
	repo     *database.Repository
	svc      *database.Service
	notifier *fakeNotifier
}

// setupTest creates an isolated in-memory database with the full
// schema and the service stack wired on top of it.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	// Each test gets its own named in-memory database so parallel
	// tests never share state.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)

	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.RegisterModel((*types.BugTag)(nil))

	err = db.ResetModel(context.Background(),
		(*types.User)(nil),
		(*types.Bug)(nil),
		(*types.Comment)(nil),
		(*types.Vote)(nil),
		(*types.Tag)(nil),
		(*types.BugTag)(nil),
		(*types.ModerationAction)(nil),
	)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop()
	notif := &fakeNotifier{}
	repo := database.NewRepository(logger)
	svc := database.NewService(db, repo, notif, logger)

	return &testEnv{
		db:       db,
		repo:     repo,
		svc:      svc,
		notifier: notif,
	}
}

// createUser is a shorthand for registering a test account.
func (env *testEnv) createUser(t *testing.T, username string, role enum.Role) *types.User {
	t.Helper()

	user, err := env.svc.User().Create(
		t.Context(), username, username+"@example.com", "", "hunter2", role)
	require.NoError(t, err)

	return user
}

// score reloads a user and returns their effective score.
func (env *testEnv) score(t *testing.T, userID int64) float64 {
	t.Helper()

	user, err := env.svc.User().Get(t.Context(), userID)
	require.NoError(t, err)

	return user.CurrentScore()
}
