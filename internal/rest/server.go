// Package rest exposes the service layer over HTTP. All business
// rules live below; handlers only decode, dispatch and translate
// errors.
package rest

import (
	"net/http"

	"github.com/bugboard/bugboard/internal/database"
	"github.com/bugboard/bugboard/internal/rest/handler"
	"github.com/klauspost/compress/gzhttp"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	userHandler       *handler.UserHandler
	bugHandler        *handler.BugHandler
	commentHandler    *handler.CommentHandler
	voteHandler       *handler.VoteHandler
	tagHandler        *handler.TagHandler
	moderationHandler *handler.ModerationHandler
}

// NewServer creates a new REST API server.
func NewServer(db database.Client, logger *zap.Logger) http.Handler {
	// Create server instance with handlers
	server := &Server{
		userHandler:       handler.NewUserHandler(db, logger),
		bugHandler:        handler.NewBugHandler(db, logger),
		commentHandler:    handler.NewCommentHandler(db, logger),
		voteHandler:       handler.NewVoteHandler(db, logger),
		tagHandler:        handler.NewTagHandler(db, logger),
		moderationHandler: handler.NewModerationHandler(db, logger),
	}

	// Create base router
	router := bunrouter.New()

	// Create API routes group
	router.Use(
		requestID,
		accessLog(logger),
	).WithGroup("/v1", func(g *bunrouter.Group) {
		g.POST("/auth/register", server.userHandler.RegisterUser)
		g.POST("/auth/login", server.userHandler.Login)

		g.GET("/users", server.userHandler.ListUsers)
		g.GET("/users/:id", server.userHandler.GetUser)
		g.GET("/users/:id/bugs", server.userHandler.ListUserBugs)

		g.GET("/bugs", server.bugHandler.ListBugs)
		g.GET("/bugs/count", server.bugHandler.CountBugs)
		g.GET("/bugs/:id", server.bugHandler.GetBug)
		g.POST("/bugs", server.bugHandler.ReportBug)
		g.PUT("/bugs/:id", server.bugHandler.UpdateBug)
		g.DELETE("/bugs/:id", server.bugHandler.DeleteBug)
		g.POST("/bugs/:id/accept/:commentID", server.bugHandler.AcceptComment)

		g.GET("/bugs/:id/comments", server.commentHandler.ListComments)
		g.POST("/bugs/:id/comments", server.commentHandler.AddComment)
		g.PUT("/comments/:id", server.commentHandler.UpdateComment)
		g.DELETE("/comments/:id", server.commentHandler.DeleteComment)

		g.POST("/votes", server.voteHandler.CastVote)
		g.GET("/bugs/:id/votes", server.voteHandler.ListBugVotes)
		g.GET("/comments/:id/votes", server.voteHandler.ListCommentVotes)

		g.GET("/tags", server.tagHandler.ListTags)
		g.GET("/tags/:id", server.tagHandler.GetTag)
		g.POST("/tags", server.tagHandler.CreateTag)

		g.POST("/moderation/ban", server.moderationHandler.BanUser)
		g.POST("/moderation/unban", server.moderationHandler.UnbanUser)
		g.PUT("/moderation/bugs/:id", server.moderationHandler.EditBug)
		g.DELETE("/moderation/bugs/:id", server.moderationHandler.RemoveBug)
		g.PUT("/moderation/comments/:id", server.moderationHandler.EditComment)
		g.DELETE("/moderation/comments/:id", server.moderationHandler.RemoveComment)
		g.GET("/moderation/actions", server.moderationHandler.ListActions)
	})

	// Add gzip compression
	return gzhttp.GzipHandler(router)
}
