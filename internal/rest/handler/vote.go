package handler

import (
	"net/http"

	"github.com/bugboard/bugboard/internal/database"
	"github.com/bugboard/bugboard/internal/database/types/enum"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// VoteHandler handles vote-related REST endpoints.
type VoteHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(db database.Client, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		db:     db,
		logger: logger,
	}
}

// CastVote records or switches a vote on a bug or comment.
func (h *VoteHandler) CastVote(w http.ResponseWriter, req bunrouter.Request) error {
	var in struct {
		VoterID    int64  `json:"voterId"`
		TargetKind string `json:"targetKind"`
		TargetID   int64  `json:"targetId"`
		VoteType   string `json:"voteType"`
	}

	if err := decode(req, &in); err != nil {
		return badRequest(w, "invalid request body")
	}

	kind, err := enum.ParseVoteTarget(in.TargetKind)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	voteType, err := enum.ParseVoteType(in.VoteType)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	vote, err := h.db.Service().Vote().CastVote(req.Context(), in.VoterID, kind, in.TargetID, voteType)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return created(w, vote)
}

// ListBugVotes returns the votes on a bug and their +1/-1 tally.
func (h *VoteHandler) ListBugVotes(w http.ResponseWriter, req bunrouter.Request) error {
	bugID, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid bug ID")
	}

	votes, err := h.db.Service().Vote().VotesForBug(req.Context(), bugID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	count, err := h.db.Service().Vote().VoteCountForBug(req.Context(), bugID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, bunrouter.H{
		"votes": votes,
		"count": count,
	})
}

// ListCommentVotes returns the votes on a comment and their tally.
func (h *VoteHandler) ListCommentVotes(w http.ResponseWriter, req bunrouter.Request) error {
	commentID, err := pathID(req, "id")
	if err != nil {
		return badRequest(w, "invalid comment ID")
	}

	votes, err := h.db.Service().Vote().VotesForComment(req.Context(), commentID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	count, err := h.db.Service().Vote().VoteCountForComment(req.Context(), commentID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, bunrouter.H{
		"votes": votes,
		"count": count,
	})
}
