package types

import "errors"

// Missing-entity errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrBugNotFound     = errors.New("bug not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrVoteNotFound    = errors.New("vote not found")
)

// Authorization errors.
var (
	ErrSelfVote      = errors.New("users cannot vote on their own content")
	ErrNotAuthorized = errors.New("only the author or a moderator may perform this action")
	ErrActorBanned   = errors.New("actor is banned")
	ErrNotModerator  = errors.New("actor is not a moderator")
	ErrNotBugAuthor  = errors.New("only the bug author can accept a comment")
)

// Lifecycle errors.
var (
	ErrBugAlreadySolved           = errors.New("bug is already solved")
	ErrCannotSolveWithoutComments = errors.New("bug cannot be solved without comments")
	ErrCommentNotOnBug            = errors.New("comment does not belong to this bug")
)
