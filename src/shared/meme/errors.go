package meme

import "errors"

var (
	ErrRejectedPrecondition = errors.New("rejected precondition")
	ErrUnsupportedContent   = errors.New("unsupported content")
	ErrGatewayUnavailable   = errors.New("gateway unavailable")
	ErrNotFound             = errors.New("not found")
)

// Precondition reasons. Each one matches ErrRejectedPrecondition under errors.Is.
var (
	ErrBanned          = precondition("user is banned")
	ErrAlreadyPending  = precondition("user already has a pending post")
	ErrWrongState      = precondition("action not valid in the current conversation state")
	ErrReviewConcluded = precondition("review already concluded")
	ErrNotPublished    = precondition("post is not published")
)

type preconditionError struct{ reason string }

func precondition(reason string) error { return &preconditionError{reason: reason} }

func (e *preconditionError) Error() string { return e.reason }

func (e *preconditionError) Unwrap() error { return ErrRejectedPrecondition }
