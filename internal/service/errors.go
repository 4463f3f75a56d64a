package service

import "errors"

var (
	ErrUserNotFound     = errors.New("such user does not exist")
	ErrUserExists       = errors.New("such user already exists")
	ErrQuestionNotFound = errors.New("such question does not exist")
	ErrNoSuchTest       = errors.New("no such test")
	ErrAllTestsPassed   = errors.New("all existing test are passed")

	// ErrAssignConflict means the passed-users list kept changing under
	// concurrent requests and no attempt could be committed.
	ErrAssignConflict = errors.New("test assignment conflicted with concurrent updates")
)
