package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInviteCodeInvalid  = errors.New("invite code invalid or already used")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotFound     = errors.New("course not found")
	ErrTopicNotFound      = errors.New("topic not found")
	ErrCardNotFound       = errors.New("learn card not found")
	ErrTemplateNotFound   = errors.New("question template not found")
	ErrNoTemplates        = errors.New("no question templates available")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrTemplateUnsolvable = errors.New("template kind derives no answer and no fixed answer is declared")
	ErrEntryNotFound      = errors.New("cheat sheet entry not found")
)
