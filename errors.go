package answerbot

import "github.com/w-h-a/answerbot/internal/service/answer"

var (
	ErrInvalidConversation = answer.ErrInvalidConversation
	ErrCompletionCount     = answer.ErrCompletionCount
	ErrMalformedOutput     = answer.ErrMalformedOutput
)

type (
	Stage      = answer.Stage
	CountError = answer.CountError
	FieldError = answer.FieldError
)
