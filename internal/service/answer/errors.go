package answer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConversation means the history has no question to answer.
	ErrInvalidConversation = errors.New("invalid conversation state")
	// ErrCompletionCount means a stage did not get exactly one completion.
	ErrCompletionCount = errors.New("unexpected completion count")
	// ErrMalformedOutput means a completion did not match the shape its
	// prompt asked for.
	ErrMalformedOutput = errors.New("malformed model output")
)

type Stage string

const (
	StageFormulate  Stage = "formulate query"
	StageSynthesize Stage = "synthesize answer"
	StageFollowUp   Stage = "follow-up questions"
)

func (s Stage) spanName() string {
	switch s {
	case StageFormulate:
		return "answer.formulate"
	case StageSynthesize:
		return "answer.synthesize"
	case StageFollowUp:
		return "answer.follow_up"
	}
	return "answer.generate"
}

type CountError struct {
	Stage Stage
	Got   int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("%s: %s: got %d, want 1", e.Stage, ErrCompletionCount, e.Got)
}

func (e *CountError) Unwrap() error {
	return ErrCompletionCount
}

type Problem string

const (
	ProblemInvalidJSON Problem = "invalid json"
	ProblemNotObject   Problem = "not an object"
	ProblemNotArray    Problem = "not an array"
	ProblemMissing     Problem = "missing"
	ProblemNull        Problem = "null"
	ProblemNotString   Problem = "not a string"
)

// FieldError pins a malformed completion to the field that failed. Field
// is empty when the document as a whole is wrong.
type FieldError struct {
	Stage   Stage
	Field   string
	Problem Problem
}

func (e *FieldError) Error() string {
	if len(e.Field) == 0 {
		return fmt.Sprintf("%s: %s: %s", e.Stage, ErrMalformedOutput, e.Problem)
	}
	return fmt.Sprintf("%s: %s: field %q is %s", e.Stage, ErrMalformedOutput, e.Field, e.Problem)
}

func (e *FieldError) Unwrap() error {
	return ErrMalformedOutput
}
