package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/answerbot/generator"
)

func TestSingle(t *testing.T) {
	content, err := single(StageFormulate, []generator.Completion{{Content: "q"}})
	require.NoError(t, err)
	assert.Equal(t, "q", content)

	_, err = single(StageFormulate, nil)
	require.ErrorIs(t, err, ErrCompletionCount)
	assert.EqualError(t, err, "formulate query: unexpected completion count: got 0, want 1")
}

func TestParseAnswer(t *testing.T) {
	answer, thoughts, err := parseAnswer(`{"answer": "A [a.pdf].", "thoughts": "T", "extra": 1}`)
	require.NoError(t, err)
	assert.Equal(t, "A [a.pdf].", answer)
	assert.Equal(t, "T", thoughts)
}

func TestParseAnswer_EmptyStringsAreValid(t *testing.T) {
	answer, thoughts, err := parseAnswer(`{"answer": "", "thoughts": ""}`)
	require.NoError(t, err)
	assert.Empty(t, answer)
	assert.Empty(t, thoughts)
}

func TestParseFollowUps(t *testing.T) {
	questions, err := parseFollowUps(`["a?", "b?"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a?", "b?"}, questions)

	questions, err = parseFollowUps(`[]`)
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestFieldError_Message(t *testing.T) {
	err := &FieldError{Stage: StageSynthesize, Field: "thoughts", Problem: ProblemMissing}
	assert.EqualError(t, err, `synthesize answer: malformed model output: field "thoughts" is missing`)

	err = &FieldError{Stage: StageFollowUp, Problem: ProblemNotArray}
	assert.EqualError(t, err, "follow-up questions: malformed model output: not an array")
}

func TestAppendFollowUps(t *testing.T) {
	assert.Equal(t, "A", appendFollowUps("A", nil))
	assert.Equal(t, "A <<x>>  <<y>> ", appendFollowUps("A", []string{"x", "y"}))
}

func TestParseAnswer_DuplicateKeysUseLastValue(t *testing.T) {
	_, _, err := parseAnswer(`{"answer":"a","answer":null,"thoughts":"t"}`)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "answer", fieldErr.Field)
	assert.Equal(t, ProblemNull, fieldErr.Problem)

	answer, thoughts, err := parseAnswer(`{"answer":null,"answer":"b","thoughts":"t","thoughts":"u"}`)
	require.NoError(t, err)
	assert.Equal(t, "b", answer)
	assert.Equal(t, "u", thoughts)
}

func TestParse_RejectsInvalidUTF8(t *testing.T) {
	_, _, err := parseAnswer("{\"answer\":\"\xff\",\"thoughts\":\"t\"}")

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, ProblemInvalidJSON, fieldErr.Problem)

	_, err = parseFollowUps("[\"\xfe\"]")
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, StageFollowUp, fieldErr.Stage)
	assert.Equal(t, ProblemInvalidJSON, fieldErr.Problem)
}
