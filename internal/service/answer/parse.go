package answer

import (
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/w-h-a/answerbot/generator"
)

func single(stage Stage, completions []generator.Completion) (string, error) {
	if len(completions) != 1 {
		return "", &CountError{Stage: stage, Got: len(completions)}
	}
	return completions[0].Content, nil
}

func parseAnswer(content string) (string, string, error) {
	if !valid(content) {
		return "", "", &FieldError{Stage: StageSynthesize, Problem: ProblemInvalidJSON}
	}

	doc := gjson.Parse(content)
	if !doc.IsObject() {
		return "", "", &FieldError{Stage: StageSynthesize, Problem: ProblemNotObject}
	}

	answer, err := stringField(StageSynthesize, doc, "answer")
	if err != nil {
		return "", "", err
	}

	thoughts, err := stringField(StageSynthesize, doc, "thoughts")
	if err != nil {
		return "", "", err
	}

	return answer, thoughts, nil
}

func parseFollowUps(content string) ([]string, error) {
	if !valid(content) {
		return nil, &FieldError{Stage: StageFollowUp, Problem: ProblemInvalidJSON}
	}

	doc := gjson.Parse(content)
	if !doc.IsArray() {
		return nil, &FieldError{Stage: StageFollowUp, Problem: ProblemNotArray}
	}

	items := doc.Array()
	questions := make([]string, 0, len(items))

	for i, item := range items {
		field := fmt.Sprintf("[%d]", i)
		switch item.Type {
		case gjson.String:
			questions = append(questions, item.Str)
		case gjson.Null:
			return nil, &FieldError{Stage: StageFollowUp, Field: field, Problem: ProblemNull}
		default:
			return nil, &FieldError{Stage: StageFollowUp, Field: field, Problem: ProblemNotString}
		}
	}

	return questions, nil
}

// valid rejects invalid UTF-8 as well, which gjson lets through inside strings.
func valid(content string) bool {
	return utf8.ValidString(content) && gjson.Valid(content)
}

// lastMember returns the last member named field. A duplicated key resolves
// to its final occurrence.
func lastMember(doc gjson.Result, field string) gjson.Result {
	var r gjson.Result
	doc.ForEach(func(key, value gjson.Result) bool {
		if key.String() == field {
			r = value
		}
		return true
	})
	return r
}

func stringField(stage Stage, doc gjson.Result, field string) (string, error) {
	r := lastMember(doc, field)

	switch {
	case !r.Exists():
		return "", &FieldError{Stage: stage, Field: field, Problem: ProblemMissing}
	case r.Type == gjson.Null:
		return "", &FieldError{Stage: stage, Field: field, Problem: ProblemNull}
	case r.Type != gjson.String:
		return "", &FieldError{Stage: stage, Field: field, Problem: ProblemNotString}
	}

	return r.Str, nil
}
