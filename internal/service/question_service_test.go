package service

import (
	"encoding/json"
	"testing"

	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionService_CreateNormalisesScalarAnswerKey(t *testing.T) {
	f := newFixture(t, nil)
	var req dto.QuestionRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"category": "policy",
		"prompt": "Which form records a refund?",
		"type": "objective",
		"options": ["A", "B", "C"],
		"correct_answers": 2,
		"max_score": 10
	}`), &req))

	created, err := f.questions.CreateQuestion(req)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, created.CorrectAnswers)
	assert.Equal(t, []string{"A", "B", "C"}, created.Options)

	got, err := f.questions.GetQuestion(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, got.CorrectAnswers)
}

func TestQuestionService_RejectsInconsistentQuestions(t *testing.T) {
	f := newFixture(t, nil)
	tests := []struct {
		name string
		req  dto.QuestionRequest
	}{
		{"open-ended without rubric", dto.QuestionRequest{Category: model.CategorySafety, Prompt: "Explain", Type: model.QuestionTypeOpenEnded, MaxScore: 10}},
		{"objective with rubric", dto.QuestionRequest{Category: model.CategorySafety, Prompt: "Pick", Type: model.QuestionTypeObjective, Options: []string{"a", "b"}, CorrectAnswers: model.AnswerSet{0}, Rubric: strPtr("x"), MaxScore: 10}},
		{"answer index out of range", dto.QuestionRequest{Category: model.CategorySafety, Prompt: "Pick", Type: model.QuestionTypeObjective, Options: []string{"a", "b"}, CorrectAnswers: model.AnswerSet{2}, MaxScore: 10}},
		{"mixed is not a question category", dto.QuestionRequest{Category: model.CategoryMixed, Prompt: "Pick", Type: model.QuestionTypeObjective, Options: []string{"a", "b"}, CorrectAnswers: model.AnswerSet{0}, MaxScore: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.questions.CreateQuestion(tt.req)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
	all, err := f.questions.ListQuestions(dto.QuestionListQuery{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestQuestionService_UpdateReplacesTypeSpecificFields(t *testing.T) {
	f := newFixture(t, nil)
	q := f.objective(t, model.CategoryOperations, 10, 1)

	updated, err := f.questions.UpdateQuestion(q.ID, dto.QuestionRequest{
		Category: model.CategoryOperations,
		Prompt:   "Describe the opening checklist",
		Type:     model.QuestionTypeOpenEnded,
		Rubric:   strPtr("Covers cash, safety and staffing"),
		MaxScore: 15,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Options)
	assert.Empty(t, updated.CorrectAnswers)

	var stored model.Question
	require.NoError(t, f.db.First(&stored, q.ID).Error)
	assert.True(t, stored.IsOpenEnded())
	assert.Empty(t, stored.Options)
	assert.Empty(t, stored.CorrectAnswers)
	assert.Equal(t, 15, stored.MaxScore)

	_, err = f.questions.UpdateQuestion(9999, dto.QuestionRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionService_SelectionAndDelete(t *testing.T) {
	f := newFixture(t, nil)
	a := f.objective(t, model.CategoryPolicy, 10, 0)
	f.objective(t, model.CategorySafety, 10, 0)

	policy, err := f.questions.ByCategory(model.CategoryPolicy)
	require.NoError(t, err)
	assert.Len(t, policy, 1)
	mixed, err := f.questions.ByCategory(model.CategoryMixed)
	require.NoError(t, err)
	assert.Len(t, mixed, 2)

	require.NoError(t, f.questions.DeleteQuestion(a.ID))
	assert.ErrorIs(t, f.questions.DeleteQuestion(a.ID), ErrNotFound)
	mixed, err = f.questions.ByCategory(model.CategoryMixed)
	require.NoError(t, err)
	assert.Len(t, mixed, 1)

	_, err = f.questions.RandomSample(0)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
