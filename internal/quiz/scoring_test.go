package quiz

import (
	"testing"

	"github.com/lshigami/quizdesk/internal/model"
	"github.com/stretchr/testify/assert"
)

func objectiveQuestion(id uint, maxScore int, correct ...int) model.Question {
	return model.Question{
		ID:             id,
		Category:       model.CategoryOperations,
		Prompt:         "objective",
		Type:           model.QuestionTypeObjective,
		Options:        model.StringList{"a", "b", "c", "d"},
		CorrectAnswers: model.NewAnswerSet(correct...),
		MaxScore:       maxScore,
	}
}

func openEndedQuestion(id uint, maxScore int) model.Question {
	rubric := "covers the escalation path"
	return model.Question{
		ID:       id,
		Category: model.CategoryOperations,
		Prompt:   "open ended",
		Type:     model.QuestionTypeOpenEnded,
		Rubric:   &rubric,
		MaxScore: maxScore,
	}
}

func TestObjectiveStrategy(t *testing.T) {
	q := objectiveQuestion(1, 10, 1, 3)
	cases := []struct {
		name     string
		selected model.AnswerSet
		want     bool
	}{
		{"same order", model.AnswerSet{1, 3}, true},
		{"reversed order", model.AnswerSet{3, 1}, true},
		{"subset", model.AnswerSet{1}, false},
		{"superset", model.AnswerSet{1, 2, 3}, false},
		{"unanswered", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := ObjectiveStrategy{}.Grade(&q, Answer{Selected: c.selected})
			assert.Equal(t, c.want, v.IsCorrect)
			if c.want {
				assert.Equal(t, 10.0, v.Score)
			} else {
				assert.Zero(t, v.Score)
			}
		})
	}
}

func TestObjectiveStrategyWithoutAnswerKey(t *testing.T) {
	q := objectiveQuestion(1, 10)
	v := ObjectiveStrategy{}.Grade(&q, Answer{})
	assert.False(t, v.IsCorrect)
	assert.Zero(t, v.Score)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 78, Percentage(7, 9))
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 0, Percentage(5, 0))
	assert.Equal(t, 100, Percentage(50, 50))
}

func TestPassesThresholdIsInclusive(t *testing.T) {
	assert.True(t, PassesThreshold(12, 20))
	assert.False(t, PassesThreshold(11, 20))
	assert.True(t, PassesThreshold(6, 10))
	assert.False(t, PassesThreshold(5, 10))
	assert.True(t, PassesThreshold(3, 5))
}

func TestOpenEndedStrategy(t *testing.T) {
	q := openEndedQuestion(4, 20)

	ungraded := OpenEndedStrategy{}.Grade(&q, Answer{Text: "I would apologise"})
	assert.False(t, ungraded.Graded)
	assert.False(t, ungraded.IsCorrect)
	assert.Zero(t, ungraded.Score)

	onBoundary := OpenEndedStrategy{}.Grade(&q, Answer{Grading: &GradingResult{Score: 12}})
	assert.True(t, onBoundary.IsCorrect)

	below := OpenEndedStrategy{}.Grade(&q, Answer{Grading: &GradingResult{Score: 11}})
	assert.False(t, below.IsCorrect)

	overMax := OpenEndedStrategy{}.Grade(&q, Answer{Grading: &GradingResult{Score: 25}})
	assert.Equal(t, 20.0, overMax.Score)
}

func TestScoreMixedSession(t *testing.T) {
	questions := []model.Question{
		objectiveQuestion(1, 10, 0),
		objectiveQuestion(2, 10, 2),
		objectiveQuestion(3, 10, 1),
		openEndedQuestion(4, 20),
	}
	answers := []Answer{
		{Selected: model.NewAnswerSet(0)},
		{Selected: model.NewAnswerSet(2)},
		{Selected: model.NewAnswerSet(1)},
		{Text: "answer", Grading: &GradingResult{Score: 15}},
	}

	out := Score(questions, answers)
	assert.Equal(t, 45.0, out.TotalAwarded)
	assert.Equal(t, 50, out.TotalMax)
	assert.Equal(t, 90, out.Percentage)
	assert.Equal(t, 4, out.CorrectCount)
	assert.Equal(t, 4, out.TotalCount)
	assert.Len(t, out.Verdicts, 4)
}

func TestScoreWithUngradedOpenEnded(t *testing.T) {
	questions := []model.Question{objectiveQuestion(1, 10, 0), openEndedQuestion(2, 10)}
	answers := []Answer{{Selected: model.NewAnswerSet(0)}, {Text: "never graded"}}

	out := Score(questions, answers)
	assert.Equal(t, 10.0, out.TotalAwarded)
	assert.Equal(t, 20, out.TotalMax)
	assert.Equal(t, 50, out.Percentage)
	assert.Equal(t, 1, out.CorrectCount)
}

func TestScoreEmpty(t *testing.T) {
	out := Score(nil, nil)
	assert.Equal(t, 0, out.Percentage)
	assert.Equal(t, 0, out.TotalCount)
}
