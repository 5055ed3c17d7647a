package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerSetEqual(t *testing.T) {
	correct := NewAnswerSet(1, 3)

	assert.True(t, correct.Equal(AnswerSet{3, 1}))
	assert.False(t, correct.Equal(AnswerSet{1}), "proper subset")
	assert.False(t, correct.Equal(AnswerSet{1, 2, 3}), "proper superset")
	assert.False(t, correct.Equal(nil))
	assert.True(t, AnswerSet(nil).Equal(AnswerSet{}))
}

func TestAnswerSetToggle(t *testing.T) {
	var s AnswerSet
	s = s.Toggle(2)
	s = s.Toggle(0)
	assert.Equal(t, AnswerSet{0, 2}, s)

	s = s.Toggle(2)
	assert.Equal(t, AnswerSet{0}, s)
}

func TestAnswerSetUnmarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want AnswerSet
	}{
		{`2`, AnswerSet{2}},
		{`[3, 1, 3]`, AnswerSet{1, 3}},
		{`[]`, AnswerSet{}},
		{`null`, nil},
	}
	for _, c := range cases {
		var got AnswerSet
		require.NoError(t, json.Unmarshal([]byte(c.in), &got), c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	var bad AnswerSet
	assert.Error(t, json.Unmarshal([]byte(`"a"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`[1.5]`), &bad))
}

func TestAnswerSetValueScan(t *testing.T) {
	v, err := NewAnswerSet(3, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, "{1,3}", v)

	var s AnswerSet
	require.NoError(t, s.Scan([]byte("{3,1}")))
	assert.Equal(t, AnswerSet{1, 3}, s)

	require.NoError(t, s.Scan(nil))
	assert.Nil(t, s)
}

func TestIDListValueScan(t *testing.T) {
	v, err := IDList{7, 2}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{7,2}", v)

	var l IDList
	require.NoError(t, l.Scan("{7,2}"))
	assert.Equal(t, IDList{7, 2}, l)
}

func TestStringListValueScan(t *testing.T) {
	v, err := StringList{"Yes", "No, never"}.Value()
	require.NoError(t, err)

	var l StringList
	require.NoError(t, l.Scan(v))
	assert.Equal(t, StringList{"Yes", "No, never"}, l)
}

func TestQuestionValidate(t *testing.T) {
	rubric := "mentions escalation to the shift lead"

	objective := Question{
		Category:       CategorySafety,
		Prompt:         "Which extinguisher fits a grease fire?",
		Type:           QuestionTypeObjective,
		Options:        StringList{"Water", "Class K", "Foam"},
		CorrectAnswers: NewAnswerSet(1),
		MaxScore:       10,
	}
	assert.NoError(t, objective.Validate())

	outOfRange := objective
	outOfRange.CorrectAnswers = NewAnswerSet(3)
	assert.Error(t, outOfRange.Validate())

	withRubric := objective
	withRubric.Rubric = &rubric
	assert.Error(t, withRubric.Validate())

	openEnded := Question{
		Category: CategoryCustomerService,
		Prompt:   "A guest complains about a late order. What do you do?",
		Type:     QuestionTypeOpenEnded,
		Rubric:   &rubric,
		MaxScore: 20,
	}
	assert.NoError(t, openEnded.Validate())

	withOptions := openEnded
	withOptions.Options = StringList{"a", "b"}
	assert.Error(t, withOptions.Validate())

	noScore := openEnded
	noScore.MaxScore = 0
	assert.Error(t, noScore.Validate())

	badCategory := openEnded
	badCategory.Category = CategoryMixed
	assert.Error(t, badCategory.Validate())
}
