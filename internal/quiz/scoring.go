package quiz

import (
	"math"

	"github.com/lshigami/quizdesk/internal/model"
)

// Outcome is the aggregate of a submitted session.
type Outcome struct {
	TotalAwarded float64   `json:"total_awarded"`
	TotalMax     int       `json:"total_max"`
	Percentage   int       `json:"percentage"`
	CorrectCount int       `json:"correct_count"`
	TotalCount   int       `json:"total_count"`
	Verdicts     []Verdict `json:"verdicts"`

	ResultID  *uint  `json:"result_id,omitempty"`
	Saved     bool   `json:"saved"`
	SaveError string `json:"save_error,omitempty"`
}

// Score weighs every question by its max score. answers[i] belongs to questions[i].
func Score(questions []model.Question, answers []Answer) Outcome {
	out := Outcome{TotalCount: len(questions), Verdicts: make([]Verdict, 0, len(questions))}
	for i := range questions {
		q := &questions[i]
		var a Answer
		if i < len(answers) {
			a = answers[i]
		}
		v := StrategyFor(q).Grade(q, a)
		out.TotalMax += q.MaxScore
		out.TotalAwarded += v.Score
		if v.IsCorrect {
			out.CorrectCount++
		}
		out.Verdicts = append(out.Verdicts, v)
	}
	out.Percentage = Percentage(out.TotalAwarded, out.TotalMax)
	return out
}

// Percentage is round(100 * awarded / max), or 0 when max is 0.
func Percentage(awarded float64, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(100 * awarded / float64(maxScore)))
}
