package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/rs/zerolog/log"
)

func toQuestionResponse(q *model.Question) dto.QuestionResponse {
	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, q); err != nil {
		log.Error().Err(err).Uint("questionID", q.ID).Msg("Failed to map question")
	}
	return resp
}

func toQuestionResponses(questions []model.Question) []dto.QuestionResponse {
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, toQuestionResponse(&questions[i]))
	}
	return resp
}

func toSubjectiveAnswerResponse(a *model.SubjectiveAnswer) dto.SubjectiveAnswerResponse {
	var resp dto.SubjectiveAnswerResponse
	if err := copier.Copy(&resp, a); err != nil {
		log.Error().Err(err).Uint("answerID", a.ID).Msg("Failed to map subjective answer")
	}
	resp.QuestionPrompt = a.Question.Prompt
	resp.MaxScore = a.Question.MaxScore
	return resp
}

func toSubjectiveAnswerResponses(answers []model.SubjectiveAnswer) []dto.SubjectiveAnswerResponse {
	resp := make([]dto.SubjectiveAnswerResponse, 0, len(answers))
	for i := range answers {
		resp = append(resp, toSubjectiveAnswerResponse(&answers[i]))
	}
	return resp
}

func toResultSummary(r *model.TestResult) dto.TestResultSummary {
	return dto.TestResultSummary{
		ID:                 r.ID,
		UserID:             r.UserID,
		Category:           r.Category,
		Score:              r.Score,
		CorrectCount:       r.CorrectCount,
		TotalCount:         r.TotalCount,
		RetestAssignmentID: r.RetestAssignmentID,
		TestDate:           r.TestDate,
	}
}

func toRetestResponse(a *model.RetestAssignment) dto.RetestResponse {
	var resp dto.RetestResponse
	if err := copier.Copy(&resp, a); err != nil {
		log.Error().Err(err).Uint("assignmentID", a.ID).Msg("Failed to map retest assignment")
	}
	return resp
}

func toRetestResponses(assignments []model.RetestAssignment) []dto.RetestResponse {
	resp := make([]dto.RetestResponse, 0, len(assignments))
	for i := range assignments {
		resp = append(resp, toRetestResponse(&assignments[i]))
	}
	return resp
}

func toReviewResponse(r *model.WrongAnswerReview) dto.WrongAnswerReviewResponse {
	return dto.WrongAnswerReviewResponse{
		ID:                r.ID,
		TestResultID:      r.TestResultID,
		QuestionID:        r.QuestionID,
		ReviewAnswer:      []int(r.ReviewAnswer),
		IsCorrectOnReview: r.IsCorrectOnReview,
		CreatedAt:         r.CreatedAt,
	}
}
