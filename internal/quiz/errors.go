package quiz

import "errors"

var (
	ErrNotInProgress     = errors.New("session is not in progress")
	ErrQuestionNotFound  = errors.New("question is not part of this session")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrWrongQuestionType = errors.New("operation does not apply to this question type")
	ErrEmptyAnswer       = errors.New("answer has neither text nor image")
	ErrGradingInFlight   = errors.New("grading already in progress for this answer")
	ErrGraderUnavailable = errors.New("no AI grader configured")
	ErrSessionNotFound   = errors.New("session not found or expired")
)
