package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/config"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/quiz"
	"github.com/rs/zerolog/log"
)

// AttemptService drives in-memory quiz sessions from start to submit.
type AttemptService interface {
	StartSession(req dto.StartSessionRequest) (*dto.SessionResponse, error)
	GetSession(sessionID uuid.UUID) (*dto.SessionResponse, error)
	MoveCursor(sessionID uuid.UUID, req dto.CursorRequest) (*dto.SessionResponse, error)
	ToggleOption(sessionID uuid.UUID, questionIndex, optionIndex int) (*dto.SessionResponse, error)
	SetAnswer(sessionID uuid.UUID, questionID uint, req dto.AnswerRequest) (*dto.SessionResponse, error)
	RequestGrading(ctx context.Context, sessionID uuid.UUID, questionID uint) (*dto.SessionResponse, error)
	Submit(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error)
	Discard(sessionID uuid.UUID)
}

type attemptService struct {
	store      *quiz.Store
	questions  QuestionService
	retests    RetestService
	ledger     quiz.Ledger
	grader     quiz.AIGrader
	sampleSize int
}

func NewAttemptService(
	cfg *config.Config,
	questions QuestionService,
	retests RetestService,
	ledger TestSubmissionService,
	gemini GeminiLLMService,
) AttemptService {
	s := &attemptService{
		store:      quiz.NewStore(cfg.Quiz.SessionIdleTTL),
		questions:  questions,
		retests:    retests,
		ledger:     ledger,
		sampleSize: cfg.Quiz.RandomSampleSize,
	}
	if gemini != nil && gemini.Available() {
		s.grader = gemini
	}
	return s
}

func (s *attemptService) StartSession(req dto.StartSessionRequest) (*dto.SessionResponse, error) {
	if req.UserID == uuid.Nil {
		return nil, invalid("user_id", "is required")
	}
	questions, origin, err := s.selectQuestions(req)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions for category %s: %w", origin.Category, ErrNotFound)
	}

	session := quiz.NewSession(req.UserID, origin, questions, s.grader)
	s.store.Put(session)
	log.Info().
		Str("sessionID", session.ID().String()).
		Str("userID", req.UserID.String()).
		Str("category", string(origin.Category)).
		Int("questions", len(questions)).
		Int("liveSessions", s.store.Len()).
		Msg("Quiz session started")
	resp := dto.NewSessionResponse(session.Snapshot())
	return &resp, nil
}

func (s *attemptService) selectQuestions(req dto.StartSessionRequest) ([]model.Question, quiz.Origin, error) {
	switch {
	case req.RetestAssignmentID != nil:
		return s.retestQuestions(*req.RetestAssignmentID, req.UserID)
	case req.Random:
		size := req.Size
		if size <= 0 {
			size = s.sampleSize
		}
		questions, err := s.questions.RandomSample(size)
		return questions, quiz.Origin{Category: model.CategoryMixed}, err
	case req.Category != nil:
		questions, err := s.questions.ByCategory(*req.Category)
		return questions, quiz.Origin{Category: *req.Category}, err
	default:
		return nil, quiz.Origin{}, invalid("category", "one of category, random or retest_assignment_id is required")
	}
}

func (s *attemptService) retestQuestions(assignmentID uint, userID uuid.UUID) ([]model.Question, quiz.Origin, error) {
	assignment, err := s.retests.GetAssignment(assignmentID)
	if err != nil {
		return nil, quiz.Origin{}, err
	}
	if assignment.ManagerID != userID {
		return nil, quiz.Origin{}, fmt.Errorf("retest assignment %d targets another manager: %w", assignmentID, ErrForbidden)
	}
	if assignment.Status != model.RetestStatusPending {
		return nil, quiz.Origin{}, fmt.Errorf("retest assignment %d is %s: %w", assignmentID, assignment.Status, ErrInvalidTransition)
	}

	origin := quiz.Origin{Category: model.CategoryMixed, RetestAssignmentID: &assignment.ID}
	if assignment.Category != nil {
		origin.Category = *assignment.Category
	}
	var questions []model.Question
	switch {
	case len(assignment.QuestionIDs) > 0:
		questions, err = s.questions.ByIDs(assignment.QuestionIDs)
	case assignment.Category != nil:
		questions, err = s.questions.ByCategory(*assignment.Category)
	default:
		questions, err = s.questions.RandomSample(s.sampleSize)
	}
	return questions, origin, err
}

func (s *attemptService) respond(session *quiz.Session, err error) (*dto.SessionResponse, error) {
	if err != nil {
		return nil, err
	}
	resp := dto.NewSessionResponse(session.Snapshot())
	return &resp, nil
}

func (s *attemptService) GetSession(sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.store.Get(sessionID)
	return s.respond(session, err)
}

func (s *attemptService) MoveCursor(sessionID uuid.UUID, req dto.CursorRequest) (*dto.SessionResponse, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	switch {
	case req.Index != nil:
		err = session.GoTo(*req.Index)
	case req.Move == "next":
		session.Next()
	case req.Move == "prev":
		session.Prev()
	default:
		err = invalid("cursor", "index or move is required")
	}
	return s.respond(session, err)
}

func (s *attemptService) ToggleOption(sessionID uuid.UUID, questionIndex, optionIndex int) (*dto.SessionResponse, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.respond(session, session.SelectOption(questionIndex, optionIndex))
}

func (s *attemptService) SetAnswer(sessionID uuid.UUID, questionID uint, req dto.AnswerRequest) (*dto.SessionResponse, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if req.AnswerText == nil && req.ImageURL == nil {
		return nil, invalid("answer", "answer_text or image_url is required")
	}
	if req.AnswerText != nil {
		if err := session.SetAnswerText(questionID, *req.AnswerText); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		if err := session.AttachImage(questionID, *req.ImageURL); err != nil {
			return nil, err
		}
	}
	return s.respond(session, nil)
}

// RequestGrading runs the AI grader for one answer. A grading failure is
// returned together with the session so the caller can show the retry state.
func (s *attemptService) RequestGrading(ctx context.Context, sessionID uuid.UUID, questionID uint) (*dto.SessionResponse, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	_, gradeErr := session.RequestGrading(context.WithoutCancel(ctx), questionID)
	resp := dto.NewSessionResponse(session.Snapshot())
	return &resp, gradeErr
}

// Submit scores the session and records it. The session is dropped from the
// store afterwards; the response carries the final outcome.
func (s *attemptService) Submit(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	outcome, err := session.Submit(context.WithoutCancel(ctx), s.ledger)
	if err != nil {
		return nil, err
	}
	s.store.Delete(sessionID)

	event := log.Info()
	if !outcome.Saved {
		event = log.Warn().Str("saveError", outcome.SaveError)
	}
	event.Str("sessionID", sessionID.String()).
		Int("percentage", outcome.Percentage).
		Int("correctCount", outcome.CorrectCount).
		Int("totalCount", outcome.TotalCount).
		Bool("saved", outcome.Saved).
		Msg("Quiz session submitted")
	resp := dto.NewSessionResponse(session.Snapshot())
	return &resp, nil
}

func (s *attemptService) Discard(sessionID uuid.UUID) {
	s.store.Delete(sessionID)
	log.Info().Str("sessionID", sessionID.String()).Msg("Quiz session discarded")
}
