package quiz

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/rs/zerolog/log"
)

type State string

const (
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
)

// Origin records how the question set of a session was chosen.
type Origin struct {
	Category           model.Category
	RetestAssignmentID *uint
}

// Submission is handed to the Ledger once a session has been scored.
type Submission struct {
	SessionID          uuid.UUID
	UserID             uuid.UUID
	Category           model.Category
	RetestAssignmentID *uint
	Questions          []model.Question
	Answers            []Answer
	Outcome            Outcome
	SubmittedAt        time.Time
}

// Ledger persists a scored submission and returns the id of the result row.
type Ledger interface {
	Record(ctx context.Context, sub Submission) (uint, error)
}

// Session is one user's run through an ordered set of questions. It is held in
// memory only; nothing is persisted until Submit.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	userID    uuid.UUID
	origin    Origin
	questions []model.Question
	answers   []Answer
	cursor    int
	state     State
	outcome   *Outcome
	createdAt time.Time

	grader   AIGrader
	inflight sync.WaitGroup
}

func NewSession(userID uuid.UUID, origin Origin, questions []model.Question, grader AIGrader) *Session {
	qs := make([]model.Question, len(questions))
	copy(qs, questions)
	answers := make([]Answer, len(qs))
	for i := range qs {
		if qs[i].IsOpenEnded() {
			answers[i].GradingState = GradingUngraded
		}
	}
	return &Session{
		id:        uuid.New(),
		userID:    userID,
		origin:    origin,
		questions: qs,
		answers:   answers,
		state:     StateInProgress,
		createdAt: time.Now(),
		grader:    grader,
	}
}

func (s *Session) ID() uuid.UUID     { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SelectOption toggles optionIndex in the selection of the objective question at questionIndex.
func (s *Session) SelectOption(questionIndex, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return ErrIndexOutOfRange
	}
	q := &s.questions[questionIndex]
	if !q.IsObjective() {
		return ErrWrongQuestionType
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return ErrIndexOutOfRange
	}
	s.answers[questionIndex].Selected = s.answers[questionIndex].Selected.Toggle(optionIndex)
	return nil
}

func (s *Session) SetAnswerText(questionID uint, text string) error {
	return s.updateOpenEnded(questionID, func(a *Answer) { a.Text = text })
}

func (s *Session) AttachImage(questionID uint, url string) error {
	return s.updateOpenEnded(questionID, func(a *Answer) { a.ImageURL = url })
}

// updateOpenEnded applies fn and drops any provisional grade, which described the previous answer.
func (s *Session) updateOpenEnded(questionID uint, fn func(a *Answer)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	idx, err := s.indexOf(questionID)
	if err != nil {
		return err
	}
	if !s.questions[idx].IsOpenEnded() {
		return ErrWrongQuestionType
	}
	a := &s.answers[idx]
	fn(a)
	a.revision++
	a.Grading = nil
	a.GradingError = ""
	if a.GradingState != GradingRunning {
		a.GradingState = GradingUngraded
	}
	return nil
}

// RequestGrading asks the AI grader for a provisional score of one open-ended
// answer. A failure leaves the answer in GradingFailed; calling again retries and
// a success replaces any earlier result.
func (s *Session) RequestGrading(ctx context.Context, questionID uint) (*GradingResult, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return nil, ErrNotInProgress
	}
	idx, err := s.indexOf(questionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	req, revision, err := s.beginGradingLocked(idx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.runGrading(ctx, idx, revision, req)
}

// beginGradingLocked checks the preconditions of grading answer idx and marks it running.
func (s *Session) beginGradingLocked(idx int) (GradingRequest, int, error) {
	q := &s.questions[idx]
	a := &s.answers[idx]
	if !q.IsOpenEnded() {
		return GradingRequest{}, 0, ErrWrongQuestionType
	}
	if !a.Answered(q) {
		return GradingRequest{}, 0, ErrEmptyAnswer
	}
	if a.GradingState == GradingRunning {
		return GradingRequest{}, 0, ErrGradingInFlight
	}
	if s.grader == nil {
		return GradingRequest{}, 0, ErrGraderUnavailable
	}
	a.GradingState = GradingRunning
	a.GradingError = ""
	s.inflight.Add(1)
	return GradingRequest{
		Question:   q,
		UserID:     s.userID,
		AnswerText: a.Text,
		ImageURL:   a.ImageURL,
	}, a.revision, nil
}

func (s *Session) runGrading(ctx context.Context, idx, revision int, req GradingRequest) (*GradingResult, error) {
	defer s.inflight.Done()

	res, err := s.grader.GradeAnswer(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	a := &s.answers[idx]
	if err != nil {
		log.Warn().Err(err).Str("sessionID", s.id.String()).Uint("questionID", req.Question.ID).Msg("AI grading failed")
		a.GradingState = GradingFailed
		a.GradingError = err.Error()
		a.Grading = nil
		return nil, err
	}
	graded := *res
	graded.Score = ClampScore(res.Score, req.Question.MaxScore)
	graded.MaxScore = req.Question.MaxScore
	if a.revision != revision {
		// The answer changed while grading ran; the result no longer applies.
		a.GradingState = GradingUngraded
		return &graded, nil
	}
	a.Grading = &graded
	a.GradingState = GradingGraded
	return &graded, nil
}

type gradingJob struct {
	idx, revision int
	req           GradingRequest
}

// collectGradingJobs starts grading for answered open-ended questions without a
// result. Each answer is tried at most once per submit.
func (s *Session) collectGradingJobs(attempted map[int]bool) []gradingJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []gradingJob
	for i := range s.questions {
		q := &s.questions[i]
		a := &s.answers[i]
		if attempted[i] || !q.IsOpenEnded() || !a.Answered(q) || a.Grading != nil {
			continue
		}
		req, revision, err := s.beginGradingLocked(i)
		if err != nil {
			log.Warn().Err(err).Str("sessionID", s.id.String()).Uint("questionID", q.ID).Msg("Skipping grading on submit")
			continue
		}
		attempted[i] = true
		jobs = append(jobs, gradingJob{idx: i, revision: revision, req: req})
	}
	return jobs
}

// Submit grades every answered open-ended question still lacking a result (all in
// parallel, waiting for each to settle), scores the session and hands it to the
// ledger. A ledger failure does not fail the submit: the outcome is returned with
// Saved=false and the error text.
func (s *Session) Submit(ctx context.Context, ledger Ledger) (*Outcome, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return nil, ErrNotInProgress
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	// A call started before submit can settle on a stale revision and leave its
	// answer ungraded, so the answers are scanned again after every wait.
	attempted := make(map[int]bool)
	for {
		s.inflight.Wait()
		jobs := s.collectGradingJobs(attempted)
		if len(jobs) == 0 {
			break
		}
		for _, j := range jobs {
			go func(j gradingJob) {
				_, _ = s.runGrading(ctx, j.idx, j.revision, j.req)
			}(j)
		}
	}

	s.mu.Lock()
	outcome := Score(s.questions, s.answers)
	sub := Submission{
		SessionID:          s.id,
		UserID:             s.userID,
		Category:           s.origin.Category,
		RetestAssignmentID: s.origin.RetestAssignmentID,
		Questions:          s.questions,
		Answers:            append([]Answer(nil), s.answers...),
		Outcome:            outcome,
		SubmittedAt:        time.Now(),
	}
	s.mu.Unlock()

	if ledger != nil {
		resultID, err := ledger.Record(ctx, sub)
		if err != nil {
			log.Error().Err(err).Str("sessionID", s.id.String()).Msg("Failed to save test result")
			outcome.SaveError = err.Error()
		} else {
			outcome.ResultID = &resultID
			outcome.Saved = true
		}
	}

	s.mu.Lock()
	s.state = StateCompleted
	s.outcome = &outcome
	s.mu.Unlock()
	return &outcome, nil
}

func (s *Session) GoTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.questions) {
		return ErrIndexOutOfRange
	}
	s.cursor = index
	return nil
}

// Next advances the cursor, stopping at the last question.
func (s *Session) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor < len(s.questions)-1 {
		s.cursor++
	}
	return s.cursor
}

// Prev moves the cursor back, stopping at the first question.
func (s *Session) Prev() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor > 0 {
		s.cursor--
	}
	return s.cursor
}

func (s *Session) answeredLocked() int {
	n := 0
	for i := range s.questions {
		if s.answers[i].Answered(&s.questions[i]) {
			n++
		}
	}
	return n
}

// progress is the answered share of questions as a whole percentage.
func progress(answered, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(answered) / float64(total)))
}

func (s *Session) indexOf(questionID uint) (int, error) {
	for i := range s.questions {
		if s.questions[i].ID == questionID {
			return i, nil
		}
	}
	return -1, ErrQuestionNotFound
}

// Snapshot is a copy of the session state, safe to read without the session lock.
type Snapshot struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Origin        Origin
	State         State
	Cursor        int
	Questions     []model.Question
	Answers       []Answer
	AnsweredCount int
	Progress      int
	Outcome       *Outcome
	CreatedAt     time.Time
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	answered := s.answeredLocked()
	snap := Snapshot{
		ID:            s.id,
		UserID:        s.userID,
		Origin:        s.origin,
		State:         s.state,
		Cursor:        s.cursor,
		Questions:     append([]model.Question(nil), s.questions...),
		Answers:       append([]Answer(nil), s.answers...),
		AnsweredCount: answered,
		Progress:      progress(answered, len(s.questions)),
		CreatedAt:     s.createdAt,
	}
	if s.outcome != nil {
		out := *s.outcome
		snap.Outcome = &out
	}
	return snap
}
