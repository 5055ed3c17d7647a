package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/config"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply string
	err   error
	parts []genai.Part
}

func (s *stubGenerator) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	s.parts = parts
	if s.err != nil {
		return nil, s.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(s.reply)}},
		}},
	}, nil
}

func openEndedQuestion() *model.Question {
	return &model.Question{
		ID:       7,
		Category: model.CategoryLeadership,
		Prompt:   "How do you handle a late employee?",
		Type:     model.QuestionTypeOpenEnded,
		Rubric:   strPtr("Private conversation, clear expectation, documented follow-up"),
		MaxScore: 20,
	}
}

func TestParseGradingResponse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		score    float64
		feedback string
	}{
		{"json", `{"score": 14, "feedback": "Good", "strengths": ["calm"], "improvements": []}`, 14, "Good"},
		{"fenced json", "```json\n{\"score\": 9.5, \"feedback\": \"Partial\"}\n```", 9.5, "Partial"},
		{"text layout", "Score: 12/20\nFeedback: Covers the basics.", 12, "Covers the basics."},
		{"clamped high", `{"score": 35, "feedback": "x"}`, 20, "x"},
		{"clamped low", "Score: -3\nFeedback: none", 0, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseGradingResponse(tt.raw, 20)
			require.NoError(t, err)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, 20, res.MaxScore)
			assert.Equal(t, tt.feedback, res.Feedback)
			assert.NotNil(t, res.Strengths)
			assert.NotNil(t, res.Improvements)
		})
	}

	_, err := parseGradingResponse("I cannot grade this.", 20)
	assert.Error(t, err)
	_, err = parseGradingResponse("Score: high\nFeedback: ok", 20)
	assert.Error(t, err)
}

func TestBuildGradingPrompt(t *testing.T) {
	q := openEndedQuestion()
	prompt := buildGradingPrompt(q, "", true)
	assert.Contains(t, prompt, q.Prompt)
	assert.Contains(t, prompt, *q.Rubric)
	assert.Contains(t, prompt, "(no text)")
	assert.Contains(t, prompt, "attached the image")
	assert.Contains(t, prompt, "number from 0 to 20")
}

func TestGeminiLLMService_GradeAnswer(t *testing.T) {
	gen := &stubGenerator{reply: `{"score": 16, "feedback": "Clear plan", "strengths": ["empathy"], "improvements": ["document it"]}`}
	svc := &geminiLLMService{model: gen, httpClient: http.DefaultClient}
	require.True(t, svc.Available())

	res, err := svc.GradeAnswer(context.Background(), quiz.GradingRequest{
		Question:   openEndedQuestion(),
		UserID:     uuid.New(),
		AnswerText: "Talk privately and agree on expectations.",
	})
	require.NoError(t, err)
	assert.Equal(t, 16.0, res.Score)
	assert.Equal(t, []string{"empathy"}, res.Strengths)
	require.Len(t, gen.parts, 1)

	_, err = svc.GradeAnswer(context.Background(), quiz.GradingRequest{Question: &model.Question{Type: model.QuestionTypeObjective}})
	assert.ErrorIs(t, err, quiz.ErrWrongQuestionType)

	gen.err = errors.New("quota exceeded")
	_, err = svc.GradeAnswer(context.Background(), quiz.GradingRequest{Question: openEndedQuestion(), AnswerText: "x"})
	assert.Error(t, err)
}

func TestGeminiLLMService_GradeAnswerWithImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer server.Close()

	gen := &stubGenerator{reply: "Score: 10\nFeedback: Photo shows the checklist."}
	svc := &geminiLLMService{model: gen, httpClient: server.Client()}

	res, err := svc.GradeAnswer(context.Background(), quiz.GradingRequest{
		Question: openEndedQuestion(),
		ImageURL: server.URL + "/answer",
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.Score)
	require.Len(t, gen.parts, 2)
	blob, ok := gen.parts[0].(genai.Blob)
	require.True(t, ok)
	assert.Equal(t, "image/png", blob.MIMEType)
}

func TestFetchImageData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.png":
			w.WriteHeader(http.StatusNotFound)
		case "/plain":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("hello"))
		default:
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte("jpegdata"))
		}
	}))
	defer server.Close()
	svc := &geminiLLMService{httpClient: server.Client()}

	data, mimeType, err := svc.fetchImageData(context.Background(), server.URL+"/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)
	assert.Equal(t, []byte("jpegdata"), data)

	_, _, err = svc.fetchImageData(context.Background(), server.URL+"/missing.png")
	assert.Error(t, err)
	_, _, err = svc.fetchImageData(context.Background(), server.URL+"/plain")
	assert.Error(t, err)
}

func TestNewGeminiLLMService_WithoutKeyIsUnavailable(t *testing.T) {
	svc, err := NewGeminiLLMService(&config.Config{})
	require.NoError(t, err)
	assert.False(t, svc.Available())

	_, err = svc.GradeAnswer(context.Background(), quiz.GradingRequest{Question: openEndedQuestion(), AnswerText: "x"})
	assert.ErrorIs(t, err, quiz.ErrGraderUnavailable)
}
