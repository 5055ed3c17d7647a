package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/quizdesk/config"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/quiz"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiLLMService grades open-ended answers against the question rubric.
type GeminiLLMService interface {
	quiz.AIGrader
	// Available reports whether an API key was configured.
	Available() bool
}

// contentGenerator is the part of *genai.GenerativeModel the grader uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type geminiLLMService struct {
	model      contentGenerator
	timeout    time.Duration
	httpClient *http.Client
}

const maxImageBytes = 10 << 20

var supportedMIMETypes = map[string]bool{
	"image/png": true, "image/jpeg": true, "image/webp": true,
	"image/gif": true, "image/heic": true, "image/heif": true,
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	svc := &geminiLLMService{
		timeout:    cfg.Gemini.GradingTimeout,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	if cfg.Gemini.ApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. AI grading is disabled.")
		return svc, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	gm := client.GenerativeModel(cfg.Gemini.Model)
	gm.ResponseMIMEType = "application/json"
	gm.SetTemperature(0.2)
	svc.model = gm
	log.Info().Str("model", cfg.Gemini.Model).Msg("Gemini grader initialized")
	return svc, nil
}

func (s *geminiLLMService) Available() bool {
	return s.model != nil
}

func (s *geminiLLMService) GradeAnswer(ctx context.Context, req quiz.GradingRequest) (*quiz.GradingResult, error) {
	if s.model == nil {
		return nil, quiz.ErrGraderUnavailable
	}
	if req.Question == nil || !req.Question.IsOpenEnded() {
		return nil, quiz.ErrWrongQuestionType
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var parts []genai.Part
	if req.ImageURL != "" {
		data, mimeType, err := s.fetchImageData(ctx, req.ImageURL)
		if err != nil {
			log.Error().Err(err).Str("imageURL", req.ImageURL).Msg("Failed to fetch answer image for grading")
			return nil, err
		}
		parts = append(parts, genai.Blob{MIMEType: mimeType, Data: data})
	}
	parts = append(parts, genai.Text(buildGradingPrompt(req.Question, req.AnswerText, req.ImageURL != "")))

	resp, err := s.model.GenerateContent(ctx, parts...)
	if err != nil {
		log.Error().Err(err).Uint("questionID", req.Question.ID).Msg("Gemini API error during grading")
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	result, err := parseGradingResponse(raw, req.Question.MaxScore)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse Gemini grading response")
		return nil, err
	}
	log.Info().
		Uint("questionID", req.Question.ID).
		Str("userID", req.UserID.String()).
		Float64("score", result.Score).
		Int("maxScore", result.MaxScore).
		Msg("Answer graded by Gemini")
	return result, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini returned no text content")
	}
	return sb.String(), nil
}

func buildGradingPrompt(q *model.Question, answerText string, hasImage bool) string {
	var b strings.Builder
	b.WriteString("You are an experienced trainer assessing answers written by store managers during internal training.\n")
	b.WriteString("Grade the manager's answer strictly against the rubric.\n\n")
	fmt.Fprintf(&b, "Category: %s\n", q.Category)
	if q.SubCategory != nil && *q.SubCategory != "" {
		fmt.Fprintf(&b, "Topic: %s\n", *q.SubCategory)
	}
	b.WriteString("Question:\n---\n")
	b.WriteString(q.Prompt)
	b.WriteString("\n---\n\nRubric:\n---\n")
	if q.Rubric != nil {
		b.WriteString(*q.Rubric)
	}
	b.WriteString("\n---\n\n")
	if q.ModelAnswer != nil && *q.ModelAnswer != "" {
		b.WriteString("Reference answer (for calibration, the manager does not need to match it word for word):\n---\n")
		b.WriteString(*q.ModelAnswer)
		b.WriteString("\n---\n\n")
	}
	b.WriteString("Manager's answer:\n---\n")
	if strings.TrimSpace(answerText) == "" {
		b.WriteString("(no text)")
	} else {
		b.WriteString(answerText)
	}
	b.WriteString("\n---\n")
	if hasImage {
		b.WriteString("The manager also attached the image provided above as part of the answer.\n")
	}
	fmt.Fprintf(&b, `
Respond with a single JSON object and nothing else:
{"score": <number from 0 to %d>, "feedback": "<two or three sentences>", "strengths": ["..."], "improvements": ["..."]}
`, q.MaxScore)
	return b.String()
}

type gradingPayload struct {
	Score        *float64 `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// parseGradingResponse reads the JSON grading payload, falling back to a
// "Score: ... Feedback: ..." text layout. The score is clamped to [0, maxScore].
func parseGradingResponse(raw string, maxScore int) (*quiz.GradingResult, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload gradingPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err == nil && payload.Score != nil {
		return &quiz.GradingResult{
			Score:        quiz.ClampScore(*payload.Score, maxScore),
			MaxScore:     maxScore,
			Feedback:     strings.TrimSpace(payload.Feedback),
			Strengths:    nonNil(payload.Strengths),
			Improvements: nonNil(payload.Improvements),
		}, nil
	}

	scoreStr, feedback, err := parseScoreAndFeedback(raw)
	if err != nil {
		return nil, err
	}
	score, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return nil, fmt.Errorf("could not parse score value %q from AI response: %w", scoreStr, err)
	}
	return &quiz.GradingResult{
		Score:        quiz.ClampScore(score, maxScore),
		MaxScore:     maxScore,
		Feedback:     feedback,
		Strengths:    []string{},
		Improvements: []string{},
	}, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func parseScoreAndFeedback(rawResponse string) (scoreStr string, feedbackStr string, err error) {
	const scorePrefix = "Score:"
	const feedbackPrefix = "Feedback:"

	scoreIndex := strings.Index(rawResponse, scorePrefix)
	if scoreIndex == -1 {
		return "", rawResponse, fmt.Errorf("response does not contain a score. Raw: %s", rawResponse)
	}
	rest := rawResponse[scoreIndex+len(scorePrefix):]
	line := rest
	if end := strings.Index(rest, "\n"); end != -1 {
		line = rest[:end]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", rawResponse, fmt.Errorf("score line is empty. Raw: %s", rawResponse)
	}
	// Accept "12", "12/20" and "12.5,".
	scoreStr = strings.TrimRight(strings.SplitN(fields[0], "/", 2)[0], ".,;")

	if idx := strings.Index(rest, feedbackPrefix); idx != -1 {
		feedbackStr = strings.TrimSpace(rest[idx+len(feedbackPrefix):])
	} else if end := strings.Index(rest, "\n"); end != -1 {
		feedbackStr = strings.TrimSpace(rest[end+1:])
	}
	return scoreStr, feedbackStr, nil
}

func (s *geminiLLMService) fetchImageData(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid image URL %s: %w", imageURL, err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image from URL %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch image (status %d) from URL %s", resp.StatusCode, imageURL)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image data from URL %s: %w", imageURL, err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image at %s exceeds %d bytes", imageURL, maxImageBytes)
	}

	mimeType := ""
	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		if parsed, _, perr := mime.ParseMediaType(contentType); perr == nil && strings.HasPrefix(parsed, "image/") {
			mimeType = parsed
		}
	}
	if mimeType == "" {
		ext := filepath.Ext(req.URL.Path)
		mimeType = mime.TypeByExtension(ext)
		if !strings.HasPrefix(mimeType, "image/") {
			return nil, "", fmt.Errorf("unsupported or undeterminable image MIME type for %s", imageURL)
		}
	}
	if !supportedMIMETypes[mimeType] {
		log.Warn().Str("mimeType", mimeType).Msg("Image MIME type may not be supported by Gemini.")
	}
	return data, mimeType, nil
}
