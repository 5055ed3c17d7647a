package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizdesk/internal/controller"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/service"
)

type SessionController struct {
	attemptService service.AttemptService
}

func NewSessionController(attemptService service.AttemptService) *SessionController {
	return &SessionController{attemptService: attemptService}
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Questions come from a category ("mixed" for all), a random sample or a pending retest assignment.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session body dto.StartSessionRequest true "Session scope"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Retest belongs to another manager"
// @Failure 404 {object} dto.ErrorResponse "No questions or unknown retest"
// @Failure 409 {object} dto.ErrorResponse "Retest already completed"
// @Router /sessions [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	var req dto.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.attemptService.StartSession(req)
	if err != nil {
		controller.RespondError(ctx, "Failed to start session", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetSession godoc
// @Summary Get a session
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired session"
// @Router /sessions/{session_id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	sessionID, ok := controller.UUIDParam(ctx, "session_id")
	if !ok {
		return
	}
	resp, err := c.attemptService.GetSession(sessionID)
	if err != nil {
		controller.RespondError(ctx, "Failed to get session", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DiscardSession godoc
// @Summary Discard a session
// @Description Drops the session and its answers. Nothing is saved.
// @Tags Sessions
// @Param session_id path string true "Session ID"
// @Success 204
// @Router /sessions/{session_id} [delete]
func (c *SessionController) DiscardSession(ctx *gin.Context) {
	sessionID, ok := controller.UUIDParam(ctx, "session_id")
	if !ok {
		return
	}
	c.attemptService.Discard(sessionID)
	ctx.Status(http.StatusNoContent)
}

// MoveCursor godoc
// @Summary Move the question cursor
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param cursor body dto.CursorRequest true "index or move (next, prev)"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sessions/{session_id}/cursor [put]
func (c *SessionController) MoveCursor(ctx *gin.Context) {
	sessionID, ok := controller.UUIDParam(ctx, "session_id")
	if !ok {
		return
	}
	var req dto.CursorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.attemptService.MoveCursor(sessionID, req)
	if err != nil {
		controller.RespondError(ctx, "Failed to move cursor", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ToggleOption godoc
// @Summary Toggle an option of an objective question
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Param index path int true "Question index in the session"
// @Param option path int true "Option index"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Session already submitted"
// @Router /sessions/{session_id}/questions/{index}/options/{option} [post]
func (c *SessionController) ToggleOption(ctx *gin.Context) {
	sessionID, ok := controller.UUIDParam(ctx, "session_id")
	if !ok {
		return
	}
	questionIndex, ok := controller.IntParam(ctx, "index")
	if !ok {
		return
	}
	optionIndex, ok := controller.IntParam(ctx, "option")
	if !ok {
		return
	}
	resp, err := c.attemptService.ToggleOption(sessionID, questionIndex, optionIndex)
	if err != nil {
		controller.RespondError(ctx, "Failed to select option", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SetAnswer godoc
// @Summary Set the answer of an open-ended question
// @Description Changing an answer discards its provisional AI grade.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param question_id path int true "Question ID"
// @Param answer body dto.AnswerRequest true "Answer text and/or image URL"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sessions/{session_id}/answers/{question_id} [put]
func (c *SessionController) SetAnswer(ctx *gin.Context) {
	sessionID, ok := controller.UUIDParam(ctx, "session_id")
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.attemptService.SetAnswer(sessionID, questionID, req)
	if err != nil {
		controller.RespondError(ctx, "Failed to save answer", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RequestGrading godoc
// @Summary Request a provisional AI grade
// @Description On failure the question is left in grading_failed and may be retried.
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Empty answer or objective question"
// @Failure 409 {object} dto.ErrorResponse "Grading already running"
// @Failure 502 {object} dto.ErrorResponse "AI grading failed"
// @Router /sessions/{session_id}/answers/{question_id}/grading [post]
func (c *SessionController) RequestGrading(ctx *gin.Context) {
	sessionID, ok := controller.UUIDParam(ctx, "session_id")
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	resp, err := c.attemptService.RequestGrading(ctx.Request.Context(), sessionID, questionID)
	if err != nil {
		if controller.StatusFor(err) == http.StatusInternalServerError {
			controller.RespondErrorWithStatus(ctx, http.StatusBadGateway, "AI grading failed, please retry", err)
			return
		}
		controller.RespondError(ctx, "Failed to request grading", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitSession godoc
// @Summary Submit a session
// @Description Grades remaining open-ended answers, scores the session and records the result. If recording fails the outcome is still returned with saved=false and a warning.
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Router /sessions/{session_id}/submit [post]
func (c *SessionController) SubmitSession(ctx *gin.Context) {
	sessionID, ok := controller.UUIDParam(ctx, "session_id")
	if !ok {
		return
	}
	resp, err := c.attemptService.Submit(ctx.Request.Context(), sessionID)
	if err != nil {
		controller.RespondError(ctx, "Failed to submit session", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
