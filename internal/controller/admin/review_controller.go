package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizdesk/internal/controller"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/service"
)

type ReviewController struct {
	reviewService     service.AdminReviewService
	submissionService service.TestSubmissionService
}

func NewReviewController(reviewService service.AdminReviewService, submissionService service.TestSubmissionService) *ReviewController {
	return &ReviewController{reviewService: reviewService, submissionService: submissionService}
}

// PendingQueue godoc
// @Summary (Admin) Open-ended answers awaiting review
// @Description Answers with status pending or ai_graded, oldest first.
// @Tags Admin - Review
// @Produce json
// @Success 200 {array} dto.SubjectiveAnswerResponse
// @Router /admin/subjective-answers/pending [get]
func (c *ReviewController) PendingQueue(ctx *gin.Context) {
	resp, err := c.reviewService.PendingQueue()
	if err != nil {
		controller.RespondError(ctx, "Failed to load review queue", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ResultAnswers godoc
// @Summary (Admin) Open-ended answers of one result
// @Tags Admin - Review
// @Produce json
// @Param result_id path int true "Result ID"
// @Success 200 {array} dto.SubjectiveAnswerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/results/{result_id}/subjective-answers [get]
func (c *ReviewController) ResultAnswers(ctx *gin.Context) {
	resultID, ok := controller.UintParam(ctx, "result_id")
	if !ok {
		return
	}
	resp, err := c.submissionService.ListSubjectiveAnswers(resultID)
	if err != nil {
		controller.RespondError(ctx, "Failed to load subjective answers", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GradePending godoc
// @Summary (Admin) Run AI grading on a pending answer
// @Tags Admin - Review
// @Produce json
// @Param answer_id path int true "Subjective answer ID"
// @Success 200 {object} dto.SubjectiveAnswerResponse
// @Failure 409 {object} dto.ErrorResponse "Answer is not pending"
// @Failure 503 {object} dto.ErrorResponse "AI grading unavailable"
// @Router /admin/subjective-answers/{answer_id}/ai-grade [post]
func (c *ReviewController) GradePending(ctx *gin.Context) {
	answerID, ok := controller.UintParam(ctx, "answer_id")
	if !ok {
		return
	}
	resp, err := c.reviewService.GradePending(ctx.Request.Context(), answerID)
	if err != nil {
		if controller.StatusFor(err) == http.StatusInternalServerError {
			controller.RespondErrorWithStatus(ctx, http.StatusBadGateway, "AI grading failed", err)
			return
		}
		controller.RespondError(ctx, "Failed to grade answer", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Approve godoc
// @Summary (Admin) Accept the AI score as final
// @Tags Admin - Review
// @Accept json
// @Produce json
// @Param answer_id path int true "Subjective answer ID"
// @Param review body dto.ApproveRequest true "Reviewer"
// @Success 200 {object} dto.SubjectiveAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "No AI score"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /admin/subjective-answers/{answer_id}/approve [post]
func (c *ReviewController) Approve(ctx *gin.Context) {
	answerID, ok := controller.UintParam(ctx, "answer_id")
	if !ok {
		return
	}
	var req dto.ApproveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.reviewService.Approve(answerID, req.AdminID)
	if err != nil {
		controller.RespondError(ctx, "Failed to approve answer", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Override godoc
// @Summary (Admin) Set a different final score
// @Description The score must lie in [0, max_score] of the question.
// @Tags Admin - Review
// @Accept json
// @Produce json
// @Param answer_id path int true "Subjective answer ID"
// @Param review body dto.OverrideRequest true "Score and feedback"
// @Success 200 {object} dto.SubjectiveAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Score out of range"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /admin/subjective-answers/{answer_id}/override [post]
func (c *ReviewController) Override(ctx *gin.Context) {
	answerID, ok := controller.UintParam(ctx, "answer_id")
	if !ok {
		return
	}
	var req dto.OverrideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.reviewService.Override(answerID, req)
	if err != nil {
		controller.RespondError(ctx, "Failed to override score", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
