package user

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/controller"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/service"
	"github.com/rs/zerolog/log"
)

type ResultController struct {
	submissionService service.TestSubmissionService
	reviewService     service.WrongAnswerReviewService
	retestService     service.RetestService
}

func NewResultController(
	submissionService service.TestSubmissionService,
	reviewService service.WrongAnswerReviewService,
	retestService service.RetestService,
) *ResultController {
	return &ResultController{
		submissionService: submissionService,
		reviewService:     reviewService,
		retestService:     retestService,
	}
}

// resultsPath is the listing a user lands on when a review target is missing.
func resultsPath(userID uuid.UUID) string {
	return fmt.Sprintf("/api/v1/users/%s/results", userID)
}

// ListResults godoc
// @Summary List a user's results
// @Tags Results
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} dto.TestResultSummary
// @Router /users/{user_id}/results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	userID, ok := controller.UUIDParam(ctx, "user_id")
	if !ok {
		return
	}
	resp, err := c.submissionService.ListUserResults(userID)
	if err != nil {
		controller.RespondError(ctx, "Failed to list results", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetResult godoc
// @Summary Get one result with its open-ended answers
// @Tags Results
// @Produce json
// @Param result_id path int true "Result ID"
// @Success 200 {object} dto.TestResultDetail
// @Failure 404 {object} dto.ErrorResponse
// @Router /results/{result_id} [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	resultID, ok := controller.UintParam(ctx, "result_id")
	if !ok {
		return
	}
	resp, err := c.submissionService.GetResult(resultID)
	if err != nil {
		controller.RespondError(ctx, "Failed to get result", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListRetests godoc
// @Summary Pending retests of a manager
// @Tags Retests
// @Produce json
// @Param user_id path string true "Manager ID"
// @Success 200 {array} dto.RetestResponse
// @Router /users/{user_id}/retests [get]
func (c *ResultController) ListRetests(ctx *gin.Context) {
	userID, ok := controller.UUIDParam(ctx, "user_id")
	if !ok {
		return
	}
	resp, err := c.retestService.ListPendingForManager(userID)
	if err != nil {
		controller.RespondError(ctx, "Failed to list retests", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReviewPage godoc
// @Summary Objective questions for wrong-answer review
// @Description Answer keys are included so the client can mark missed questions. An unknown result redirects to the results listing.
// @Tags Review
// @Produce json
// @Param result_id path int true "Result ID"
// @Param user_id query string true "User ID"
// @Param question_ids query string false "Comma separated question ids"
// @Success 200 {object} dto.ReviewPageResponse
// @Success 303 "Result not found"
// @Router /results/{result_id}/review [get]
func (c *ResultController) ReviewPage(ctx *gin.Context) {
	var query dto.ReviewPageQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.BindError(ctx, err)
		return
	}
	userID := uuid.MustParse(query.UserID)
	resultID, ok := controller.UintParam(ctx, "result_id")
	if !ok {
		return
	}
	questionIDs, err := controller.ParseIDList(query.QuestionIDs)
	if err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.reviewService.ReviewQuestions(resultID, userID, questionIDs)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			log.Warn().Err(err).Uint("resultID", resultID).Msg("Review target missing, redirecting to results")
			ctx.Redirect(http.StatusSeeOther, resultsPath(userID))
			return
		}
		controller.RespondError(ctx, "Failed to load review", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitReview godoc
// @Summary Record wrong-answer review attempts
// @Description One record per objective question. The stored result is never changed. An unknown result redirects to the results listing.
// @Tags Review
// @Accept json
// @Produce json
// @Param result_id path int true "Result ID"
// @Param review body dto.SubmitReviewRequest true "Selected options per question"
// @Success 201 {object} dto.SubmitReviewResponse
// @Success 303 "Result not found"
// @Failure 400 {object} dto.ErrorResponse
// @Router /results/{result_id}/review [post]
func (c *ResultController) SubmitReview(ctx *gin.Context) {
	resultID, ok := controller.UintParam(ctx, "result_id")
	if !ok {
		return
	}
	var req dto.SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.reviewService.SubmitReview(resultID, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			log.Warn().Err(err).Uint("resultID", resultID).Msg("Review target missing, redirecting to results")
			ctx.Redirect(http.StatusSeeOther, resultsPath(req.UserID))
			return
		}
		controller.RespondError(ctx, "Failed to submit review", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ReviewHistory godoc
// @Summary List wrong-answer review attempts of a result
// @Tags Review
// @Produce json
// @Param result_id path int true "Result ID"
// @Param user_id query string true "User ID"
// @Success 200 {array} dto.WrongAnswerReviewResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /results/{result_id}/review/history [get]
func (c *ResultController) ReviewHistory(ctx *gin.Context) {
	var query dto.ReviewHistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resultID, ok := controller.UintParam(ctx, "result_id")
	if !ok {
		return
	}
	resp, err := c.reviewService.ListReviews(resultID, uuid.MustParse(query.UserID))
	if err != nil {
		controller.RespondError(ctx, "Failed to list reviews", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
