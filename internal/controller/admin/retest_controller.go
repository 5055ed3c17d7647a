package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizdesk/internal/controller"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/service"
)

type RetestController struct {
	retestService service.RetestService
}

func NewRetestController(retestService service.RetestService) *RetestController {
	return &RetestController{retestService: retestService}
}

// CreateRetest godoc
// @Summary (Admin) Assign a retest to a manager
// @Tags Admin - Retests
// @Accept json
// @Produce json
// @Param retest body dto.RetestCreateRequest true "Assignment"
// @Success 201 {object} dto.RetestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/retests [post]
func (c *RetestController) CreateRetest(ctx *gin.Context) {
	var req dto.RetestCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.retestService.CreateAssignment(req)
	if err != nil {
		controller.RespondError(ctx, "Failed to create retest", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListRetests godoc
// @Summary (Admin) List retest assignments
// @Tags Admin - Retests
// @Produce json
// @Param status query string false "pending or completed"
// @Success 200 {array} dto.RetestResponse
// @Router /admin/retests [get]
func (c *RetestController) ListRetests(ctx *gin.Context) {
	var query dto.RetestListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.retestService.ListAssignments(query.Status)
	if err != nil {
		controller.RespondError(ctx, "Failed to list retests", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
