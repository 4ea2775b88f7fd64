package controller

import (
	"errors"
	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WrongQuestionController struct {
	WrongService *service.WrongQuestionService
}

func NewWrongQuestionController(wrongService *service.WrongQuestionService) *WrongQuestionController {
	return &WrongQuestionController{WrongService: wrongService}
}

// List godoc
// @Summary 错题本
// @Description 分页返回当前用户的错题，默认不含已掌握的
// @Tags 错题本
// @Produce  json
// @Security ApiKeyAuth
// @Param   includeMastered query bool false "包含已掌握"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/wrong-questions [get]
func (c *WrongQuestionController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))
	includeMastered := ctx.Query("includeMastered") == "true"

	items, total, err := c.WrongService.List(userID, includeMastered, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// MarkMastered godoc
// @Summary 标记已掌握
// @Tags 错题本
// @Produce  json
// @Security ApiKeyAuth
// @Param   questionId path int true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "错题记录不存在"
// @Router /api/wrong-questions/{questionId}/master [post]
func (c *WrongQuestionController) MarkMastered(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	questionID := util.MustParseUint(ctx.Param("questionId"))

	if err := c.WrongService.MarkMastered(userID, questionID); err != nil {
		if errors.Is(err, util.ErrWrongQuestionMissing) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Remove godoc
// @Summary 移出错题本
// @Tags 错题本
// @Produce  json
// @Security ApiKeyAuth
// @Param   questionId path int true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "错题记录不存在"
// @Router /api/wrong-questions/{questionId} [delete]
func (c *WrongQuestionController) Remove(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	questionID := util.MustParseUint(ctx.Param("questionId"))

	if err := c.WrongService.Remove(userID, questionID); err != nil {
		if errors.Is(err, util.ErrWrongQuestionMissing) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Practice godoc
// @Summary 错题重练
// @Description 取未掌握的错题对应的题目（不带答案由考试流程下发，这里返回完整题目供复习）
// @Tags 错题本
// @Produce  json
// @Security ApiKeyAuth
// @Param   count query int false "数量，默认10"
// @Success 200 {object} util.Response{data=[]service.QuestionResponse} "成功"
// @Router /api/wrong-questions/practice [get]
func (c *WrongQuestionController) Practice(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	count := int(util.MustParseUint(ctx.Query("count")))

	questions, err := c.WrongService.PracticeSet(userID, count)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}
