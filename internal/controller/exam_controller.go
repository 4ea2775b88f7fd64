package controller

import (
	"errors"
	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}

// Start godoc
// @Summary 开始考试或练习
// @Description 指定试卷开始考试，或不带试卷按条件随机抽题练习
// @Tags 考试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.StartExamRequest true "开考参数"
// @Success 200 {object} util.Response{data=service.StartExamResponse} "成功"
// @Failure 400 {object} util.Response "试卷不可用"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/exams/start [post]
func (c *ExamController) Start(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.StartExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ExamService.Start(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPaperNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPaperNotAvailable):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// SubmitAnswer godoc
// @Summary 提交单题作答
// @Description 自动评分并保存；同一题重复提交覆盖旧作答；练习模式返回解析
// @Tags 考试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "考试记录ID"
// @Param   body body service.SubmitAnswerRequest true "作答"
// @Success 200 {object} util.Response{data=service.SubmitAnswerResponse} "成功"
// @Failure 400 {object} util.Response "考试已结束"
// @Failure 403 {object} util.Response "无权操作该考试"
// @Failure 404 {object} util.Response "考试或题目不存在"
// @Router /api/exams/{id}/answers [post]
func (c *ExamController) SubmitAnswer(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	recordID := util.MustParseUint(ctx.Param("id"))

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ExamService.SubmitAnswer(userID, recordID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrExamAlreadyFinished):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// Finish godoc
// @Summary 交卷
// @Description 汇总得分、判定是否及格并关闭考试
// @Tags 考试
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "考试记录ID"
// @Success 200 {object} util.Response{data=service.FinishResponse} "成功"
// @Failure 400 {object} util.Response "考试已结束"
// @Failure 403 {object} util.Response "无权操作该考试"
// @Failure 404 {object} util.Response "考试不存在"
// @Router /api/exams/{id}/finish [post]
func (c *ExamController) Finish(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	recordID := util.MustParseUint(ctx.Param("id"))

	resp, err := c.ExamService.Finish(userID, recordID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrExamAlreadyFinished):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// Detail godoc
// @Summary 考试详情
// @Description 考后逐题回顾，含标准答案与解析
// @Tags 考试
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "考试记录ID"
// @Success 200 {object} util.Response{data=service.ExamDetailResponse} "成功"
// @Failure 403 {object} util.Response "无权查看该考试"
// @Failure 404 {object} util.Response "考试不存在"
// @Router /api/exams/{id} [get]
func (c *ExamController) Detail(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	recordID := util.MustParseUint(ctx.Param("id"))

	resp, err := c.ExamService.GetDetail(userID, recordID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// History godoc
// @Summary 考试历史
// @Tags 考试
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/exams [get]
func (c *ExamController) History(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	records, total, err := c.ExamService.History(userID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  records,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
