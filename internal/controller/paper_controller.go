package controller

import (
	"errors"
	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaperController struct {
	PaperService *service.PaperService
}

func NewPaperController(paperService *service.PaperService) *PaperController {
	return &PaperController{PaperService: paperService}
}

// Create godoc
// @Summary 创建试卷
// @Description 创建试卷并配置题目与分值
// @Tags 试卷
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.PaperRequest true "试卷信息"
// @Success 201 {object} util.Response{data=model.Paper} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/papers [post]
func (c *PaperController) Create(ctx *gin.Context) {
	var req service.PaperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	paper, err := c.PaperService.Create(&req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, paper)
}

// Update godoc
// @Summary 更新试卷
// @Tags 试卷
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "试卷ID"
// @Param   body body service.PaperRequest true "试卷信息"
// @Success 200 {object} util.Response{data=model.Paper} "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/admin/papers/{id} [put]
func (c *PaperController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.PaperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	paper, err := c.PaperService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPaperNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestionNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, paper)
}

// Delete godoc
// @Summary 删除试卷
// @Tags 试卷
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "试卷ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/admin/papers/{id} [delete]
func (c *PaperController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.PaperService.Delete(id); err != nil {
		if errors.Is(err, util.ErrPaperNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Get godoc
// @Summary 试卷详情
// @Tags 试卷
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "试卷ID"
// @Success 200 {object} util.Response{data=service.PaperResponse} "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/papers/{id} [get]
func (c *PaperController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	resp, err := c.PaperService.GetByID(id)
	if err != nil {
		if errors.Is(err, util.ErrPaperNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// List godoc
// @Summary 试卷列表
// @Tags 试卷
// @Produce  json
// @Security ApiKeyAuth
// @Param   subject query string false "科目"
// @Param   active query bool false "只看启用的试卷"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/papers [get]
func (c *PaperController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))
	onlyActive := ctx.Query("active") == "true"

	papers, total, err := c.PaperService.List(ctx.Query("subject"), onlyActive, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  papers,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
