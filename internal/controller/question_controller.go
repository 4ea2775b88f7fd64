package controller

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/parser"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/service"
	"exam_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	Cfg             *config.Config
}

func NewQuestionController(questionService *service.QuestionService, cfg *config.Config) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		Cfg:             cfg,
	}
}

// Create godoc
// @Summary 创建题目
// @Description 手工录入一道题目
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=service.QuestionResponse} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.QuestionService.Create(&req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, resp)
}

// Update godoc
// @Summary 更新题目
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body service.QuestionRequest true "题目信息"
// @Success 200 {object} util.Response{data=service.QuestionResponse} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.QuestionService.Update(id, &req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, resp)
}

// Delete godoc
// @Summary 删除题目
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.QuestionService.Delete(id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// BatchDeleteRequest 批量删除
type BatchDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// BatchDelete godoc
// @Summary 批量删除题目
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body BatchDeleteRequest true "题目ID列表"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/questions/batch-delete [post]
func (c *QuestionController) BatchDelete(ctx *gin.Context) {
	var req BatchDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.QuestionService.DeleteBatch(req.IDs); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": len(req.IDs)})
}

// Get godoc
// @Summary 题目详情
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=service.QuestionResponse} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	resp, err := c.QuestionService.GetByID(id)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

func filterFromQuery(ctx *gin.Context) repository.QuestionFilter {
	return repository.QuestionFilter{
		Type:       model.QuestionType(ctx.Query("type")),
		Subject:    ctx.Query("subject"),
		Difficulty: int(util.MustParseUint(ctx.Query("difficulty"))),
		Keyword:    ctx.Query("keyword"),
	}
}

// List godoc
// @Summary 题目列表
// @Description 按题型/科目/难度/关键词筛选，分页返回
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   type query string false "题型" Enums(single, multiple, truefalse, essay, fill)
// @Param   subject query string false "科目"
// @Param   difficulty query int false "难度 1-5"
// @Param   keyword query string false "标题/内容关键词"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	list, total, err := c.QuestionService.List(filterFromQuery(ctx), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  list,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Random godoc
// @Summary 随机抽题
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Param   type query string false "题型"
// @Param   subject query string false "科目"
// @Param   count query int false "数量，默认10，上限100"
// @Success 200 {object} util.Response{data=[]service.QuestionResponse} "成功"
// @Router /api/questions/random [get]
func (c *QuestionController) Random(ctx *gin.Context) {
	count := int(util.MustParseUint(ctx.Query("count")))
	list, err := c.QuestionService.Random(filterFromQuery(ctx), count)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Subjects godoc
// @Summary 科目列表
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]string} "成功"
// @Router /api/questions/subjects [get]
func (c *QuestionController) Subjects(ctx *gin.Context) {
	subjects, err := c.QuestionService.Subjects(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// Statistics godoc
// @Summary 题库统计
// @Description 总量、题型分布、科目分布
// @Tags 题库
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Statistics} "成功"
// @Router /api/admin/questions/statistics [get]
func (c *QuestionController) Statistics(ctx *gin.Context) {
	stats, err := c.QuestionService.GetStatistics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

func (c *QuestionController) readUpload(ctx *gin.Context, allowedExts []string) (string, []byte, bool) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return "", nil, false
	}

	maxBytes := int64(c.Cfg.Import.MaxFileSizeMB) << 20
	if file.Size > maxBytes {
		util.BadRequest(ctx, util.ErrFileTooLarge.Error())
		return "", nil, false
	}
	if !util.HasAllowedExtension(file.Filename, allowedExts) {
		util.BadRequest(ctx, util.ErrUnsupportedFileType.Error())
		return "", nil, false
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return "", nil, false
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		util.LogInternalError(ctx, err)
		return "", nil, false
	}
	return file.Filename, content, true
}

// Import godoc
// @Summary 导入题库文档
// @Description 上传文本格式的题库文档（.txt 或已转存为文本的 Word 文档），解析后批量入库
// @Tags 题库
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "题库文档"
// @Param   subject formData string false "科目，覆盖文档内声明"
// @Success 200 {object} util.Response{data=service.ImportResult} "成功"
// @Failure 400 {object} util.Response "文档格式不合法"
// @Router /api/admin/questions/import [post]
func (c *QuestionController) Import(ctx *gin.Context) {
	filename, content, ok := c.readUpload(ctx, util.AllowedDocumentExtensions)
	if !ok {
		return
	}

	result, err := c.QuestionService.ImportDocument(ctx.Request.Context(), filename, content, ctx.PostForm("subject"))
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			util.BadRequest(ctx, perr.Reason)
		} else if errors.Is(err, util.ErrDocumentLooksBinary) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// ImportExcel godoc
// @Summary 导入 Excel 题库
// @Description 按模板列顺序上传 .xlsx 表格，批量入库
// @Tags 题库
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "Excel 文件"
// @Param   subject formData string false "科目，覆盖表格内填写"
// @Success 200 {object} util.Response{data=service.ImportResult} "成功"
// @Failure 400 {object} util.Response "表格格式不合法"
// @Router /api/admin/questions/import-excel [post]
func (c *QuestionController) ImportExcel(ctx *gin.Context) {
	_, content, ok := c.readUpload(ctx, util.AllowedExcelExtensions)
	if !ok {
		return
	}

	result, err := c.QuestionService.ImportExcel(ctx.Request.Context(), bytes.NewReader(content), ctx.PostForm("subject"))
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			util.BadRequest(ctx, perr.Reason)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, result)
}

// TextTemplate godoc
// @Summary 下载文本导入模板
// @Tags 题库
// @Produce  plain
// @Security ApiKeyAuth
// @Success 200 {string} string "模板内容"
// @Router /api/admin/questions/template/text [get]
func (c *QuestionController) TextTemplate(ctx *gin.Context) {
	ctx.Header("Content-Disposition", `attachment; filename="question_template.txt"`)
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(c.QuestionService.TextTemplate()))
}

// ExcelTemplate godoc
// @Summary 下载 Excel 导入模板
// @Tags 题库
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} file "模板文件"
// @Router /api/admin/questions/template/excel [get]
func (c *QuestionController) ExcelTemplate(ctx *gin.Context) {
	f, err := c.QuestionService.ExcelTemplate()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("question_template_%s.xlsx", time.Now().Format(util.DateFormat))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Header("Content-Type", util.MimeExcelXlsx)
	if err := f.Write(ctx.Writer); err != nil {
		util.LogInternalError(ctx, err)
	}
}
