package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/parser"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"
	"exam_admin_backend/pkg/logger"
	"exam_admin_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const subjectsCacheKey = "question:subjects"

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	Storage      *StorageService
	Redis        *redis.Client
	Cfg          *config.Config
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	storage *StorageService,
	rdb *redis.Client,
	cfg *config.Config,
) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		Storage:      storage,
		Redis:        rdb,
		Cfg:          cfg,
	}
}

// QuestionRequest 创建/更新题目的请求体
type QuestionRequest struct {
	Type          model.QuestionType `json:"type" binding:"required"`
	Title         string             `json:"title"`
	Content       string             `json:"content" binding:"required"`
	Options       []model.Option     `json:"options"`
	CorrectAnswer string             `json:"correctAnswer" binding:"required"`
	Explanation   string             `json:"explanation"`
	Difficulty    int                `json:"difficulty"`
	Subject       string             `json:"subject"`
	Chapter       string             `json:"chapter"`
}

// QuestionResponse 返回给前端的题目，选项已解码
type QuestionResponse struct {
	ID            uint               `json:"id"`
	Type          model.QuestionType `json:"type"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	Options       []model.Option     `json:"options"`
	CorrectAnswer string             `json:"correctAnswer"`
	Explanation   string             `json:"explanation"`
	Difficulty    int                `json:"difficulty"`
	Subject       string             `json:"subject"`
	Chapter       string             `json:"chapter"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func toQuestionResponse(q *model.Question) QuestionResponse {
	opts, err := q.DecodeOptions()
	if err != nil {
		opts = []model.Option{}
	}
	return QuestionResponse{
		ID:            q.ID,
		Type:          q.Type,
		Title:         q.Title,
		Content:       q.Content,
		Options:       opts,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    q.Difficulty,
		Subject:       q.Subject,
		Chapter:       q.Chapter,
		CreatedAt:     q.CreatedAt,
	}
}

func toQuestionResponses(qs []model.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(qs))
	for i := range qs {
		out[i] = toQuestionResponse(&qs[i])
	}
	return out
}

func (s *QuestionService) buildModel(req *QuestionRequest) (*model.Question, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("不支持的题型: %s", req.Type)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		// 未显式给标题时从内容派生
		title = parser.DeriveTitle(req.Content)
	}

	opts, err := model.EncodeOptions(req.Options)
	if err != nil {
		return nil, err
	}

	difficulty := req.Difficulty
	if difficulty < 1 || difficulty > 5 {
		difficulty = 1
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = parser.DefaultSubject
	}

	return &model.Question{
		Type:          req.Type,
		Title:         title,
		Content:       req.Content,
		Options:       opts,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Difficulty:    difficulty,
		Subject:       subject,
		Chapter:       req.Chapter,
	}, nil
}

func (s *QuestionService) Create(req *QuestionRequest) (*QuestionResponse, error) {
	q, err := s.buildModel(req)
	if err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	s.invalidateSubjectsCache()
	resp := toQuestionResponse(q)
	return &resp, nil
}

func (s *QuestionService) Update(id uint, req *QuestionRequest) (*QuestionResponse, error) {
	existing, err := s.QuestionRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	q, err := s.buildModel(req)
	if err != nil {
		return nil, err
	}
	q.BaseModel = existing.BaseModel

	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	s.invalidateSubjectsCache()
	resp := toQuestionResponse(q)
	return &resp, nil
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.QuestionRepo.FindByID(id); err == gorm.ErrRecordNotFound {
		return util.ErrQuestionNotFound
	} else if err != nil {
		return err
	}
	if err := s.QuestionRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateSubjectsCache()
	return nil
}

func (s *QuestionService) DeleteBatch(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.QuestionRepo.DeleteBatch(ids); err != nil {
		return err
	}
	s.invalidateSubjectsCache()
	return nil
}

func (s *QuestionService) GetByID(id uint) (*QuestionResponse, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	resp := toQuestionResponse(q)
	return &resp, nil
}

func (s *QuestionService) List(f repository.QuestionFilter, page, limit int) ([]QuestionResponse, int64, error) {
	qs, total, err := s.QuestionRepo.FindWithPagination(f, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toQuestionResponses(qs), total, nil
}

func (s *QuestionService) Random(f repository.QuestionFilter, count int) ([]QuestionResponse, error) {
	if count < 1 {
		count = 10
	}
	if count > 100 {
		count = 100
	}
	qs, err := s.QuestionRepo.FindRandom(f, count)
	if err != nil {
		return nil, err
	}
	return toQuestionResponses(qs), nil
}

// Subjects 科目列表，Redis 缓存 10 分钟
func (s *QuestionService) Subjects(ctx context.Context) ([]string, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, subjectsCacheKey).Result()
		if err == nil && cached != "" {
			var subjects []string
			if json.Unmarshal([]byte(cached), &subjects) == nil {
				return subjects, nil
			}
		}
	}

	subjects, err := s.QuestionRepo.ListSubjects()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(subjects); err == nil {
			s.Redis.Set(ctx, subjectsCacheKey, data, 10*time.Minute)
		}
	}
	return subjects, nil
}

func (s *QuestionService) invalidateSubjectsCache() {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), subjectsCacheKey)
	}
}

// Statistics 题库总量、题型分布、科目分布
type Statistics struct {
	Total     int64                     `json:"total"`
	ByType    []repository.TypeCount    `json:"byType"`
	BySubject []repository.SubjectCount `json:"bySubject"`
}

func (s *QuestionService) GetStatistics() (*Statistics, error) {
	total, err := s.QuestionRepo.CountAll()
	if err != nil {
		return nil, err
	}
	byType, err := s.QuestionRepo.CountByType()
	if err != nil {
		return nil, err
	}
	bySubject, err := s.QuestionRepo.CountBySubject()
	if err != nil {
		return nil, err
	}
	return &Statistics{Total: total, ByType: byType, BySubject: bySubject}, nil
}

// ImportResult 文档导入的结果汇总
type ImportResult struct {
	Imported  int                `json:"imported"`
	Questions []QuestionResponse `json:"questions"`
}

// ImportDocument 解析上传的题库文档文本并入库。
// subject 非空时覆盖文档内的科目声明；原始文件归档到对象存储。
func (s *QuestionService) ImportDocument(ctx context.Context, filename string, content []byte, subject string) (*ImportResult, error) {
	text := string(content)

	// 二进制文件（如未转换的 .doc）当文本读时乱码比例会很高
	if ratio := util.BinaryRatio(text); ratio > s.Cfg.Import.MaxBinaryRatio {
		logger.Log.Warn("Rejecting binary-looking document",
			zap.String("filename", filename),
			zap.Float64("binaryRatio", ratio))
		return nil, util.ErrDocumentLooksBinary
	}

	parsed, err := parser.ParseDocument(text)
	if err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(parsed))
	for _, p := range parsed {
		opts, err := model.EncodeOptions(p.Options)
		if err != nil {
			monitoring.ImportedQuestions.WithLabelValues(string(p.Type), "invalid").Inc()
			continue
		}
		q := model.Question{
			Type:          p.Type,
			Title:         p.Title,
			Content:       p.Content,
			Options:       opts,
			CorrectAnswer: p.CorrectAnswer,
			Explanation:   p.Explanation,
			Difficulty:    p.Difficulty,
			Subject:       p.Subject,
			Chapter:       p.Chapter,
		}
		if subject != "" {
			q.Subject = subject
		}
		questions = append(questions, q)
		monitoring.ImportedQuestions.WithLabelValues(string(p.Type), "parsed").Inc()
	}

	if err := s.QuestionRepo.CreateBatch(questions); err != nil {
		return nil, err
	}
	s.invalidateSubjectsCache()

	// 归档原始文件，失败只记日志不影响导入结果
	archiveName := fmt.Sprintf("imports/%s%s", model.GenerateUUID(), filepath.Ext(filename))
	if _, err := s.Storage.Upload(ctx, archiveName, strings.NewReader(text), int64(len(content)), util.MimePlainText); err != nil {
		logger.Log.Warn("Failed to archive imported document",
			zap.String("filename", filename),
			zap.Error(err))
	}

	logger.Log.Info("Document import completed",
		zap.String("filename", filename),
		zap.Int("imported", len(questions)))

	return &ImportResult{
		Imported:  len(questions),
		Questions: toQuestionResponses(questions),
	}, nil
}

// excel 模板列顺序
var excelColumns = []string{"题型", "题目标题", "题目内容", "选项A", "选项B", "选项C", "选项D", "选项E", "选项F", "正确答案", "解析", "难度", "科目", "章节"}

// 表头别名，中英文均可
var excelColumnAliases = map[string]string{
	"题型": "type", "type": "type",
	"题目标题": "title", "标题": "title", "title": "title",
	"题目内容": "content", "内容": "content", "content": "content",
	"选项a": "optionA", "optiona": "optionA",
	"选项b": "optionB", "optionb": "optionB",
	"选项c": "optionC", "optionc": "optionC",
	"选项d": "optionD", "optiond": "optionD",
	"选项e": "optionE", "optione": "optionE",
	"选项f": "optionF", "optionf": "optionF",
	"正确答案": "answer", "答案": "answer", "answer": "answer",
	"解析": "explanation", "explanation": "explanation",
	"难度": "difficulty", "difficulty": "difficulty",
	"科目": "subject", "subject": "subject",
	"章节": "chapter", "chapter": "chapter",
}

var excelTypeNames = map[string]model.QuestionType{
	"单选题": model.TypeSingle, "single": model.TypeSingle,
	"多选题": model.TypeMultiple, "multiple": model.TypeMultiple,
	"判断题": model.TypeTrueFalse, "truefalse": model.TypeTrueFalse,
	"简答题": model.TypeEssay, "essay": model.TypeEssay,
	"填空题": model.TypeFill, "fill": model.TypeFill,
}

// ImportExcel 读取 Excel 题目并入库，首行为表头，列顺序随表头走
func (s *QuestionService) ImportExcel(ctx context.Context, reader io.Reader, subject string) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法读取 Excel 文件: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &parser.ParseError{
			Reason: "未找到有效的题目数据，请检查表格是否按模板填写",
		}
	}

	// 表头定位各字段所在列
	colIndex := map[string]int{}
	for i, h := range rows[0] {
		if field, ok := excelColumnAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			colIndex[field] = i
		}
	}

	cell := func(row []string, field string) string {
		i, ok := colIndex[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var questions []model.Question
	for i, row := range rows {
		if i == 0 {
			continue
		}

		qType, ok := excelTypeNames[strings.ToLower(cell(row, "type"))]
		if !ok {
			qType, ok = excelTypeNames[cell(row, "type")]
		}
		if !ok {
			monitoring.ImportedQuestions.WithLabelValues("unknown", "invalid").Inc()
			continue
		}

		content := cell(row, "content")
		answer := cell(row, "answer")
		if content == "" || answer == "" {
			monitoring.ImportedQuestions.WithLabelValues(string(qType), "invalid").Inc()
			continue
		}

		var opts []model.Option
		for _, key := range []string{"A", "B", "C", "D", "E", "F"} {
			if v := cell(row, "option"+key); v != "" {
				opts = append(opts, model.Option{Key: key, Value: v})
			}
		}
		if qType == model.TypeTrueFalse && len(opts) == 0 {
			opts = []model.Option{{Key: "A", Value: "正确"}, {Key: "B", Value: "错误"}}
		}

		title := cell(row, "title")
		if title == "" {
			title = parser.DeriveTitle(content)
		}

		draft := parser.Question{
			Type:          qType,
			Content:       content,
			Options:       opts,
			CorrectAnswer: answer,
			Title:         title,
		}
		if !parser.Validate(&draft) {
			monitoring.ImportedQuestions.WithLabelValues(string(qType), "invalid").Inc()
			continue
		}

		encoded, err := model.EncodeOptions(opts)
		if err != nil {
			continue
		}

		difficulty := int(util.MustParseUint(cell(row, "difficulty")))
		if difficulty < 1 || difficulty > 5 {
			difficulty = 1
		}
		rowSubject := cell(row, "subject")
		if subject != "" {
			rowSubject = subject
		}
		if rowSubject == "" {
			rowSubject = parser.DefaultSubject
		}

		questions = append(questions, model.Question{
			Type:          qType,
			Title:         title,
			Content:       content,
			Options:       encoded,
			CorrectAnswer: answer,
			Explanation:   cell(row, "explanation"),
			Difficulty:    difficulty,
			Subject:       rowSubject,
			Chapter:       cell(row, "chapter"),
		})
		monitoring.ImportedQuestions.WithLabelValues(string(qType), "parsed").Inc()
	}

	if len(questions) == 0 {
		return nil, &parser.ParseError{
			Reason: "未找到有效的题目数据，请检查表格是否按模板填写",
		}
	}

	if err := s.QuestionRepo.CreateBatch(questions); err != nil {
		return nil, err
	}
	s.invalidateSubjectsCache()

	logger.Log.Info("Excel import completed", zap.Int("imported", len(questions)))

	return &ImportResult{
		Imported:  len(questions),
		Questions: toQuestionResponses(questions),
	}, nil
}

// ExcelTemplate 生成导入模板工作簿，含表头和一行示例
func (s *QuestionService) ExcelTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, col := range excelColumns {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cellName, col); err != nil {
			return nil, err
		}
	}

	example := []interface{}{"单选题", "", "天空是什么颜色？", "蓝色", "红色", "绿色", "黄色", "", "", "A", "天空因瑞利散射呈蓝色", 1, "常识", ""}
	for i, v := range example {
		cellName, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cellName, v); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// TextTemplate 文本导入模板
func (s *QuestionService) TextTemplate() string {
	return strings.Join([]string{
		"科目：示例科目",
		"",
		"1.【单选题】天空是什么颜色？",
		"A. 蓝色",
		"B. 红色",
		"C. 绿色",
		"D. 黄色",
		"答案：A",
		"解析：天空因瑞利散射呈蓝色",
		"",
		"2.【判断题】地球绕着太阳转。",
		"答案：A",
		"",
		"3.【填空题】一年有___个月。",
		"答案：12",
		"",
		"4.【简答题】请简述什么是响应式设计？",
		"答案：响应式设计是一种让网页在不同设备上都能良好展示的设计方法",
	}, "\n")
}
