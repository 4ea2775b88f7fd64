package service

import (
	"time"

	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/grader"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"
	"exam_admin_backend/pkg/logger"
	"exam_admin_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo     *repository.ExamRepository
	PaperRepo    *repository.PaperRepository
	QuestionRepo *repository.QuestionRepository
	WrongRepo    *repository.WrongQuestionRepository
	Evaluator    *grader.Evaluator
	Cfg          *config.Config
}

func NewExamService(
	examRepo *repository.ExamRepository,
	paperRepo *repository.PaperRepository,
	questionRepo *repository.QuestionRepository,
	wrongRepo *repository.WrongQuestionRepository,
	cfg *config.Config,
) *ExamService {
	return &ExamService{
		ExamRepo:     examRepo,
		PaperRepo:    paperRepo,
		QuestionRepo: questionRepo,
		WrongRepo:    wrongRepo,
		Evaluator:    grader.NewEvaluator(cfg.Grading),
		Cfg:          cfg,
	}
}

// SetPolicy 替换评分策略，配置热更新时由上层回调触发
func (s *ExamService) SetPolicy(policy grader.Policy) {
	s.Evaluator = grader.NewEvaluator(policy)
}

// StartExamRequest 开始考试；PaperID 为空表示随机练习
type StartExamRequest struct {
	PaperID *uint              `json:"paperId"`
	Type    string             `json:"type"`
	Subject string             `json:"subject"`
	QType   model.QuestionType `json:"questionType"`
	Count   int                `json:"count"`
}

// ExamQuestionView 考试中下发的题目，不带答案和解析
type ExamQuestionView struct {
	ID         uint               `json:"id"`
	Type       model.QuestionType `json:"type"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Options    []model.Option     `json:"options"`
	Difficulty int                `json:"difficulty"`
	Subject    string             `json:"subject"`
	Score      float64            `json:"score"`
}

type StartExamResponse struct {
	RecordID  uint               `json:"recordId"`
	Duration  int                `json:"duration"` // 分钟，0 表示不限时
	Questions []ExamQuestionView `json:"questions"`
}

func stripAnswers(qs []model.Question, scores map[uint]float64, defaultScore float64) []ExamQuestionView {
	views := make([]ExamQuestionView, len(qs))
	for i := range qs {
		q := &qs[i]
		opts, err := q.DecodeOptions()
		if err != nil {
			opts = []model.Option{}
		}
		score, ok := scores[q.ID]
		if !ok {
			score = defaultScore
		}
		views[i] = ExamQuestionView{
			ID:         q.ID,
			Type:       q.Type,
			Title:      q.Title,
			Content:    q.Content,
			Options:    opts,
			Difficulty: q.Difficulty,
			Subject:    q.Subject,
			Score:      score,
		}
	}
	return views
}

// Start 开始一场考试或练习
func (s *ExamService) Start(userID uint, req *StartExamRequest) (*StartExamResponse, error) {
	examType := req.Type
	if examType != model.ExamTypePractice {
		examType = model.ExamTypeExam
	}

	record := &model.ExamRecord{
		UserID:    userID,
		Type:      examType,
		Status:    model.ExamStatusOngoing,
		StartedAt: time.Now(),
	}

	var questions []model.Question
	scores := map[uint]float64{}
	duration := 0

	if req.PaperID != nil {
		paper, err := s.PaperRepo.FindByID(*req.PaperID)
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrPaperNotFound
		}
		if err != nil {
			return nil, err
		}
		if !paperAvailable(paper, time.Now()) {
			return nil, util.ErrPaperNotAvailable
		}

		links, err := s.PaperRepo.FindQuestionLinks(paper.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]uint, len(links))
		for i, l := range links {
			ids[i] = l.QuestionID
			scores[l.QuestionID] = l.Score
		}
		questions, err = s.QuestionRepo.FindByIDs(ids)
		if err != nil {
			return nil, err
		}
		// 还原卷面顺序
		byID := make(map[uint]model.Question, len(questions))
		for _, q := range questions {
			byID[q.ID] = q
		}
		ordered := questions[:0]
		for _, l := range links {
			if q, ok := byID[l.QuestionID]; ok {
				ordered = append(ordered, q)
			}
		}
		questions = ordered

		record.PaperID = &paper.ID
		duration = paper.Duration
	} else {
		count := req.Count
		if count < 1 {
			count = 10
		}
		var err error
		questions, err = s.QuestionRepo.FindRandom(repository.QuestionFilter{
			Type:    req.QType,
			Subject: req.Subject,
		}, count)
		if err != nil {
			return nil, err
		}
	}

	if err := s.ExamRepo.CreateRecord(record); err != nil {
		return nil, err
	}

	return &StartExamResponse{
		RecordID:  record.ID,
		Duration:  duration,
		Questions: stripAnswers(questions, scores, s.Cfg.Grading.DefaultScore),
	}, nil
}

func paperAvailable(p *model.Paper, now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.VisibleFrom != nil && now.Before(*p.VisibleFrom) {
		return false
	}
	if p.VisibleTo != nil && now.After(*p.VisibleTo) {
		return false
	}
	return true
}

// SubmitAnswerRequest 单题作答；选择题走 Choices，其余走 Answer
type SubmitAnswerRequest struct {
	QuestionID uint     `json:"questionId" binding:"required"`
	Answer     string   `json:"answer"`
	Choices    []string `json:"choices"`
	AnswerTime *int     `json:"answerTime"`
}

type SubmitAnswerResponse struct {
	IsCorrect   bool    `json:"isCorrect"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation,omitempty"`
}

// SubmitAnswer 评分并落库单题作答；练习模式立即回传解析
func (s *ExamService) SubmitAnswer(userID, recordID uint, req *SubmitAnswerRequest) (*SubmitAnswerResponse, error) {
	record, err := s.ExamRepo.FindRecordByID(recordID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if record.Status != model.ExamStatusOngoing {
		return nil, util.ErrExamAlreadyFinished
	}

	question, err := s.QuestionRepo.FindByID(req.QuestionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	score := s.questionScore(record, question.ID)

	var sub grader.Submission
	if len(req.Choices) > 0 {
		sub = grader.ChoicesSubmission(req.Choices)
	} else {
		sub = grader.TextSubmission(req.Answer)
	}

	result, err := s.Evaluator.Evaluate(grader.Question{
		Type:          question.Type,
		CorrectAnswer: question.CorrectAnswer,
		Score:         score,
	}, sub)
	if err != nil {
		return nil, err
	}

	verdict := "incorrect"
	if result.IsCorrect {
		verdict = "correct"
	}
	monitoring.GradedAnswers.WithLabelValues(string(question.Type), verdict).Inc()

	answer := &model.AnswerRecord{
		ExamRecordID: record.ID,
		QuestionID:   question.ID,
		UserAnswer:   sub.Text(),
		IsCorrect:    result.IsCorrect,
		Score:        result.Score,
		AnswerTime:   req.AnswerTime,
	}
	if err := s.ExamRepo.UpsertAnswer(answer); err != nil {
		return nil, err
	}

	if !result.IsCorrect {
		if err := s.WrongRepo.Record(userID, question.ID); err != nil {
			logger.Log.Warn("Failed to record wrong question",
				zap.Uint("userId", userID),
				zap.Uint("questionId", question.ID),
				zap.Error(err))
		}
	}

	resp := &SubmitAnswerResponse{
		IsCorrect: result.IsCorrect,
		Score:     result.Score,
	}
	if record.Type == model.ExamTypePractice {
		resp.Explanation = question.Explanation
	}
	return resp, nil
}

// questionScore 试卷题目取卷面分值，随机练习用缺省分值
func (s *ExamService) questionScore(record *model.ExamRecord, questionID uint) float64 {
	if record.PaperID == nil {
		return s.Cfg.Grading.DefaultScore
	}
	links, err := s.PaperRepo.FindQuestionLinks(*record.PaperID)
	if err != nil {
		return s.Cfg.Grading.DefaultScore
	}
	for _, l := range links {
		if l.QuestionID == questionID {
			return l.Score
		}
	}
	return s.Cfg.Grading.DefaultScore
}

// FinishResponse 交卷结果
type FinishResponse struct {
	RecordID   uint    `json:"recordId"`
	TotalScore float64 `json:"totalScore"`
	IsPassed   bool    `json:"isPassed"`
	Correct    int     `json:"correct"`
	Answered   int     `json:"answered"`
}

// Finish 交卷：汇总得分、判定及格、关闭考试
func (s *ExamService) Finish(userID, recordID uint) (*FinishResponse, error) {
	record, err := s.ExamRepo.FindRecordByID(recordID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if record.Status != model.ExamStatusOngoing {
		return nil, util.ErrExamAlreadyFinished
	}

	total, err := s.ExamRepo.SumScore(record.ID)
	if err != nil {
		return nil, err
	}

	answers, err := s.ExamRepo.FindAnswersByRecord(record.ID)
	if err != nil {
		return nil, err
	}
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}

	passed := false
	if record.PaperID != nil {
		if paper, err := s.PaperRepo.FindByID(*record.PaperID); err == nil {
			passed = total >= paper.PassScore
		}
	}

	now := time.Now()
	record.Status = model.ExamStatusCompleted
	record.TotalScore = total
	record.IsPassed = passed
	record.FinishedAt = &now
	if err := s.ExamRepo.UpdateRecord(record); err != nil {
		return nil, err
	}

	logger.Log.Info("Exam finished",
		zap.Uint("recordId", record.ID),
		zap.Uint("userId", userID),
		zap.Float64("totalScore", total))

	return &FinishResponse{
		RecordID:   record.ID,
		TotalScore: total,
		IsPassed:   passed,
		Correct:    correct,
		Answered:   len(answers),
	}, nil
}

// AnswerDetail 考后逐题回顾，带标准答案与解析
type AnswerDetail struct {
	QuestionID    uint               `json:"questionId"`
	Type          model.QuestionType `json:"type"`
	Title         string             `json:"title"`
	UserAnswer    string             `json:"userAnswer"`
	CorrectAnswer string             `json:"correctAnswer"`
	Explanation   string             `json:"explanation"`
	IsCorrect     bool               `json:"isCorrect"`
	Score         float64            `json:"score"`
}

type ExamDetailResponse struct {
	Record  *model.ExamRecord `json:"record"`
	Answers []AnswerDetail    `json:"answers"`
}

func (s *ExamService) GetDetail(userID, recordID uint) (*ExamDetailResponse, error) {
	record, err := s.ExamRepo.FindRecordByID(recordID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	answers, err := s.ExamRepo.FindAnswersByRecord(record.ID)
	if err != nil {
		return nil, err
	}

	details := make([]AnswerDetail, 0, len(answers))
	for _, a := range answers {
		q, err := s.QuestionRepo.FindByID(a.QuestionID)
		if err != nil {
			continue
		}
		details = append(details, AnswerDetail{
			QuestionID:    q.ID,
			Type:          q.Type,
			Title:         q.Title,
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			IsCorrect:     a.IsCorrect,
			Score:         a.Score,
		})
	}

	return &ExamDetailResponse{Record: record, Answers: details}, nil
}

func (s *ExamService) History(userID uint, page, limit int) ([]model.ExamRecord, int64, error) {
	return s.ExamRepo.FindRecordsByUser(userID, page, limit)
}
