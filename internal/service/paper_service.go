package service

import (
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type PaperService struct {
	PaperRepo    *repository.PaperRepository
	QuestionRepo *repository.QuestionRepository
}

func NewPaperService(paperRepo *repository.PaperRepository, questionRepo *repository.QuestionRepository) *PaperService {
	return &PaperService{
		PaperRepo:    paperRepo,
		QuestionRepo: questionRepo,
	}
}

// PaperQuestionRequest 组卷时的单题配置
type PaperQuestionRequest struct {
	QuestionID uint    `json:"questionId" binding:"required"`
	Score      float64 `json:"score"`
}

// PaperRequest 创建/更新试卷
type PaperRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Subject     string                 `json:"subject"`
	Description string                 `json:"description"`
	Duration    int                    `json:"duration"`
	PassScore   float64                `json:"passScore"`
	IsActive    *bool                  `json:"isActive"`
	PaperType   string                 `json:"paperType"`
	VisibleFrom *time.Time             `json:"visibleFrom"`
	VisibleTo   *time.Time             `json:"visibleTo"`
	Questions   []PaperQuestionRequest `json:"questions"`
}

// PaperResponse 试卷及其题目配置
type PaperResponse struct {
	Paper     *model.Paper       `json:"paper"`
	Questions []QuestionResponse `json:"questions,omitempty"`
	Scores    map[uint]float64   `json:"scores,omitempty"`
}

func (s *PaperService) buildLinks(paperID uint, reqs []PaperQuestionRequest) ([]model.PaperQuestion, float64, error) {
	ids := make([]uint, len(reqs))
	for i, r := range reqs {
		ids[i] = r.QuestionID
	}
	existing, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	known := make(map[uint]bool, len(existing))
	for _, q := range existing {
		known[q.ID] = true
	}

	var links []model.PaperQuestion
	var total float64
	for i, r := range reqs {
		if !known[r.QuestionID] {
			return nil, 0, util.ErrQuestionNotFound
		}
		score := r.Score
		if score <= 0 {
			score = 5
		}
		links = append(links, model.PaperQuestion{
			PaperID:    paperID,
			QuestionID: r.QuestionID,
			Score:      score,
			SortOrder:  i,
		})
		total += score
	}
	return links, total, nil
}

func (s *PaperService) Create(req *PaperRequest) (*model.Paper, error) {
	paper := &model.Paper{
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		Duration:    req.Duration,
		PassScore:   req.PassScore,
		PaperType:   req.PaperType,
		VisibleFrom: req.VisibleFrom,
		VisibleTo:   req.VisibleTo,
		IsActive:    true,
	}
	if paper.Duration <= 0 {
		paper.Duration = 60
	}
	if paper.PaperType == "" {
		paper.PaperType = model.ExamTypeExam
	}
	if req.IsActive != nil {
		paper.IsActive = *req.IsActive
	}

	if err := s.PaperRepo.Create(paper); err != nil {
		return nil, err
	}

	if len(req.Questions) > 0 {
		links, total, err := s.buildLinks(paper.ID, req.Questions)
		if err != nil {
			return nil, err
		}
		if err := s.PaperRepo.ReplaceQuestions(paper.ID, links); err != nil {
			return nil, err
		}
		paper.TotalScore = total
		if err := s.PaperRepo.Update(paper); err != nil {
			return nil, err
		}
	}

	return paper, nil
}

func (s *PaperService) Update(id uint, req *PaperRequest) (*model.Paper, error) {
	paper, err := s.PaperRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPaperNotFound
	}
	if err != nil {
		return nil, err
	}

	paper.Title = req.Title
	paper.Subject = req.Subject
	paper.Description = req.Description
	if req.Duration > 0 {
		paper.Duration = req.Duration
	}
	if req.PassScore > 0 {
		paper.PassScore = req.PassScore
	}
	if req.PaperType != "" {
		paper.PaperType = req.PaperType
	}
	if req.IsActive != nil {
		paper.IsActive = *req.IsActive
	}
	paper.VisibleFrom = req.VisibleFrom
	paper.VisibleTo = req.VisibleTo

	if req.Questions != nil {
		links, total, err := s.buildLinks(paper.ID, req.Questions)
		if err != nil {
			return nil, err
		}
		if err := s.PaperRepo.ReplaceQuestions(paper.ID, links); err != nil {
			return nil, err
		}
		paper.TotalScore = total
	}

	if err := s.PaperRepo.Update(paper); err != nil {
		return nil, err
	}
	return paper, nil
}

func (s *PaperService) Delete(id uint) error {
	if _, err := s.PaperRepo.FindByID(id); err == gorm.ErrRecordNotFound {
		return util.ErrPaperNotFound
	} else if err != nil {
		return err
	}
	return s.PaperRepo.Delete(id)
}

func (s *PaperService) GetByID(id uint) (*PaperResponse, error) {
	paper, err := s.PaperRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPaperNotFound
	}
	if err != nil {
		return nil, err
	}

	links, err := s.PaperRepo.FindQuestionLinks(paper.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(links))
	scores := make(map[uint]float64, len(links))
	for i, l := range links {
		ids[i] = l.QuestionID
		scores[l.QuestionID] = l.Score
	}
	questions, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	return &PaperResponse{
		Paper:     paper,
		Questions: toQuestionResponses(questions),
		Scores:    scores,
	}, nil
}

func (s *PaperService) List(subject string, onlyActive bool, page, limit int) ([]model.Paper, int64, error) {
	return s.PaperRepo.FindWithPagination(subject, onlyActive, page, limit)
}
