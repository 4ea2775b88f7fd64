package service

import (
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"

	"gorm.io/gorm"
)

type WrongQuestionService struct {
	WrongRepo    *repository.WrongQuestionRepository
	QuestionRepo *repository.QuestionRepository
}

func NewWrongQuestionService(wrongRepo *repository.WrongQuestionRepository, questionRepo *repository.QuestionRepository) *WrongQuestionService {
	return &WrongQuestionService{
		WrongRepo:    wrongRepo,
		QuestionRepo: questionRepo,
	}
}

// WrongQuestionView 错题条目与对应题目
type WrongQuestionView struct {
	model.WrongQuestion
	Question *QuestionResponse `json:"question,omitempty"`
}

func (s *WrongQuestionService) List(userID uint, includeMastered bool, page, limit int) ([]WrongQuestionView, int64, error) {
	items, total, err := s.WrongRepo.FindByUser(userID, includeMastered, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]WrongQuestionView, 0, len(items))
	for _, item := range items {
		view := WrongQuestionView{WrongQuestion: item}
		if q, err := s.QuestionRepo.FindByID(item.QuestionID); err == nil {
			resp := toQuestionResponse(q)
			view.Question = &resp
		}
		views = append(views, view)
	}
	return views, total, nil
}

func (s *WrongQuestionService) MarkMastered(userID, questionID uint) error {
	if _, err := s.WrongRepo.FindByUserAndQuestion(userID, questionID); err == gorm.ErrRecordNotFound {
		return util.ErrWrongQuestionMissing
	} else if err != nil {
		return err
	}
	return s.WrongRepo.MarkMastered(userID, questionID)
}

func (s *WrongQuestionService) Remove(userID, questionID uint) error {
	if _, err := s.WrongRepo.FindByUserAndQuestion(userID, questionID); err == gorm.ErrRecordNotFound {
		return util.ErrWrongQuestionMissing
	} else if err != nil {
		return err
	}
	return s.WrongRepo.Delete(userID, questionID)
}

// PracticeSet 错题重练：取未掌握错题对应的题目
func (s *WrongQuestionService) PracticeSet(userID uint, count int) ([]QuestionResponse, error) {
	if count < 1 {
		count = 10
	}
	items, _, err := s.WrongRepo.FindByUser(userID, false, 1, count)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.QuestionID
	}
	questions, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	return toQuestionResponses(questions), nil
}
