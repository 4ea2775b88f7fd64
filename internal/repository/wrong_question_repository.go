package repository

import (
	"exam_admin_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type WrongQuestionRepository struct {
	DB *gorm.DB
}

func NewWrongQuestionRepository(db *gorm.DB) *WrongQuestionRepository {
	return &WrongQuestionRepository{DB: db}
}

// Record 记录一次答错：已有条目累加次数并清除掌握标记，否则新建
func (r *WrongQuestionRepository) Record(userID, questionID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var wq model.WrongQuestion
		err := tx.Where("user_id = ? AND question_id = ?", userID, questionID).First(&wq).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&model.WrongQuestion{
				UserID:      userID,
				QuestionID:  questionID,
				WrongCount:  1,
				LastWrongAt: time.Now(),
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&wq).Updates(map[string]interface{}{
			"wrong_count":   gorm.Expr("wrong_count + 1"),
			"is_mastered":   false,
			"last_wrong_at": time.Now(),
		}).Error
	})
}

func (r *WrongQuestionRepository) FindByUser(userID uint, includeMastered bool, page, limit int) ([]model.WrongQuestion, int64, error) {
	var items []model.WrongQuestion
	var total int64

	query := r.DB.Model(&model.WrongQuestion{}).Where("user_id = ?", userID)
	if !includeMastered {
		query = query.Where("is_mastered = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("last_wrong_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

func (r *WrongQuestionRepository) FindByUserAndQuestion(userID, questionID uint) (*model.WrongQuestion, error) {
	var wq model.WrongQuestion
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&wq).Error
	if err != nil {
		return nil, err
	}
	return &wq, nil
}

func (r *WrongQuestionRepository) MarkMastered(userID, questionID uint) error {
	return r.DB.Model(&model.WrongQuestion{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Update("is_mastered", true).
		Error
}

func (r *WrongQuestionRepository) Delete(userID, questionID uint) error {
	return r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&model.WrongQuestion{}).
		Error
}
