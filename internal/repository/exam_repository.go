package repository

import (
	"exam_admin_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) CreateRecord(record *model.ExamRecord) error {
	return r.DB.Create(record).Error
}

func (r *ExamRepository) FindRecordByID(id uint) (*model.ExamRecord, error) {
	var record model.ExamRecord
	err := r.DB.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ExamRepository) UpdateRecord(record *model.ExamRecord) error {
	return r.DB.Save(record).Error
}

func (r *ExamRepository) FindRecordsByUser(userID uint, page, limit int) ([]model.ExamRecord, int64, error) {
	var records []model.ExamRecord
	var total int64

	query := r.DB.Model(&model.ExamRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error
	return records, total, err
}

// UpsertAnswer 同一场考试同一题目只保留最后一次作答
func (r *ExamRepository) UpsertAnswer(answer *model.AnswerRecord) error {
	var existing model.AnswerRecord
	err := r.DB.Where("exam_record_id = ? AND question_id = ?", answer.ExamRecordID, answer.QuestionID).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(answer).Error
	}
	if err != nil {
		return err
	}
	answer.ID = existing.ID
	answer.CreatedAt = existing.CreatedAt
	return r.DB.Save(answer).Error
}

func (r *ExamRepository) FindAnswersByRecord(examRecordID uint) ([]model.AnswerRecord, error) {
	var answers []model.AnswerRecord
	err := r.DB.Where("exam_record_id = ?", examRecordID).Find(&answers).Error
	return answers, err
}

// SumScore 汇总一场考试的总得分
func (r *ExamRepository) SumScore(examRecordID uint) (float64, error) {
	var total float64
	err := r.DB.Model(&model.AnswerRecord{}).
		Where("exam_record_id = ?", examRecordID).
		Select("COALESCE(SUM(score), 0)").
		Scan(&total).
		Error
	return total, err
}
