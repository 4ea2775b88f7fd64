package repository

import (
	"exam_admin_backend/internal/model"

	"gorm.io/gorm"
)

type PaperRepository struct {
	DB *gorm.DB
}

func NewPaperRepository(db *gorm.DB) *PaperRepository {
	return &PaperRepository{DB: db}
}

func (r *PaperRepository) Create(paper *model.Paper) error {
	return r.DB.Create(paper).Error
}

func (r *PaperRepository) FindByID(id uint) (*model.Paper, error) {
	var paper model.Paper
	err := r.DB.First(&paper, id).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *PaperRepository) Update(paper *model.Paper) error {
	return r.DB.Save(paper).Error
}

// Delete 删除试卷并清理题目关联
func (r *PaperRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("paper_id = ?", id).Delete(&model.PaperQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Paper{}, id).Error
	})
}

func (r *PaperRepository) FindWithPagination(subject string, onlyActive bool, page, limit int) ([]model.Paper, int64, error) {
	var papers []model.Paper
	var total int64

	query := r.DB.Model(&model.Paper{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&papers).Error
	return papers, total, err
}

// ReplaceQuestions 整卷重建题目关联及各题分值排序
func (r *PaperRepository) ReplaceQuestions(paperID uint, pqs []model.PaperQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("paper_id = ?", paperID).Delete(&model.PaperQuestion{}).Error; err != nil {
			return err
		}
		if len(pqs) == 0 {
			return nil
		}
		return tx.Create(&pqs).Error
	})
}

func (r *PaperRepository) FindQuestionLinks(paperID uint) ([]model.PaperQuestion, error) {
	var pqs []model.PaperQuestion
	err := r.DB.Where("paper_id = ?", paperID).Order("sort_order").Find(&pqs).Error
	return pqs, err
}
