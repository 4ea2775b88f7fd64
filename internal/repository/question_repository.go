package repository

import (
	"exam_admin_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

// CreateBatch 批量入库，单事务内逐条插入，任一失败整体回滚
func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(questions, 100).Error
	})
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) DeleteBatch(ids []uint) error {
	return r.DB.Delete(&model.Question{}, ids).Error
}

// QuestionFilter 题目列表的筛选条件，零值字段不参与过滤
type QuestionFilter struct {
	Type       model.QuestionType
	Subject    string
	Difficulty int
	Keyword    string
}

func (r *QuestionRepository) applyFilter(db *gorm.DB, f QuestionFilter) *gorm.DB {
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Subject != "" {
		db = db.Where("subject = ?", f.Subject)
	}
	if f.Difficulty > 0 {
		db = db.Where("difficulty = ?", f.Difficulty)
	}
	if f.Keyword != "" {
		like := "%" + f.Keyword + "%"
		db = db.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	return db
}

// FindWithPagination 条件查询题目列表，按创建时间倒序
func (r *QuestionRepository) FindWithPagination(f QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.applyFilter(r.DB.Model(&model.Question{}), f)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}

// FindRandom 随机抽题，count 超过题量时返回全部
func (r *QuestionRepository) FindRandom(f QuestionFilter, count int) ([]model.Question, error) {
	var questions []model.Question
	query := r.applyFilter(r.DB.Model(&model.Question{}), f)
	err := query.Order("RAND()").Limit(count).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

// ListSubjects 去重后的科目列表
func (r *QuestionRepository) ListSubjects() ([]string, error) {
	var subjects []string
	err := r.DB.Model(&model.Question{}).
		Distinct("subject").
		Order("subject").
		Pluck("subject", &subjects).
		Error
	return subjects, err
}

// TypeCount 按题型统计
type TypeCount struct {
	Type  model.QuestionType `json:"type"`
	Count int64              `json:"count"`
}

// SubjectCount 按科目统计
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int64  `json:"count"`
}

func (r *QuestionRepository) CountByType() ([]TypeCount, error) {
	var counts []TypeCount
	err := r.DB.Model(&model.Question{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&counts).
		Error
	return counts, err
}

func (r *QuestionRepository) CountBySubject() ([]SubjectCount, error) {
	var counts []SubjectCount
	err := r.DB.Model(&model.Question{}).
		Select("subject, COUNT(*) as count").
		Group("subject").
		Order("count DESC").
		Scan(&counts).
		Error
	return counts, err
}

func (r *QuestionRepository) CountAll() (int64, error) {
	var total int64
	err := r.DB.Model(&model.Question{}).Count(&total).Error
	return total, err
}
