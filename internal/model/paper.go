package model

import "time"

// Paper 试卷
// swagger:model Paper
type Paper struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Subject     string     `gorm:"size:100;index" json:"subject"`
	Description string     `gorm:"type:text" json:"description"`
	Duration    int        `gorm:"default:60" json:"duration"` // 分钟
	TotalScore  float64    `gorm:"default:100" json:"totalScore"`
	PassScore   float64    `gorm:"default:60" json:"passScore"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	PaperType   string     `gorm:"size:20;default:'exam'" json:"paperType"`
	VisibleFrom *time.Time `json:"visibleFrom"`
	VisibleTo   *time.Time `json:"visibleTo"`
}

func (Paper) TableName() string {
	return "papers"
}

// PaperQuestion 试卷-题目关联，携带该题在卷中的分值与排序
type PaperQuestion struct {
	BaseModel
	PaperID    uint    `gorm:"index:idx_paper_question,unique;not null" json:"paperId"`
	QuestionID uint    `gorm:"index:idx_paper_question,unique;not null" json:"questionId"`
	Score      float64 `gorm:"default:5" json:"score"`
	SortOrder  int     `gorm:"default:0" json:"sortOrder"`
}

func (PaperQuestion) TableName() string {
	return "paper_questions"
}
