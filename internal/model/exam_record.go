package model

import "time"

const (
	ExamTypeExam     = "exam"
	ExamTypePractice = "practice"

	ExamStatusOngoing   = "ongoing"
	ExamStatusCompleted = "completed"
)

// ExamRecord 一次考试/练习的记录；练习模式允许无试卷（随机练习）
// swagger:model ExamRecord
type ExamRecord struct {
	BaseModel
	UserID     uint       `gorm:"index;not null" json:"userId"`
	PaperID    *uint      `gorm:"index" json:"paperId"`
	Type       string     `gorm:"size:20;default:'exam'" json:"type"`
	Status     string     `gorm:"size:20;default:'ongoing';index" json:"status"`
	TotalScore float64    `gorm:"default:0" json:"totalScore"`
	IsPassed   bool       `gorm:"default:false" json:"isPassed"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`
}

func (ExamRecord) TableName() string {
	return "exam_records"
}
