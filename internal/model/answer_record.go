package model

// AnswerRecord 单题作答记录
// swagger:model AnswerRecord
type AnswerRecord struct {
	BaseModel
	ExamRecordID uint    `gorm:"index:idx_record_question,unique;not null" json:"examRecordId"`
	QuestionID   uint    `gorm:"index:idx_record_question,unique;not null" json:"questionId"`
	UserAnswer   string  `gorm:"type:text" json:"userAnswer"`
	IsCorrect    bool    `gorm:"default:false" json:"isCorrect"`
	Score        float64 `gorm:"default:0" json:"score"`
	AnswerTime   *int    `json:"answerTime"` // 秒
}

func (AnswerRecord) TableName() string {
	return "answer_records"
}
