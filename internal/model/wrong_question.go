package model

import "time"

// WrongQuestion 错题本条目，同一用户同一题目唯一
// swagger:model WrongQuestion
type WrongQuestion struct {
	BaseModel
	UserID      uint      `gorm:"index:idx_user_question,unique;not null" json:"userId"`
	QuestionID  uint      `gorm:"index:idx_user_question,unique;not null" json:"questionId"`
	WrongCount  int       `gorm:"default:1" json:"wrongCount"`
	IsMastered  bool      `gorm:"default:false" json:"isMastered"`
	LastWrongAt time.Time `json:"lastWrongAt"`
}

func (WrongQuestion) TableName() string {
	return "wrong_questions"
}
