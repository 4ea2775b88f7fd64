package parser

import "exam_admin_backend/internal/model"

// Validate 结构完整性校验，决定草稿是否可以进入输出序列：
// 标题和答案非空、题型合法、单选/多选至少两个选项、判断题恰好两个。
func Validate(q *Question) bool {
	if q.Title == "" || q.CorrectAnswer == "" {
		return false
	}
	if !q.Type.Valid() {
		return false
	}
	switch q.Type {
	case model.TypeSingle, model.TypeMultiple:
		if len(q.Options) < 2 {
			return false
		}
	case model.TypeTrueFalse:
		if len(q.Options) != 2 {
			return false
		}
	}
	return true
}
