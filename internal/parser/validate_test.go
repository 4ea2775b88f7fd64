package parser

import (
	"testing"

	"exam_admin_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	twoOptions := []model.Option{{Key: "A", Value: "甲"}, {Key: "B", Value: "乙"}}

	tests := []struct {
		name string
		q    Question
		want bool
	}{
		{
			name: "合法单选",
			q:    Question{Type: model.TypeSingle, Title: "题目", CorrectAnswer: "A", Options: twoOptions},
			want: true,
		},
		{
			name: "缺标题",
			q:    Question{Type: model.TypeSingle, CorrectAnswer: "A", Options: twoOptions},
			want: false,
		},
		{
			name: "缺答案",
			q:    Question{Type: model.TypeSingle, Title: "题目", Options: twoOptions},
			want: false,
		},
		{
			name: "非法题型",
			q:    Question{Type: "unknown", Title: "题目", CorrectAnswer: "A"},
			want: false,
		},
		{
			name: "单选仅一个选项",
			q:    Question{Type: model.TypeSingle, Title: "题目", CorrectAnswer: "A", Options: twoOptions[:1]},
			want: false,
		},
		{
			name: "多选仅一个选项",
			q:    Question{Type: model.TypeMultiple, Title: "题目", CorrectAnswer: "A,B", Options: twoOptions[:1]},
			want: false,
		},
		{
			name: "判断题选项数不等于二",
			q:    Question{Type: model.TypeTrueFalse, Title: "题目", CorrectAnswer: "A", Options: twoOptions[:1]},
			want: false,
		},
		{
			name: "判断题两个选项",
			q:    Question{Type: model.TypeTrueFalse, Title: "题目", CorrectAnswer: "A", Options: twoOptions},
			want: true,
		},
		{
			name: "填空题无需选项",
			q:    Question{Type: model.TypeFill, Title: "题目___", CorrectAnswer: "甲"},
			want: true,
		},
		{
			name: "简答题无需选项",
			q:    Question{Type: model.TypeEssay, Title: "简述题目", CorrectAnswer: "参考答案正文"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(&tt.q))
		})
	}
}
