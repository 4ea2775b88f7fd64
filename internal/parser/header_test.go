package parser

import (
	"strings"
	"testing"

	"exam_admin_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderTypeMarkers(t *testing.T) {
	tests := []struct {
		line string
		want model.QuestionType
	}{
		{"1.【单选题】下列哪个正确？", model.TypeSingle},
		{"2.【多选题】下列哪些正确？", model.TypeMultiple},
		{"3.【判断题】这个说法对吗？", model.TypeTrueFalse},
		{"4.【简答题】请简述原理。", model.TypeEssay},
		{"5.【填空题】请填写___。", model.TypeFill},
		{"6. [single] which one?", model.TypeSingle},
		{"7. [multiple] which ones?", model.TypeMultiple},
		{"8. [truefalse] true or false?", model.TypeTrueFalse},
		{"9. [essay] explain briefly", model.TypeEssay},
		{"10. [fill] fill the blank", model.TypeFill},
	}

	for _, tc := range tests {
		q, _ := ParseHeader(tc.line)
		assert.Equal(t, tc.want, q.Type, "line %q", tc.line)
	}
}

func TestParseHeaderStripsNumbering(t *testing.T) {
	for _, line := range []string{
		"1.【单选题】天空是什么颜色？",
		"100、【单选题】天空是什么颜色？",
		"３.【单选题】天空是什么颜色？",
		"【单选题】天空是什么颜色？",
	} {
		q, sec := ParseHeader(line)
		assert.Equal(t, "天空是什么颜色?", q.Content, "line %q", line)
		assert.Equal(t, secContent, sec)
	}
}

func TestParseHeaderTrueFalseSeedsOptions(t *testing.T) {
	q, _ := ParseHeader("1.【判断题】地球是圆的。")
	require.Len(t, q.Options, 2)
	assert.Equal(t, model.Option{Key: "A", Value: "正确"}, q.Options[0])
	assert.Equal(t, model.Option{Key: "B", Value: "错误"}, q.Options[1])
}

func TestParseHeaderInlineOptions(t *testing.T) {
	q, sec := ParseHeader("1.【单选题】选出正确项？A. 第一项 B. 第二项 C. 第三项")
	assert.Equal(t, secOptions, sec)
	assert.Equal(t, "选出正确项?", q.Content)
	require.Len(t, q.Options, 3)
	assert.Equal(t, "A", q.Options[0].Key)
	assert.Equal(t, "第一项", q.Options[0].Value)
	assert.Equal(t, "C", q.Options[2].Key)
}

func TestParseHeaderInlineAnswerAndExplanation(t *testing.T) {
	q, sec := ParseHeader("1.【填空题】1+1=___ 答案：2 解析：基本算术")
	assert.Equal(t, secExplanation, sec)
	assert.Equal(t, "1+1=___", q.Content)
	assert.Equal(t, "2", q.CorrectAnswer)
	assert.Equal(t, "基本算术", q.Explanation)
}

func TestParseHeaderInlineAnswerOnly(t *testing.T) {
	q, sec := ParseHeader("2.【填空题】1+1=___ 答案：2")
	assert.Equal(t, secAnswer, sec)
	assert.Equal(t, "2", q.CorrectAnswer)
}

func TestDeriveTitle(t *testing.T) {
	t.Run("句子终结符截断", func(t *testing.T) {
		content := "什么是响应式设计？它的核心思想是一次设计到处适用"
		assert.Equal(t, "什么是响应式设计?", deriveTitle(Normalize(content)))
	})

	t.Run("超长内容截断", func(t *testing.T) {
		content := strings.Repeat("长", 60)
		title := deriveTitle(content)
		assert.Equal(t, strings.Repeat("长", 47)+"...", title)
	})

	t.Run("短内容原样", func(t *testing.T) {
		assert.Equal(t, "1+1=___", deriveTitle("1+1=___"))
	})

	t.Run("终结符太靠前不截断", func(t *testing.T) {
		// 位置 5 以内的终结符不作为标题边界
		assert.Equal(t, "对。错", deriveTitle("对。错"))
	})
}
