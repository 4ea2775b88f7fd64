package parser

import (
	"strings"
	"testing"

	"exam_admin_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentSingleQuestion(t *testing.T) {
	doc := "1.【单选题】天空是什么颜色？\nA. 蓝色\nB. 红色\n答案：A\n解析：天空因瑞利散射呈蓝色。"

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)

	q := qs[0]
	assert.Equal(t, model.TypeSingle, q.Type)
	assert.Equal(t, "天空是什么颜色?", q.Content)
	require.Len(t, q.Options, 2)
	assert.Equal(t, model.Option{Key: "A", Value: "蓝色"}, q.Options[0])
	assert.Equal(t, model.Option{Key: "B", Value: "红色"}, q.Options[1])
	assert.Equal(t, "A", q.CorrectAnswer)
	assert.Equal(t, "天空因瑞利散射呈蓝色.", q.Explanation)
	assert.Equal(t, DefaultSubject, q.Subject)
	assert.Equal(t, 1, q.Difficulty)
}

func TestParseDocumentMultipleQuestions(t *testing.T) {
	doc := strings.Join([]string{
		"1.【单选题】第一道题选什么？",
		"A. 甲",
		"B. 乙",
		"答案：A",
		"2.【填空题】1+1=___",
		"答案：2",
		"3.【简答题】请简述什么是响应式设计？",
		"答案：响应式设计是一种网页设计方法",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, model.TypeSingle, qs[0].Type)
	assert.Equal(t, model.TypeFill, qs[1].Type)
	assert.Equal(t, model.TypeEssay, qs[2].Type)
	assert.Equal(t, "2", qs[1].CorrectAnswer)
}

func TestParseDocumentBatchSubject(t *testing.T) {
	doc := strings.Join([]string{
		"科目：社会保险法律法规",
		"1.【填空题】题目___",
		"答案：答案甲",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "社会保险法律法规", qs[0].Subject)
}

func TestParseDocumentSubjectBeyondScanWindow(t *testing.T) {
	// 科目声明只在前 10 个非空行内生效
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, "这里是一段不短于三个字的正文填充内容")
	}
	lines = append(lines, "科目：历史", "1.【填空题】题目___", "答案：甲")

	qs, err := ParseDocument(strings.Join(lines, "\n"))
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, DefaultSubject, qs[0].Subject)
}

func TestParseDocumentMultiLineContent(t *testing.T) {
	doc := strings.Join([]string{
		"1.【判断题】职工与用人单位发生争议时只能通过诉讼方式解决。",
		"职工与用人单位发生争议的可以采取调解仲裁诉讼等方式解决。",
		"A. 正确",
		"B. 错误",
		"答案：B",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)

	q := qs[0]
	assert.Equal(t, model.TypeTrueFalse, q.Type)
	assert.Contains(t, q.Content, "\n")
	require.Len(t, q.Options, 2)
	// 文档自带的 A/B 行替换了预置选项
	assert.Equal(t, "正确", q.Options[0].Value)
	assert.Equal(t, "B", q.CorrectAnswer)
}

func TestParseDocumentTrueFalseKeepsSeededOptions(t *testing.T) {
	doc := "1.【判断题】地球绕着太阳转。\n答案：A"

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	require.Len(t, qs[0].Options, 2)
	assert.Equal(t, model.Option{Key: "A", Value: "正确"}, qs[0].Options[0])
	assert.Equal(t, model.Option{Key: "B", Value: "错误"}, qs[0].Options[1])
}

func TestParseDocumentDuplicateOptionDropped(t *testing.T) {
	doc := strings.Join([]string{
		"1.【单选题】选哪个？",
		"A. 第一个",
		"A. 重复的第一个",
		"B. 第二个",
		"答案：A",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	require.Len(t, qs[0].Options, 2)
	assert.Equal(t, "第一个", qs[0].Options[0].Value)
}

func TestParseDocumentMultiLineAnswer(t *testing.T) {
	doc := strings.Join([]string{
		"1.【简答题】请简述什么是响应式设计？",
		"答案：响应式设计是一种网页设计方法",
		"旨在使网站适配不同设备",
		"解析：核心思想是一次设计到处适用",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "响应式设计是一种网页设计方法\n旨在使网站适配不同设备", qs[0].CorrectAnswer)
	assert.Equal(t, "核心思想是一次设计到处适用", qs[0].Explanation)
}

func TestParseDocumentMultiLineExplanation(t *testing.T) {
	doc := strings.Join([]string{
		"1.【填空题】题目___",
		"答案：甲",
		"解析：第一行解析",
		"第二行解析继续补充",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "第一行解析\n第二行解析继续补充", qs[0].Explanation)
}

func TestParseDocumentLooseAnswerVariant(t *testing.T) {
	doc := strings.Join([]string{
		"1.【单选题】选哪个？",
		"A. 甲",
		"B. 乙",
		"正确答案A",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "A", qs[0].CorrectAnswer)
}

func TestParseDocumentInvalidQuestionDropped(t *testing.T) {
	doc := strings.Join([]string{
		"1.【单选题】这道题没有答案也没有选项",
		"2.【填空题】这道完整 ___",
		"答案：完整",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, model.TypeFill, qs[0].Type)
}

func TestParseDocumentInstructionNoiseSkipped(t *testing.T) {
	doc := strings.Join([]string{
		"题库批量导入模板（Word版）",
		"格式要求：题目必须包含序号和题型标记",
		"注意事项：避免使用特殊字体",
		"1.【填空题】真正的题目___",
		"答案：真正的答案",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "真正的题目___", qs[0].Content)
}

func TestParseDocumentNoQuestions(t *testing.T) {
	doc := strings.Join([]string{
		"题库批量导入模板",
		"这份文档只有说明文字",
		"格式要求：按模板填写",
	}, "\n")

	qs, err := ParseDocument(doc)
	assert.Nil(t, qs)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, perr.Snippet)
	assert.Contains(t, perr.Reason, "未找到有效的题目数据")
}

func TestParseDocumentSnippetTruncated(t *testing.T) {
	long := strings.Repeat("说明文字特别多的一篇文档", 100)
	_, err := ParseDocument(long)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.LessOrEqual(t, len([]rune(perr.Snippet)), 500)
}

func TestParseDocumentInlineEverything(t *testing.T) {
	// 整道题压缩在一行里：题干、选项、答案
	doc := "1.【单选题】选出正确项？A. 第一项 B. 第二项 答案：A"

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)

	q := qs[0]
	assert.Equal(t, "选出正确项?", q.Content)
	require.Len(t, q.Options, 2)
	assert.Equal(t, "A", q.CorrectAnswer)
}

func TestParseDocumentFullWidthDocument(t *testing.T) {
	doc := strings.Join([]string{
		"６.【判断题】用人单位不得侵害女职工合法权益。",
		"Ａ：正确",
		"Ｂ：错误",
		"答案：Ａ",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)

	q := qs[0]
	assert.Equal(t, model.TypeTrueFalse, q.Type)
	require.Len(t, q.Options, 2)
	assert.Equal(t, "A", q.Options[0].Key)
	assert.Equal(t, "A", q.CorrectAnswer)
}

func TestParseDocumentStateIndependence(t *testing.T) {
	// 两次解析同一文档结果一致，解析器无共享状态
	doc := "1.【填空题】题目___\n答案：甲"
	first, err1 := ParseDocument(doc)
	second, err2 := ParseDocument(doc)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestParseDocumentOptionBeatsInstructionKeyword(t *testing.T) {
	// 结构性归类优先于噪声关键词：选项文本里出现"格式"不丢行
	doc := strings.Join([]string{
		"1.【单选题】下列哪项是合法的日期写法？",
		"A. 格式为年月日",
		"B. 随意书写",
		"答案：A",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)

	q := qs[0]
	require.Len(t, q.Options, 2)
	assert.Equal(t, "格式为年月日", q.Options[0].Value)
	assert.Equal(t, "A", q.CorrectAnswer)
}

func TestParseDocumentAnswerSectionKeepsOptionShapedLines(t *testing.T) {
	// 归类结果按所在区域消费：答案区里选项形状的行并入多行答案
	doc := strings.Join([]string{
		"1.【填空题】请列出备选方案___",
		"答案：甲方案",
		"B. 乙方案",
	}, "\n")

	qs, err := ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, qs, 1)

	q := qs[0]
	assert.Equal(t, "甲方案\nB. 乙方案", q.CorrectAnswer)
	assert.Empty(t, q.Options)
}
