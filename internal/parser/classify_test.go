package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsQuestionStart(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"序号加中文标记", "1.【单选题】题目内容", true},
		{"序号紧贴标记", "1.【判断题】说法对吗", true},
		{"全角序号", "６.【判断题】说法对吗", true},
		{"方括号标记", "2.[多选题]选哪些", true},
		{"英文标记", "3. [single] pick one", true},
		{"顿号分隔", "4、【填空题】填空___", true},
		{"无序号带内容", "【简答题】请简述原理", true},
		{"纯标记无内容", "【单选题】", false},
		{"有序号无标记", "1. 这是一道普通编号文本", false},
		{"普通正文", "天空因瑞利散射呈蓝色", false},
		{"空行", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsQuestionStart(tc.line))
		})
	}
}

func TestIsOptionLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"半角点", "A. 蓝色", true},
		{"全角句号", "B。红色", true},
		{"全角冒号", "Ｃ：绿色", true},
		{"顿号", "D、黄色", true},
		{"全角点原始格式", "A．选项", true},
		{"小写字母", "a. 选项", false},
		{"超出范围", "G. 选项", false},
		{"无分隔符", "ABC选项", false},
		{"无内容", "A.", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsOptionLine(tc.line))
		})
	}
}

func TestIsAnswerLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"答案半角", "答案: A", true},
		{"答案全角", "答案：A", true},
		{"正确答案", "正确答案：B", true},
		{"参考答案", "参考答案：见解析", true},
		{"前导零宽字符", "​答案：A", true},
		{"无分隔符", "答案就是它", false},
		{"正文提到答案", "这道题的答案很明显", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAnswerLine(tc.line))
		})
	}
}

func TestIsExplanationLine(t *testing.T) {
	assert.True(t, IsExplanationLine("解析：因为如此"))
	assert.True(t, IsExplanationLine("答案解析: 略"))
	assert.True(t, IsExplanationLine("说明：仅供参考"))
	assert.False(t, IsExplanationLine("没有前缀的解析内容"))
}

func TestIsHeaderOrInstructionLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"科目声明", "科目：法律法规", true},
		{"英文科目声明", "Subject: math", true},
		{"模板标题", "题库批量导入模板", true},
		{"格式要求", "格式要求如下", true},
		{"过短的行", "甲", true},
		{"结构行优先于关键词_答案", "答案：说明", false},
		{"结构行优先于关键词_选项", "A. 标准格式示例", false},
		{"结构行优先于关键词_题目", "1.【单选题】下列说明错误的是", false},
		{"普通题干正文", "下列关于瑞利散射的描述正确的是", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsHeaderOrInstructionLine(tc.line))
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		line string
		want LineRole
	}{
		{"科目：历史", RoleNoise},
		{"1.【单选题】题目", RoleQuestionStart},
		{"A. 选项", RoleOption},
		{"答案：A", RoleAnswer},
		{"解析：因为", RoleExplanation},
		{"普通的一行正文内容", RoleContent},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Classify(tc.line), "line %q", tc.line)
	}
}
