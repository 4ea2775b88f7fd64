package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"空串", "", ""},
		{"全角数字", "１２３", "123"},
		{"全角字母", "ＡＢｃｄ", "ABcd"},
		{"全角句号", "答案。", "答案."},
		{"全角逗号", "甲，乙", "甲,乙"},
		{"全角冒号", "答案：A", "答案:A"},
		{"全角分号", "甲；乙", "甲;乙"},
		{"全角问号感叹号", "什么？对！", "什么?对!"},
		{"全角括号", "（内容）", "(内容)"},
		{"全角方括号", "【单选题】", "[单选题]"},
		{"顿号折算逗号", "甲、乙、丙", "甲,乙,丙"},
		{"零宽字符", "答\u200b案\u200c:\ufeffA", "答案:A"},
		{"方向控制符", "\u202a答案\u202c:A", "答案:A"},
		{"行分隔符", "甲\u2028乙", "甲乙"},
		{"空白压缩", "  A   B\t C  ", "A B C"},
		{"全角空格", "甲　乙", "甲 乙"},
		{"混合", "１.　【单选题】题目？", "1. [单选题]题目?"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"1.【单选题】天空是什么颜色？",
		"Ａ：　选项内容。",
		"答\u200b案：Ｂ",
		"　　科目：法律法规　　",
		"plain ascii text, nothing special",
		"甲、乙、丙（１２３）",
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", s)
	}
}
