package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionRoundTrip(t *testing.T) {
	// key + ". " + value 的标准写法对 A-F 全部可还原
	for _, key := range []string{"A", "B", "C", "D", "E", "F"} {
		opt, ok := ParseOption(key + ". 选项内容")
		require.True(t, ok, "key %s", key)
		assert.Equal(t, key, opt.Key)
		assert.Equal(t, "选项内容", opt.Value)
	}
}

func TestParseOptionVariants(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantKey string
		wantVal string
		ok      bool
	}{
		{"全角冒号", "Ａ：正确", "A", "正确", true},
		{"全角句号", "B。红色", "B", "红色", true},
		{"顿号", "C、绿色", "C", "绿色", true},
		{"全角点", "D．黄色", "D", "黄色", true},
		{"多余空白", "E   紫色", "E", "紫色", true},
		{"无分隔符", "F选项", "", "", false},
		{"非法字母", "G. 选项", "", "", false},
		{"纯字母", "A", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opt, ok := ParseOption(tc.line)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.wantKey, opt.Key)
				assert.Equal(t, tc.wantVal, opt.Value)
			}
		})
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"答案：A", "A"},
		{"答案: A,B", "A,B"},
		{"正确答案：B", "B"},
		{"参考答案：行政复议||行政诉讼", "行政复议||行政诉讼"},
		{"​答案：Ｃ", "C"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseAnswer(tc.line), "line %q", tc.line)
	}
}

func TestParseExplanation(t *testing.T) {
	assert.Equal(t, "因为如此", ParseExplanation("解析：因为如此"))
	assert.Equal(t, "略", ParseExplanation("答案解析：略"))
	assert.Equal(t, "补充内容", ParseExplanation("说明：补充内容"))
}
