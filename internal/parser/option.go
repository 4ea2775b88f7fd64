package parser

import (
	"regexp"
	"strings"

	"exam_admin_backend/internal/model"
)

var (
	optionCaptureRe    = regexp.MustCompile(`^([A-F])[.,:\s]+(.+)$`)
	optionCaptureRawRe = regexp.MustCompile(`^([A-F])[．.\s]+(.+)$`)

	answerPrefixRe      = regexp.MustCompile(`^(答案|正确答案|参考答案)[:\s]*`)
	answerPrefixRawRe   = regexp.MustCompile(`^(答案|正确答案|参考答案)[：:\s]*`)
	explanationPrefixRe = regexp.MustCompile(`^(解析|答案解析|解释|说明)[:\s]*`)
	explanationRawPreRe = regexp.MustCompile(`^(解析|答案解析|解释|说明)[：:\s]*`)
)

// ParseOption 解析一行选项，匹配失败返回 false（调用方静默忽略）
func ParseOption(line string) (model.Option, bool) {
	if m := optionCaptureRe.FindStringSubmatch(Normalize(line)); m != nil {
		return model.Option{Key: m[1], Value: strings.TrimSpace(m[2])}, true
	}
	// 标准化可能吃掉分隔符，退回原始行再试一次
	if m := optionCaptureRawRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
		return model.Option{Key: m[1], Value: strings.TrimSpace(m[2])}, true
	}
	return model.Option{}, false
}

// ParseAnswer 去掉答案关键词前缀，返回答案正文
func ParseAnswer(line string) string {
	answer := strings.TrimSpace(answerPrefixRe.ReplaceAllString(Normalize(line), ""))
	if answer == "" {
		cleaned := stripInvisible(strings.TrimSpace(line))
		answer = strings.TrimSpace(answerPrefixRawRe.ReplaceAllString(cleaned, ""))
	}
	return answer
}

// ParseExplanation 去掉解析关键词前缀，返回解析正文
func ParseExplanation(line string) string {
	explanation := strings.TrimSpace(explanationPrefixRe.ReplaceAllString(Normalize(line), ""))
	if explanation == "" {
		cleaned := stripInvisible(strings.TrimSpace(line))
		explanation = strings.TrimSpace(explanationRawPreRe.ReplaceAllString(cleaned, ""))
	}
	return explanation
}
