package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// LineRole 一行在文档结构中扮演的角色，闭合集合。
// 分类按固定优先级进行：说明行 → 题目开始 → 选项 → 答案 → 解析 → 正文，
// 先命中者生效，一行不会被重复归类。
type LineRole int

const (
	RoleNoise LineRole = iota // 标题/说明/科目行，整行忽略
	RoleQuestionStart
	RoleOption
	RoleAnswer
	RoleExplanation
	RoleContent
)

var (
	numberPrefixRe = regexp.MustCompile(`^\d+[.,、\s]*`)
	typeMarkerRe   = regexp.MustCompile(`(?i)[【\[]?(单选题|多选题|判断题|简答题|填空题|single|multiple|truefalse|essay|fill)[】\]]?`)

	// 标准化后的选项行：字母 + 分隔符 + 内容
	optionRe = regexp.MustCompile(`^[A-F][.,:\s]+\S`)
	// 原始格式兜底（全角句号等在标准化中可能已被折算，这里防御已是半角的输入）
	optionRawRe = regexp.MustCompile(`^[A-F][．.\s]+\S`)
	// 更宽松的选项形状，状态机在 content 区域的防御性二次检查用
	optionLooseRe = regexp.MustCompile(`^[A-F][．.\s]`)

	answerRe      = regexp.MustCompile(`^(答案|正确答案|参考答案)[:\s]`)
	answerRawRe   = regexp.MustCompile(`^(答案|正确答案|参考答案)[：:\s]`)
	answerLooseRe = regexp.MustCompile(`^(答案|正确答案|参考答案)`)

	explanationRe    = regexp.MustCompile(`^(解析|答案解析|解释|说明)[:\s]`)
	explanationRawRe = regexp.MustCompile(`^(解析|答案解析|解释|说明)[：:\s]`)

	subjectLineRe = regexp.MustCompile(`(?i)^(科目|subject)[：:\s]*`)
)

// 说明文字关键词，出现即视为模板噪声行
var instructionKeywords = []string{
	"题库", "模板", "说明", "要求", "格式", "示例", "注意", "提示",
	"导入", "使用", "支持", "标准", "错误", "避免", "必须",
}

// IsQuestionStart 数字序号 + 题型标记，或无序号的纯题型标记行
func IsQuestionStart(line string) bool {
	n := Normalize(line)
	hasNumber := numberPrefixRe.MatchString(n)
	hasMarker := typeMarkerRe.MatchString(n)
	if !hasMarker {
		// 有序号但没有题型标记的行是普通编号文本，不算题目开始
		return false
	}
	if hasNumber {
		return true
	}
	// 无序号格式：去掉题型标记后还得有内容
	rest := typeMarkerRe.ReplaceAllString(n, "")
	return strings.TrimSpace(rest) != ""
}

// IsOptionLine 以 A-F 加分隔符开头的选项行
func IsOptionLine(line string) bool {
	if optionRe.MatchString(Normalize(line)) {
		return true
	}
	return optionRawRe.MatchString(strings.TrimSpace(line))
}

// IsAnswerLine 答案/正确答案/参考答案开头，容忍前导不可见字符
func IsAnswerLine(line string) bool {
	if answerRe.MatchString(Normalize(line)) {
		return true
	}
	return answerRawRe.MatchString(stripInvisible(strings.TrimSpace(line)))
}

// IsExplanationLine 解析/答案解析/解释/说明开头
func IsExplanationLine(line string) bool {
	if explanationRe.MatchString(Normalize(line)) {
		return true
	}
	return explanationRawRe.MatchString(stripInvisible(strings.TrimSpace(line)))
}

// IsHeaderOrInstructionLine 标题行、模板说明行、科目设置行。
// 结构性判定（题目/选项/答案/解析）优先：一行提到"说明"但本身是合法
// 选项或答案时不按噪声处理。
func IsHeaderOrInstructionLine(line string) bool {
	if IsOptionLine(line) || IsAnswerLine(line) || IsExplanationLine(line) || IsQuestionStart(line) {
		return false
	}

	n := Normalize(line)
	if subjectLineRe.MatchString(n) {
		return true
	}
	if utf8.RuneCountInString(n) < 3 {
		return true
	}
	for _, kw := range instructionKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}

// Classify 按固定优先级把一行归到唯一角色
func Classify(line string) LineRole {
	switch {
	case IsHeaderOrInstructionLine(line):
		return RoleNoise
	case IsQuestionStart(line):
		return RoleQuestionStart
	case IsOptionLine(line):
		return RoleOption
	case IsAnswerLine(line):
		return RoleAnswer
	case IsExplanationLine(line):
		return RoleExplanation
	default:
		return RoleContent
	}
}
