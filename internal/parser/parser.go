// Package parser 把松散排版的题库文档文本解析为结构化题目序列。
//
// 输入是已经从上传文件提取出来的纯 UTF-8 文本，解析逐行推进：
// 每行先做全角半角标准化，再按固定优先级归类为题目开始/选项/答案/
// 解析/正文，由一个显式状态值驱动题目草稿的累积，校验通过的题目
// 按文档顺序输出。格式不合法的题目被静默丢弃，整篇都解析不出题目
// 时才返回错误。
package parser

import (
	"fmt"
	"strings"

	"exam_admin_backend/internal/model"
)

// DefaultSubject 未设置批量科目时的归类
const DefaultSubject = "未分类"

// 批量科目声明只允许出现在文档前若干个非空行里
const subjectScanLines = 10

// Question 解析产出的题目（入库前的纯数据形态）
type Question struct {
	Type          model.QuestionType
	Title         string
	Content       string
	Options       []model.Option
	CorrectAnswer string
	Explanation   string
	Difficulty    int
	Subject       string
	Chapter       string

	seeded bool // 判断题预置选项尚未被文档自带选项替换
}

// addOption 追加选项，按 key 去重；首个真实选项会替换掉预置选项
func (q *Question) addOption(opt model.Option) {
	if q.seeded {
		q.Options = q.Options[:0]
		q.seeded = false
	}
	for _, o := range q.Options {
		if o.Key == opt.Key {
			return
		}
	}
	q.Options = append(q.Options, opt)
}

// ParseError 整篇文档没有解析出任何有效题目时返回，
// 附带文本片段帮助作者排查格式问题
type ParseError struct {
	Snippet string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("文档解析失败: %s", e.Reason)
}

type section int

const (
	secContent section = iota
	secOptions
	secAnswer
	secExplanation
)

// parseState 显式解析状态：当前草稿、所在区域、批量科目和已完成的题目。
// 每行输入使 step 推进一次状态，没有任何包级可变量。
type parseState struct {
	current *Question
	section section
	subject string
	out     []Question
}

// seal 校验并收束当前草稿，不合法的草稿直接丢弃
func (st *parseState) seal() {
	if st.current != nil && Validate(st.current) {
		st.out = append(st.out, *st.current)
	}
	st.current = nil
}

// step 每行只做一次角色归类，按当前区域消费
func (st *parseState) step(line string) {
	role := Classify(line)

	if role == RoleNoise {
		return
	}

	if role == RoleQuestionStart {
		st.seal()
		q, sec := ParseHeader(line)
		q.Subject = st.subject
		st.current = q
		st.section = sec
		return
	}

	if st.current == nil {
		return
	}

	switch st.section {
	case secContent:
		st.stepContent(line, role)
	case secOptions:
		st.stepOptions(line, role)
	case secAnswer:
		st.stepAnswer(line, role)
	case secExplanation:
		// 解析区域吸收一切后续行
		st.current.Explanation = appendLine(st.current.Explanation, line)
	}
}

func (st *parseState) stepContent(line string, role LineRole) {
	q := st.current
	switch role {
	case RoleOption:
		st.section = secOptions
		if opt, ok := ParseOption(line); ok {
			q.addOption(opt)
		}
	case RoleAnswer:
		st.section = secAnswer
		q.CorrectAnswer = ParseAnswer(line)
	case RoleExplanation:
		st.section = secExplanation
		q.Explanation = ParseExplanation(line)
	default:
		if optionLooseRe.MatchString(strings.TrimSpace(line)) {
			// 分类器对个别选项行存在漏判，这里保留宽松形状兜底
			st.section = secOptions
			if opt, ok := ParseOption(line); ok {
				q.addOption(opt)
			}
			return
		}
		q.Content = appendLine(q.Content, line)
	}
}

func (st *parseState) stepOptions(line string, role LineRole) {
	q := st.current
	switch role {
	case RoleOption:
		if opt, ok := ParseOption(line); ok {
			q.addOption(opt)
		}
	case RoleAnswer:
		st.section = secAnswer
		q.CorrectAnswer = ParseAnswer(line)
	case RoleExplanation:
		st.section = secExplanation
		q.Explanation = ParseExplanation(line)
	default:
		if answerLooseRe.MatchString(strings.TrimSpace(line)) {
			// 答案关键词的变体写法
			st.section = secAnswer
			q.CorrectAnswer = ParseAnswer(line)
		}
		// 其余描述性文字不并入任何字段
	}
}

func (st *parseState) stepAnswer(line string, role LineRole) {
	q := st.current
	switch role {
	case RoleExplanation:
		st.section = secExplanation
		q.Explanation = ParseExplanation(line)
	case RoleAnswer:
		// 重复的答案前缀行不再拼接
	default:
		// 多行答案，换行拼接
		q.CorrectAnswer = appendLine(q.CorrectAnswer, line)
	}
}

func appendLine(existing, line string) string {
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}

// splitLines 拆行、去首尾空白、丢弃空行
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// scanBatchSubject 在前 10 个非空行里找批量科目声明
func scanBatchSubject(lines []string) string {
	limit := subjectScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		n := Normalize(lines[i])
		if subjectLineRe.MatchString(n) {
			subject := strings.TrimSpace(subjectLineRe.ReplaceAllString(n, ""))
			if subject != "" {
				return subject
			}
		}
	}
	return DefaultSubject
}

// ParseDocument 按文档顺序返回全部有效题目。
// 没有任何有效题目时返回 *ParseError，单个题目不合法不报错。
func ParseDocument(text string) ([]Question, error) {
	lines := splitLines(text)

	st := &parseState{subject: scanBatchSubject(lines)}
	for _, line := range lines {
		st.step(line)
	}
	st.seal()

	if len(st.out) == 0 {
		return nil, &ParseError{
			Snippet: truncateRunes(text, 500),
			Reason:  "未找到有效的题目数据，请检查文档格式。确保题目包含序号和题型标记，如：1. 【单选题】",
		}
	}
	return st.out, nil
}
