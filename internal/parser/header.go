package parser

import (
	"regexp"
	"strings"

	"exam_admin_backend/internal/model"
)

type typeMarker struct {
	qType model.QuestionType
	re    *regexp.Regexp
}

// 题型标记按列举顺序尝试，支持全角半角括号与英文标记
var typeMarkers = []typeMarker{
	{model.TypeSingle, regexp.MustCompile(`(?i)[【\[]?(单选题|single)[】\]]?`)},
	{model.TypeMultiple, regexp.MustCompile(`(?i)[【\[]?(多选题|multiple)[】\]]?`)},
	{model.TypeTrueFalse, regexp.MustCompile(`(?i)[【\[]?(判断题|truefalse)[】\]]?`)},
	{model.TypeEssay, regexp.MustCompile(`(?i)[【\[]?(简答题|essay)[】\]]?`)},
	{model.TypeFill, regexp.MustCompile(`(?i)[【\[]?(填空题|fill)[】\]]?`)},
}

var (
	inlineOptionRe      = regexp.MustCompile(`[A-F]\.\s*[^A-F.]+`)
	inlineOptionStartRe = regexp.MustCompile(`[A-F]\.\s*`)
	inlineAnswerRe      = regexp.MustCompile(`答案[:\s]*(\S+)`)
	inlineAnswerMarkRe  = regexp.MustCompile(`答案[:\s]*`)
	inlineExplRe        = regexp.MustCompile(`解析[:\s]*(.+)$`)
	inlineExplMarkRe    = regexp.MustCompile(`解析[:\s]*`)
)

func defaultTrueFalseOptions() []model.Option {
	return []model.Option{
		{Key: "A", Value: "正确"},
		{Key: "B", Value: "错误"},
	}
}

// ParseHeader 解析题目开始行，返回题目草稿和该行已推进到的区域。
// 同一行里可以塞进题干、选项、答案甚至解析，全部在这里拆开。
func ParseHeader(line string) (*Question, section) {
	n := Normalize(line)

	qType := model.TypeSingle // 防御默认，IsQuestionStart 已保证有标记
	for _, tm := range typeMarkers {
		if tm.re.MatchString(n) {
			qType = tm.qType
			n = strings.TrimSpace(tm.re.ReplaceAllString(n, ""))
			break
		}
	}

	// 去掉题号前缀，序号仅用于文档组织
	n = strings.TrimSpace(numberPrefixRe.ReplaceAllString(n, ""))

	q := &Question{
		Type:       qType,
		Options:    []model.Option{},
		Difficulty: 1,
		Subject:    DefaultSubject,
	}
	if qType == model.TypeTrueFalse {
		q.Options = defaultTrueFalseOptions()
		q.seeded = true
	}

	sec := secContent

	// 内容截断点：优先找行内选项（至少两个），否则找行内答案/解析标记
	optionMatches := inlineOptionRe.FindAllString(n, -1)
	content := n
	if len(optionMatches) >= 2 {
		if loc := inlineOptionStartRe.FindStringIndex(n); loc != nil {
			content = strings.TrimSpace(n[:loc[0]])
		}
	} else {
		cut := -1
		if loc := inlineAnswerMarkRe.FindStringIndex(n); loc != nil {
			cut = loc[0]
		}
		if loc := inlineExplMarkRe.FindStringIndex(n); loc != nil && (cut < 0 || loc[0] < cut) {
			cut = loc[0]
		}
		if cut > 0 {
			content = strings.TrimSpace(n[:cut])
		}
	}

	if content != "" {
		q.Content = content
		q.Title = deriveTitle(content)
	} else {
		q.Content = n
		q.Title = truncateRunes(n, 50)
	}

	if len(optionMatches) >= 2 {
		sec = secOptions
		for _, m := range optionMatches {
			if opt, ok := ParseOption(strings.TrimSpace(m)); ok {
				q.addOption(opt)
			}
		}
	}
	if m := inlineAnswerRe.FindStringSubmatch(n); m != nil {
		q.CorrectAnswer = strings.TrimSpace(m[1])
		sec = secAnswer
	}
	if m := inlineExplRe.FindStringSubmatch(n); m != nil {
		q.Explanation = strings.TrimSpace(m[1])
		sec = secExplanation
	}

	return q, sec
}

// DeriveTitle 从题干派生标题，手工录入未给标题时使用
func DeriveTitle(content string) string {
	return deriveTitle(Normalize(content))
}

// deriveTitle 取第一个位于 5 到 50 字符之间的句子终结符为界，
// 超长内容截断为 47 字符加省略号
func deriveTitle(content string) string {
	runes := []rune(content)
	term := -1
	for i, r := range runes {
		if strings.ContainsRune("。？！.?!", r) {
			term = i
			break
		}
	}
	if term > 5 && term < 50 {
		return string(runes[:term+1])
	}
	if len(runes) > 50 {
		return string(runes[:47]) + "..."
	}
	return content
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
