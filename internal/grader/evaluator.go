// Package grader 依据题目的标准答案给学生作答评分。
//
// 除简答题外全部是二值判定：答对得满分，答错零分。简答题走关键词
// 部分给分：从参考答案里提取关键词，按命中数量与命中长度加权出
// 匹配率，再按作答长度的合理性打折，最后映射到给分阶梯。
package grader

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"exam_admin_backend/internal/model"
)

// ErrUnknownQuestionType 题型不在闭合集合内。解析器产出的题目不会
// 触发（校验已保证题型闭合），直接入库的题目需要调用方先行校验。
var ErrUnknownQuestionType = errors.New("未知的题型")

// Question 评分所需的题目视图，分值由调用方从试卷配置取出
type Question struct {
	Type          model.QuestionType
	CorrectAnswer string
	Score         float64
}

// Result 单题评分结果，Score 始终落在 [0, 题目分值] 内
type Result struct {
	IsCorrect bool    `json:"isCorrect"`
	Score     float64 `json:"score"`
}

// Submission 学生作答，闭合变体：纯文本或选项列表
type Submission struct {
	text    string
	choices []string
	multi   bool
}

func TextSubmission(s string) Submission {
	return Submission{text: s}
}

func ChoicesSubmission(choices []string) Submission {
	return Submission{choices: choices, multi: true}
}

// IsEmpty 未作答：空字符串或空选项列表
func (s Submission) IsEmpty() bool {
	if s.multi {
		return len(s.choices) == 0
	}
	return strings.TrimSpace(s.text) == ""
}

// Text 作答的持久化形态，选项列表折算为逗号拼接
func (s Submission) Text() string {
	return s.asText()
}

// asText 单值视图，选项列表折算为逗号拼接
func (s Submission) asText() string {
	if s.multi {
		return strings.Join(s.choices, ",")
	}
	return s.text
}

// asList 多值视图，文本按逗号拆分
func (s Submission) asList() []string {
	if s.multi {
		return s.choices
	}
	return strings.Split(s.text, ",")
}

type Evaluator struct {
	policy Policy
}

func NewEvaluator(policy Policy) *Evaluator {
	return &Evaluator{policy: policy.normalized()}
}

// Evaluate 按题型给一份作答评分。未作答不是错误，
// 按"自动判错、零分"处理。
func (e *Evaluator) Evaluate(q Question, sub Submission) (Result, error) {
	maxScore := q.Score
	if maxScore <= 0 {
		maxScore = e.policy.DefaultScore
	}

	if sub.IsEmpty() {
		return Result{IsCorrect: false, Score: 0}, nil
	}

	switch q.Type {
	case model.TypeSingle, model.TypeTrueFalse:
		return binary(equalFold(sub.asText(), q.CorrectAnswer), maxScore), nil

	case model.TypeMultiple:
		return binary(setEqual(sub.asList(), strings.Split(q.CorrectAnswer, ",")), maxScore), nil

	case model.TypeFill:
		return binary(fillCorrect(sub.asText(), q.CorrectAnswer), maxScore), nil

	case model.TypeEssay:
		correct, fraction := e.gradeEssay(sub.asText(), q.CorrectAnswer)
		return Result{IsCorrect: correct, Score: round2(fraction * maxScore)}, nil
	}

	return Result{}, ErrUnknownQuestionType
}

func binary(correct bool, maxScore float64) Result {
	if correct {
		return Result{IsCorrect: true, Score: maxScore}
	}
	return Result{IsCorrect: false, Score: 0}
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// setEqual 顺序无关的集合比较，两侧逐项去空白后排序对比
func setEqual(got, want []string) bool {
	g := trimAll(got)
	w := trimAll(want)
	if len(g) != len(w) {
		return false
	}
	sort.Strings(g)
	sort.Strings(w)
	for i := range g {
		if g[i] != w[i] {
			return false
		}
	}
	return true
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// splitBlanks 把一侧答案拆成多个空的答案。
// 分隔符按优先级尝试：||（先把中文输入法的｜折算）→ 中英文逗号 → 整体算一个空。
func splitBlanks(s string) []string {
	s = strings.ReplaceAll(s, "｜｜", "||")
	s = strings.ReplaceAll(s, "｜", "|")

	var parts []string
	switch {
	case strings.Contains(s, "||"):
		parts = strings.Split(s, "||")
	case strings.Contains(s, "、"):
		parts = strings.Split(s, "、")
	case strings.Contains(s, "，"):
		parts = strings.Split(s, "，")
	case strings.Contains(s, ","):
		parts = strings.Split(s, ",")
	default:
		parts = []string{s}
	}

	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return out
}

// fillCorrect 填空题：空的数量一致，且每个作答的空都能在标准答案里
// 找到某个空与之相等或包含它，顺序无关
func fillCorrect(userAnswer, correctAnswer string) bool {
	user := splitBlanks(userAnswer)
	correct := splitBlanks(correctAnswer)

	if len(user) != len(correct) {
		return false
	}
	for _, u := range user {
		matched := false
		for _, c := range correct {
			if u == c || strings.Contains(c, u) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

var essayPunctRe = regexp.MustCompile(`[：:；;，,。.！!？?（）()【】\[\]]`)

// gradeEssay 简答题关键词匹配，返回判定和给分比例
func (e *Evaluator) gradeEssay(userAnswer, correctAnswer string) (bool, float64) {
	user := strings.ToLower(strings.TrimSpace(userAnswer))
	correct := strings.ToLower(strings.TrimSpace(correctAnswer))

	if utf8.RuneCountInString(user) < e.policy.MinEssayLength {
		return false, 0
	}

	// 标点置空格后按空白切词，留下两个字符以上的词作为关键词
	var keywords []string
	for _, w := range strings.Fields(essayPunctRe.ReplaceAllString(correct, " ")) {
		if utf8.RuneCountInString(w) >= 2 {
			keywords = append(keywords, w)
		}
	}
	if len(keywords) == 0 {
		return false, 0
	}

	matched := 0
	totalLen := 0
	matchedLen := 0
	for _, kw := range keywords {
		kwLen := utf8.RuneCountInString(kw)
		totalLen += kwLen
		if strings.Contains(user, kw) {
			matched++
			matchedLen += kwLen
		}
	}

	countRatio := float64(matched) / float64(len(keywords))
	lengthRatio := 0.0
	if totalLen > 0 {
		lengthRatio = float64(matchedLen) / float64(totalLen)
	}
	matchRatio := countRatio*e.policy.CountWeight + lengthRatio*e.policy.LengthWeight

	// 作答长度与参考答案长度比的合理性惩罚，过短或过长都打折
	answerLengthRatio := float64(utf8.RuneCountInString(user)) / float64(utf8.RuneCountInString(correct))
	penalty := 1.0
	if answerLengthRatio < e.policy.ShortRatio {
		penalty = e.policy.ShortPenalty
	} else if answerLengthRatio > e.policy.LongRatio {
		penalty = e.policy.LongPenalty
	}

	adjusted := matchRatio * penalty
	for _, tier := range e.policy.Tiers {
		if adjusted >= tier.Threshold {
			return tier.Correct, tier.Fraction
		}
	}
	return false, 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
