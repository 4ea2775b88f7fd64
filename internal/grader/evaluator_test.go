package grader

import (
	"testing"

	"exam_admin_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvaluator() *Evaluator {
	return NewEvaluator(DefaultPolicy())
}

func TestEvaluateSingleChoice(t *testing.T) {
	e := newTestEvaluator()
	q := Question{Type: model.TypeSingle, CorrectAnswer: "A", Score: 5}

	tests := []struct {
		name    string
		sub     Submission
		correct bool
		score   float64
	}{
		{"完全一致", TextSubmission("A"), true, 5},
		{"大小写不敏感", TextSubmission("a"), true, 5},
		{"两侧空白忽略", TextSubmission(" A "), true, 5},
		{"答错", TextSubmission("B"), false, 0},
		{"未作答", TextSubmission("   "), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(q, tt.sub)
			require.NoError(t, err)
			assert.Equal(t, Result{IsCorrect: tt.correct, Score: tt.score}, got)
		})
	}
}

func TestEvaluateTrueFalse(t *testing.T) {
	e := newTestEvaluator()
	q := Question{Type: model.TypeTrueFalse, CorrectAnswer: "B", Score: 2}

	got, err := e.Evaluate(q, TextSubmission("b"))
	require.NoError(t, err)
	assert.True(t, got.IsCorrect)
	assert.Equal(t, 2.0, got.Score)

	got, err = e.Evaluate(q, TextSubmission("A"))
	require.NoError(t, err)
	assert.False(t, got.IsCorrect)
	assert.Zero(t, got.Score)
}

func TestEvaluateMultipleChoice(t *testing.T) {
	e := newTestEvaluator()
	q := Question{Type: model.TypeMultiple, CorrectAnswer: "A,B", Score: 4}

	tests := []struct {
		name    string
		sub     Submission
		correct bool
	}{
		{"顺序无关", ChoicesSubmission([]string{"B", "A"}), true},
		{"文本形式作答", TextSubmission("A,B"), true},
		{"带空白的文本作答", TextSubmission("B, A"), true},
		{"漏选", ChoicesSubmission([]string{"A"}), false},
		{"多选", ChoicesSubmission([]string{"A", "B", "C"}), false},
		{"选错", ChoicesSubmission([]string{"A", "C"}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Evaluate(q, tt.sub)
			require.NoError(t, err)
			assert.Equal(t, tt.correct, got.IsCorrect)
			if tt.correct {
				assert.Equal(t, 4.0, got.Score)
			} else {
				assert.Zero(t, got.Score)
			}
		})
	}
}

func TestEvaluateMultipleEmptyChoices(t *testing.T) {
	e := newTestEvaluator()
	q := Question{Type: model.TypeMultiple, CorrectAnswer: "A,B", Score: 4}

	got, err := e.Evaluate(q, ChoicesSubmission(nil))
	require.NoError(t, err)
	assert.Equal(t, Result{IsCorrect: false, Score: 0}, got)
}

func TestEvaluateFill(t *testing.T) {
	e := newTestEvaluator()

	tests := []struct {
		name    string
		answer  string
		sub     string
		correct bool
	}{
		{"单空相等", "2", "2", true},
		{"单空错误", "2", "3", false},
		{"标准答案包含作答", "瑞利散射现象", "瑞利散射", true},
		{"作答超出标准答案", "瑞利散射", "瑞利散射现象", false},
		{"双竖线多空顺序无关", "红||绿||蓝", "蓝||红||绿", true},
		{"全角竖线折算", "甲||乙", "甲｜｜乙", true},
		{"顿号分隔", "甲、乙", "乙、甲", true},
		{"中英文逗号互通", "1，2", "1,2", true},
		{"空的数量不一致", "甲||乙", "甲", false},
		{"大小写不敏感", "HTML", "html", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{Type: model.TypeFill, CorrectAnswer: tt.answer, Score: 3}
			got, err := e.Evaluate(q, TextSubmission(tt.sub))
			require.NoError(t, err)
			assert.Equal(t, tt.correct, got.IsCorrect)
		})
	}
}

func TestEvaluateEssayFullMatch(t *testing.T) {
	e := newTestEvaluator()
	q := Question{
		Type:          model.TypeEssay,
		CorrectAnswer: "响应式设计 自适应布局 媒体查询",
		Score:         10,
	}

	got, err := e.Evaluate(q, TextSubmission("响应式设计依靠自适应布局和媒体查询实现"))
	require.NoError(t, err)
	assert.True(t, got.IsCorrect)
	assert.Equal(t, 10.0, got.Score)
}

func TestEvaluateEssaySevenOfTenKeywords(t *testing.T) {
	// 命中 10 个等长关键词中的 7 个，匹配率恰为 0.7，落入满分阶梯
	e := newTestEvaluator()
	q := Question{
		Type:          model.TypeEssay,
		CorrectAnswer: "光合作用 叶绿体里 光反应段 暗反应段 二氧化碳 水被分解 释放氧气 生成糖类 能量转换 依赖酶促",
		Score:         10,
	}

	user := "光合作用发生在叶绿体里 分为光反应段与暗反应段 吸收二氧化碳 水被分解并释放氧气 最终得到产物"
	got, err := e.Evaluate(q, TextSubmission(user))
	require.NoError(t, err)
	assert.True(t, got.IsCorrect)
	assert.Equal(t, 10.0, got.Score)
}

func TestEvaluateEssayPartialTiers(t *testing.T) {
	e := newTestEvaluator()

	tests := []struct {
		name    string
		answer  string
		sub     string
		correct bool
		score   float64
	}{
		{
			// 命中 3 个关键词中的 2 个，匹配率约 0.66，给 0.8 比例
			name:    "过半命中判对给八成",
			answer:  "响应式设计 自适应布局 媒体查询",
			sub:     "响应式设计需要配合媒体查询使用",
			correct: true,
			score:   8,
		},
		{
			// 命中 5 个等长关键词中的 2 个，匹配率 0.4
			name:    "四成命中判错给六成",
			answer:  "数据加密 访问控制 审计日志 权限分级 安全培训",
			sub:     "系统使用数据加密与访问控制",
			correct: false,
			score:   6,
		},
		{
			// 命中 3 个等长关键词中的 1 个，匹配率约 0.33
			name:    "三成命中判错给三成",
			answer:  "数据加密 访问控制 审计日志",
			sub:     "主要依靠数据加密来保护",
			correct: false,
			score:   3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{Type: model.TypeEssay, CorrectAnswer: tt.answer, Score: 10}
			got, err := e.Evaluate(q, TextSubmission(tt.sub))
			require.NoError(t, err)
			assert.Equal(t, tt.correct, got.IsCorrect)
			assert.Equal(t, tt.score, got.Score)
		})
	}
}

func TestEvaluateEssayTooShort(t *testing.T) {
	e := newTestEvaluator()
	q := Question{Type: model.TypeEssay, CorrectAnswer: "响应式设计 自适应布局 媒体查询", Score: 10}

	got, err := e.Evaluate(q, TextSubmission("太难"))
	require.NoError(t, err)
	assert.Equal(t, Result{IsCorrect: false, Score: 0}, got)
}

func TestEvaluateEssayShortPenalty(t *testing.T) {
	// 只答出一个关键词且长度不足参考答案两成，惩罚后跌出最低阶梯
	e := newTestEvaluator()
	q := Question{
		Type:          model.TypeEssay,
		CorrectAnswer: "微服务架构 服务注册发现 熔断降级策略 链路追踪体系 配置中心管理",
		Score:         10,
	}

	got, err := e.Evaluate(q, TextSubmission("熔断降级策略"))
	require.NoError(t, err)
	assert.Equal(t, Result{IsCorrect: false, Score: 0}, got)
}

func TestEvaluateDefaultScore(t *testing.T) {
	// 题目未配置分值时按策略缺省分值给分
	e := newTestEvaluator()
	q := Question{Type: model.TypeSingle, CorrectAnswer: "A"}

	got, err := e.Evaluate(q, TextSubmission("A"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Score)
}

func TestEvaluateCustomPolicy(t *testing.T) {
	// 部分覆盖的策略经 normalized 补全后仍可用
	e := NewEvaluator(Policy{DefaultScore: 10})
	q := Question{Type: model.TypeFill, CorrectAnswer: "甲"}

	got, err := e.Evaluate(q, TextSubmission("甲"))
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Score)
}

func TestEvaluateUnknownType(t *testing.T) {
	e := newTestEvaluator()
	q := Question{Type: "ranking", CorrectAnswer: "A", Score: 5}

	_, err := e.Evaluate(q, TextSubmission("A"))
	assert.ErrorIs(t, err, ErrUnknownQuestionType)
}

func TestEvaluateUnknownTypeEmptySubmission(t *testing.T) {
	// 未作答在题型判定之前处理，未知题型的空作答不报错
	e := newTestEvaluator()
	q := Question{Type: "ranking", CorrectAnswer: "A", Score: 5}

	got, err := e.Evaluate(q, TextSubmission(""))
	require.NoError(t, err)
	assert.Equal(t, Result{IsCorrect: false, Score: 0}, got)
}
