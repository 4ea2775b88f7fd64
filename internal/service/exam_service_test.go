package service

import (
	"testing"

	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/grader"
	"exam_admin_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamServiceSetPolicySwapsEvaluator(t *testing.T) {
	cfg := &config.Config{Grading: grader.DefaultPolicy()}
	svc := NewExamService(nil, nil, nil, nil, cfg)

	q := grader.Question{Type: model.TypeSingle, CorrectAnswer: "A"}
	res, err := svc.Evaluator.Evaluate(q, grader.TextSubmission("A"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Score)

	// 热更新后同一次服务实例按新策略给分
	policy := grader.DefaultPolicy()
	policy.DefaultScore = 12
	svc.SetPolicy(policy)

	res, err = svc.Evaluator.Evaluate(q, grader.TextSubmission("A"))
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, 12.0, res.Score)
}
