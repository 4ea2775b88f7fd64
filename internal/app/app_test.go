package app

import (
	"testing"

	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/grader"
	"exam_admin_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReloadConfigNotifiesCallbacks(t *testing.T) {
	logger.Log = zap.NewNop()

	a := &App{Config: &config.Config{}}

	var got *config.Config
	a.RegisterConfigCallback(func(c *config.Config) { got = c })

	newCfg := &config.Config{
		Server:  config.ServerConfig{Port: "9090"},
		Grading: grader.Policy{DefaultScore: 12},
	}
	a.ReloadConfig(newCfg)

	require.NotNil(t, got)
	assert.Equal(t, 12.0, got.Grading.DefaultScore)
	// 配置本体同步更新，直接读 Config 的调用方立即可见
	assert.Equal(t, "9090", a.Config.Server.Port)
}
