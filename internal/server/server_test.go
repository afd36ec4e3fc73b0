package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebookrag/internal/bootstrap"
	"notebookrag/internal/config"
	"notebookrag/internal/controller"
)

func TestCorsConfigDisablesCredentialsForWildcard(t *testing.T) {
	cfg := corsConfig("*")

	assert.Equal(t, "*", cfg.AllowOrigins)
	assert.False(t, cfg.AllowCredentials)
}

func TestCorsConfigKeepsCredentialsForExplicitOrigins(t *testing.T) {
	cfg := corsConfig("http://localhost:5173")

	assert.Equal(t, "http://localhost:5173", cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
}

func TestNewStartsWithWildcardOrigins(t *testing.T) {
	container := &bootstrap.Container{
		NotebookController: controller.NewNotebookController(nil),
		FileController:     controller.NewFileController(nil),
		ChatController:     controller.NewChatController(nil),
	}
	cfg := &config.Config{App: config.AppConfig{
		Port:               "3000",
		CorsAllowedOrigins: "*",
	}}

	require.NotPanics(t, func() {
		srv := New(cfg, container)
		assert.NotNil(t, srv.GetApp())
	})
}
