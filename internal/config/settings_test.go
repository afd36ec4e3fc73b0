package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "groq", settings.LLM.Provider)
	assert.Equal(t, 5, settings.VectorDB.NResults)
	assert.Equal(t, 0.3, settings.VectorDB.Threshold)
}

func TestLoadSettingsOverridesDefaults(t *testing.T) {
	path := writeFile(t, "app.yaml", `
llm:
  provider: ollama
  model: llama3.2
vectordb:
  n_results: 3
  threshold: 0.5
providers:
  ollama:
    models:
      - llama3.2
reasoning_strategies:
  CoT: Think step by step.
`)

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", settings.LLM.Provider)
	assert.Equal(t, "llama3.2", settings.LLM.Model)
	assert.Equal(t, 3, settings.VectorDB.NResults)
	assert.Equal(t, 0.5, settings.VectorDB.Threshold)
	assert.Equal(t, []string{"llama3.2"}, settings.Providers["ollama"].Models)
	assert.Equal(t, "Think step by step.", settings.ReasoningStrategies["CoT"])
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "app.yaml", "llm:\n  provider: ollama\n")

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", settings.LLM.Provider)
	assert.Equal(t, 5, settings.VectorDB.NResults)
	assert.Equal(t, 0.3, settings.VectorDB.Threshold)
}

func TestLoadPromptConfig(t *testing.T) {
	path := writeFile(t, "prompt.yaml", `
rag_assistant_prompt:
  role: A research assistant
  instruction: Answer using only the provided documents.
  output_constraints:
    - Do not fabricate
`)

	templates, err := LoadPromptConfig(path)
	require.NoError(t, err)

	template, ok := templates["rag_assistant_prompt"]
	require.True(t, ok)
	assert.Equal(t, "A research assistant", template.Role)
	assert.False(t, template.Instruction.IsEmpty())
	assert.Equal(t, []string{"Do not fabricate"}, template.OutputConstraints.Items())
}

func TestLoadPromptConfigMissingFileFails(t *testing.T) {
	_, err := LoadPromptConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
