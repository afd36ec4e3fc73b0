package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"notebookrag/pkg/apperror"
	"notebookrag/pkg/rag/prompt"
)

// Settings is the YAML application configuration: model defaults, retrieval
// tuning, and the provider/model menu exposed to clients. A missing file
// resolves to the documented defaults rather than an error.
type Settings struct {
	LLM                 LLMSettings               `yaml:"llm"`
	VectorDB            VectorDBSettings          `yaml:"vectordb"`
	Providers           map[string]ProviderModels `yaml:"providers"`
	ReasoningStrategies map[string]string         `yaml:"reasoning_strategies"`
}

type LLMSettings struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

type VectorDBSettings struct {
	NResults  int     `yaml:"n_results"`
	Threshold float64 `yaml:"threshold"`
}

type ProviderModels struct {
	Models []string `yaml:"models"`
}

func defaultSettings() *Settings {
	return &Settings{
		LLM: LLMSettings{
			Provider: "groq",
			Model:    "meta-llama/llama-4-scout-17b-16e-instruct",
		},
		VectorDB: VectorDBSettings{
			NResults:  5,
			Threshold: 0.3,
		},
	}
}

// LoadSettings reads the YAML application settings, falling back to the
// defaults for the file as a whole and for each absent field.
func LoadSettings(path string) (*Settings, error) {
	settings := defaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, apperror.IO(err, "read settings file %s", path)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, apperror.Config(err, "parse settings file %s", path)
	}

	if settings.VectorDB.NResults <= 0 {
		settings.VectorDB.NResults = 5
	}
	if settings.VectorDB.Threshold <= 0 {
		settings.VectorDB.Threshold = 0.3
	}
	return settings, nil
}

// LoadPromptConfig reads the named prompt templates. The file is required:
// without templates the chat flow cannot assemble prompts.
func LoadPromptConfig(path string) (map[string]prompt.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.IO(err, "read prompt config %s", path)
	}

	templates := make(map[string]prompt.Template)
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, apperror.Config(err, "parse prompt config %s", path)
	}
	return templates, nil
}
