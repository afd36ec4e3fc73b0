package constant

import "notebookrag/pkg/rag/answerer"

const (
	// NoRelevantInformation is the canned reply when retrieval finds nothing
	// above the similarity threshold. Returned verbatim, no model call.
	NoRelevantInformation = answerer.NoRelevantInformation

	// ErrorReplyPrefix marks assistant transcript entries that record a
	// failure instead of an answer. The chat session keeps going.
	ErrorReplyPrefix = "Error: "
)

// Prompt template names expected in the prompt configuration file.
const (
	RagAssistantPromptName   = "rag_assistant_prompt"
	SystemPromptAdvancedName = "ai_assistant_system_prompt_advanced"
)
