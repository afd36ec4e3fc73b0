package prompt

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"notebookrag/pkg/apperror"
)

// Build assembles a user prompt from a template. Sections are emitted in a
// fixed order and joined with blank lines, so the same template and input
// always produce byte-identical output. strategies maps reasoning strategy
// names to their instruction text and may be nil.
func Build(template Template, inputData string, strategies map[string]string) (string, error) {
	if template.Instruction.IsEmpty() {
		return "", apperror.Validation("missing required field: instruction")
	}

	var parts []string

	if role := strings.TrimSpace(template.Role); role != "" {
		parts = append(parts, fmt.Sprintf("You are %s.", lowerFirst(role)))
	}

	parts = append(parts, section("Your task is as follows:", template.Instruction))

	if template.Context != "" {
		parts = append(parts, "Here's some background that may help you:\n"+template.Context)
	}
	if !template.OutputConstraints.IsEmpty() {
		parts = append(parts, section("Ensure your response follows these rules:", template.OutputConstraints))
	}
	if !template.StyleOrTone.IsEmpty() {
		parts = append(parts, section("Follow these style and tone guidelines in your response:", template.StyleOrTone))
	}
	if !template.OutputFormat.IsEmpty() {
		parts = append(parts, section("Structure your response as follows:", template.OutputFormat))
	}

	if !template.Examples.IsEmpty() {
		parts = append(parts, "Here are some examples to guide your response:")
		if template.Examples.scalar {
			parts = append(parts, template.Examples.items[0])
		} else {
			for i, example := range template.Examples.items {
				parts = append(parts, fmt.Sprintf("Example %d:\n%s", i+1, example))
			}
		}
	}

	if template.Goal != "" {
		parts = append(parts, "Your goal is to achieve the following outcome:\n"+template.Goal)
	}

	if inputData != "" {
		parts = append(parts,
			"Here is the content you need to work with:\n"+
				"<<<BEGIN CONTENT>>>\n"+
				"```\n"+strings.TrimSpace(inputData)+"\n```\n<<<END CONTENT>>>")
	}

	if name := template.ReasoningStrategy; name != "" && name != "None" {
		if text, ok := strategies[name]; ok && strings.TrimSpace(text) != "" {
			parts = append(parts, strings.TrimSpace(text))
		}
	}

	parts = append(parts, "Now perform the task as instructed above.")
	return strings.Join(parts, "\n\n"), nil
}

// BuildSystem assembles a system prompt from a template. Unlike Build, the
// role is mandatory here and the instruction is not used.
func BuildSystem(template Template, documentContent string) (string, error) {
	role := strings.TrimSpace(template.Role)
	if role == "" {
		return "", apperror.Validation("missing required field: role")
	}

	parts := []string{fmt.Sprintf("You are %s.", lowerFirst(role))}

	if !template.OutputConstraints.IsEmpty() {
		parts = append(parts, section("Follow these important guidelines:", template.OutputConstraints))
	}
	if !template.StyleOrTone.IsEmpty() {
		parts = append(parts, section("Communication style:", template.StyleOrTone))
	}
	if !template.OutputFormat.IsEmpty() {
		parts = append(parts, section("Response formatting:", template.OutputFormat))
	}
	if template.Goal != "" {
		parts = append(parts, "Your primary objective: "+template.Goal)
	}

	if documentContent != "" {
		parts = append(parts,
			"Base your responses on this document content:\n\n"+
				"=== DOCUMENT CONTENT ===\n"+
				strings.TrimSpace(documentContent)+"\n"+
				"=== END DOCUMENT CONTENT ===")
	}

	return strings.Join(parts, "\n\n"), nil
}

func section(leadIn string, value FlexList) string {
	return leadIn + "\n" + value.render()
}

func lowerFirst(text string) string {
	if text == "" {
		return text
	}
	r, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToLower(r)) + text[size:]
}
