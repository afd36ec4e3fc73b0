package prompt

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// FlexList is a template field that accepts either a single string or a
// list of strings in YAML. The two forms render differently: a scalar is
// emitted as-is, a list becomes dashed bullet lines.
type FlexList struct {
	items  []string
	scalar bool
}

func Scalar(value string) FlexList {
	return FlexList{items: []string{value}, scalar: true}
}

func List(values ...string) FlexList {
	return FlexList{items: values}
}

func (f *FlexList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var item string
		if err := value.Decode(&item); err != nil {
			return err
		}
		f.items = []string{item}
		f.scalar = true
		return nil
	}
	f.scalar = false
	return value.Decode(&f.items)
}

func (f FlexList) MarshalYAML() (interface{}, error) {
	if f.scalar && len(f.items) == 1 {
		return f.items[0], nil
	}
	return f.items, nil
}

func (f FlexList) IsEmpty() bool {
	if f.scalar {
		return len(f.items) == 1 && f.items[0] == ""
	}
	return len(f.items) == 0
}

func (f FlexList) Items() []string {
	return f.items
}

// render joins the content the way it appears under a section lead-in.
func (f FlexList) render() string {
	if f.scalar {
		return f.items[0]
	}
	lines := make([]string, len(f.items))
	for i, item := range f.items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// Template describes one prompt blueprint loaded from the prompt
// configuration file.
type Template struct {
	Description       string   `yaml:"description,omitempty"`
	Role              string   `yaml:"role,omitempty"`
	Instruction       FlexList `yaml:"instruction,omitempty"`
	Context           string   `yaml:"context,omitempty"`
	OutputConstraints FlexList `yaml:"output_constraints,omitempty"`
	StyleOrTone       FlexList `yaml:"style_or_tone,omitempty"`
	OutputFormat      FlexList `yaml:"output_format,omitempty"`
	Examples          FlexList `yaml:"examples,omitempty"`
	Goal              string   `yaml:"goal,omitempty"`
	ReasoningStrategy string   `yaml:"reasoning_strategy,omitempty"`
}
