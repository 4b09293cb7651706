package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes the JSON object an extraction prompt asks for.
type ExtractionSchema struct {
	Name        string        // e.g. "ResumeSkills"
	Description string        // System prompt preamble describing the task
	Fields      []SchemaField // Expected output fields
	Rules       []string      // Task-specific rules appended to the common ones
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint, "string" when empty
	Description string
	Required    bool
}

// commonRules apply to every extraction prompt.
var commonRules = []string{
	"Extract information directly from the text, do not invent or summarize.",
	"Return ONLY the JSON object, no markdown, no explanation, no code blocks.",
}

// BuildExtractionPrompt renders the schema, the rules and the input text as one prompt.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\nReturn ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		fmt.Fprintf(&sb, "  %q: %s", field.Name, typeHint)
		if field.Required {
			sb.WriteString(" (required)")
		}
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\nIMPORTANT:\n")
	for _, rule := range append(append([]string{}, commonRules...), schema.Rules...) {
		fmt.Fprintf(&sb, "- %s\n", rule)
	}

	sb.WriteString("\nInput text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

// SkillListSchema asks for {"skills": [...]} under the given preamble.
func SkillListSchema(name, description string) ExtractionSchema {
	return ExtractionSchema{
		Name:        name,
		Description: description,
		Fields: []SchemaField{
			{
				Name:        "skills",
				Type:        `["string"]`,
				Description: "Distinct skill names, one entry per skill",
				Required:    true,
			},
		},
		Rules: []string{
			"List each skill once, even if the text mentions it several times.",
			`Return {"skills": []} when the text names no skills.`,
		},
	}
}
