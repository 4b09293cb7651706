// Package parsing normalizes skill names and free text before they reach the scoring engine.
package parsing

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSkillName lowercases a skill name and collapses its whitespace to single spaces.
// Text is first put in Unicode NFC so composed and decomposed spellings compare equal.
func NormalizeSkillName(skillName string) string {
	if skillName == "" {
		return ""
	}
	return strings.ToLower(strings.Join(strings.Fields(norm.NFC.String(skillName)), " "))
}

// NormalizeSkillSet normalizes every skill, drops empty names and duplicates,
// and returns the set in sorted order so callers never depend on input order.
func NormalizeSkillSet(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		normalized := NormalizeSkillName(skill)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	sort.Strings(out)
	return out
}

// IsBlank reports whether text has no non-whitespace content.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
