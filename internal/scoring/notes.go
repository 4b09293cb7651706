package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/applicant-scorer/internal/types"
)

// Explain creates a brief human-readable explanation of a result.
func Explain(result *types.ScoreResult) string {
	if result == nil {
		return ""
	}

	var parts []string

	pairs := make([]string, 0, len(result.MatchedSkills))
	for _, m := range result.MatchedSkills {
		if m.JobSkill == m.ApplicantSkill {
			pairs = append(pairs, m.JobSkill)
		} else {
			pairs = append(pairs, fmt.Sprintf("%s ~ %s", m.JobSkill, m.ApplicantSkill))
		}
	}

	switch {
	case len(pairs) == 0 && result.SkillScore >= 100:
		parts = append(parts, "No required skills")
	case len(pairs) == 0:
		parts = append(parts, "No skill matches")
	case result.SkillScore >= 70:
		parts = append(parts, fmt.Sprintf("Strong skill match (%s)", strings.Join(pairs, ", ")))
	case result.SkillScore >= 40:
		parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", strings.Join(pairs, ", ")))
	default:
		parts = append(parts, fmt.Sprintf("Weak skill match (%s)", strings.Join(pairs, ", ")))
	}

	switch {
	case result.ResumeRelevance >= 60:
		parts = append(parts, "High resume relevance")
	case result.ResumeRelevance >= 30:
		parts = append(parts, "Medium resume relevance")
	default:
		parts = append(parts, "Low resume relevance")
	}

	if result.ExperienceMatch >= 100 {
		parts = append(parts, "Meets experience requirement")
	} else {
		parts = append(parts, fmt.Sprintf("Has %.0f%% of required experience", result.ExperienceMatch))
	}

	return strings.Join(parts, ". ")
}
