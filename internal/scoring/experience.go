package scoring

import "github.com/jonathan/applicant-scorer/internal/types"

// ExperienceMatch returns linear credit for years of experience, capped at 1.
// No requirement means full credit; an unparsable value on either side means no credit.
func ExperienceMatch(required, actual types.Years) float64 {
	if required.Invalid || actual.Invalid {
		return 0.0
	}
	if required.Value == 0 {
		return 1.0
	}
	return min(actual.Value/required.Value, 1.0)
}
