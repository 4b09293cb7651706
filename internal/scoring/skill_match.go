// Package scoring implements the applicant scoring engine: skill match,
// resume relevance and experience match, combined into one weighted score.
package scoring

import (
	"context"

	"github.com/jonathan/applicant-scorer/internal/embedding"
	"github.com/jonathan/applicant-scorer/internal/parsing"
	"github.com/jonathan/applicant-scorer/internal/types"
)

// DefaultSkillThreshold is the minimum similarity for an applicant skill to satisfy a job skill.
const DefaultSkillThreshold = 0.6

// SkillMatch returns the fraction of job skills satisfied by some applicant skill,
// plus, for every satisfied job skill, the applicant skill with the highest similarity.
//
// A job with no skills after normalization scores 1.0. All distinct skill
// strings are embedded in a single provider call.
func SkillMatch(ctx context.Context, p embedding.Provider, jobSkills, applicantSkills []string, threshold float64) (float64, []types.MatchedSkill, error) {
	jobSet := parsing.NormalizeSkillSet(jobSkills)
	if len(jobSet) == 0 {
		return 1.0, []types.MatchedSkill{}, nil
	}

	applicantSet := parsing.NormalizeSkillSet(applicantSkills)
	if len(applicantSet) == 0 {
		return 0.0, []types.MatchedSkill{}, nil
	}

	texts, index := uniqueTexts(jobSet, applicantSet)
	vectors, err := embedding.Embed(ctx, p, texts)
	if err != nil {
		return 0, nil, err
	}

	applicantVectors := make([][]float32, len(applicantSet))
	for i, skill := range applicantSet {
		applicantVectors[i] = vectors[index[skill]]
	}

	matched := make([]types.MatchedSkill, 0, len(jobSet))
	for _, jobSkill := range jobSet {
		best, sim := embedding.BestMatch(vectors[index[jobSkill]], applicantVectors)
		if best < 0 || sim < threshold {
			continue
		}
		matched = append(matched, types.MatchedSkill{
			JobSkill:       jobSkill,
			ApplicantSkill: applicantSet[best],
			Similarity:     round(sim, 4),
		})
	}

	return float64(len(matched)) / float64(len(jobSet)), matched, nil
}

// uniqueTexts merges the sets into one embedding request and maps each text to its position.
func uniqueTexts(sets ...[]string) ([]string, map[string]int) {
	index := make(map[string]int)
	var texts []string
	for _, set := range sets {
		for _, text := range set {
			if _, ok := index[text]; ok {
				continue
			}
			index[text] = len(texts)
			texts = append(texts, text)
		}
	}
	return texts, index
}
