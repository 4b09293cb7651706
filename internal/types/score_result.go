package types

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// MatchedSkill records which applicant skill satisfied a job skill and how closely.
type MatchedSkill struct {
	JobSkill       string  `json:"job_skill"`
	ApplicantSkill string  `json:"applicant_skill"`
	Similarity     float64 `json:"similarity"`
}

// ScoreResult is the outcome of scoring one (job, applicant) pair.
// All scores are percentages rounded to two decimals.
type ScoreResult struct {
	SkillScore      float64        `json:"skill_score" validate:"gte=0,lte=100"`
	ResumeRelevance float64        `json:"resume_relevance" validate:"gte=0,lte=100"`
	ExperienceMatch float64        `json:"experience_match" validate:"gte=0,lte=100"`
	FinalScore      float64        `json:"final_score" validate:"gte=0,lte=100"`
	MatchedSkills   []MatchedSkill `json:"matched_skills"`
}

// Validate checks the score bounds.
func (r *ScoreResult) Validate() error {
	return validate.Struct(r)
}

// BatchResultItem is one scored request inside a batch output.
type BatchResultItem struct {
	ID     string       `json:"id,omitempty"`
	Result *ScoreResult `json:"result"`
}

// BatchResult is the output of a batch scoring run. Items keep input order.
type BatchResult struct {
	RunID string            `json:"run_id"`
	Items []BatchResultItem `json:"items"`
}
