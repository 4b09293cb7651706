package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/jonathan/applicant-scorer/internal/embedding"
	"github.com/jonathan/applicant-scorer/internal/logger"
	"github.com/jonathan/applicant-scorer/internal/types"
	"go.uber.org/zap"
)

// Weights of the final score. They sum to 1.0.
// Older descriptions of this formula list 0.5/0.4/0.1; the applied 0.6/0.3/0.1 is canonical.
const (
	skillWeight      = 0.6
	relevanceWeight  = 0.3
	experienceWeight = 0.1
)

// Engine scores (job, applicant) pairs against an injected similarity provider.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	provider  embedding.Provider
	threshold float64
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold sets the skill similarity threshold.
func WithThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.threshold = threshold
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine using provider for all similarity computations.
func NewEngine(provider embedding.Provider, opts ...Option) (*Engine, error) {
	if provider == nil {
		return nil, fmt.Errorf("similarity provider is required")
	}

	e := &Engine{
		provider:  provider,
		threshold: DefaultSkillThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if math.IsNaN(e.threshold) || e.threshold < 0 || e.threshold > 1 {
		return nil, fmt.Errorf("skill threshold must be within [0, 1], got %v", e.threshold)
	}
	e.logger = logger.WithModel(e.logger, provider.Model())
	return e, nil
}

// Threshold returns the skill similarity threshold in use.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Score computes the sub-scores and the weighted final score for one pair.
// Any stage failure fails the whole call; no partial result is returned.
func (e *Engine) Score(ctx context.Context, job types.JobRequirement, applicant types.ApplicantProfile) (*types.ScoreResult, error) {
	skillScore, matched, err := SkillMatch(ctx, e.provider, job.Tags, applicant.Skills, e.threshold)
	if err != nil {
		return nil, &StageError{Stage: StageSkillMatch, Cause: err}
	}

	relevance, err := ResumeRelevance(ctx, e.provider, job.Description, applicant.ResumeText)
	if err != nil {
		return nil, &StageError{Stage: StageResumeRelevance, Cause: err}
	}

	experience := ExperienceMatch(job.RequiredYears, applicant.ExperienceYears)

	result := Aggregate(skillScore, relevance, experience, matched)

	e.logger.Debug("scored applicant",
		zap.Float64("skill_score", result.SkillScore),
		zap.Float64("resume_relevance", result.ResumeRelevance),
		zap.Float64("experience_match", result.ExperienceMatch),
		zap.Float64("final_score", result.FinalScore),
		zap.Int("matched_skills", len(matched)),
		zap.Stringer("required_years", job.RequiredYears),
		zap.Stringer("experience_years", applicant.ExperienceYears))

	return result, nil
}

// Aggregate converts sub-scores in [0, 1] into a ScoreResult of percentages rounded to two decimals.
func Aggregate(skillScore, relevance, experience float64, matched []types.MatchedSkill) *types.ScoreResult {
	skillScore = clamp01(skillScore)
	relevance = clamp01(relevance)
	experience = clamp01(experience)

	final := (skillScore*skillWeight + relevance*relevanceWeight + experience*experienceWeight) * 100

	if matched == nil {
		matched = []types.MatchedSkill{}
	}

	return &types.ScoreResult{
		SkillScore:      percent(skillScore),
		ResumeRelevance: percent(relevance),
		ExperienceMatch: percent(experience),
		FinalScore:      math.Max(0, math.Min(100, round(final, 2))),
		MatchedSkills:   matched,
	}
}

func percent(v float64) float64 {
	return round(v*100, 2)
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
