package scoring

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/applicant-scorer/internal/logger"
	"github.com/jonathan/applicant-scorer/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pairs scored at once when the caller does not choose.
const DefaultConcurrency = 4

// Pair is one independent (job, applicant) scoring request.
type Pair struct {
	ID        string
	Job       types.JobRequirement
	Applicant types.ApplicantProfile
}

// PairFromRequest applies the record defaults of a ScoreRequest.
func PairFromRequest(req types.ScoreRequest) Pair {
	return Pair{
		ID:        req.ID,
		Job:       req.Job.Requirement(),
		Applicant: req.Applicant.Profile(),
	}
}

// ScoreBatch scores every pair independently, at most concurrency at a time.
// Results keep input order; pairs are not ranked against each other.
// The first failure cancels the remaining work and is returned as a *BatchError.
func (e *Engine) ScoreBatch(ctx context.Context, pairs []Pair, concurrency int) (*types.BatchResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	runID := uuid.New().String()
	log := logger.WithFields(e.logger, zap.String(logger.FieldRunID, runID))
	log.Info("starting batch scoring", zap.Int("pairs", len(pairs)), zap.Int("concurrency", concurrency))

	items := make([]types.BatchResultItem, len(pairs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, pair := range pairs {
		g.Go(func() error {
			result, err := e.Score(gCtx, pair.Job, pair.Applicant)
			if err != nil {
				log.Debug("pair failed", zap.Int("index", i), zap.String(logger.FieldPairID, pair.ID), zap.Error(err))
				return &BatchError{Index: i, ID: pair.ID, Cause: err}
			}
			items[i] = types.BatchResultItem{ID: pair.ID, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("batch scoring failed", zap.Error(err))
		return nil, err
	}

	log.Info("batch scoring complete", zap.Int("scored", len(items)))
	return &types.BatchResult{RunID: runID, Items: items}, nil
}
