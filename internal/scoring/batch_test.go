package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/applicant-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreBatch_KeepsInputOrder(t *testing.T) {
	e, err := NewEngine(newStub(scenarioVectors()))
	require.NoError(t, err)

	pairs := make([]Pair, 0, 10)
	for i := 0; i < 10; i++ {
		applicant := scenarioApplicant()
		applicant.ExperienceYears = types.YearsOf(float64(i))
		pairs = append(pairs, Pair{ID: string(rune('a' + i)), Job: scenarioJob(), Applicant: applicant})
	}

	batch, err := e.ScoreBatch(context.Background(), pairs, 3)
	require.NoError(t, err)
	require.Len(t, batch.Items, 10)
	assert.NotEmpty(t, batch.RunID)

	for i, item := range batch.Items {
		assert.Equal(t, pairs[i].ID, item.ID)
		want, err := e.Score(context.Background(), pairs[i].Job, pairs[i].Applicant)
		require.NoError(t, err)
		assert.Equal(t, want, item.Result)
	}
}

func TestScoreBatch_AllOrNothing(t *testing.T) {
	boom := errors.New("down")
	e, err := NewEngine(&stubProvider{err: boom})
	require.NoError(t, err)

	pairs := []Pair{{ID: "only", Job: scenarioJob(), Applicant: scenarioApplicant()}}
	batch, err := e.ScoreBatch(context.Background(), pairs, 0)
	assert.Nil(t, batch)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 0, batchErr.Index)
	assert.Equal(t, "only", batchErr.ID)

	var stageErr *StageError
	assert.ErrorAs(t, err, &stageErr)
}

func TestScoreBatch_Empty(t *testing.T) {
	e, err := NewEngine(newStub(nil))
	require.NoError(t, err)

	batch, err := e.ScoreBatch(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.Empty(t, batch.Items)
}

func TestPairFromRequest_AppliesDefaults(t *testing.T) {
	pair := PairFromRequest(types.ScoreRequest{ID: "r1"})

	assert.Equal(t, "r1", pair.ID)
	assert.Empty(t, pair.Job.Tags)
	assert.Equal(t, "", pair.Job.Description)
	assert.Equal(t, 0.0, pair.Job.RequiredYears.Value)
	assert.False(t, pair.Job.RequiredYears.Invalid)
	assert.Equal(t, "", pair.Applicant.ResumeText)
}
