package evaluation_test

import (
	"testing"

	"lsu-service/internal/evaluation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, raw := range []string{"Insuffisant", "Fragile", "Satisfaisant", "Très bien"} {
		level, err := evaluation.ParseLevel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, evaluation.Level(raw), level)
	}

	_, err := evaluation.ParseLevel("Excellent")
	require.Error(t, err)

	// The scale is case sensitive.
	_, err = evaluation.ParseLevel("satisfaisant")
	require.Error(t, err)
}

func TestLevelRank(t *testing.T) {
	assert.Equal(t, 0, evaluation.LevelInsufficient.Rank())
	assert.Equal(t, 1, evaluation.LevelFragile.Rank())
	assert.Equal(t, 2, evaluation.LevelSatisfactory.Rank())
	assert.Equal(t, 3, evaluation.LevelVeryGood.Rank())

	assert.Less(t, evaluation.LevelFragile.Rank(), evaluation.LevelVeryGood.Rank())
}

func TestCompetenciesValidate(t *testing.T) {
	valid := evaluation.Competencies{
		"Lecture":  evaluation.LevelSatisfactory,
		"Écriture": evaluation.LevelFragile,
	}
	require.NoError(t, valid.Validate())

	invalid := evaluation.Competencies{
		"Lecture": evaluation.Level("Moyen"),
	}
	require.Error(t, invalid.Validate())

	var empty evaluation.Competencies
	require.NoError(t, empty.Validate())
}

func TestValidPeriod(t *testing.T) {
	for _, p := range []string{"P1", "P2", "P3", "P4"} {
		assert.True(t, evaluation.ValidPeriod(p), p)
	}
	assert.False(t, evaluation.ValidPeriod("P5"))
	assert.False(t, evaluation.ValidPeriod("p1"))
	assert.False(t, evaluation.ValidPeriod(""))
}
