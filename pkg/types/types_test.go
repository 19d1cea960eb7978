package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStrategy("  EXIF ")
	require.NoError(t, err)
	assert.Equal(t, StrategyExif, got)

	_, err = ParseStrategy("sundial")
	assert.ErrorContains(t, err, "unknown date strategy")
	assert.ErrorContains(t, err, "file-modify")
}

func TestParseCollision(t *testing.T) {
	got, err := ParseCollision("Rename")
	require.NoError(t, err)
	assert.Equal(t, CollisionRename, got)

	_, err = ParseCollision("ask")
	assert.Error(t, err)
}

func TestParseAction(t *testing.T) {
	got, err := ParseAction("hardlink")
	require.NoError(t, err)
	assert.Equal(t, ActionHardlink, got)

	_, err = ParseAction("symlink")
	assert.ErrorContains(t, err, "move, copy, hardlink")
}

func TestActionLabel(t *testing.T) {
	assert.Equal(t, "Move", ActionMove.Label())
	assert.Equal(t, "Copy", ActionCopy.Label())
	assert.Equal(t, "Hardlink", ActionHardlink.Label())
	assert.Equal(t, "", Action("").Label())
}

func TestOutcomeSucceeded(t *testing.T) {
	assert.True(t, ProcessingOutcome{SourcePath: "a.jpg"}.Succeeded())
	assert.False(t, ProcessingOutcome{SourcePath: "a.jpg", Error: errors.New("boom")}.Succeeded())
}

func TestBatchSummaryCounts(t *testing.T) {
	s := BatchSummary{Outcomes: []ProcessingOutcome{
		{SourcePath: "a.jpg"},
		{SourcePath: "b.jpg", Error: errors.New("no exif")},
		{SourcePath: "c.jpg"},
	}}
	assert.Equal(t, 2, s.Succeeded())
	assert.Equal(t, 1, s.Failed())

	assert.Zero(t, BatchSummary{}.Failed())
}
