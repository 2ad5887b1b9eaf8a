package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tffedibot/fedibot/internal/analyzer"
)

func TestSeverity_String_allLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		severity analyzer.Severity
		expected string
	}{
		{analyzer.Safe, "SAFE"},
		{analyzer.Low, "LOW"},
		{analyzer.Medium, "MEDIUM"},
		{analyzer.High, "HIGH"},
		{analyzer.Critical, "CRITICAL"},
		{analyzer.Severity(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.severity.String())
		})
	}
}

func TestSeverity_ordering(t *testing.T) {
	t.Parallel()

	assert.Less(t, analyzer.Safe, analyzer.Low)
	assert.Less(t, analyzer.Low, analyzer.Medium)
	assert.Less(t, analyzer.Medium, analyzer.High)
	assert.Less(t, analyzer.High, analyzer.Critical)
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	got, err := analyzer.ParseSeverity("high")
	require.NoError(t, err)
	assert.Equal(t, analyzer.High, got)

	got, err = analyzer.ParseSeverity("CRITICAL")
	require.NoError(t, err)
	assert.Equal(t, analyzer.Critical, got)

	_, err = analyzer.ParseSeverity("catastrophic")
	require.Error(t, err)
}
