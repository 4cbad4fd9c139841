package brackets

import (
	"testing"

	"github.com/arenaops/esports-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in   string
		want models.BracketFormat
	}{
		{"single-elimination", models.FormatSingleElimination},
		{"Single_Elimination", models.FormatSingleElimination},
		{"SINGLE ELIMINATION", models.FormatSingleElimination},
		{"round_robin", models.FormatRoundRobin},
		{"Round-Robin", models.FormatRoundRobin},
		{"double-elimination", models.FormatDoubleElimination},
		{"  double_elimination ", models.FormatDoubleElimination},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "swiss", "single", "triple-elimination"} {
		_, err := ParseFormat(in)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", in)
	}
}

func TestNewGeneratorNames(t *testing.T) {
	for format, name := range map[models.BracketFormat]string{
		models.FormatSingleElimination: "SingleElimination",
		models.FormatDoubleElimination: "DoubleElimination",
		models.FormatRoundRobin:        "RoundRobin",
	} {
		gen, err := NewGenerator(format)
		require.NoError(t, err)
		assert.Equal(t, name, gen.Name())
	}

	_, err := NewGenerator(models.BracketFormat("swiss"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
