package expectancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/run-expectancy/internal/models"
)

func TestLookupDefault(t *testing.T) {
	tests := []struct {
		code, outs int
		want       float64
	}{
		{0, 0, 0.4886},
		{1, 1, 0.5115},
		{3, 2, 0.4392},
		{4, 0, 1.3081},
		{7, 0, 2.2618},
		{7, 2, 0.7018},
	}

	for _, tt := range tests {
		got, err := Default.Lookup(tt.code, tt.outs)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestLookupOutOfRange(t *testing.T) {
	cases := [][2]int{{0, 3}, {8, 0}, {-1, 0}, {0, -1}}
	for _, c := range cases {
		_, err := Default.Lookup(c[0], c[1])
		assert.ErrorIs(t, err, models.ErrIndexOutOfRange)
	}
}

func TestDefaultIncreasesWithRunnersAndDecreasesWithOuts(t *testing.T) {
	for code := 0; code < OccupancyStates; code++ {
		for outs := 1; outs < OutStates; outs++ {
			assert.Less(t, Default[code][outs], Default[code][outs-1])
		}
	}
	assert.Greater(t, Default[7][0], Default[0][0])
}

func TestCodeRoundTrip(t *testing.T) {
	for code := 0; code < OccupancyStates; code++ {
		first, second, third := Bases(code)
		assert.Equal(t, code, Code(first, second, third))
	}
	assert.Equal(t, 5, Code(true, false, true))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "_ _ _", Label(0))
	assert.Equal(t, "1 _ _", Label(1))
	assert.Equal(t, "_ 2 3", Label(6))
	assert.Equal(t, "1 2 3", Label(7))
}

func TestSet(t *testing.T) {
	table := Default
	require.NoError(t, table.Set(2, 1, 9.5))
	assert.Equal(t, 9.5, table[2][1])
	assert.Equal(t, 0.6551, Default[2][1])
	assert.ErrorIs(t, table.Set(2, 3, 1), models.ErrIndexOutOfRange)
}
