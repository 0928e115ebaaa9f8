package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankByPeakNotTotal(t *testing.T) {
	// X totals 30 but peaks at 10; Y totals 52 and peaks at 50. A flat
	// service with a larger total would still rank below a spiky one.
	peaks := map[string]float64{"X": 10, "Y": 50, "Z": 20}

	assert.Equal(t, []string{"Y", "Z", "X"}, Rank(peaks, nil))
}

func TestRankTieBreaks(t *testing.T) {
	peaks := map[string]float64{"b": 5, "a": 5, "c": 5, "d": 9}

	assert.Equal(t, []string{"d", "a", "b", "c"}, Rank(peaks, nil))
	assert.Equal(t, []string{"d", "c", "a", "b"}, Rank(peaks, []string{"c", "a"}))
	// The explicit order only breaks ties; it never beats a higher peak.
	assert.Equal(t, []string{"d", "b", "a", "c"}, Rank(peaks, []string{"b", "b", "d"}))
}

func TestRankIsDeterministic(t *testing.T) {
	peaks := map[string]float64{}
	for _, id := range []string{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"} {
		peaks[id] = 1
	}
	first := Rank(peaks, nil)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Rank(peaks, nil))
	}
}

func TestTopN(t *testing.T) {
	ranking := []string{"a", "b", "c"}

	sel, rest := TopN(ranking, 2)
	assert.Equal(t, []string{"a", "b"}, sel)
	assert.Equal(t, []string{"c"}, rest)

	sel, rest = TopN(ranking, 3)
	assert.Equal(t, ranking, sel)
	assert.Empty(t, rest)

	sel, rest = TopN(ranking, 0)
	assert.Empty(t, sel)
	assert.Equal(t, ranking, rest)
}
