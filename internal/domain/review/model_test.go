package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, 0, s.Count)
		assert.Equal(t, 0.0, s.AverageRating)
	})

	t.Run("averages ratings", func(t *testing.T) {
		s := Summarize([]Review{{Rating: 5}, {Rating: 4}, {Rating: 2}})
		assert.Equal(t, 3, s.Count)
		assert.InDelta(t, 3.6667, s.AverageRating, 0.001)
	})
}
