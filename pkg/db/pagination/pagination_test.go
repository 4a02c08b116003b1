package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New(1, 6).Offset())
	assert.Equal(t, 12, New(3, 6).Offset())
	assert.Equal(t, 0, New(0, 6).Offset())
	assert.Equal(t, 0, New(-4, 6).Offset())

	huge := New(math.MaxInt/6*4+1, 6)
	assert.Equal(t, math.MaxInt/6+1, huge.Number)
	assert.Equal(t, math.MaxInt/6*6, huge.Offset())
	assert.Positive(t, huge.Offset())

	assert.Equal(t, math.MaxInt-1, New(math.MaxInt, 1).Offset())
}

func TestParse(t *testing.T) {
	assert.Equal(t, 2, Parse("2", 6).Number)
	assert.Equal(t, 1, Parse("", 6).Number)
	assert.Equal(t, 1, Parse("abc", 6).Number)
	assert.Equal(t, 1, Parse("-1", 6).Number)
	assert.Equal(t, 1, Parse("-99999999999999999999999", 6).Number)
	assert.Equal(t, math.MaxInt/6+1, Parse("99999999999999999999999", 6).Number)
}

func TestTotalPages(t *testing.T) {
	cases := map[int64]int{0: 0, 1: 1, 6: 1, 7: 2, 12: 2, 13: 3}
	for total, want := range cases {
		assert.Equal(t, want, TotalPages(total, 6), "total=%d", total)
	}
}
