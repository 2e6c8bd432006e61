package util

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		f    float64
		want string
	}{
		{3, "3.0"},
		{-0.5, "-0.5"},
		{2.75, "2.75"},
		{45.7, "45.7"},
		{1e21, "1e+21"},
		{1234567, "1.234567e+06"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, FormatFloat(c.f))
	}
}

func TestSliceFuncs(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]int{1, 2}, 3))

	assert.Equal(t, []string{"1", "2"}, Map([]int{1, 2}, strconv.Itoa))

	assert.Equal(t, 8, Align(5, 8))
	assert.Equal(t, 8, Align(8, 8))
	assert.Equal(t, 0, Align(0, 4))
	assert.Equal(t, 12, Align(9, 4))
}
