package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundDecimal(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     float64
	}{
		{3.14159, 2, 3.14},
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{1234567.891, 1, 1234567.9},
		{0.000449, 3, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundDecimal(tt.value, tt.decimals))
	}

	assert.True(t, math.IsNaN(RoundDecimal(math.NaN(), 2)))
	assert.True(t, math.IsInf(RoundDecimal(math.Inf(1), 2), 1))
}

func TestRemoveEmptyStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, RemoveEmptyStrings([]string{"a", "", " b ", "  "}))
	assert.Nil(t, RemoveEmptyStrings([]string{"", " "}))
	assert.Nil(t, RemoveEmptyStrings(nil))
}
