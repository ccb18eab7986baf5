package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size           int
		wantOffset, wantSize int
	}{
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{0, 0, 0, DefaultPageSize},
		{-2, 5, 0, 5},
		{2, 1000, MaxPageSize, MaxPageSize},
	}
	for _, tc := range tests {
		offset, limit := Calculate(tc.page, tc.size)
		assert.Equal(t, tc.wantOffset, offset)
		assert.Equal(t, tc.wantSize, limit)
	}
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}
