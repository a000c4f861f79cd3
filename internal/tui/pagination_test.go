package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageItems(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 0, nil},
		{1, 1, []int{1}},
		{3, 7, []int{1, 2, 3, 4, 5, 6, 7}},
		{1, 12, []int{1, 2, 0, 12}},
		{3, 12, []int{1, 2, 3, 4, 0, 12}},
		{6, 12, []int{1, 0, 5, 6, 7, 0, 12}},
		{12, 12, []int{1, 0, 11, 12}},
		{40, 12, []int{1, 0, 11, 12}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pageItems(tt.current, tt.total), "current=%d total=%d", tt.current, tt.total)
	}
}
