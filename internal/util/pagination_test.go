package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("abc", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
	assert.Equal(t, -2, ParseIntDefault("-2", 7))
}

func TestCalculate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name          string
		page, size    int
		offset, limit int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 10, 20, 10},
		{"page below one", 0, 10, 0, 10},
		{"zero size", 2, 0, DefaultPageSize, DefaultPageSize},
		{"oversized", 1, 1000, 0, DefaultPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := Calculate(tc.page, tc.size)
			assert.Equal(t, tc.offset, offset)
			assert.Equal(t, tc.limit, limit)
		})
	}
}

func TestMeta(t *testing.T) {
	t.Parallel()
	m := Meta(2, 10, 10, 25)
	assert.Equal(t, PageMeta{Page: 2, Size: 10, Total: 25, TotalPages: 3, HasPrev: true, HasNext: true}, m)

	m = Meta(3, 20, 10, 25)
	assert.False(t, m.HasNext)

	m = Meta(1, 0, 10, 0)
	assert.Equal(t, int64(0), m.TotalPages)
	assert.False(t, m.HasPrev)
}
