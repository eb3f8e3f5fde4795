package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page, meta := Paginate(items, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, page)
	assert.Equal(t, Pagination{Page: 2, Limit: 3, Total: 7, TotalPages: 3}, meta)

	page, _ = Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, page)

	page, meta = Paginate(items, 9, 3)
	assert.NotNil(t, page)
	assert.Empty(t, page)
	assert.Equal(t, 3, meta.TotalPages)

	page, meta = Paginate([]int{}, 1, 10)
	assert.Empty(t, page)
	assert.Zero(t, meta.TotalPages)
}

func TestPaginateHugePage(t *testing.T) {
	page, meta := Paginate([]int{1, 2, 3}, math.MaxInt64/50, 100)
	assert.Empty(t, page)
	assert.Equal(t, 1, meta.TotalPages)

	page, _ = Paginate([]int{1, 2, 3}, math.MaxInt64, MaxPerPage)
	assert.Empty(t, page)
}

func TestNormalizePageClamps(t *testing.T) {
	p, l := NormalizePage(0, 0)
	assert.Equal(t, DefaultPage, p)
	assert.Equal(t, DefaultPerPage, l)

	p, l = NormalizePage(-4, 5000)
	assert.Equal(t, 1, p)
	assert.Equal(t, MaxPerPage, l)
}
