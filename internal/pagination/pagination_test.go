package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageNumber(t *testing.T) {
	assert.Equal(t, 1, PageNumber(0))
	assert.Equal(t, 1, PageNumber(9))
	assert.Equal(t, 2, PageNumber(10))
	assert.Equal(t, 3, PageNumber(25))
	assert.Equal(t, 1, PageNumber(-30))
}

func TestComputePageFirstPage(t *testing.T) {
	p := ComputePage(0, 5)
	assert.Nil(t, p.NextStart)
	assert.Nil(t, p.PrevStart)
	assert.Equal(t, 1, p.CurrentPage)

	p = ComputePage(0, 25)
	require.NotNil(t, p.NextStart)
	assert.Equal(t, 10, *p.NextStart)
	assert.Equal(t, 2, *p.NextPage)
	assert.Nil(t, p.PrevStart)
}

func TestComputePageBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		total    int64
		wantNext *int
		wantPrev *int
	}{
		{"exactly one page", 0, 10, nil, nil},
		{"one row past first page", 0, 11, intPtr(10), nil},
		{"last full page", 10, 20, nil, intPtr(0)},
		{"middle page", 10, 25, intPtr(20), intPtr(0)},
		{"unaligned offset has no previous", 5, 25, intPtr(15), nil},
		{"empty listing", 0, 0, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputePage(tt.offset, tt.total)
			assert.Equal(t, tt.wantNext, p.NextStart)
			assert.Equal(t, tt.wantPrev, p.PrevStart)
			assert.Equal(t, tt.offset+PageSize, p.End)
		})
	}
}

func TestComputePagePrevPageClamped(t *testing.T) {
	p := ComputePage(10, 15)
	require.NotNil(t, p.PrevPage)
	assert.Equal(t, 1, *p.PrevPage)
	assert.Equal(t, 2, p.CurrentPage)
}

func TestParseOffset(t *testing.T) {
	assert.Equal(t, 0, ParseOffset(""))
	assert.Equal(t, 0, ParseOffset("abc"))
	assert.Equal(t, 0, ParseOffset("-10"))
	assert.Equal(t, 20, ParseOffset("20"))
	assert.Equal(t, MaxOffset, ParseOffset("9223372036854775807"))
	assert.Equal(t, MaxOffset, ParseOffset("99999999999999999999999"))
}

func TestComputePageHugeOffset(t *testing.T) {
	for _, offset := range []int{MaxOffset, math.MaxInt} {
		p := ComputePage(offset, 0)
		assert.Nil(t, p.NextStart)
		assert.Equal(t, MaxOffset, p.Start)
		assert.Equal(t, MaxOffset+PageSize, p.End)
		assert.Positive(t, p.CurrentPage)
		require.NotNil(t, p.PrevStart)
		assert.Equal(t, MaxOffset-PageSize, *p.PrevStart)
	}

	p := ComputePage(MaxOffset, math.MaxInt64)
	require.NotNil(t, p.NextStart)
	assert.Equal(t, MaxOffset+PageSize, *p.NextStart)
}

func intPtr(i int) *int { return &i }
