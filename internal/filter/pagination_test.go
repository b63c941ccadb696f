package filter

import (
	"fmt"
	"testing"
	"time"

	"candidate-management-db/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageDefaults(t *testing.T) {
	tests := []struct {
		page, limit     string
		wantPage, wantL int
	}{
		{"", "", 1, 10},
		{"0", "0", 1, 10},
		{"-3", "-1", 1, 10},
		{"abc", "xyz", 1, 10},
		{"2", "25", 2, 25},
	}
	for _, tt := range tests {
		p := ParsePage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, p.Page, "page %q", tt.page)
		assert.Equal(t, tt.wantL, p.Limit, "limit %q", tt.limit)
	}
}

func TestMeta(t *testing.T) {
	meta := Meta(PageParams{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 25, meta.TotalRecords)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = Meta(PageParams{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

func TestShapeOrdersNewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]model.Candidate, 25)
	for i := range records {
		records[i] = model.Candidate{
			ID:           int64(i + 1),
			FirstName:    fmt.Sprintf("Candidate%d", i+1),
			DateOfUpload: base.Add(time.Duration(i) * time.Hour),
		}
	}

	page, meta := Shape(records, PageParams{Page: 2, Limit: 10})
	require.Len(t, page, 10)
	assert.Equal(t, 3, meta.TotalPages)

	// Newest first: page 2 holds the 11th through 20th newest.
	assert.Equal(t, int64(15), page[0].ID)
	assert.Equal(t, int64(6), page[9].ID)
}

func TestShapeTiesBrokenByID(t *testing.T) {
	when := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []model.Candidate{
		{ID: 1, DateOfUpload: when},
		{ID: 3, DateOfUpload: when},
		{ID: 2, DateOfUpload: when},
	}

	page, _ := Shape(records, PageParams{Page: 1, Limit: 10})
	require.Len(t, page, 3)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, int64(2), page[1].ID)
	assert.Equal(t, int64(1), page[2].ID)
}

func TestShapePastEndIsEmpty(t *testing.T) {
	records := []model.Candidate{{ID: 1, DateOfUpload: time.Now()}}
	page, meta := Shape(records, PageParams{Page: 5, Limit: 10})
	assert.Empty(t, page)
	assert.Equal(t, 1, meta.TotalRecords)
	assert.False(t, meta.HasNext)
}
