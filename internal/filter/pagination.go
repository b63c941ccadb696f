package filter

import (
	"sort"
	"strconv"

	"candidate-management-db/internal/model"
)

const DefaultPageSize = 10

type PageParams struct {
	Page  int
	Limit int
}

// ParsePage coerces raw page/limit parameters: page defaults to 1 and
// is never below 1, limit defaults to 10.
func ParsePage(pageStr, limitStr string) PageParams {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultPageSize
	}
	return PageParams{Page: page, Limit: limit}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PageMeta struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalRecords int  `json:"totalRecords"`
	HasNext      bool `json:"hasNext"`
	HasPrev      bool `json:"hasPrev"`
}

func Meta(p PageParams, total int) PageMeta {
	totalPages := (total + p.Limit - 1) / p.Limit
	return PageMeta{
		CurrentPage:  p.Page,
		TotalPages:   totalPages,
		TotalRecords: total,
		HasNext:      p.Page < totalPages,
		HasPrev:      p.Page > 1,
	}
}

// Shape sorts the matched set by upload date descending (ties broken
// by id descending, so repeated queries page consistently) and returns
// the requested slice with its metadata.
func Shape(records []model.Candidate, p PageParams) ([]model.Candidate, PageMeta) {
	sorted := make([]model.Candidate, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].DateOfUpload.Equal(sorted[j].DateOfUpload) {
			return sorted[i].DateOfUpload.After(sorted[j].DateOfUpload)
		}
		return sorted[i].ID > sorted[j].ID
	})

	meta := Meta(p, len(sorted))

	start := p.Offset()
	if start > len(sorted) {
		start = len(sorted)
	}
	end := start + p.Limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], meta
}
