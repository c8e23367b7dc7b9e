package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatedRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        PaginatedRequest
		wantLimit  int
		wantOffset int
	}{
		{"first page", PaginatedRequest{Page: 1, PerPage: 20}, 20, 0},
		{"third page", PaginatedRequest{Page: 3, PerPage: 20}, 20, 40},
		{"missing values", PaginatedRequest{}, DefaultPerPage, 0},
		{"oversized page size is clamped for the offset too", PaginatedRequest{Page: 2, PerPage: 500}, MaxPerPage, MaxPerPage},
		{"zero per page on a later page", PaginatedRequest{Page: 4, PerPage: 0}, DefaultPerPage, 3 * DefaultPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLimit, tt.req.Limit())
			assert.Equal(t, tt.wantOffset, tt.req.Offset())
		})
	}
}
