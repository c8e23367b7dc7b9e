package response

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResponse(t *testing.T) {
	got := NewPaginatedResponse([]string{"a", "b"}, 1, 2, 5)
	want := PaginationMeta{Total: 5, Page: 1, PerPage: 2, TotalPages: 3, HasNext: true}
	if diff := cmp.Diff(want, got.Pagination); diff != "" {
		t.Errorf("pagination mismatch (-want +got):\n%s", diff)
	}

	last := NewPaginatedResponse([]string{"e"}, 3, 2, 5)
	assert.False(t, last.Pagination.HasNext)
}

func TestNewPaginatedResponse_EmptyPage(t *testing.T) {
	got := NewPaginatedResponse[int](nil, 0, 10, 0)

	assert.NotNil(t, got.Data, "empty pages encode as [] not null")
	assert.Equal(t, 1, got.Pagination.Page)
	assert.Equal(t, 0, got.Pagination.TotalPages)
	assert.False(t, got.Pagination.HasNext)
}
