package pagination

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/xylem-api/pkg/apperror"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		in           PaginationParams
		wantPage     int
		wantPageSize int
	}{
		{"zero values fall back", PaginationParams{}, 1, DefaultPageSize},
		{"negative page size", PaginationParams{Page: 2, PageSize: -4}, 2, DefaultPageSize},
		{"capped at max", PaginationParams{Page: 1, PageSize: 10000}, 1, MaxPageSize},
		{"kept", PaginationParams{Page: 3, PageSize: 25}, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
		})
	}
}

func TestNumPages(t *testing.T) {
	assert.Equal(t, 3, NumPages(1200, 500))
	assert.Equal(t, 1, NumPages(0, 10))
	assert.Equal(t, 2, NumPages(11, 10))
	assert.Equal(t, 1, NumPages(10, 10))
}

func TestPaginate_ConcatenatedPagesReproduceTheSet(t *testing.T) {
	rows := make([]int, 1200)
	for i := range rows {
		rows[i] = i
	}

	var collected []int
	for page := 1; ; page++ {
		res, err := Paginate(rows, &PaginationParams{Page: page, PageSize: 500})
		require.NoError(t, err)
		assert.Equal(t, 3, res.NumPages)
		assert.EqualValues(t, 1200, res.Count)
		collected = append(collected, res.Results...)
		if page == res.NumPages {
			break
		}
	}

	assert.Equal(t, rows, collected)
}

func TestNewPage_BeyondLastPage(t *testing.T) {
	_, err := NewPage([]string{}, &PaginationParams{Page: 4, PageSize: 500}, 1200)
	require.Error(t, err)
	assert.Equal(t, "Invalid page.", err.Error())
	assert.True(t, apperror.IsNotFound(err))

	res, err := NewPage[string](nil, &PaginationParams{Page: 1}, 0)
	require.NoError(t, err)
	assert.NotNil(t, res.Results)
	assert.Equal(t, 1, res.NumPages)
}

func TestPaginate_HugePageIsInvalid(t *testing.T) {
	_, err := Paginate([]int{1, 2, 3}, &PaginationParams{Page: 1e18, PageSize: 10})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Invalid page.", err.Error())

	_, err = Paginate([]int{1, 2, 3}, &PaginationParams{Page: 2, PageSize: 10})
	assert.Equal(t, apperror.ErrInvalidPage, err)
}

func TestOffset_Saturates(t *testing.T) {
	assert.Equal(t, 0, (&PaginationParams{Page: 1, PageSize: 10}).Offset())
	assert.Equal(t, 20, (&PaginationParams{Page: 3, PageSize: 10}).Offset())
	assert.Equal(t, math.MaxInt, (&PaginationParams{Page: math.MaxInt, PageSize: 500}).Offset())
}

func TestWithLinks(t *testing.T) {
	u, _ := url.Parse("http://api.local/administrator/fabricator/?view=approved&p=2&page_size=10")

	res, err := NewPage([]int{1}, &PaginationParams{Page: 2, PageSize: 10}, 35)
	require.NoError(t, err)
	res.WithLinks(u)

	require.NotNil(t, res.Next)
	require.NotNil(t, res.Previous)
	assert.Equal(t, "http://api.local/administrator/fabricator/?p=3&page_size=10&view=approved", *res.Next)
	assert.Equal(t, "http://api.local/administrator/fabricator/?page_size=10&view=approved", *res.Previous)

	first, _ := NewPage([]int{1}, &PaginationParams{Page: 1, PageSize: 10}, 5)
	first.WithLinks(u)
	assert.Nil(t, first.Next)
	assert.Nil(t, first.Previous)
}
