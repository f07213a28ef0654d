package pagination

import (
	"math"
	"net/url"
	"strconv"

	"github.com/sangkips/xylem-api/pkg/apperror"
)

const (
	// PageParam is the query parameter carrying the page number
	PageParam = "p"
	// PageSizeParam is the query parameter carrying the page size
	PageSizeParam = "page_size"

	DefaultPageSize = 10
	MaxPageSize     = 500
)

// PaginationParams represents input parameters for pagination
type PaginationParams struct {
	Page     int `form:"p" json:"p"`
	PageSize int `form:"page_size" json:"page_size"`
}

// DefaultPagination returns default pagination values
func DefaultPagination() *PaginationParams {
	return &PaginationParams{
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// Validate ensures pagination parameters are within valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset calculates the offset for SQL queries. It saturates at math.MaxInt
// instead of overflowing for absurd page numbers.
func (p *PaginationParams) Offset() int {
	if p.Page <= 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Limit is the number of rows a single page holds
func (p *PaginationParams) Limit() int {
	return p.PageSize
}

// Page is the paginated response envelope.
type Page[T any] struct {
	Count       int64   `json:"count"`
	PageSize    int     `json:"page_size"`
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
	NumPages    int     `json:"num_pages"`
	CurrentPage int     `json:"current_page"`
	Results     []T     `json:"results"`
}

// Envelope is satisfied by every Page regardless of its item type.
type Envelope interface {
	SetLinks(requestURL *url.URL)
}

// NumPages returns ceil(total/pageSize), never less than 1.
func NumPages(total int64, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	n := int((total + int64(pageSize) - 1) / int64(pageSize))
	if n < 1 {
		n = 1
	}
	return n
}

// NewPage builds the envelope for one page of results. Asking for a page past
// the last one fails with apperror.ErrInvalidPage.
func NewPage[T any](items []T, params *PaginationParams, total int64) (*Page[T], error) {
	params.Validate()
	numPages := NumPages(total, params.PageSize)
	if params.Page > numPages {
		return nil, apperror.ErrInvalidPage
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Count:       total,
		PageSize:    params.PageSize,
		NumPages:    numPages,
		CurrentPage: params.Page,
		Results:     items,
	}, nil
}

// Paginate slices an already materialized, already ordered result set.
func Paginate[T any](all []T, params *PaginationParams) (*Page[T], error) {
	params.Validate()
	total := int64(len(all))
	if params.Page > NumPages(total, params.PageSize) {
		return nil, apperror.ErrInvalidPage
	}
	start := params.Offset()
	end := start + params.PageSize
	if end > len(all) {
		end = len(all)
	}
	return NewPage(all[start:end], params, total)
}

// WithLinks fills next and previous with absolute URLs derived from the
// request URL, replacing only the page parameter.
func (p *Page[T]) WithLinks(requestURL *url.URL) *Page[T] {
	if requestURL == nil {
		return p
	}
	if p.CurrentPage < p.NumPages {
		next := pageURL(requestURL, p.CurrentPage+1)
		p.Next = &next
	}
	if p.CurrentPage > 1 {
		prev := pageURL(requestURL, p.CurrentPage-1)
		p.Previous = &prev
	}
	return p
}

// SetLinks is WithLinks without the return value, so Page satisfies Envelope.
func (p *Page[T]) SetLinks(requestURL *url.URL) {
	p.WithLinks(requestURL)
}

func pageURL(base *url.URL, page int) string {
	u := *base
	q := u.Query()
	if page == 1 {
		q.Del(PageParam)
	} else {
		q.Set(PageParam, strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
