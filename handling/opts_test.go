package handling_test

import (
	"freshcatch_server/handling"
	"freshcatch_server/structs/tables"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductListOptions(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest("GET",
		"/products?page=2&page_size=10&category=shellfish&available_only=true&search=oyster&min_price=500&max_price=2500&sort_by=price&sort_direction=desc", nil)

	opts, err := handling.ParseProductListOptions(r)
	require.NoError(t, err)

	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, 10, opts.PageSize)
	require.NotNil(t, opts.Category)
	assert.Equal(t, tables.CategoryShellfish, *opts.Category)
	assert.True(t, opts.AvailableOnly)
	assert.Equal(t, "oyster", opts.SearchTerm)
	require.NotNil(t, opts.MinPrice)
	require.NotNil(t, opts.MaxPrice)
	assert.Equal(t, uint64(500), *opts.MinPrice)
	assert.Equal(t, uint64(2500), *opts.MaxPrice)
	assert.Equal(t, "price", opts.SortBy)
	assert.Equal(t, "DESC", opts.SortDirection)
}

func TestParseProductListOptions_Empty(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest("GET", "/products", nil)

	opts, err := handling.ParseProductListOptions(r)
	require.NoError(t, err)
	assert.Zero(t, opts.Page)
	assert.Nil(t, opts.Category)
	assert.Nil(t, opts.MinPrice)
}

func TestParseProductListOptions_InvalidCategory(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest("GET", "/products?category=vegetables", nil)

	_, err := handling.ParseProductListOptions(r)
	assert.Error(t, err)
}

func TestParseProductListOptions_InvalidPrice(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest("GET", "/products?min_price=-5", nil)

	_, err := handling.ParseProductListOptions(r)
	assert.Error(t, err)
}

func TestParsePagination_Defaults(t *testing.T) {
	t.Parallel()
	page, pageSize := handling.ParsePagination(httptest.NewRequest("GET", "/admin/orders", nil))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)

	// Garbage and non-positive values fall back to defaults
	page, pageSize = handling.ParsePagination(httptest.NewRequest("GET", "/admin/orders?page=abc&page_size=0", nil))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)

	page, pageSize = handling.ParsePagination(httptest.NewRequest("GET", "/admin/orders?page=3&page_size=50", nil))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, pageSize)
}
