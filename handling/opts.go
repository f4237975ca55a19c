package handling

import (
	"freshcatch_server/services"
	"freshcatch_server/structs/tables"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ParseProductListOptions parses HTTP query parameters into ProductListOptions
func ParseProductListOptions(r *http.Request) (*services.ProductListOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &services.ProductListOptions{}, nil
	}

	opts := &services.ProductListOptions{}
	var err error
	var valInt int

	// Parse pagination parameters
	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, err
		}
		opts.PageSize = valInt
	}

	if category := query.Get("category"); category != "" {
		c := tables.ProductCategory(category)
		if !c.Valid() {
			return nil, fmt.Errorf("invalid category: %s", category)
		}
		opts.Category = &c
	}

	if availableOnly := query.Get("available_only"); availableOnly != "" {
		valBool, err := strconv.ParseBool(availableOnly)
		if err != nil {
			return nil, err
		}
		opts.AvailableOnly = valBool
	}

	if searchTerm := query.Get("search"); searchTerm != "" {
		opts.SearchTerm = searchTerm
	}

	// Parse price filters
	if minPrice := query.Get("min_price"); minPrice != "" {
		val, err := strconv.ParseUint(minPrice, 10, 64)
		if err != nil {
			return nil, err
		}
		opts.MinPrice = &val
	}

	if maxPrice := query.Get("max_price"); maxPrice != "" {
		val, err := strconv.ParseUint(maxPrice, 10, 64)
		if err != nil {
			return nil, err
		}
		opts.MaxPrice = &val
	}

	// Parse sorting parameters
	if sortBy := query.Get("sort_by"); sortBy != "" {
		opts.SortBy = sortBy
	}

	if sortDirection := query.Get("sort_direction"); sortDirection != "" {
		opts.SortDirection = strings.ToUpper(sortDirection)
	}

	return opts, nil
}

// ParsePagination reads page/page_size with sane fallbacks
func ParsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = 20

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if val, err := strconv.Atoi(pageStr); err == nil && val > 0 {
			page = val
		}
	}

	if pageSizeStr := r.URL.Query().Get("page_size"); pageSizeStr != "" {
		if val, err := strconv.Atoi(pageSizeStr); err == nil && val > 0 {
			pageSize = val
		}
	}

	return page, pageSize
}
