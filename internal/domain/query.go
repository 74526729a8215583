package domain

import (
	"net/url"
	"strconv"
)

const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"

	DefaultPage      = 1
	DefaultPageLimit = 5
)

// OfferQuery is the immutable query spec built from the search parameters.
// Nil price bounds mean the bound is absent; both bounds are inclusive.
type OfferQuery struct {
	Title     string
	PriceMin  *float64
	PriceMax  *float64
	Sort      string
	Page      int64
	PageLimit int64
}

// BuildOfferQuery maps the free-form query parameters onto a query spec.
// Unparseable numbers and unknown sort selectors are ignored rather than
// rejected, matching the permissive search contract.
func BuildOfferQuery(params url.Values) OfferQuery {
	q := OfferQuery{
		Title:     params.Get("title"),
		Page:      DefaultPage,
		PageLimit: DefaultPageLimit,
	}

	if v := params.Get("priceMin"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			q.PriceMin = &min
		}
	}
	if v := params.Get("priceMax"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			q.PriceMax = &max
		}
	}

	switch params.Get("sort") {
	case SortPriceAsc:
		q.Sort = SortPriceAsc
	case SortPriceDesc:
		q.Sort = SortPriceDesc
	}

	if v := params.Get("pageNumber"); v != "" {
		if page, err := strconv.ParseInt(v, 10, 64); err == nil && page > 0 {
			q.Page = page
		}
	}
	if v := params.Get("pageLimit"); v != "" {
		if limit, err := strconv.ParseInt(v, 10, 64); err == nil && limit > 0 {
			q.PageLimit = limit
		}
	}

	return q
}

// Offset converts the page number and size into the skip value.
func (q OfferQuery) Offset() int64 {
	return (q.Page - 1) * q.PageLimit
}
