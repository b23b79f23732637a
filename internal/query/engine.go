package query

import (
	"time"

	"server/internal/domain"
)

// DefaultLimit is the page size used when the client supplies none.
const DefaultLimit = 10

// Record is the view of a stored row the engine needs: its date string and
// the two summed numeric fields.
type Record interface {
	RecordDate() string
	RecordAmount() float64
	RecordQuantity() float64
}

// Page is one page of matching records plus aggregates computed over the
// whole matching set, not just the returned slice.
type Page[T Record] struct {
	Items         []T
	TotalAmount   float64
	TotalQuantity float64
	Count         int64
	// InvalidDates counts records whose stored date string failed to parse
	// during date filtering. Those records sort to the epoch instead of
	// being dropped, so they only appear when the range reaches that far.
	InvalidDates int64
}

// Paginate applies the date-range predicate to items (already filtered
// store-side by search/category and ordered most recent first), computes the
// aggregates, and slices out the requested page.
func Paginate[T Record](items []T, p Params) Page[T] {
	start, end, useDates := dateBounds(p)

	matched := items
	var invalid int64
	if useDates {
		matched = make([]T, 0, len(items))
		for _, it := range items {
			t, ok := domain.RecordDateOrEpoch(it.RecordDate())
			if !ok {
				invalid++
			}
			if t.Before(start) || t.After(end) {
				continue
			}
			matched = append(matched, it)
		}
	}

	page := Page[T]{
		Count:        int64(len(matched)),
		InvalidDates: invalid,
		Items:        []T{},
	}
	for _, it := range matched {
		page.TotalAmount += it.RecordAmount()
		page.TotalQuantity += it.RecordQuantity()
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	pageNo := p.Page
	if pageNo <= 0 {
		pageNo = 1
	}
	skip := (pageNo - 1) * limit
	if skip < int64(len(matched)) {
		upper := skip + limit
		if upper > int64(len(matched)) {
			upper = int64(len(matched))
		}
		page.Items = matched[skip:upper]
	}
	return page
}

// dateBounds resolves the inclusive calendar range. Both bounds must be
// present and well-formed or date filtering is disabled entirely.
func dateBounds(p Params) (time.Time, time.Time, bool) {
	if p.StartDate == "" || p.EndDate == "" {
		return time.Time{}, time.Time{}, false
	}
	loc := domain.RecordLocation()
	start, err := time.ParseInLocation("2006-01-02", p.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.ParseInLocation("2006-01-02", p.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	// inclusive upper bound: end of the endDate calendar day
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, true
}
