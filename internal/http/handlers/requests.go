package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"server/internal/query"
)

// flexString accepts a JSON string or number; clients send donor IDs both
// ways depending on which form produced them.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", b)
}

// validMoney reports whether v is usable as an amount or quantity.
func validMoney(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// listParams pulls the shared list-query inputs off the request.
func listParams(r *http.Request) query.Params {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	return query.Params{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Page:      page,
		Limit:     limit,
	}
}
