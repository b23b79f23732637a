package query

import (
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Params carry the list-query inputs shared by donations and expenses.
type Params struct {
	Search    string
	Category  string
	StartDate string // calendar date, 2006-01-02
	EndDate   string
	Page      int64 // 1-based
	Limit     int64
}

// Text fields a free-text search is matched against, per record kind.
var donationSearchFields = []string{
	"donorName", "address", "incomeCategory", "reference", "phone",
	"paymentOption", "unit", "month", "year", "date",
}

var expenseSearchFields = []string{
	"expenseCategory", "reference", "unit", "note", "month", "year", "date",
}

// Numeric fields a search term that parses as a number is compared against.
var donationNumericFields = []string{"donorId", "amount", "quantity"}

var expenseNumericFields = []string{"amount", "quantity"}

// DonationPredicate builds the store-side filter for a donation list query.
func DonationPredicate(p Params) bson.M {
	return predicate(p, donationSearchFields, donationNumericFields, "incomeCategory")
}

// ExpensePredicate builds the store-side filter for an expense list query.
func ExpensePredicate(p Params) bson.M {
	return predicate(p, expenseSearchFields, expenseNumericFields, "expenseCategory")
}

// predicate combines the search and category clauses. A blank search term or
// category disables its clause entirely rather than matching nothing. The
// date-range clause is applied record-side by the engine, not here, because
// stored dates are formatted strings.
func predicate(p Params, textFields, numericFields []string, categoryField string) bson.M {
	var clauses []bson.M

	if term := strings.TrimSpace(p.Search); term != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		or := make([]bson.M, 0, len(textFields)+len(numericFields))
		for _, f := range textFields {
			or = append(or, bson.M{f: re})
		}
		if n, err := strconv.ParseFloat(term, 64); err == nil {
			for _, f := range numericFields {
				or = append(or, bson.M{f: n})
			}
		}
		clauses = append(clauses, bson.M{"$or": or})
	}

	if p.Category != "" {
		clauses = append(clauses, bson.M{categoryField: p.Category})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}
