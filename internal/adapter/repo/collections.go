package repo

import "server/internal/domain"

// Collection names inside the mosqueData database.
const (
	donorCollection    = "donorList"
	donationCollection = "donationList"
	expenseCollection  = "expenseList"
	hadithCollection   = "hadithList"
)

// refCollections maps each reference dimension to its backing collection.
var refCollections = map[domain.RefDimension]string{
	domain.RefAddress:          "addressList",
	domain.RefIncomeCategory:   "incomeCategoriesList",
	domain.RefUnit:             "unitList",
	domain.RefReference:        "referenceList",
	domain.RefExpenseCategory:  "expenseCategoriesList",
	domain.RefExpenseUnit:      "expenseUnitList",
	domain.RefExpenseReference: "expenseReferenceList",
}
