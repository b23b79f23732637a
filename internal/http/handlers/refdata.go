package handlers

import (
	"net/http"

	"server/internal/domain"
)

// Response keys for each reference dimension, in a stable order.
var refDataKeys = []struct {
	key string
	dim domain.RefDimension
}{
	{"addresses", domain.RefAddress},
	{"incomeCategories", domain.RefIncomeCategory},
	{"units", domain.RefUnit},
	{"references", domain.RefReference},
	{"expenseCategories", domain.RefExpenseCategory},
	{"expenseUnits", domain.RefExpenseUnit},
	{"expenseReferences", domain.RefExpenseReference},
}

// ReferenceDataList aggregates every choice list into one response for the
// client's form dropdowns.
func (a *App) ReferenceDataList(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]string, len(refDataKeys))
	for _, entry := range refDataKeys {
		values, err := a.RefData.Values(r.Context(), entry.dim)
		if err != nil {
			a.storeError(w, err, "reference data list failed")
			return
		}
		out[entry.key] = values
	}
	a.json(w, http.StatusOK, out)
}
