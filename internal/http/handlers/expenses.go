package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"server/internal/domain"
	"server/internal/query"
)

type expenseSubmitRequest struct {
	Amount          *float64 `json:"amount"`
	Quantity        float64  `json:"quantity"`
	ExpenseCategory string   `json:"expenseCategory"`
	Unit            string   `json:"unit"`
	Reference       string   `json:"reference"`
	Note            string   `json:"note"`
	Date            string   `json:"date"`
}

type expenseListResponse struct {
	Expenses      []domain.Expense `json:"expenses"`
	TotalAmount   float64          `json:"totalAmount"`
	TotalQuantity float64          `json:"totalQuantity"`
	Count         int64            `json:"count"`
	InvalidDates  int64            `json:"invalidDates"`
}

// ExpensesCreate records an expense after registering its reference values.
func (a *App) ExpensesCreate(w http.ResponseWriter, r *http.Request) {
	var req expenseSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Amount == nil || !validMoney(*req.Amount) {
		a.error(w, http.StatusBadRequest, "Amount must be a non-negative number")
		return
	}
	if !validMoney(req.Quantity) {
		a.error(w, http.StatusBadRequest, "Quantity must be a non-negative number")
		return
	}
	parsed, err := domain.ParseRecordDate(req.Date)
	if err != nil {
		a.error(w, http.StatusBadRequest, "Invalid date, expected DD.MMM.YYYY")
		return
	}
	date, month, year := domain.RecordDateParts(parsed)

	ctx := r.Context()
	refs := []struct {
		dim   domain.RefDimension
		value string
	}{
		{domain.RefExpenseCategory, req.ExpenseCategory},
		{domain.RefExpenseUnit, req.Unit},
		{domain.RefExpenseReference, req.Reference},
	}
	for _, ref := range refs {
		if err := a.RefData.EnsureValue(ctx, ref.dim, ref.value); err != nil {
			a.storeError(w, err, "reference upsert failed")
			return
		}
	}

	expense := &domain.Expense{
		ExpenseCategory: req.ExpenseCategory,
		Unit:            req.Unit,
		Reference:       req.Reference,
		Note:            req.Note,
		Amount:          *req.Amount,
		Quantity:        req.Quantity,
		Date:            date,
		Month:           month,
		Year:            year,
		CreatedAt:       time.Now(),
	}
	if err := a.Expenses.Insert(ctx, expense); err != nil {
		a.storeError(w, err, "expense insert failed")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"insertedId": expense.ID.Hex()})
}

// ExpensesList returns one page of matching expenses plus aggregates over the
// whole matching set.
func (a *App) ExpensesList(w http.ResponseWriter, r *http.Request) {
	p := listParams(r)
	items, err := a.Expenses.List(r.Context(), query.ExpensePredicate(p))
	if err != nil {
		a.storeError(w, err, "expense list failed")
		return
	}
	page := query.Paginate(items, p)
	if page.InvalidDates > 0 {
		a.Logger.Warn().Int64("count", page.InvalidDates).Msg("expense records with unparseable dates")
	}
	a.json(w, http.StatusOK, expenseListResponse{
		Expenses:      page.Items,
		TotalAmount:   page.TotalAmount,
		TotalQuantity: page.TotalQuantity,
		Count:         page.Count,
		InvalidDates:  page.InvalidDates,
	})
}

type expenseUpdateRequest struct {
	Amount          *float64 `json:"amount"`
	Quantity        *float64 `json:"quantity"`
	ExpenseCategory *string  `json:"expenseCategory"`
	Unit            *string  `json:"unit"`
	Reference       *string  `json:"reference"`
	Note            *string  `json:"note"`
	Date            *string  `json:"date"`
}

func (req expenseUpdateRequest) set() (bson.M, string) {
	set := bson.M{}
	if req.Amount != nil {
		if !validMoney(*req.Amount) {
			return nil, "Amount must be a non-negative number"
		}
		set["amount"] = *req.Amount
	}
	if req.Quantity != nil {
		if !validMoney(*req.Quantity) {
			return nil, "Quantity must be a non-negative number"
		}
		set["quantity"] = *req.Quantity
	}
	if req.ExpenseCategory != nil {
		set["expenseCategory"] = *req.ExpenseCategory
	}
	if req.Unit != nil {
		set["unit"] = *req.Unit
	}
	if req.Reference != nil {
		set["reference"] = *req.Reference
	}
	if req.Note != nil {
		set["note"] = *req.Note
	}
	if req.Date != nil {
		parsed, err := domain.ParseRecordDate(*req.Date)
		if err != nil {
			return nil, "Invalid date, expected DD.MMM.YYYY"
		}
		date, month, year := domain.RecordDateParts(parsed)
		set["date"] = date
		set["month"] = month
		set["year"] = year
	}
	if len(set) == 0 {
		return nil, "No updatable fields in request"
	}
	set["updatedAt"] = time.Now()
	return set, ""
}

// ExpensesUpdate applies a sparse update to one expense.
func (a *App) ExpensesUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "Invalid expense id")
		return
	}
	var req expenseUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	set, msg := req.set()
	if msg != "" {
		a.error(w, http.StatusBadRequest, msg)
		return
	}
	matched, modified, err := a.Expenses.Update(r.Context(), id, set)
	if err != nil {
		a.storeError(w, err, "expense update failed")
		return
	}
	if matched == 0 {
		a.error(w, http.StatusNotFound, "Expense not found")
		return
	}
	a.json(w, http.StatusOK, map[string]int64{
		"matchedCount":  matched,
		"modifiedCount": modified,
	})
}
