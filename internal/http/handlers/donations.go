package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"server/internal/domain"
	"server/internal/ledger"
	"server/internal/query"
)

type donationSubmitRequest struct {
	Amount         *float64   `json:"amount"`
	Quantity       float64    `json:"quantity"`
	DonorID        flexString `json:"donorId"`
	DonorName      string     `json:"donorName"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	IncomeCategory string     `json:"incomeCategory"`
	PaymentOption  string     `json:"paymentOption"`
	Unit           string     `json:"unit"`
	Reference      string     `json:"reference"`
	Date           string     `json:"date"`
}

type donationListResponse struct {
	Donations     []domain.Donation `json:"donations"`
	TotalAmount   float64           `json:"totalAmount"`
	TotalQuantity float64           `json:"totalQuantity"`
	Count         int64             `json:"count"`
	InvalidDates  int64             `json:"invalidDates"`
}

// DonationsCreate records a donation: reference values are registered first,
// the donor ledger is updated, then the donation document is inserted. The
// three steps are independent store round-trips; an earlier step is not
// rolled back when a later one fails.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationSubmitRequest
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
		{domain.RefAddress, req.Address},
		{domain.RefIncomeCategory, req.IncomeCategory},
		{domain.RefUnit, req.Unit},
		{domain.RefReference, req.Reference},
	}
	for _, ref := range refs {
		if err := a.RefData.EnsureValue(ctx, ref.dim, ref.value); err != nil {
			a.storeError(w, err, "reference upsert failed")
			return
		}
	}

	donorID, err := a.Ledger.Apply(ctx, ledger.Submission{
		DonorID:      string(req.DonorID),
		DonorName:    req.DonorName,
		DonorAddress: req.Address,
		DonorContact: req.Phone,
		Amount:       *req.Amount,
	})
	if err != nil {
		a.storeError(w, err, "donor ledger update failed")
		return
	}

	donation := &domain.Donation{
		DonorID:        donorID,
		DonorName:      req.DonorName,
		Phone:          req.Phone,
		Address:        req.Address,
		IncomeCategory: req.IncomeCategory,
		PaymentOption:  req.PaymentOption,
		Unit:           req.Unit,
		Reference:      req.Reference,
		Amount:         *req.Amount,
		Quantity:       req.Quantity,
		Date:           date,
		Month:          month,
		Year:           year,
		CreatedAt:      time.Now(),
	}
	if err := a.Donations.Insert(ctx, donation); err != nil {
		a.storeError(w, err, "donation insert failed")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"insertedId": donation.ID.Hex(),
		"donorId":    donorID,
	})
}

// DonationsList returns one page of matching donations plus aggregates over
// the whole matching set.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	p := listParams(r)
	items, err := a.Donations.List(r.Context(), query.DonationPredicate(p))
	if err != nil {
		a.storeError(w, err, "donation list failed")
		return
	}
	page := query.Paginate(items, p)
	if page.InvalidDates > 0 {
		a.Logger.Warn().Int64("count", page.InvalidDates).Msg("donation records with unparseable dates")
	}
	a.json(w, http.StatusOK, donationListResponse{
		Donations:     page.Items,
		TotalAmount:   page.TotalAmount,
		TotalQuantity: page.TotalQuantity,
		Count:         page.Count,
		InvalidDates:  page.InvalidDates,
	})
}

// DonationCategories returns the distinct income categories in use.
func (a *App) DonationCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.Donations.DistinctCategories(r.Context())
	if err != nil {
		a.storeError(w, err, "distinct categories failed")
		return
	}
	a.json(w, http.StatusOK, map[string][]string{"categories": categories})
}

type donationUpdateRequest struct {
	Amount         *float64 `json:"amount"`
	Quantity       *float64 `json:"quantity"`
	DonorName      *string  `json:"donorName"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	IncomeCategory *string  `json:"incomeCategory"`
	PaymentOption  *string  `json:"paymentOption"`
	Unit           *string  `json:"unit"`
	Reference      *string  `json:"reference"`
	Date           *string  `json:"date"`
}

// set translates the sparse request into a $set document. A date rewrites
// date, month and year together so the three stored fields stay consistent.
func (req donationUpdateRequest) set() (bson.M, string) {
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
	if req.DonorName != nil {
		set["donorName"] = *req.DonorName
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.IncomeCategory != nil {
		set["incomeCategory"] = *req.IncomeCategory
	}
	if req.PaymentOption != nil {
		set["paymentOption"] = *req.PaymentOption
	}
	if req.Unit != nil {
		set["unit"] = *req.Unit
	}
	if req.Reference != nil {
		set["reference"] = *req.Reference
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

// DonationsUpdate applies a sparse update to one donation.
func (a *App) DonationsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "Invalid donation id")
		return
	}
	var req donationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	set, msg := req.set()
	if msg != "" {
		a.error(w, http.StatusBadRequest, msg)
		return
	}
	matched, modified, err := a.Donations.Update(r.Context(), id, set)
	if err != nil {
		a.storeError(w, err, "donation update failed")
		return
	}
	if matched == 0 {
		a.error(w, http.StatusNotFound, "Donation not found")
		return
	}
	a.json(w, http.StatusOK, map[string]int64{
		"matchedCount":  matched,
		"modifiedCount": modified,
	})
}

// DonationsDelete removes one donation. A malformed ID is reported as a bad
// request, a missing one as not found.
func (a *App) DonationsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "Invalid donation id")
		return
	}
	deleted, err := a.Donations.Delete(r.Context(), id)
	if err != nil {
		a.storeError(w, err, "donation delete failed")
		return
	}
	if deleted == 0 {
		a.error(w, http.StatusNotFound, "Donation not found")
		return
	}
	a.json(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}
