package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"server/internal/domain"
	"server/internal/ledger"
)

type fakeDonorRepo struct {
	donors map[int64]*domain.Donor
}

func (f *fakeDonorRepo) MaxDonorID(context.Context) (int64, error) {
	var max int64
	for id := range f.donors {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func (f *fakeDonorRepo) Insert(_ context.Context, donor *domain.Donor) error {
	if _, taken := f.donors[donor.DonorID]; taken {
		return domain.ErrDuplicateDonorID
	}
	f.donors[donor.DonorID] = donor
	return nil
}

func (f *fakeDonorRepo) IncrementBalance(_ context.Context, donorID int64, amount float64) (int64, error) {
	d, ok := f.donors[donorID]
	if !ok {
		return 0, nil
	}
	d.DonateAmount += amount
	return 1, nil
}

func (f *fakeDonorRepo) GetByDonorID(_ context.Context, donorID int64) (*domain.Donor, error) {
	d, ok := f.donors[donorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

type fakeDonationRepo struct {
	items       []domain.Donation
	inserted    []domain.Donation
	updateCalls int
	lastSet     bson.M
	matched     int64
	modified    int64
	deleted     int64
}

func (f *fakeDonationRepo) Insert(_ context.Context, donation *domain.Donation) error {
	donation.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, *donation)
	return nil
}

func (f *fakeDonationRepo) List(context.Context, bson.M) ([]domain.Donation, error) {
	return f.items, nil
}

func (f *fakeDonationRepo) Update(_ context.Context, _ primitive.ObjectID, set bson.M) (int64, int64, error) {
	f.updateCalls++
	f.lastSet = set
	return f.matched, f.modified, nil
}

func (f *fakeDonationRepo) Delete(context.Context, primitive.ObjectID) (int64, error) {
	return f.deleted, nil
}

func (f *fakeDonationRepo) DistinctCategories(context.Context) ([]string, error) {
	return []string{"Zakat", "Sadaqah"}, nil
}

type fakeRefData struct {
	values map[domain.RefDimension][]string
}

func (f *fakeRefData) EnsureValue(_ context.Context, dim domain.RefDimension, value string) error {
	if f.values == nil {
		f.values = make(map[domain.RefDimension][]string)
	}
	for _, v := range f.values[dim] {
		if v == value {
			return nil
		}
	}
	f.values[dim] = append(f.values[dim], value)
	return nil
}

func (f *fakeRefData) Values(_ context.Context, dim domain.RefDimension) ([]string, error) {
	return f.values[dim], nil
}

func testApp(donors *fakeDonorRepo, donations *fakeDonationRepo, refs *fakeRefData) *App {
	return &App{
		Logger:    zerolog.Nop(),
		Donors:    donors,
		Donations: donations,
		RefData:   refs,
		Ledger:    ledger.New(donors, zerolog.Nop()),
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestDonationsCreateExistingDonor(t *testing.T) {
	donors := &fakeDonorRepo{donors: map[int64]*domain.Donor{
		12: {DonorID: 12, DonateAmount: 1000},
	}}
	donations := &fakeDonationRepo{}
	refs := &fakeRefData{}
	app := testApp(donors, donations, refs)

	body := `{"amount":500,"donorId":12,"donorName":"Rahim","address":"Ward 4","incomeCategory":"Zakat","unit":"BDT","reference":"Friday","date":"07.Aug.2025"}`
	req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(body))
	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status mismatch: got %d want 201, body %s", rr.Code, rr.Body.String())
	}
	if got := donors.donors[12].DonateAmount; got != 1500 {
		t.Fatalf("donor balance mismatch: got %v want 1500", got)
	}
	if len(donations.inserted) != 1 {
		t.Fatalf("expected 1 inserted donation, got %d", len(donations.inserted))
	}
	d := donations.inserted[0]
	if d.Amount != 500 || d.DonorID != 12 {
		t.Fatalf("inserted donation mismatch: %+v", d)
	}
	if d.Month != "August" || d.Year != "2025" || d.Date != "07.Aug.2025" {
		t.Fatalf("derived date fields mismatch: %+v", d)
	}
}

func TestDonationsCreateNewDonorGetsNextID(t *testing.T) {
	donors := &fakeDonorRepo{donors: map[int64]*domain.Donor{
		15: {DonorID: 15},
	}}
	donations := &fakeDonationRepo{}
	app := testApp(donors, donations, &fakeRefData{})

	body := `{"amount":200,"donorName":"A","address":"X","date":"01.Aug.2025"}`
	req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(body))
	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status mismatch: got %d want 201, body %s", rr.Code, rr.Body.String())
	}
	d := donors.donors[16]
	if d == nil {
		t.Fatal("donor 16 not created")
	}
	if d.DonateAmount != 200 {
		t.Fatalf("new donor balance mismatch: got %v want 200", d.DonateAmount)
	}
	if len(donations.inserted) != 1 || donations.inserted[0].DonorID != 16 {
		t.Fatalf("donation not linked to new donor: %+v", donations.inserted)
	}
}

func TestDonationsCreateRegistersReferenceValues(t *testing.T) {
	refs := &fakeRefData{}
	app := testApp(&fakeDonorRepo{donors: map[int64]*domain.Donor{}}, &fakeDonationRepo{}, refs)

	body := `{"amount":50,"address":"Ward 4","incomeCategory":"Zakat","unit":"BDT","reference":"","date":"01.Aug.2025"}`
	req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(body))
	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status mismatch: got %d want 201", rr.Code)
	}
	if got := refs.values[domain.RefAddress]; len(got) != 1 || got[0] != "Ward 4" {
		t.Fatalf("address not registered: %#v", got)
	}
	// blank values are legitimate entries
	if got := refs.values[domain.RefReference]; len(got) != 1 || got[0] != "" {
		t.Fatalf("blank reference not registered: %#v", got)
	}
}

func TestDonationsCreateRejectsBadDate(t *testing.T) {
	donations := &fakeDonationRepo{}
	refs := &fakeRefData{}
	app := testApp(&fakeDonorRepo{donors: map[int64]*domain.Donor{}}, donations, refs)

	body := `{"amount":50,"date":"2025-08-07"}`
	req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(body))
	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status mismatch: got %d want 400", rr.Code)
	}
	if len(donations.inserted) != 0 {
		t.Fatal("nothing must be inserted on validation failure")
	}
	if len(refs.values) != 0 {
		t.Fatal("no reference values must be registered on validation failure")
	}
}

func TestDonationsCreateRejectsMissingAmount(t *testing.T) {
	app := testApp(&fakeDonorRepo{donors: map[int64]*domain.Donor{}}, &fakeDonationRepo{}, &fakeRefData{})

	req := httptest.NewRequest(http.MethodPost, "/donations", strings.NewReader(`{"date":"01.Aug.2025"}`))
	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status mismatch: got %d want 400", rr.Code)
	}
}

func TestDonationsListTotals(t *testing.T) {
	donations := &fakeDonationRepo{items: []domain.Donation{
		{Date: "10.Aug.2025", Amount: 300, Quantity: 1, IncomeCategory: "Zakat"},
		{Date: "20.Aug.2025", Amount: 200, Quantity: 2, IncomeCategory: "Zakat"},
		{Date: "05.Jul.2025", Amount: 999, Quantity: 9, IncomeCategory: "Zakat"},
	}}
	app := testApp(&fakeDonorRepo{donors: map[int64]*domain.Donor{}}, donations, &fakeRefData{})

	req := httptest.NewRequest(http.MethodGet,
		"/donations?category=Zakat&startDate=2025-08-01&endDate=2025-08-31&page=1&limit=1", nil)
	rr := httptest.NewRecorder()
	app.DonationsList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status mismatch: got %d want 200", rr.Code)
	}
	var resp donationListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count mismatch: got %d want 2", resp.Count)
	}
	if resp.TotalAmount != 500 {
		t.Fatalf("totalAmount mismatch: got %v want 500", resp.TotalAmount)
	}
	if len(resp.Donations) != 1 {
		t.Fatalf("page size mismatch: got %d want 1", len(resp.Donations))
	}
}

func TestDonationsUpdateNoFields(t *testing.T) {
	donations := &fakeDonationRepo{matched: 1, modified: 1}
	app := testApp(&fakeDonorRepo{donors: map[int64]*domain.Donor{}}, donations, &fakeRefData{})

	req := httptest.NewRequest(http.MethodPut, "/donations/x", strings.NewReader(`{}`))
	req = withURLParam(req, "id", primitive.NewObjectID().Hex())
	rr := httptest.NewRecorder()
	app.DonationsUpdate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status mismatch: got %d want 400", rr.Code)
	}
	if donations.updateCalls != 0 {
		t.Fatal("no store write must occur for an empty update")
	}
}

func TestDonationsUpdateBadDate(t *testing.T) {
	donations := &fakeDonationRepo{matched: 1, modified: 1}
	app := testApp(&fakeDonorRepo{donors: map[int64]*domain.Donor{}}, donations, &fakeRefData{})

	req := httptest.NewRequest(http.MethodPut, "/donations/x",
		strings.NewReader(`{"amount":10,"date":"August 7, 2025"}`))
	req = withURLParam(req, "id", primitive.NewObjectID().Hex())
	rr := httptest.NewRecorder()
	app.DonationsUpdate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status mismatch: got %d want 400", rr.Code)
	}
	if donations.updateCalls != 0 {
		t.Fatal("no field may be modified when the date is invalid")
	}
}

func TestDonationsUpdateRewritesDateFieldsTogether(t *testing.T) {
	donations := &fakeDonationRepo{matched: 1, modified: 1}
	app := testApp(&fakeDonorRepo{donors: map[int64]*domain.Donor{}}, donations, &fakeRefData{})

	req := httptest.NewRequest(http.MethodPut, "/donations/x",
		strings.NewReader(`{"date":"31.Dec.2024"}`))
	req = withURLParam(req, "id", primitive.NewObjectID().Hex())
	rr := httptest.NewRecorder()
	app.DonationsUpdate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status mismatch: got %d want 200, body %s", rr.Code, rr.Body.String())
	}
	set := donations.lastSet
	if set["date"] != "31.Dec.2024" || set["month"] != "December" || set["year"] != "2024" {
		t.Fatalf("date fields not rewritten together: %#v", set)
	}
	if _, ok := set["updatedAt"]; !ok {
		t.Fatal("updatedAt must be set on any change")
	}
}

func TestDonationsUpdateNotFound(t *testing.T) {
	donations := &fakeDonationRepo{matched: 0}
	app := testApp(&fakeDonorRepo{donors: map[int64]*domain.Donor{}}, donations, &fakeRefData{})

	req := httptest.NewRequest(http.MethodPut, "/donations/x", strings.NewReader(`{"amount":10}`))
	req = withURLParam(req, "id", primitive.NewObjectID().Hex())
	rr := httptest.NewRecorder()
	app.DonationsUpdate(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status mismatch: got %d want 404", rr.Code)
	}
}

func TestDonationsDeleteMalformedID(t *testing.T) {
	app := testApp(&fakeDonorRepo{donors: map[int64]*domain.Donor{}}, &fakeDonationRepo{deleted: 1}, &fakeRefData{})

	req := httptest.NewRequest(http.MethodDelete, "/donations/nope", nil)
	req = withURLParam(req, "id", "nope")
	rr := httptest.NewRecorder()
	app.DonationsDelete(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed id must be a bad request: got %d", rr.Code)
	}
}

func TestDonationsDeleteMissing(t *testing.T) {
	app := testApp(&fakeDonorRepo{donors: map[int64]*domain.Donor{}}, &fakeDonationRepo{deleted: 0}, &fakeRefData{})

	req := httptest.NewRequest(http.MethodDelete, "/donations/x", nil)
	req = withURLParam(req, "id", primitive.NewObjectID().Hex())
	rr := httptest.NewRecorder()
	app.DonationsDelete(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing record must be not found: got %d", rr.Code)
	}
}
