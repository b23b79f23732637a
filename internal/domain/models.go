package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donor is one ledger entry tracking the cumulative amount given by a person.
// DonorID is assigned by the ledger and unique across the collection.
type Donor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DonorID      int64              `bson:"donorId" json:"donorId"`
	DonorName    string             `bson:"donorName" json:"donorName"`
	DonorAddress string             `bson:"donorAddress" json:"donorAddress"`
	DonorContact string             `bson:"donorContact" json:"donorContact"`
	DonateAmount float64            `bson:"donateAmount" json:"donateAmount"`
}

// Donation is a single recorded contribution. Date is the formatted record
// date string; Month and Year are always derived from it together.
type Donation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DonorID        int64              `bson:"donorId" json:"donorId"`
	DonorName      string             `bson:"donorName" json:"donorName"`
	Phone          string             `bson:"phone" json:"phone"`
	Address        string             `bson:"address" json:"address"`
	IncomeCategory string             `bson:"incomeCategory" json:"incomeCategory"`
	PaymentOption  string             `bson:"paymentOption" json:"paymentOption"`
	Unit           string             `bson:"unit" json:"unit"`
	Reference      string             `bson:"reference" json:"reference"`
	Amount         float64            `bson:"amount" json:"amount"`
	Quantity       float64            `bson:"quantity" json:"quantity"`
	Date           string             `bson:"date" json:"date"`
	Month          string             `bson:"month" json:"month"`
	Year           string             `bson:"year" json:"year"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Expense mirrors Donation for money going out; it has no donor linkage.
type Expense struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExpenseCategory string             `bson:"expenseCategory" json:"expenseCategory"`
	Unit            string             `bson:"unit" json:"unit"`
	Reference       string             `bson:"reference" json:"reference"`
	Note            string             `bson:"note" json:"note"`
	Amount          float64            `bson:"amount" json:"amount"`
	Quantity        float64            `bson:"quantity" json:"quantity"`
	Date            string             `bson:"date" json:"date"`
	Month           string             `bson:"month" json:"month"`
	Year            string             `bson:"year" json:"year"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ReferenceValue is one persisted choice-list entry for a reference dimension.
type ReferenceValue struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Value string             `bson:"value" json:"value"`
}

// Hadith is a free-form text record shown on the site.
type Hadith struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text"`
	Date      string             `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// RecordDate implements the query engine's record view.
func (d Donation) RecordDate() string { return d.Date }

// RecordAmount implements the query engine's record view.
func (d Donation) RecordAmount() float64 { return d.Amount }

// RecordQuantity implements the query engine's record view.
func (d Donation) RecordQuantity() float64 { return d.Quantity }

func (e Expense) RecordDate() string      { return e.Date }
func (e Expense) RecordAmount() float64   { return e.Amount }
func (e Expense) RecordQuantity() float64 { return e.Quantity }
