package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefDimension names one reference-data choice list.
type RefDimension string

const (
	RefAddress          RefDimension = "address"
	RefIncomeCategory   RefDimension = "incomeCategory"
	RefUnit             RefDimension = "unit"
	RefReference        RefDimension = "reference"
	RefExpenseCategory  RefDimension = "expenseCategory"
	RefExpenseUnit      RefDimension = "expenseUnit"
	RefExpenseReference RefDimension = "expenseReference"
)

// DonorRepository persists the donor ledger.
type DonorRepository interface {
	// MaxDonorID returns the highest assigned donor ID, 0 when none exist.
	MaxDonorID(ctx context.Context) (int64, error)
	// Insert adds a new donor; returns ErrDuplicateDonorID when the donor ID
	// is already taken.
	Insert(ctx context.Context, donor *Donor) error
	// IncrementBalance adds amount to the donor's running total and reports
	// how many donors matched.
	IncrementBalance(ctx context.Context, donorID int64, amount float64) (int64, error)
	GetByDonorID(ctx context.Context, donorID int64) (*Donor, error)
}

// DonationRepository persists donation records.
type DonationRepository interface {
	Insert(ctx context.Context, donation *Donation) error
	// List returns all donations matching filter, most recent first.
	List(ctx context.Context, filter bson.M) ([]Donation, error)
	// Update applies a sparse $set and reports matched and modified counts.
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (matched, modified int64, err error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

// ExpenseRepository persists expense records.
type ExpenseRepository interface {
	Insert(ctx context.Context, expense *Expense) error
	List(ctx context.Context, filter bson.M) ([]Expense, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (matched, modified int64, err error)
}

// ReferenceDataRepository maintains the reference-data value sets.
type ReferenceDataRepository interface {
	// EnsureValue registers value under dim if it is not already present.
	// Registration is atomic: concurrent first use of the same value yields
	// exactly one document.
	EnsureValue(ctx context.Context, dim RefDimension, value string) error
	Values(ctx context.Context, dim RefDimension) ([]string, error)
}

// HadithRepository persists hadith entries.
type HadithRepository interface {
	Insert(ctx context.Context, hadith *Hadith) error
	// Search returns one page of entries matching the free-text term (all
	// entries when the term is blank) plus the total match count.
	Search(ctx context.Context, term string, page, limit int64) ([]Hadith, int64, error)
	All(ctx context.Context) ([]Hadith, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (matched, modified int64, err error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}
