package ledger

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

const (
	// First assigned donor ID is donorIDFloor+1.
	donorIDFloor = 10
	// Bounded re-inserts when two submissions race for the same new ID.
	insertAttempts = 3
)

// Submission is the donor-facing slice of a donation being recorded.
type Submission struct {
	// DonorID is the raw client value; blank means "new donor".
	DonorID      string
	DonorName    string
	DonorAddress string
	DonorContact string
	Amount       float64
}

// Ledger applies donation submissions to the donor collection.
type Ledger struct {
	donors domain.DonorRepository
	log    zerolog.Logger
}

func New(donors domain.DonorRepository, log zerolog.Logger) *Ledger {
	return &Ledger{donors: donors, log: log}
}

// Apply records the donation against its donor and returns the donor ID the
// donation settled on. A submission without a donor ID opens a new ledger
// entry one past the highest assigned ID; one with a donor ID adds the amount
// to that donor's running balance.
func (l *Ledger) Apply(ctx context.Context, sub Submission) (int64, error) {
	raw := strings.TrimSpace(sub.DonorID)
	if raw == "" {
		return l.open(ctx, sub)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Non-numeric IDs collapse to 0, which matches no donor.
		id = 0
	}
	matched, err := l.donors.IncrementBalance(ctx, id, sub.Amount)
	if err != nil {
		return 0, err
	}
	if matched == 0 {
		l.log.Warn().Int64("donorId", id).Msg("donation references unknown donor, balance unchanged")
	}
	return id, nil
}

// open assigns the next donor ID and seeds the ledger entry with this
// donation. The donor collection's unique donorId index turns the
// max-then-insert race into a duplicate-key conflict, which is resolved by
// recomputing the max and re-inserting.
func (l *Ledger) open(ctx context.Context, sub Submission) (int64, error) {
	for attempt := 0; attempt < insertAttempts; attempt++ {
		max, err := l.donors.MaxDonorID(ctx)
		if err != nil {
			return 0, err
		}
		if max < donorIDFloor {
			max = donorIDFloor
		}
		donor := &domain.Donor{
			DonorID:      max + 1,
			DonorName:    sub.DonorName,
			DonorAddress: sub.DonorAddress,
			DonorContact: sub.DonorContact,
			DonateAmount: sub.Amount,
		}
		err = l.donors.Insert(ctx, donor)
		if err == nil {
			return donor.DonorID, nil
		}
		if !errors.Is(err, domain.ErrDuplicateDonorID) {
			return 0, err
		}
		l.log.Debug().Int64("donorId", donor.DonorID).Msg("donor id taken, retrying")
	}
	return 0, domain.ErrDuplicateDonorID
}
