package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// PostedLine is a journal line joined with its header, as read back for the
// general-ledger walk. Lines are ordered by journal date, then journal
// insertion order, then line number.
type PostedLine struct {
	JournalID   uuid.UUID
	JournalDate time.Time
	Memo        string
	LineNumber  int
	AccountID   uuid.UUID
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// TaxLine is a journal line carrying a tax rate, joined with the posting
// account's type and the rate itself, as read for the VAT summary.
type TaxLine struct {
	TaxRateID   uuid.UUID
	RateName    string
	Rate        decimal.Decimal
	AccountType valueobject.AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}
