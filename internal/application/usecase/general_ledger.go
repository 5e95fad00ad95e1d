package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/domain/model"
	"github.com/tallyworks/tally/internal/domain/port"
	"github.com/tallyworks/tally/internal/domain/valueobject"
)

// GeneralLedger walks one account's postings over a date range and computes
// the running balance after each line.
type GeneralLedger struct {
	accounts port.AccountRepository
	engine   *BalanceEngine
}

func NewGeneralLedger(accounts port.AccountRepository, engine *BalanceEngine) *GeneralLedger {
	return &GeneralLedger{accounts: accounts, engine: engine}
}

func (uc *GeneralLedger) Execute(ctx context.Context, tenantID, accountID uuid.UUID, from, to time.Time) (dto.GeneralLedgerReport, error) {
	r, err := valueobject.NewDateRange(from, to)
	if err != nil {
		return dto.GeneralLedgerReport{}, err
	}

	account, err := uc.accounts.FindByID(ctx, tenantID, accountID)
	if err != nil {
		return dto.GeneralLedgerReport{}, err
	}

	openingMap, err := uc.engine.OpeningBalances(ctx, tenantID, []model.Account{account}, from)
	if err != nil {
		return dto.GeneralLedgerReport{}, err
	}
	opening := openingMap[account.ID]

	lines, err := uc.engine.PostedLines(ctx, tenantID, accountID, r)
	if err != nil {
		return dto.GeneralLedgerReport{}, err
	}

	rows := make([]dto.GeneralLedgerRow, 0, len(lines))
	running := opening
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range lines {
		delta := valueobject.Movement{Debit: l.Debit, Credit: l.Credit}.Signed(account.Type)
		running = running.Add(delta)
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
		rows = append(rows, dto.GeneralLedgerRow{
			JournalID:      l.JournalID,
			JournalDate:    l.JournalDate,
			Memo:           l.Memo,
			Description:    l.Description,
			Debit:          l.Debit,
			Credit:         l.Credit,
			RunningBalance: running,
		})
	}

	return dto.GeneralLedgerReport{
		AccountID:      account.ID,
		Code:           account.Code,
		Name:           account.Name,
		Type:           account.Type.String(),
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Rows:           rows,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		ClosingBalance: running,
	}, nil
}
