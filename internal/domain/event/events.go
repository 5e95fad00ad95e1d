package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyworks/tally/pkg/events"
)

// Event type names published on the ledger topic.
const (
	TypeJournalPosted  = "ledger.journal.posted"
	TypeJournalDeleted = "ledger.journal.deleted"
	TypePeriodClosed   = "ledger.period.closed"
	TypePeriodLocked   = "ledger.period.locked"
	TypeChartImported  = "ledger.chart.imported"
)

// JournalPosted is emitted after a journal and its lines are committed.
type JournalPosted struct {
	events.BaseEvent
	JournalDate string `json:"journal_date"`
	Total       string `json:"total"`
	LineCount   int    `json:"line_count"`
}

// NewJournalPosted creates a JournalPosted event.
func NewJournalPosted(journalID, tenantID uuid.UUID, journalDate time.Time, total decimal.Decimal, lineCount int) JournalPosted {
	return JournalPosted{
		BaseEvent:   events.NewBaseEvent(TypeJournalPosted, journalID.String(), "Journal", tenantID.String()),
		JournalDate: journalDate.Format("2006-01-02"),
		Total:       total.String(),
		LineCount:   lineCount,
	}
}

// JournalDeleted is emitted after a journal header and its lines are removed.
type JournalDeleted struct {
	events.BaseEvent
}

// NewJournalDeleted creates a JournalDeleted event.
func NewJournalDeleted(journalID, tenantID uuid.UUID) JournalDeleted {
	return JournalDeleted{
		BaseEvent: events.NewBaseEvent(TypeJournalDeleted, journalID.String(), "Journal", tenantID.String()),
	}
}

// PeriodClosed is emitted after the closing journal posts and the period
// transitions to closed.
type PeriodClosed struct {
	events.BaseEvent
	ClosingJournalID string `json:"closing_journal_id,omitempty"`
	NetProfit        string `json:"net_profit"`
}

// NewPeriodClosed creates a PeriodClosed event.
func NewPeriodClosed(periodID, tenantID uuid.UUID, closingJournalID string, netProfit decimal.Decimal) PeriodClosed {
	return PeriodClosed{
		BaseEvent:        events.NewBaseEvent(TypePeriodClosed, periodID.String(), "AccountingPeriod", tenantID.String()),
		ClosingJournalID: closingJournalID,
		NetProfit:        netProfit.String(),
	}
}

// PeriodLocked is emitted after a closed period is locked.
type PeriodLocked struct {
	events.BaseEvent
}

// NewPeriodLocked creates a PeriodLocked event.
func NewPeriodLocked(periodID, tenantID uuid.UUID) PeriodLocked {
	return PeriodLocked{
		BaseEvent: events.NewBaseEvent(TypePeriodLocked, periodID.String(), "AccountingPeriod", tenantID.String()),
	}
}

// ChartImported is emitted after a chart-of-accounts template import.
type ChartImported struct {
	events.BaseEvent
	AccountCount int `json:"account_count"`
}

// NewChartImported creates a ChartImported event.
func NewChartImported(tenantID uuid.UUID, accountCount int) ChartImported {
	return ChartImported{
		BaseEvent:    events.NewBaseEvent(TypeChartImported, tenantID.String(), "ChartOfAccounts", tenantID.String()),
		AccountCount: accountCount,
	}
}
