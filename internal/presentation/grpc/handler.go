package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/tallyworks/tally/internal/application/dto"
	"github.com/tallyworks/tally/internal/application/usecase"
	"github.com/tallyworks/tally/internal/domain/apperr"
	"github.com/tallyworks/tally/pkg/auth"
)

const dateLayout = "2006-01-02"

// LedgerHandler implements the gRPC LedgerService server. The tenant is never
// part of a request message; it always comes from the authenticated claims.
type LedgerHandler struct {
	UnimplementedLedgerServiceServer

	postJournal    *usecase.PostJournal
	getJournal     *usecase.GetJournal
	deleteJournal  *usecase.DeleteJournal
	trialBalance   *usecase.TrialBalance
	generalLedger  *usecase.GeneralLedger
	balanceSheetPL *usecase.BalanceSheetPL
	taxSummary     *usecase.TaxSummary
	closePeriod    *usecase.ClosePeriod
	lockPeriod     *usecase.LockPeriod
}

func NewLedgerHandler(
	postJournal *usecase.PostJournal,
	getJournal *usecase.GetJournal,
	deleteJournal *usecase.DeleteJournal,
	trialBalance *usecase.TrialBalance,
	generalLedger *usecase.GeneralLedger,
	balanceSheetPL *usecase.BalanceSheetPL,
	taxSummary *usecase.TaxSummary,
	closePeriod *usecase.ClosePeriod,
	lockPeriod *usecase.LockPeriod,
) *LedgerHandler {
	return &LedgerHandler{
		postJournal:    postJournal,
		getJournal:     getJournal,
		deleteJournal:  deleteJournal,
		trialBalance:   trialBalance,
		generalLedger:  generalLedger,
		balanceSheetPL: balanceSheetPL,
		taxSummary:     taxSummary,
		closePeriod:    closePeriod,
		lockPeriod:     lockPeriod,
	}
}

func (h *LedgerHandler) PostJournal(ctx context.Context, req *PostJournalRequest) (*PostJournalResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	journalDate, err := time.Parse(dateLayout, req.JournalDate)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid journal_date: %v", err)
	}

	var periodID *uuid.UUID
	if req.PeriodID != "" {
		id, err := uuid.Parse(req.PeriodID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid period_id: %v", err)
		}
		periodID = &id
	}

	lines := make([]dto.JournalLineInput, 0, len(req.Lines))
	for i, l := range req.Lines {
		line, err := parseLine(l)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "line %d: %v", i+1, err)
		}
		lines = append(lines, line)
	}

	result, err := h.postJournal.Execute(ctx, dto.PostJournalRequest{
		TenantID:    tenantID,
		JournalDate: journalDate,
		PeriodID:    periodID,
		Memo:        req.Memo,
		Source:      req.Source,
		SourceType:  req.SourceType,
		SourceID:    req.SourceID,
		Lines:       lines,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &PostJournalResponse{Journal: toJournalMsg(result)}, nil
}

func (h *LedgerHandler) GetJournal(ctx context.Context, req *GetJournalRequest) (*GetJournalResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	journalID, err := uuid.Parse(req.JournalID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid journal_id: %v", err)
	}

	result, err := h.getJournal.Execute(ctx, tenantID, journalID)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &GetJournalResponse{Journal: toJournalMsg(result)}, nil
}

func (h *LedgerHandler) DeleteJournal(ctx context.Context, req *DeleteJournalRequest) (*DeleteJournalResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	journalID, err := uuid.Parse(req.JournalID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid journal_id: %v", err)
	}

	if err := h.deleteJournal.Execute(ctx, tenantID, journalID); err != nil {
		return nil, statusFromError(err)
	}
	return &DeleteJournalResponse{}, nil
}

func (h *LedgerHandler) GetTrialBalance(ctx context.Context, req *GetTrialBalanceRequest) (*GetTrialBalanceResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	periodID, err := uuid.Parse(req.PeriodID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid period_id: %v", err)
	}

	report, err := h.trialBalance.Execute(ctx, tenantID, periodID)
	if err != nil {
		return nil, statusFromError(err)
	}

	rows := make([]*TrialBalanceRowMsg, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = &TrialBalanceRowMsg{
			AccountID:      r.AccountID.String(),
			Code:           r.Code,
			Name:           r.Name,
			Type:           r.Type,
			HierarchyLevel: int32(r.HierarchyLevel),
			OpeningBalance: r.OpeningBalance.String(),
			DebitMovement:  r.DebitMovement.String(),
			CreditMovement: r.CreditMovement.String(),
			ClosingBalance: r.ClosingBalance.String(),
		}
	}
	return &GetTrialBalanceResponse{
		PeriodID:    report.PeriodID.String(),
		PeriodName:  report.PeriodName,
		StartDate:   report.StartDate.Format(dateLayout),
		EndDate:     report.EndDate.Format(dateLayout),
		Rows:        rows,
		TotalDebit:  report.TotalDebit.String(),
		TotalCredit: report.TotalCredit.String(),
	}, nil
}

func (h *LedgerHandler) GetGeneralLedger(ctx context.Context, req *GetGeneralLedgerRequest) (*GetGeneralLedgerResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid account_id: %v", err)
	}
	from, to, err := parseDates(req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}

	report, err := h.generalLedger.Execute(ctx, tenantID, accountID, from, to)
	if err != nil {
		return nil, statusFromError(err)
	}

	rows := make([]*GeneralLedgerRowMsg, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = &GeneralLedgerRowMsg{
			JournalID:      r.JournalID.String(),
			JournalDate:    r.JournalDate.Format(dateLayout),
			Memo:           r.Memo,
			Description:    r.Description,
			Debit:          r.Debit.String(),
			Credit:         r.Credit.String(),
			RunningBalance: r.RunningBalance.String(),
		}
	}
	return &GetGeneralLedgerResponse{
		AccountID:      report.AccountID.String(),
		Code:           report.Code,
		Name:           report.Name,
		Type:           report.Type,
		OpeningBalance: report.OpeningBalance.String(),
		Rows:           rows,
		TotalDebit:     report.TotalDebit.String(),
		TotalCredit:    report.TotalCredit.String(),
		ClosingBalance: report.ClosingBalance.String(),
	}, nil
}

func (h *LedgerHandler) GetBalanceSheetAndPL(ctx context.Context, req *GetBalanceSheetAndPLRequest) (*GetBalanceSheetAndPLResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	periodID, err := uuid.Parse(req.PeriodID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid period_id: %v", err)
	}

	report, err := h.balanceSheetPL.Execute(ctx, tenantID, periodID)
	if err != nil {
		return nil, statusFromError(err)
	}
	return &GetBalanceSheetAndPLResponse{
		PeriodID:    report.PeriodID.String(),
		PeriodName:  report.PeriodName,
		EndDate:     report.EndDate.Format(dateLayout),
		Assets:      toSectionMsg(report.Assets),
		Liabilities: toSectionMsg(report.Liabilities),
		Equity:      toSectionMsg(report.Equity),
		Revenue:     toSectionMsg(report.Revenue),
		Expenses:    toSectionMsg(report.Expenses),
		NetProfit:   report.NetProfit.String(),
	}, nil
}

func (h *LedgerHandler) GetTaxSummary(ctx context.Context, req *GetTaxSummaryRequest) (*GetTaxSummaryResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	from, to, err := parseDates(req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}

	report, err := h.taxSummary.Execute(ctx, tenantID, from, to)
	if err != nil {
		return nil, statusFromError(err)
	}

	rows := make([]*TaxSummaryRowMsg, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = &TaxSummaryRowMsg{
			TaxRateID:     r.TaxRateID.String(),
			RateName:      r.RateName,
			Rate:          r.Rate.String(),
			SalesBase:     r.SalesBase.String(),
			SalesTax:      r.SalesTax.String(),
			PurchasesBase: r.PurchasesBase.String(),
			PurchasesTax:  r.PurchasesTax.String(),
		}
	}
	return &GetTaxSummaryResponse{Rows: rows, NetPayable: report.NetPayable.String()}, nil
}

func (h *LedgerHandler) ClosePeriod(ctx context.Context, req *ClosePeriodRequest) (*ClosePeriodResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	periodID, err := uuid.Parse(req.PeriodID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid period_id: %v", err)
	}

	var closingDate time.Time
	if req.ClosingDate != "" {
		closingDate, err = time.Parse(dateLayout, req.ClosingDate)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid closing_date: %v", err)
		}
	}

	result, err := h.closePeriod.Execute(ctx, dto.ClosePeriodRequest{
		TenantID:    tenantID,
		PeriodID:    periodID,
		ClosingDate: closingDate,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	resp := &ClosePeriodResponse{
		PeriodID:  result.PeriodID.String(),
		NetProfit: result.NetProfit.String(),
	}
	if result.ClosingJournalID != nil {
		resp.ClosingJournalID = result.ClosingJournalID.String()
	}
	return resp, nil
}

func (h *LedgerHandler) LockPeriod(ctx context.Context, req *LockPeriodRequest) (*LockPeriodResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	periodID, err := uuid.Parse(req.PeriodID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid period_id: %v", err)
	}

	if err := h.lockPeriod.Execute(ctx, tenantID, periodID); err != nil {
		return nil, statusFromError(err)
	}
	return &LockPeriodResponse{}, nil
}

// --- Helpers ---

func tenantFrom(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := auth.TenantFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "missing tenant claims")
	}
	return tenantID, nil
}

func parseDates(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, status.Errorf(codes.InvalidArgument, "invalid from_date: %v", err)
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, status.Errorf(codes.InvalidArgument, "invalid to_date: %v", err)
	}
	return from, to, nil
}

func parseLine(l *JournalLineMsg) (dto.JournalLineInput, error) {
	accountID, err := uuid.Parse(l.AccountID)
	if err != nil {
		return dto.JournalLineInput{}, err
	}

	debit := decimal.Zero
	if l.Debit != "" {
		if debit, err = decimal.NewFromString(l.Debit); err != nil {
			return dto.JournalLineInput{}, err
		}
	}
	credit := decimal.Zero
	if l.Credit != "" {
		if credit, err = decimal.NewFromString(l.Credit); err != nil {
			return dto.JournalLineInput{}, err
		}
	}

	var taxRateID *uuid.UUID
	if l.TaxRateID != "" {
		id, err := uuid.Parse(l.TaxRateID)
		if err != nil {
			return dto.JournalLineInput{}, err
		}
		taxRateID = &id
	}

	return dto.JournalLineInput{
		AccountID:   accountID,
		Debit:       debit,
		Credit:      credit,
		TaxRateID:   taxRateID,
		Description: l.Description,
		Department:  l.Department,
	}, nil
}

func toJournalMsg(j dto.JournalResponse) *JournalMsg {
	lines := make([]*JournalLineMsg, len(j.Lines))
	for i, l := range j.Lines {
		msg := &JournalLineMsg{
			ID:          l.ID.String(),
			LineNumber:  int32(l.LineNumber),
			AccountID:   l.AccountID.String(),
			Debit:       l.Debit.String(),
			Credit:      l.Credit.String(),
			Description: l.Description,
			Department:  l.Department,
		}
		if l.TaxRateID != nil {
			msg.TaxRateID = l.TaxRateID.String()
		}
		lines[i] = msg
	}

	msg := &JournalMsg{
		ID:          j.ID.String(),
		TenantID:    j.TenantID.String(),
		JournalDate: j.JournalDate.Format(dateLayout),
		Memo:        j.Memo,
		Source:      j.Source,
		SourceType:  j.SourceType,
		SourceID:    j.SourceID,
		IsApproved:  j.IsApproved,
		Total:       j.Total.String(),
		Lines:       lines,
		CreatedAt:   timestamppb.New(j.CreatedAt),
	}
	if j.PeriodID != nil {
		msg.PeriodID = j.PeriodID.String()
	}
	return msg
}

func toSectionMsg(s dto.ReportSection) *ReportSectionMsg {
	accounts := make([]*ReportAccountMsg, len(s.Accounts))
	for i, a := range s.Accounts {
		accounts[i] = &ReportAccountMsg{
			AccountID: a.AccountID.String(),
			Code:      a.Code,
			Name:      a.Name,
			Amount:    a.Amount.String(),
		}
	}
	return &ReportSectionMsg{Accounts: accounts, Subtotal: s.Subtotal.String()}
}

// statusFromError maps the domain error taxonomy onto gRPC status codes.
func statusFromError(err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return status.Errorf(codes.Internal, "internal error: %v", err)
	}

	var code codes.Code
	switch appErr.Kind {
	case apperr.KindValidation:
		code = codes.InvalidArgument
	case apperr.KindNotFound:
		code = codes.NotFound
	case apperr.KindState, apperr.KindIntegrity, apperr.KindDependencyMissing:
		code = codes.FailedPrecondition
	default:
		code = codes.Internal
	}

	return status.Error(code, appErr.Error())
}
