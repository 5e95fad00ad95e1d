package grpc

// proto.go defines the gRPC server interface derived from tally/ledger/v1/ledger.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/tallyworks/tally/api/gen/go/tally/ledger/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// --- Message types (stand-ins for proto-generated structs) ---

// JournalLineMsg is one debit/credit leg of a journal.
type JournalLineMsg struct {
	ID          string
	LineNumber  int32
	AccountID   string
	Debit       string
	Credit      string
	TaxRateID   string
	Description string
	Department  string
}

// PostJournalRequest posts a balanced journal. Dates use the 2006-01-02 form;
// amounts are decimal strings. PeriodID is optional; when empty the period is
// resolved from the journal date.
type PostJournalRequest struct {
	JournalDate string
	PeriodID    string
	Memo        string
	Source      string
	SourceType  string
	SourceID    string
	Lines       []*JournalLineMsg
}

type JournalMsg struct {
	ID          string
	TenantID    string
	JournalDate string
	PeriodID    string
	Memo        string
	Source      string
	SourceType  string
	SourceID    string
	IsApproved  bool
	Total       string
	Lines       []*JournalLineMsg
	CreatedAt   *timestamppb.Timestamp
}

type PostJournalResponse struct {
	Journal *JournalMsg
}

type GetJournalRequest struct {
	JournalID string
}

type GetJournalResponse struct {
	Journal *JournalMsg
}

type DeleteJournalRequest struct {
	JournalID string
}

type DeleteJournalResponse struct{}

type GetTrialBalanceRequest struct {
	PeriodID string
}

type TrialBalanceRowMsg struct {
	AccountID      string
	Code           string
	Name           string
	Type           string
	HierarchyLevel int32
	OpeningBalance string
	DebitMovement  string
	CreditMovement string
	ClosingBalance string
}

type GetTrialBalanceResponse struct {
	PeriodID    string
	PeriodName  string
	StartDate   string
	EndDate     string
	Rows        []*TrialBalanceRowMsg
	TotalDebit  string
	TotalCredit string
}

type GetGeneralLedgerRequest struct {
	AccountID string
	FromDate  string
	ToDate    string
}

type GeneralLedgerRowMsg struct {
	JournalID      string
	JournalDate    string
	Memo           string
	Description    string
	Debit          string
	Credit         string
	RunningBalance string
}

type GetGeneralLedgerResponse struct {
	AccountID      string
	Code           string
	Name           string
	Type           string
	OpeningBalance string
	Rows           []*GeneralLedgerRowMsg
	TotalDebit     string
	TotalCredit    string
	ClosingBalance string
}

type GetBalanceSheetAndPLRequest struct {
	PeriodID string
}

type ReportAccountMsg struct {
	AccountID string
	Code      string
	Name      string
	Amount    string
}

type ReportSectionMsg struct {
	Accounts []*ReportAccountMsg
	Subtotal string
}

type GetBalanceSheetAndPLResponse struct {
	PeriodID    string
	PeriodName  string
	EndDate     string
	Assets      *ReportSectionMsg
	Liabilities *ReportSectionMsg
	Equity      *ReportSectionMsg
	Revenue     *ReportSectionMsg
	Expenses    *ReportSectionMsg
	NetProfit   string
}

type GetTaxSummaryRequest struct {
	FromDate string
	ToDate   string
}

type TaxSummaryRowMsg struct {
	TaxRateID     string
	RateName      string
	Rate          string
	SalesBase     string
	SalesTax      string
	PurchasesBase string
	PurchasesTax  string
}

type GetTaxSummaryResponse struct {
	Rows       []*TaxSummaryRowMsg
	NetPayable string
}

type ClosePeriodRequest struct {
	PeriodID    string
	ClosingDate string
}

type ClosePeriodResponse struct {
	PeriodID         string
	ClosingJournalID string
	NetProfit        string
}

type LockPeriodRequest struct {
	PeriodID string
}

type LockPeriodResponse struct{}

// LedgerServiceServer is the server API for LedgerService.
// It mirrors the proto-generated interface from tally.ledger.v1.LedgerService.
type LedgerServiceServer interface {
	PostJournal(context.Context, *PostJournalRequest) (*PostJournalResponse, error)
	GetJournal(context.Context, *GetJournalRequest) (*GetJournalResponse, error)
	DeleteJournal(context.Context, *DeleteJournalRequest) (*DeleteJournalResponse, error)
	GetTrialBalance(context.Context, *GetTrialBalanceRequest) (*GetTrialBalanceResponse, error)
	GetGeneralLedger(context.Context, *GetGeneralLedgerRequest) (*GetGeneralLedgerResponse, error)
	GetBalanceSheetAndPL(context.Context, *GetBalanceSheetAndPLRequest) (*GetBalanceSheetAndPLResponse, error)
	GetTaxSummary(context.Context, *GetTaxSummaryRequest) (*GetTaxSummaryResponse, error)
	ClosePeriod(context.Context, *ClosePeriodRequest) (*ClosePeriodResponse, error)
	LockPeriod(context.Context, *LockPeriodRequest) (*LockPeriodResponse, error)
	mustEmbedUnimplementedLedgerServiceServer()
}

// UnimplementedLedgerServiceServer provides forward-compatible default implementations.
type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) PostJournal(context.Context, *PostJournalRequest) (*PostJournalResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PostJournal not implemented")
}
func (UnimplementedLedgerServiceServer) GetJournal(context.Context, *GetJournalRequest) (*GetJournalResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetJournal not implemented")
}
func (UnimplementedLedgerServiceServer) DeleteJournal(context.Context, *DeleteJournalRequest) (*DeleteJournalResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteJournal not implemented")
}
func (UnimplementedLedgerServiceServer) GetTrialBalance(context.Context, *GetTrialBalanceRequest) (*GetTrialBalanceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTrialBalance not implemented")
}
func (UnimplementedLedgerServiceServer) GetGeneralLedger(context.Context, *GetGeneralLedgerRequest) (*GetGeneralLedgerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetGeneralLedger not implemented")
}
func (UnimplementedLedgerServiceServer) GetBalanceSheetAndPL(context.Context, *GetBalanceSheetAndPLRequest) (*GetBalanceSheetAndPLResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBalanceSheetAndPL not implemented")
}
func (UnimplementedLedgerServiceServer) GetTaxSummary(context.Context, *GetTaxSummaryRequest) (*GetTaxSummaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetTaxSummary not implemented")
}
func (UnimplementedLedgerServiceServer) ClosePeriod(context.Context, *ClosePeriodRequest) (*ClosePeriodResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ClosePeriod not implemented")
}
func (UnimplementedLedgerServiceServer) LockPeriod(context.Context, *LockPeriodRequest) (*LockPeriodResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LockPeriod not implemented")
}
func (UnimplementedLedgerServiceServer) mustEmbedUnimplementedLedgerServiceServer() {}

// RegisterLedgerServiceServer registers the LedgerServiceServer with the gRPC server.
func RegisterLedgerServiceServer(s *grpclib.Server, srv LedgerServiceServer) {
	s.RegisterService(&_LedgerService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _LedgerService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "tally.ledger.v1.LedgerService",
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "PostJournal", Handler: _LedgerService_PostJournal_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "GetJournal", Handler: _LedgerService_GetJournal_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "DeleteJournal", Handler: _LedgerService_DeleteJournal_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "GetTrialBalance", Handler: _LedgerService_GetTrialBalance_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "GetGeneralLedger", Handler: _LedgerService_GetGeneralLedger_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "GetBalanceSheetAndPL", Handler: _LedgerService_GetBalanceSheetAndPL_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetTaxSummary", Handler: _LedgerService_GetTaxSummary_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "ClosePeriod", Handler: _LedgerService_ClosePeriod_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "LockPeriod", Handler: _LedgerService_LockPeriod_Handler},                     //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_PostJournal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(PostJournalRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).PostJournal(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/PostJournal",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).PostJournal(ctx, req.(*PostJournalRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_GetJournal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetJournalRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetJournal(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/GetJournal",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetJournal(ctx, req.(*GetJournalRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_DeleteJournal_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteJournalRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).DeleteJournal(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/DeleteJournal",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).DeleteJournal(ctx, req.(*DeleteJournalRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_GetTrialBalance_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetTrialBalanceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetTrialBalance(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/GetTrialBalance",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetTrialBalance(ctx, req.(*GetTrialBalanceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_GetGeneralLedger_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetGeneralLedgerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetGeneralLedger(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/GetGeneralLedger",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetGeneralLedger(ctx, req.(*GetGeneralLedgerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_GetBalanceSheetAndPL_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetBalanceSheetAndPLRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetBalanceSheetAndPL(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/GetBalanceSheetAndPL",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetBalanceSheetAndPL(ctx, req.(*GetBalanceSheetAndPLRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_GetTaxSummary_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetTaxSummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetTaxSummary(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/GetTaxSummary",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetTaxSummary(ctx, req.(*GetTaxSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_ClosePeriod_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ClosePeriodRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).ClosePeriod(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/ClosePeriod",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).ClosePeriod(ctx, req.(*ClosePeriodRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LedgerService_LockPeriod_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(LockPeriodRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).LockPeriod(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tally.ledger.v1.LedgerService/LockPeriod",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).LockPeriod(ctx, req.(*LockPeriodRequest))
	}
	return interceptor(ctx, in, info, handler)
}
