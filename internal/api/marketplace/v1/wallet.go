package marketplacev1

import (
	"context"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type GetWalletRequest struct{}

type WalletResponse struct {
	Wallet *Wallet `json:"wallet"`
}

type ListTransactionsRequest struct {
	Page *PageRequest `json:"page,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []*WalletTransaction `json:"transactions"`
	PageInfo     *PageInfo            `json:"pageInfo"`
}

type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type Withdrawal struct {
	Id        uint64                 `json:"id"`
	WalletId  uint64                 `json:"walletId"`
	Amount    decimal.Decimal        `json:"amount"`
	Status    string                 `json:"status"`
	CreatedAt *timestamppb.Timestamp `json:"createdAt,omitempty"`
}

type WithdrawResponse struct {
	Withdrawal *Withdrawal `json:"withdrawal"`
	Wallet     *Wallet     `json:"wallet"`
}

// TopUpRequest — ручное пополнение кошелька администратором.
type TopUpRequest struct {
	UserId      uint64          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type VerifyLedgerRequest struct {
	// 0 — собственный кошелёк вызывающего.
	UserId uint64 `json:"userId,omitempty"`
}

type VerifyLedgerResponse struct {
	Entries    int32           `json:"entries"`
	Computed   decimal.Decimal `json:"computed"`
	Stored     decimal.Decimal `json:"stored"`
	BrokenAt   int32           `json:"brokenAt"`
	Consistent bool            `json:"consistent"`
}

const (
	WalletService_GetWallet_FullMethodName        = "/marketplace.v1.WalletService/GetWallet"
	WalletService_ListTransactions_FullMethodName = "/marketplace.v1.WalletService/ListTransactions"
	WalletService_Withdraw_FullMethodName         = "/marketplace.v1.WalletService/Withdraw"
	WalletService_TopUp_FullMethodName            = "/marketplace.v1.WalletService/TopUp"
	WalletService_VerifyLedger_FullMethodName     = "/marketplace.v1.WalletService/VerifyLedger"
)

// WalletServiceServer — серверная часть WalletService.
type WalletServiceServer interface {
	GetWallet(context.Context, *GetWalletRequest) (*WalletResponse, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
	Withdraw(context.Context, *WithdrawRequest) (*WithdrawResponse, error)
	TopUp(context.Context, *TopUpRequest) (*WalletResponse, error)
	VerifyLedger(context.Context, *VerifyLedgerRequest) (*VerifyLedgerResponse, error)
}

// UnimplementedWalletServiceServer answers Unimplemented to every method.
type UnimplementedWalletServiceServer struct{}

func (UnimplementedWalletServiceServer) GetWallet(context.Context, *GetWalletRequest) (*WalletResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetWallet not implemented")
}
func (UnimplementedWalletServiceServer) ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTransactions not implemented")
}
func (UnimplementedWalletServiceServer) Withdraw(context.Context, *WithdrawRequest) (*WithdrawResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Withdraw not implemented")
}
func (UnimplementedWalletServiceServer) TopUp(context.Context, *TopUpRequest) (*WalletResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method TopUp not implemented")
}
func (UnimplementedWalletServiceServer) VerifyLedger(context.Context, *VerifyLedgerRequest) (*VerifyLedgerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyLedger not implemented")
}

func RegisterWalletServiceServer(s grpc.ServiceRegistrar, srv WalletServiceServer) {
	s.RegisterService(&WalletService_ServiceDesc, srv)
}

var WalletService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "marketplace.v1.WalletService",
	HandlerType: (*WalletServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetWallet",
			Handler: unary(WalletService_GetWallet_FullMethodName, func(srv any, ctx context.Context, in *GetWalletRequest) (*WalletResponse, error) {
				return srv.(WalletServiceServer).GetWallet(ctx, in)
			}),
		},
		{
			MethodName: "ListTransactions",
			Handler: unary(WalletService_ListTransactions_FullMethodName, func(srv any, ctx context.Context, in *ListTransactionsRequest) (*ListTransactionsResponse, error) {
				return srv.(WalletServiceServer).ListTransactions(ctx, in)
			}),
		},
		{
			MethodName: "Withdraw",
			Handler: unary(WalletService_Withdraw_FullMethodName, func(srv any, ctx context.Context, in *WithdrawRequest) (*WithdrawResponse, error) {
				return srv.(WalletServiceServer).Withdraw(ctx, in)
			}),
		},
		{
			MethodName: "TopUp",
			Handler: unary(WalletService_TopUp_FullMethodName, func(srv any, ctx context.Context, in *TopUpRequest) (*WalletResponse, error) {
				return srv.(WalletServiceServer).TopUp(ctx, in)
			}),
		},
		{
			MethodName: "VerifyLedger",
			Handler: unary(WalletService_VerifyLedger_FullMethodName, func(srv any, ctx context.Context, in *VerifyLedgerRequest) (*VerifyLedgerResponse, error) {
				return srv.(WalletServiceServer).VerifyLedger(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "marketplace/v1/wallet",
}

// WalletServiceClient — клиентская часть WalletService.
type WalletServiceClient interface {
	GetWallet(ctx context.Context, in *GetWalletRequest, opts ...grpc.CallOption) (*WalletResponse, error)
	ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error)
	Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*WithdrawResponse, error)
	TopUp(ctx context.Context, in *TopUpRequest, opts ...grpc.CallOption) (*WalletResponse, error)
	VerifyLedger(ctx context.Context, in *VerifyLedgerRequest, opts ...grpc.CallOption) (*VerifyLedgerResponse, error)
}

type walletServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWalletServiceClient(cc grpc.ClientConnInterface) WalletServiceClient {
	return &walletServiceClient{cc: cc}
}

func (c *walletServiceClient) GetWallet(ctx context.Context, in *GetWalletRequest, opts ...grpc.CallOption) (*WalletResponse, error) {
	return invoke[WalletResponse](ctx, c.cc, WalletService_GetWallet_FullMethodName, in, opts...)
}

func (c *walletServiceClient) ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error) {
	return invoke[ListTransactionsResponse](ctx, c.cc, WalletService_ListTransactions_FullMethodName, in, opts...)
}

func (c *walletServiceClient) Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*WithdrawResponse, error) {
	return invoke[WithdrawResponse](ctx, c.cc, WalletService_Withdraw_FullMethodName, in, opts...)
}

func (c *walletServiceClient) TopUp(ctx context.Context, in *TopUpRequest, opts ...grpc.CallOption) (*WalletResponse, error) {
	return invoke[WalletResponse](ctx, c.cc, WalletService_TopUp_FullMethodName, in, opts...)
}

func (c *walletServiceClient) VerifyLedger(ctx context.Context, in *VerifyLedgerRequest, opts ...grpc.CallOption) (*VerifyLedgerResponse, error) {
	return invoke[VerifyLedgerResponse](ctx, c.cc, WalletService_VerifyLedger_FullMethodName, in, opts...)
}
