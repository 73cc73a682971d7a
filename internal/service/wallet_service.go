package service

import (
	"context"
	"strings"

	pb "github.com/Leganyst/maid-marketplace/internal/api/marketplace/v1"
	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/auth"
	"github.com/Leganyst/maid-marketplace/internal/ledger"
	"github.com/Leganyst/maid-marketplace/internal/model"
)

type WalletService struct {
	pb.UnimplementedWalletServiceServer

	ledger *ledger.Ledger
	users  auth.UserStore
}

func NewWalletService(l *ledger.Ledger, users auth.UserStore) *WalletService {
	return &WalletService{ledger: l, users: users}
}

func (s *WalletService) GetWallet(ctx context.Context, _ *pb.GetWalletRequest) (*pb.WalletResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	w, err := s.ledger.EnsureWallet(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &pb.WalletResponse{Wallet: mapWallet(w)}, nil
}

// ListTransactions — журнал кошелька вызывающего, новые сверху.
func (s *WalletService) ListTransactions(ctx context.Context, req *pb.ListTransactionsRequest) (*pb.ListTransactionsResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	w, err := s.ledger.EnsureWallet(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	page, err := s.ledger.History(ctx, w.ID, pageRequest(req.Page))
	if err != nil {
		return nil, err
	}
	out := make([]*pb.WalletTransaction, 0, len(page.Items))
	for _, t := range page.Items {
		out = append(out, mapTransaction(t))
	}
	return &pb.ListTransactionsResponse{Transactions: out, PageInfo: mapPageInfo(page)}, nil
}

// Withdraw списывает сумму с кошелька исполнителя и создаёт заявку на вывод.
func (s *WalletService) Withdraw(ctx context.Context, req *pb.WithdrawRequest) (*pb.WithdrawResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.UserRoleMaid {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only maids can withdraw")
	}
	if !req.Amount.IsPositive() {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "amount must be positive")
	}

	wr, err := s.ledger.Withdraw(ctx, actor.UserID, req.Amount)
	if err != nil {
		return nil, err
	}
	w, err := s.ledger.WalletOf(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &pb.WithdrawResponse{Withdrawal: mapWithdrawal(wr), Wallet: mapWallet(w)}, nil
}

// TopUp — ручное пополнение кошелька администратором.
func (s *WalletService) TopUp(ctx context.Context, req *pb.TopUpRequest) (*pb.WalletResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsAdmin() {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only admins can top up wallets")
	}
	if req.UserId == 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "user_id is required")
	}
	if !req.Amount.IsPositive() {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "amount must be positive")
	}
	if _, err := s.users.FindByID(ctx, req.UserId); err != nil {
		return nil, apperr.FromStore(err, "user")
	}

	w, err := s.ledger.EnsureWallet(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		desc = "Wallet top-up"
	}
	if _, err := s.ledger.Record(ctx, ledger.Entry{
		WalletID:    w.ID,
		Type:        model.TransactionCredit,
		Amount:      req.Amount,
		Description: desc,
	}); err != nil {
		return nil, err
	}

	w, err = s.ledger.WalletOf(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	return &pb.WalletResponse{Wallet: mapWallet(w)}, nil
}

// VerifyLedger пересчитывает журнал кошелька. Чужие кошельки — только для администраторов.
func (s *WalletService) VerifyLedger(ctx context.Context, req *pb.VerifyLedgerRequest) (*pb.VerifyLedgerResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	userID := req.UserId
	if userID == 0 {
		userID = actor.UserID
	}
	if userID != actor.UserID && !actor.Role.IsAdmin() {
		return nil, apperr.Wrap(apperr.ErrForbidden, "cannot inspect another user's wallet")
	}

	w, err := s.ledger.WalletOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	report, err := s.ledger.Replay(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	return mapReplay(report), nil
}
