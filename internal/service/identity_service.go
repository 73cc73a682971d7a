package service

import (
	"context"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Leganyst/maid-marketplace/internal/account"
	pb "github.com/Leganyst/maid-marketplace/internal/api/marketplace/v1"
	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/auth"
	"github.com/Leganyst/maid-marketplace/internal/model"
)

// OTPVerifier — выдача и проверка одноразовых кодов.
type OTPVerifier interface {
	Issue(ctx context.Context, rawPhone string) error
	Verify(ctx context.Context, rawPhone, code string) (string, error)
	TTL() time.Duration
}

// IdentityService реализует вход по OTP, профиль и администрирование пользователей.
type IdentityService struct {
	pb.UnimplementedIdentityServiceServer

	verifier OTPVerifier
	accounts *account.Service
	issuer   *auth.Issuer
}

func NewIdentityService(verifier OTPVerifier, accounts *account.Service, issuer *auth.Issuer) *IdentityService {
	return &IdentityService{verifier: verifier, accounts: accounts, issuer: issuer}
}

// actorFrom достаёт пользователя, которого положил auth-интерсептор.
func actorFrom(ctx context.Context) (model.Actor, error) {
	a, ok := auth.ActorFrom(ctx)
	if !ok {
		return model.Actor{}, apperr.Wrap(apperr.ErrUnauthenticated, "no authenticated user")
	}
	return a, nil
}

// RequestOTP отправляет код на телефон. Сам код в ответе не возвращается.
func (s *IdentityService) RequestOTP(ctx context.Context, req *pb.RequestOTPRequest) (*pb.RequestOTPResponse, error) {
	if strings.TrimSpace(req.GetPhone()) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "phone is required")
	}
	if err := s.verifier.Issue(ctx, req.GetPhone()); err != nil {
		return nil, err
	}
	return &pb.RequestOTPResponse{
		Sent:             true,
		ExpiresInSeconds: int64(s.verifier.TTL() / time.Second),
	}, nil
}

// VerifyOTP проверяет код, регистрирует пользователя при первом входе и выдаёт токен.
func (s *IdentityService) VerifyOTP(ctx context.Context, req *pb.VerifyOTPRequest) (*pb.VerifyOTPResponse, error) {
	phone, err := s.verifier.Verify(ctx, req.GetPhone(), req.GetCode())
	if err != nil {
		return nil, err
	}

	signed, err := s.accounts.SignIn(ctx, phone)
	if err != nil {
		return nil, err
	}

	token, exp, err := s.issuer.Issue(signed.User)
	if err != nil {
		return nil, err
	}

	return &pb.VerifyOTPResponse{
		Token:     token,
		ExpiresAt: timestamppb.New(exp),
		User:      mapUser(signed.User),
		IsNewUser: signed.Created,
	}, nil
}

// GetProfile возвращает профиль вызывающего.
func (s *IdentityService) GetProfile(ctx context.Context, _ *pb.GetProfileRequest) (*pb.GetProfileResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.accounts.Profile(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	out := &pb.GetProfileResponse{User: mapUser(p.User), Wallet: mapWallet(p.Wallet), Maid: mapMaid(p.Maid)}
	if p.Maid != nil {
		out.AverageRating = p.Rating.Average
		out.TotalRatings = p.Rating.Count
		for i := range p.RecentRatings {
			out.RecentRatings = append(out.RecentRatings, mapRating(&p.RecentRatings[i]))
		}
	}
	return out, nil
}

// SetRole назначает роль пользователю (только администраторы).
func (s *IdentityService) SetRole(ctx context.Context, req *pb.SetRoleRequest) (*pb.SetRoleResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if req.GetUserId() == 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "user_id is required")
	}
	if req.GetRole() == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "role is required")
	}

	u, err := s.accounts.SetRole(ctx, actor, req.GetUserId(), model.UserRole(req.GetRole()))
	if err != nil {
		return nil, err
	}
	return &pb.SetRoleResponse{User: mapUser(u)}, nil
}

func (s *IdentityService) SetUserActive(ctx context.Context, req *pb.SetUserActiveRequest) (*pb.SetUserActiveResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if req.UserId == 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "user_id is required")
	}
	if err := s.accounts.SetActive(ctx, actor, req.UserId, req.Active); err != nil {
		return nil, err
	}
	return &pb.SetUserActiveResponse{}, nil
}

// UpdateMaidProfile обновляет анкету и рабочие часы исполнителя.
func (s *IdentityService) UpdateMaidProfile(ctx context.Context, req *pb.UpdateMaidProfileRequest) (*pb.UpdateMaidProfileResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	m, err := s.accounts.UpdateMaidProfile(ctx, actor, account.MaidUpdate{
		Bio:             req.Bio,
		ExperienceYears: int(req.ExperienceYears),
		IsAvailable:     req.IsAvailable,
		AvailableFrom:   req.AvailableFrom,
		AvailableTo:     req.AvailableTo,
	})
	if err != nil {
		return nil, err
	}
	return &pb.UpdateMaidProfileResponse{Maid: mapMaid(m)}, nil
}

func (s *IdentityService) ListNotifications(ctx context.Context, req *pb.ListNotificationsRequest) (*pb.ListNotificationsResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	page, err := s.accounts.Notifications(ctx, actor, req.UnreadOnly, pageRequest(req.Page))
	if err != nil {
		return nil, err
	}
	out := make([]*pb.Notification, 0, len(page.Items))
	for _, n := range page.Items {
		out = append(out, mapNotification(n))
	}
	return &pb.ListNotificationsResponse{Notifications: out, PageInfo: mapPageInfo(page)}, nil
}

func (s *IdentityService) MarkNotificationRead(ctx context.Context, req *pb.MarkNotificationReadRequest) (*pb.MarkNotificationReadResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if req.Id == 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "notification id is required")
	}
	if err := s.accounts.MarkRead(ctx, actor, req.Id); err != nil {
		return nil, err
	}
	return &pb.MarkNotificationReadResponse{}, nil
}
