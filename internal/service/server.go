package service

import (
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/account"
	pb "github.com/Leganyst/maid-marketplace/internal/api/marketplace/v1"
	"github.com/Leganyst/maid-marketplace/internal/auth"
	"github.com/Leganyst/maid-marketplace/internal/booking"
	"github.com/Leganyst/maid-marketplace/internal/catalog"
	"github.com/Leganyst/maid-marketplace/internal/ledger"
	"github.com/Leganyst/maid-marketplace/internal/repository"
)

// PublicMethods are callable without a session token.
var PublicMethods = []string{
	pb.IdentityService_RequestOTP_FullMethodName,
	pb.IdentityService_VerifyOTP_FullMethodName,
	pb.BookingService_Quote_FullMethodName,
	pb.CatalogService_ListServices_FullMethodName,
	healthpb.Health_Check_FullMethodName,
}

// Deps — всё, что нужно gRPC-слою.
type Deps struct {
	DB       *gorm.DB
	Ledger   *ledger.Ledger
	Verifier OTPVerifier
	Accounts *account.Service
	Bookings *booking.Service
	Catalog  *catalog.Service
	Issuer   *auth.Issuer
	Log      *slog.Logger
}

// NewGRPCServer собирает сервер со всеми сервисами, health и reflection.
func NewGRPCServer(d Deps, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	users := repository.NewGormUserRepository(d.DB)

	opts = append(opts, grpc.ChainUnaryInterceptor(
		UnaryServerInterceptor(d.Log),
		auth.UnaryServerInterceptor(d.Issuer, users, PublicMethods...),
	))
	srv := grpc.NewServer(opts...)

	pb.RegisterIdentityServiceServer(srv, NewIdentityService(d.Verifier, d.Accounts, d.Issuer))
	pb.RegisterBookingServiceServer(srv, NewBookingService(d.Bookings))
	pb.RegisterWalletServiceServer(srv, NewWalletService(d.Ledger, users))
	pb.RegisterCatalogServiceServer(srv, NewCatalogService(d.Catalog))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	for _, name := range []string{
		pb.IdentityService_ServiceDesc.ServiceName,
		pb.BookingService_ServiceDesc.ServiceName,
		pb.WalletService_ServiceDesc.ServiceName,
		pb.CatalogService_ServiceDesc.ServiceName,
	} {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	reflection.Register(srv)

	return srv, hs
}
