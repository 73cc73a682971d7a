package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/metrics"
)

const errorDomain = "marketplace"

// Соответствие ошибок домена кодам gRPC.
var codeOf = []struct {
	err  error
	code codes.Code
}{
	{apperr.ErrInvalidArgument, codes.InvalidArgument},
	{apperr.ErrNotFound, codes.NotFound},
	{apperr.ErrForbidden, codes.PermissionDenied},
	{apperr.ErrUnauthenticated, codes.Unauthenticated},
	{apperr.ErrInvalidTransition, codes.FailedPrecondition},
	{apperr.ErrTooManyAttempts, codes.ResourceExhausted},
	{apperr.ErrInvalidCode, codes.Unauthenticated},
	{apperr.ErrInsufficientFunds, codes.FailedPrecondition},
	{apperr.ErrConflict, codes.Aborted},
	{apperr.ErrUnavailable, codes.Unavailable},
}

// toStatus converts a domain error into a gRPC status carrying an ErrorInfo
// detail with the error's reason. Store failures are not exposed to callers.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, "request cancelled")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}

	code, msg := codes.Internal, "internal error"
	for _, c := range codeOf {
		if errors.Is(err, c.err) {
			code, msg = c.code, err.Error()
			break
		}
	}
	if code == codes.Unavailable {
		msg = "service temporarily unavailable"
	}

	st := status.New(code, msg)
	withInfo, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: apperr.Reason(err),
		Domain: errorDomain,
	})
	if derr != nil {
		return st.Err()
	}
	return withInfo.Err()
}

// UnaryServerInterceptor maps errors onto gRPC statuses, logs each call and
// counts it by method and code. It must run outside the auth interceptor.
func UnaryServerInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		mapped := toStatus(err)

		code := status.Code(mapped)
		metrics.RPCRequests.WithLabelValues(info.FullMethod, code.String()).Inc()

		attrs := []any{
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("took", time.Since(start)),
		}
		switch code {
		case codes.OK:
			log.DebugContext(ctx, "rpc", attrs...)
		case codes.Internal, codes.Unavailable, codes.Unknown:
			log.ErrorContext(ctx, "rpc failed", append(attrs, slog.Any("error", err))...)
		default:
			log.InfoContext(ctx, "rpc rejected", append(attrs, slog.String("reason", apperr.Reason(err)))...)
		}

		if mapped != nil {
			return nil, mapped
		}
		return resp, nil
	}
}
