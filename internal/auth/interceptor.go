package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/model"
)

// UnaryServerInterceptor authenticates every call except the public methods.
// The bearer token is read from the "authorization" metadata key and the
// actor is re-validated against the store on each call. Public methods run
// anonymously, but still see the actor when a valid token is supplied.
func UnaryServerInterceptor(issuer *Issuer, store UserStore, public ...string) grpc.UnaryServerInterceptor {
	open := make(map[string]bool, len(public))
	for _, m := range public {
		open[m] = true
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		actor, err := authenticate(ctx, issuer, store)
		if err != nil {
			if open[info.FullMethod] {
				return handler(ctx, req)
			}
			return nil, err
		}
		return handler(WithActor(ctx, actor), req)
	}
}

func authenticate(ctx context.Context, issuer *Issuer, store UserStore) (model.Actor, error) {
	raw, err := bearerToken(ctx)
	if err != nil {
		return model.Actor{}, err
	}
	claims, err := issuer.Parse(raw)
	if err != nil {
		return model.Actor{}, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return model.Actor{}, err
	}
	return ValidateActor(ctx, store, userID)
}

func bearerToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", apperr.Wrap(apperr.ErrUnauthenticated, "missing metadata")
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return "", apperr.Wrap(apperr.ErrUnauthenticated, "authorization header required")
	}
	token, found := strings.CutPrefix(vals[0], "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return "", apperr.Wrap(apperr.ErrUnauthenticated, "invalid authorization header format")
	}
	return strings.TrimSpace(token), nil
}
