package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"gorm.io/gorm"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
	"github.com/Leganyst/maid-marketplace/internal/model"
)

const secret = "0123456789abcdef0123456789abcdef"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

type mockUserStore struct {
	users map[uint64]*model.User
	err   error
}

func (m *mockUserStore) FindByID(_ context.Context, id uint64) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func TestIssuer_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
	iss := NewIssuer(secret, time.Hour, WithIssuerClock(clock.Now))

	token, exp, err := iss.Issue(&model.User{ID: 42, Role: model.UserRoleMaid})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !exp.Equal(clock.t.Add(time.Hour)) {
		t.Fatalf("exp = %s", exp)
	}

	c, err := iss.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	id, err := c.UserID()
	if err != nil || id != 42 || c.Role != "maid" || c.ID == "" {
		t.Fatalf("claims = %+v (id %d, err %v)", c, id, err)
	}
}

func TestIssuer_RejectsExpiredToken(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
	iss := NewIssuer(secret, time.Hour, WithIssuerClock(clock.Now))

	token, _, err := iss.Issue(&model.User{ID: 1, Role: model.UserRoleCustomer})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	clock.t = clock.t.Add(2 * time.Hour)

	if _, err := iss.Parse(token); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("err = %v, want unauthenticated", err)
	}
}

func TestIssuer_RejectsForeignTokens(t *testing.T) {
	iss := NewIssuer(secret, time.Hour)

	other, _, err := NewIssuer("another-secret-another-secret-xx", time.Hour).Issue(&model.User{ID: 1})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	for name, token := range map[string]string{"wrong secret": other, "alg none": unsigned, "garbage": "abc.def.ghi"} {
		if _, err := iss.Parse(token); !errors.Is(err, apperr.ErrUnauthenticated) {
			t.Fatalf("%s: err = %v, want unauthenticated", name, err)
		}
	}
}

func TestValidateActor(t *testing.T) {
	store := &mockUserStore{users: map[uint64]*model.User{
		1: {ID: 1, Role: model.UserRoleAdmin, IsActive: true},
		2: {ID: 2, Role: model.UserRoleCustomer, IsActive: false},
	}}
	ctx := context.Background()

	a, err := ValidateActor(ctx, store, 1)
	if err != nil || a.UserID != 1 || a.Role != model.UserRoleAdmin {
		t.Fatalf("ValidateActor(1) = %+v, %v", a, err)
	}
	if _, err := ValidateActor(ctx, store, 0); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("zero id err = %v", err)
	}
	if _, err := ValidateActor(ctx, store, 3); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("missing user err = %v", err)
	}
	if _, err := ValidateActor(ctx, store, 2); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("inactive user err = %v", err)
	}

	store.err = errors.New("connection refused")
	if _, err := ValidateActor(ctx, store, 1); !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("store failure err = %v, want unavailable", err)
	}
}

func TestUnaryServerInterceptor(t *testing.T) {
	iss := NewIssuer(secret, time.Hour)
	store := &mockUserStore{users: map[uint64]*model.User{
		7: {ID: 7, Role: model.UserRoleMaid, IsActive: true},
	}}
	intercept := UnaryServerInterceptor(iss, store, "/svc/Public")

	var seen model.Actor
	handler := func(ctx context.Context, _ any) (any, error) {
		seen, _ = ActorFrom(ctx)
		return "ok", nil
	}
	call := func(ctx context.Context, method string) error {
		_, err := intercept(ctx, nil, &grpc.UnaryServerInfo{FullMethod: method}, handler)
		return err
	}

	if err := call(context.Background(), "/svc/Public"); err != nil {
		t.Fatalf("public method: %v", err)
	}
	if err := call(context.Background(), "/svc/Private"); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("no metadata err = %v", err)
	}

	bad := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Token abc"))
	if err := call(bad, "/svc/Private"); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("bad scheme err = %v", err)
	}

	// роль берётся из хранилища, а не из токена
	token, _, err := iss.Issue(&model.User{ID: 7, Role: model.UserRoleCustomer})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	if err := call(ctx, "/svc/Private"); err != nil {
		t.Fatalf("authenticated call: %v", err)
	}
	if seen.UserID != 7 || seen.Role != model.UserRoleMaid {
		t.Fatalf("actor = %+v", seen)
	}
}

func TestUnaryServerInterceptor_PublicMethodsSeeOptionalActor(t *testing.T) {
	iss := NewIssuer(secret, time.Hour)
	store := &mockUserStore{users: map[uint64]*model.User{
		3: {ID: 3, Role: model.UserRoleAdmin, IsActive: true},
		4: {ID: 4, Role: model.UserRoleCustomer, IsActive: false},
	}}
	intercept := UnaryServerInterceptor(iss, store, "/svc/Public")

	var (
		seen model.Actor
		ok   bool
	)
	handler := func(ctx context.Context, _ any) (any, error) {
		seen, ok = ActorFrom(ctx)
		return "ok", nil
	}
	call := func(ctx context.Context) error {
		_, err := intercept(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Public"}, handler)
		return err
	}
	withToken := func(u *model.User) context.Context {
		token, _, err := iss.Issue(u)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	}

	if err := call(withToken(&model.User{ID: 3, Role: model.UserRoleAdmin})); err != nil {
		t.Fatalf("public call with token: %v", err)
	}
	if !ok || seen.UserID != 3 || seen.Role != model.UserRoleAdmin {
		t.Fatalf("actor = %+v (present=%v), want admin 3", seen, ok)
	}

	// устаревший или чужой токен не мешает публичному вызову
	for name, ctx := range map[string]context.Context{
		"garbage":     metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer nope")),
		"deactivated": withToken(&model.User{ID: 4, Role: model.UserRoleCustomer}),
		"anonymous":   context.Background(),
	} {
		if err := call(ctx); err != nil {
			t.Fatalf("%s: public call err = %v", name, err)
		}
		if ok {
			t.Fatalf("%s: unexpected actor %+v", name, seen)
		}
	}
}
