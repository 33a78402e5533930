package auth

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/DhavalSuthar-24/leaguehub/internal/testutil"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperror"
	"github.com/DhavalSuthar-24/leaguehub/pkg/token"
	"github.com/DhavalSuthar-24/leaguehub/utils"
)

func init() {
	utils.HashCost = bcrypt.MinCost
}

func newTestService(t *testing.T) (*Service, user.UserRepository) {
	t.Helper()
	st := testutil.NewTestStore(t, nil, &user.User{})
	users := user.NewUserRepository(st)
	return NewService(users, "test-secret", 15), users
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = svc.Register(ctx, RegisterRequest{Name: "Impostor", Email: "ANA@example.com ", Password: "different123"})
	if !apperror.Is(err, apperror.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	stored, err := users.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if stored.Name != "Ana" || !utils.CheckPassword(stored.PasswordHash, "password123") {
		t.Fatalf("first registration was modified: %+v", stored)
	}
	all, err := users.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 user, got %d", len(all))
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string]RegisterRequest{
		"short password": {Name: "Ana", Email: "ana@example.com", Password: "short"},
		"bad email":      {Name: "Ana", Email: "not-an-email", Password: "password123"},
		"empty name":     {Name: "  ", Email: "ana@example.com", Password: "password123"},
		"admin role":     {Name: "Ana", Email: "ana@example.com", Password: "password123", Role: user.RoleAdmin},
		"unknown role":   {Name: "Ana", Email: "ana@example.com", Password: "password123", Role: "coach"},
	}
	for name, req := range cases {
		if _, err := svc.Register(ctx, req); !apperror.Is(err, apperror.KindValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{Name: "Cap", Email: "cap@example.com", Password: "password123", Role: user.RoleCaptain})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(ctx, LoginRequest{Email: "cap@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := token.ValidateJWT(res.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if claims.UserID != u.ID || claims.Role != string(user.RoleCaptain) {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "cap@example.com", Password: "wrong-password"}); !apperror.Is(err, apperror.KindUnauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"}); !apperror.Is(err, apperror.KindUnauthorized) {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.EnsureAdmin(ctx, "admin@example.com", "password123"); err != nil {
			t.Fatalf("ensure admin #%d: %v", i, err)
		}
	}
	u, err := users.GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if u.Role != user.RoleAdmin {
		t.Fatalf("expected admin role, got %s", u.Role)
	}
}
