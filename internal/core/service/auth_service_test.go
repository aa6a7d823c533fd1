package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	accounts map[domain.Role]map[string]*domain.Account
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		accounts: map[domain.Role]map[string]*domain.Account{
			domain.RoleVendor:   {},
			domain.RoleSupplier: {},
		},
	}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) byRole(role domain.Role) (map[string]*domain.Account, error) {
	m, ok := r.accounts[role]
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	return m, nil
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	m, err := r.byRole(account.Role)
	if err != nil {
		return nil, err
	}
	for _, existing := range m {
		if existing.Email == account.Email || existing.Phone == account.Phone {
			return nil, domain.ErrAccountExists
		}
	}
	r.nextID++
	copy := cloneAccount(account)
	copy.ID = "acc_" + strconv.Itoa(r.nextID)
	m[copy.ID] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) FindByIdentifier(_ context.Context, role domain.Role, identifier string) (*domain.Account, error) {
	m, err := r.byRole(role)
	if err != nil {
		return nil, err
	}
	for _, a := range m {
		if a.Email == identifier || a.Phone == identifier {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, role domain.Role, id string) (*domain.Account, error) {
	m, err := r.byRole(role)
	if err != nil {
		return nil, err
	}
	a, ok := m[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindUnverified(_ context.Context, role domain.Role) ([]*domain.Account, error) {
	m, err := r.byRole(role)
	if err != nil {
		return nil, err
	}
	pending := []*domain.Account{}
	for _, a := range m {
		if !a.Verified {
			pending = append(pending, cloneAccount(a))
		}
	}
	return pending, nil
}

func (r *stubAccountRepo) MarkVerified(_ context.Context, role domain.Role, id string) error {
	m, err := r.byRole(role)
	if err != nil {
		return err
	}
	a, ok := m[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Verified = true
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, role domain.Role, id string) error {
	m, err := r.byRole(role)
	if err != nil {
		return err
	}
	if _, ok := m[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m, id)
	return nil
}

func (r *stubAccountRepo) SetShopStatus(_ context.Context, phone string, open bool) error {
	for _, a := range r.accounts[domain.RoleSupplier] {
		if a.Phone == phone {
			a.ShopStatus = open
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newAuthSvc(repo *stubAccountRepo) *AuthService {
	admin := AdminCredentials{Email: "admin@market.test", Password: "admin-pass"}
	return NewAuthService(repo, NewBcryptVerifier(), admin, "secret", time.Hour, zerolog.Nop())
}

func vendorInput(name, email, phone string) ports.RegisterInput {
	return ports.RegisterInput{
		Role:     "vendor",
		FullName: name,
		Email:    email,
		Phone:    phone,
		Password: "s3cret",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuthService_Register_StartsUnverified(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthSvc(repo)

	account, err := svc.Register(context.Background(), vendorInput("Alice", "alice@example.com", "100"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.Verified {
		t.Fatalf("expected new account to be unverified")
	}
	if account.PasswordHash == "s3cret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Role != domain.RoleVendor {
		t.Fatalf("unexpected role: %s", account.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubAccountRepo())

	in := vendorInput("", "alice@example.com", "100")
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	in = vendorInput("Bob", "bob@example.com", "101")
	in.Role = "manager"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthSvc(repo)

	if _, err := svc.Register(context.Background(), vendorInput("Bob", "bob@example.com", "101")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), vendorInput("Bobby", "bob@example.com", "102")); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAuthService_Login_RefusesUnverified(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthSvc(repo)

	if _, err := svc.Register(context.Background(), vendorInput("Carol", "carol@example.com", "103")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), ports.LoginInput{Role: "vendor", Identifier: "carol@example.com", Password: "s3cret"})
	if !errors.Is(err, domain.ErrAccountNotVerified) {
		t.Fatalf("expected ErrAccountNotVerified, got %v", err)
	}
}

func TestAuthService_Login_VerifiedByEmailAndPhone(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthSvc(repo)

	created, err := svc.Register(context.Background(), vendorInput("Dana", "dana@example.com", "104"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := repo.MarkVerified(context.Background(), domain.RoleVendor, created.ID); err != nil {
		t.Fatalf("mark verified failed: %v", err)
	}

	for _, identifier := range []string{"dana@example.com", "104"} {
		token, account, err := svc.Login(context.Background(), ports.LoginInput{Role: "vendor", Identifier: identifier, Password: "s3cret"})
		if err != nil {
			t.Fatalf("login by %q failed: %v", identifier, err)
		}
		if token == "" {
			t.Fatalf("expected token, got empty")
		}
		if account == nil || account.FullName != "Dana" {
			t.Fatalf("unexpected account: %+v", account)
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		})
		if err != nil || !parsed.Valid {
			t.Fatalf("token invalid: %v", err)
		}
		if claims["role"] != "vendor" {
			t.Fatalf("expected vendor role claim, got %v", claims["role"])
		}
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthSvc(repo)

	created, _ := svc.Register(context.Background(), vendorInput("Eve", "eve@example.com", "105"))
	_ = repo.MarkVerified(context.Background(), domain.RoleVendor, created.ID)

	_, _, err := svc.Login(context.Background(), ports.LoginInput{Role: "vendor", Identifier: "eve@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownIdentifier(t *testing.T) {
	svc := newAuthSvc(newStubAccountRepo())

	_, _, err := svc.Login(context.Background(), ports.LoginInput{Role: "supplier", Identifier: "ghost@example.com", Password: "pass"})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAuthService_LoginAdmin(t *testing.T) {
	svc := newAuthSvc(newStubAccountRepo())

	token, err := svc.LoginAdmin(context.Background(), "admin@market.test", "admin-pass")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleAdmin) {
		t.Fatalf("expected admin role claim, got %v", claims["role"])
	}

	if _, err := svc.LoginAdmin(context.Background(), "admin@market.test", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SetShopStatus(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthSvc(repo)

	in := vendorInput("Frank", "frank@example.com", "106")
	in.Role = "supplier"
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.SetShopStatus(context.Background(), "106", true); err != nil {
		t.Fatalf("set shop status failed: %v", err)
	}
	account, err := repo.FindByIdentifier(context.Background(), domain.RoleSupplier, "106")
	if err != nil {
		t.Fatalf("find supplier failed: %v", err)
	}
	if !account.ShopStatus {
		t.Fatalf("expected shop to be open")
	}

	if err := svc.SetShopStatus(context.Background(), "999", true); err == nil {
		t.Fatalf("expected error for unknown phone")
	}
}
