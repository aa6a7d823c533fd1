package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
)

// AdminCredentials are the configured administrator login. Admins are not
// account records; there is exactly one, defined by the environment.
type AdminCredentials struct {
	Email    string
	Password string
}

// AuthService implements registration, login, and the supplier shop toggle.
type AuthService struct {
	repo      ports.AccountRepository
	creds     ports.CredentialVerifier
	admin     AdminCredentials
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.AccountRepository,
	creds ports.CredentialVerifier,
	admin AdminCredentials,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		creds:     creds,
		admin:     admin,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates an unverified account. Every account starts with
// verified=false and cannot log in until an admin approves it.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if input.FullName == "" || input.Email == "" || input.Phone == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: full_name, email, phone and password are required", domain.ErrValidation)
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	hash, err := s.creds.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Role:         role,
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		GovernmentID: input.GovernmentID,
		TaxID:        input.TaxID,
		ShopName:     input.ShopName,
		ShopLocation: input.ShopLocation,
		Verified:     false,
		ShopStatus:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("role", string(role)).Str("email", created.Email).Msg("account registered")
	return created, nil
}

// Login resolves the account by email or phone and checks the password
// through the pluggable verifier. Unverified accounts are refused.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (string, *domain.Account, error) {
	if input.Identifier == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return "", nil, err
	}

	account, err := s.repo.FindByIdentifier(ctx, role, input.Identifier)
	if err != nil {
		return "", nil, err
	}

	if err := s.creds.Verify(account.PasswordHash, input.Password); err != nil {
		return "", nil, err
	}

	if !account.Verified {
		return "", nil, domain.ErrAccountNotVerified
	}

	token, err := s.generateToken(string(account.Role), account.ID)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

// LoginAdmin checks the configured administrator credentials and issues the
// token required by the verification endpoints.
func (s *AuthService) LoginAdmin(_ context.Context, email, password string) (string, error) {
	if s.admin.Email == "" || s.admin.Password == "" {
		return "", domain.ErrInvalidCredentials
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.admin.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	if !emailOK || !passOK {
		return "", domain.ErrInvalidCredentials
	}
	return s.generateToken(string(domain.RoleAdmin), "")
}

// SetShopStatus toggles the supplier's open/closed flag. Independent of the
// verification state.
func (s *AuthService) SetShopStatus(ctx context.Context, phone string, open bool) error {
	if phone == "" {
		return fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}
	if err := s.repo.SetShopStatus(ctx, phone, open); err != nil {
		return err
	}
	s.log.Info().Str("phone", phone).Bool("open", open).Msg("shop status updated")
	return nil
}

func (s *AuthService) generateToken(role, accountID string) (string, error) {
	claims := jwt.MapClaims{
		"role":       role,
		"account_id": accountID,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
