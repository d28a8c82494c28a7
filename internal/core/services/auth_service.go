package services

import (
	"context"
	"errors"
	"log"

	"papatacos/internal/adapters/persistence/models"
	"papatacos/internal/adapters/persistence/repositories"
	"papatacos/internal/config"
	"papatacos/internal/core/domain"
	"papatacos/internal/pkg/jwt"
	"papatacos/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// AuthService handles sign-up, login and session issuance
type AuthService struct {
	store *repositories.Store
	cfg   *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(store *repositories.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store: store,
		cfg:   cfg,
	}
}

// SignUpInput represents sign-up input
type SignUpInput struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	PIN       string `json:"pin"`
	Role      string `json:"role"`
}

// LoginInput represents login input
type LoginInput struct {
	Email string `json:"email"`
	PIN   string `json:"pin"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Profile      *models.ProfileResponse `json:"profile"`
	AccessToken  string                  `json:"access_token"`
	RefreshToken string                  `json:"refresh_token"`
}

// validate checks every sign-up field before any store call
func (in *SignUpInput) validate() (string, domain.ProfileFields, domain.Role, error) {
	fields := domain.ProfileFields{
		LastName:  in.LastName,
		FirstName: in.FirstName,
		Phone:     in.Phone,
	}.Normalize()
	if err := fields.Validate(); err != nil {
		return "", fields, "", err
	}

	email, err := domain.ValidateEmail(in.Email)
	if err != nil {
		return "", fields, "", err
	}

	if err := domain.ValidatePIN("pin", in.PIN); err != nil {
		return "", fields, "", err
	}

	role := domain.RoleCashier
	if in.Role != "" {
		if role, err = domain.ParseRole(in.Role); err != nil {
			return "", fields, "", err
		}
	}
	return email, fields, role, nil
}

// SignUp creates an account and its profile, then opens a session
func (s *AuthService) SignUp(ctx context.Context, input *SignUpInput) (*AuthResponse, error) {
	// 1. Validate input
	email, fields, role, err := input.validate()
	if err != nil {
		return nil, err
	}

	// 2. Check if email already registered
	exists, err := s.store.Accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewStoreError("check email", err)
	}
	if exists {
		return nil, domain.ErrDuplicateAccount
	}

	// 3. Hash PIN. Account secret and profile pin share the same hash.
	pinHash, err := password.Hash(input.PIN)
	if err != nil {
		return nil, err
	}

	// 4. Create account + profile (+ owner promotion) atomically
	account := &models.Account{Email: email, SecretHash: pinHash}
	profile := &models.Profile{
		LastName:  fields.LastName,
		FirstName: fields.FirstName,
		Phone:     fields.Phone,
		PinCode:   pinHash,
		Role:      domain.RoleCashier,
	}
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Accounts.Create(ctx, account); err != nil {
			return err
		}
		profile.ID = account.ID
		if err := tx.Profiles.Create(ctx, profile); err != nil {
			return err
		}
		if role == domain.RoleOwner {
			if err := tx.Profiles.UpdateRole(ctx, profile.ID, domain.RoleOwner); err != nil {
				return err
			}
			profile.Role = domain.RoleOwner
		}
		return nil
	})
	if err != nil {
		return nil, signUpError(err)
	}

	// 5. Open session
	result, err := s.issueSession(ctx, account, profile)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Account registered: %s (%s)", account.Email, profile.Role)
	return result, nil
}

// signUpError maps a failed sign-up transaction. A concurrent sign-up that
// won the race on the unique email index is reported as a duplicate.
func signUpError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateAccount
	}
	return domain.NewStoreError("sign up", err)
}

// Login authenticates with email + PIN.
// Unknown email and wrong PIN produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Validate input
	email, err := domain.ValidateEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateLoginPIN(input.PIN); err != nil {
		return nil, err
	}

	// 2. Find account by email
	account, err := s.store.Accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.NewStoreError("find account", err)
	}

	// 3. Load profile (role + pin)
	profile, err := s.store.Profiles.GetByID(ctx, account.ID)
	if err != nil {
		return nil, domain.NewStoreError("load profile", err)
	}

	// 4. Optional pin pre-check against the profile
	if s.cfg.Auth.PINPrecheck && !password.Verify(input.PIN, profile.PinCode) {
		return nil, domain.ErrInvalidCredentials
	}

	// 5. Verify PIN against the account secret
	if !password.Verify(input.PIN, account.SecretHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// 6. Open session
	result, err := s.issueSession(ctx, account, profile)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Logged in: %s (%s)", account.Email, profile.Role)
	return result, nil
}

// RefreshToken rotates the refresh token and re-reads the role
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Find token in DB by hash. Revoked tokens are not returned.
	storedToken, err := s.store.RefreshTokens.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenRevoked
		}
		return nil, domain.NewStoreError("find refresh token", err)
	}
	if storedToken.AccountID != claims.UserID {
		return nil, ErrInvalidToken
	}

	// 3. Check if token is expired
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 4. Load account and profile
	account, err := s.store.Accounts.GetByID(ctx, storedToken.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, domain.NewStoreError("load account", err)
	}
	profile, err := s.store.Profiles.GetByID(ctx, account.ID)
	if err != nil {
		return nil, domain.NewStoreError("load profile", err)
	}

	// 5. Revoke old refresh token (Token Rotation)
	if err := s.store.RefreshTokens.Revoke(ctx, storedToken.ID); err != nil {
		return nil, domain.NewStoreError("revoke refresh token", err)
	}

	// 6. Issue new session
	result, err := s.issueSession(ctx, account, profile)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for: %s", account.Email)
	return result, nil
}

// SignOut revokes the presented refresh token
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if err := s.store.RefreshTokens.RevokeByTokenHash(ctx, password.HashToken(refreshToken)); err != nil {
		return domain.NewStoreError("revoke refresh token", err)
	}

	log.Printf("✅ Logged out")
	return nil
}

// SignOutEverywhere ends every session of the caller, access tokens included
func (s *AuthService) SignOutEverywhere(ctx context.Context, session *domain.Session) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.RefreshTokens.RevokeAllByAccountID(ctx, session.UserID); err != nil {
			return err
		}
		return tx.Accounts.BumpTokenVersion(ctx, session.UserID)
	})
	if err != nil {
		return domain.NewStoreError("sign out everywhere", err)
	}

	log.Printf("✅ All sessions revoked for account ID: %d", session.UserID)
	return nil
}

// ResolveSession validates an access token and checks it has not been
// invalidated by a PIN rotation or a sign-out everywhere
func (s *AuthService) ResolveSession(ctx context.Context, accessToken string) (*domain.Session, error) {
	claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidToken
	}

	account, err := s.store.Accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, domain.NewStoreError("load account", err)
	}
	if account.TokenVersion != claims.TokenVersion {
		return nil, ErrTokenRevoked
	}

	return &domain.Session{
		UserID:       account.ID,
		Email:        account.Email,
		Role:         role,
		TokenVersion: account.TokenVersion,
	}, nil
}

// EnsureOwner creates an owner account unless one already exists
func (s *AuthService) EnsureOwner(ctx context.Context, email, pin, lastName string) (bool, error) {
	owners, err := s.store.Profiles.CountByRole(ctx, domain.RoleOwner)
	if err != nil {
		return false, domain.NewStoreError("count owners", err)
	}
	if owners > 0 {
		return false, nil
	}

	_, err = s.SignUp(ctx, &SignUpInput{
		LastName: lastName,
		Email:    email,
		PIN:      pin,
		Role:     string(domain.RoleOwner),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// issueSession generates a token pair for the account and stores the refresh token
func (s *AuthService) issueSession(ctx context.Context, account *models.Account, profile *models.Profile) (*AuthResponse, error) {
	tokens, err := s.generateTokens(account, profile.Role)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, account.ID, tokens.RefreshToken); err != nil {
		return nil, domain.NewStoreError("store refresh token", err)
	}

	return &AuthResponse{
		Profile:      profile.ToResponse(account.Email),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(account *models.Account, role domain.Role) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		account.ID,
		account.Email,
		string(role),
		account.TokenVersion,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		account.ID,
		uuid.New().String(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token hash in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, accountID uint, refreshToken string) error {
	token := &models.RefreshToken{
		AccountID: accountID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.store.RefreshTokens.Create(ctx, token)
}
