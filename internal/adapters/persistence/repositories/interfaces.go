package repositories

import (
	"context"
	"time"

	"papatacos/internal/adapters/persistence/models"
	"papatacos/internal/core/domain"
)

// AccountRepository defines account (identity) repository interface
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateSecret(ctx context.Context, id uint, secretHash string) error
	BumpTokenVersion(ctx context.Context, id uint) error
	ListDivergent(ctx context.Context) ([]*models.Account, error)
}

// ProfileRepository defines profile repository interface
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uint) (*models.Profile, error)
	UpdateFields(ctx context.Context, id uint, fields domain.ProfileFields) error
	UpdateRole(ctx context.Context, id uint, role domain.Role) error
	UpdatePinCode(ctx context.Context, id uint, pinHash string) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByAccountID(ctx context.Context, accountID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// EntryRepository defines the insert-only entry collections
type EntryRepository[T models.Entry] interface {
	Create(ctx context.Context, entry *T) error
	// ListBetween returns entries with from <= occurred_at <= to, newest first
	ListBetween(ctx context.Context, from, to time.Time) ([]*T, error)
	// ListAll returns every entry, newest first
	ListAll(ctx context.Context) ([]*T, error)
}
