package repositories

import (
	"context"

	"papatacos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Store bundles the repositories sharing one gorm handle
type Store struct {
	db *gorm.DB

	Accounts      AccountRepository
	Profiles      ProfileRepository
	RefreshTokens RefreshTokenRepository
	Income        EntryRepository[models.Income]
	Expenses      EntryRepository[models.Expense]
	Charges       EntryRepository[models.FixedCharge]
}

// NewStore creates every repository on db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Accounts:      NewAccountRepository(db),
		Profiles:      NewProfileRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
		Income:        NewEntryRepository[models.Income](db),
		Expenses:      NewEntryRepository[models.Expense](db),
		Charges:       NewEntryRepository[models.FixedCharge](db),
	}
}

// Transaction runs fn with a Store bound to a single database transaction.
// Any error returned by fn rolls the whole transaction back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
