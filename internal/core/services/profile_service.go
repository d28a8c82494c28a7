package services

import (
	"context"
	"errors"
	"log"

	"papatacos/internal/adapters/persistence/models"
	"papatacos/internal/adapters/persistence/repositories"
	"papatacos/internal/core/domain"
	"papatacos/internal/pkg/password"

	"gorm.io/gorm"
)

// ProfileService handles the caller's own profile and PIN
type ProfileService struct {
	store *repositories.Store
}

// NewProfileService creates a new profile service
func NewProfileService(store *repositories.Store) *ProfileService {
	return &ProfileService{store: store}
}

// UpdateProfileInput represents update profile input
type UpdateProfileInput struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
}

// RotatePINInput represents change PIN input
type RotatePINInput struct {
	OldPIN     string `json:"old_pin"`
	NewPIN     string `json:"new_pin"`
	ConfirmPIN string `json:"confirm_pin"`
}

// GetProfile returns the caller's profile
func (s *ProfileService) GetProfile(ctx context.Context, session *domain.Session) (*models.ProfileResponse, error) {
	account, profile, err := s.load(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return profile.ToResponse(account.Email), nil
}

// UpdateProfile updates last name, first name and phone
func (s *ProfileService) UpdateProfile(ctx context.Context, session *domain.Session, input *UpdateProfileInput) (*models.ProfileResponse, error) {
	fields := domain.ProfileFields{
		LastName:  input.LastName,
		FirstName: input.FirstName,
		Phone:     input.Phone,
	}.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Profiles.UpdateFields(ctx, session.UserID, fields); err != nil {
		return nil, domain.NewStoreError("update profile", err)
	}

	log.Printf("✅ Profile updated for account ID: %d", session.UserID)
	return s.GetProfile(ctx, session)
}

// RotatePIN verifies the old PIN then replaces the profile pin and the
// account secret in one transaction. Every session of the account ends.
func (s *ProfileService) RotatePIN(ctx context.Context, session *domain.Session, input *RotatePINInput) error {
	// 1. Validate input
	if err := domain.ValidatePIN("old_pin", input.OldPIN); err != nil {
		return err
	}
	if err := domain.ValidatePIN("new_pin", input.NewPIN); err != nil {
		return err
	}
	if input.ConfirmPIN != input.NewPIN {
		return &domain.ValidationError{Field: "confirm_pin", Message: "Les codes PIN ne correspondent pas"}
	}

	// 2. Re-fetch the stored pin and compare
	_, profile, err := s.load(ctx, session.UserID)
	if err != nil {
		return err
	}
	if !password.Verify(input.OldPIN, profile.PinCode) {
		return domain.ErrOldPINIncorrect
	}

	// 3. Hash new PIN once so both records stay identical
	pinHash, err := password.Hash(input.NewPIN)
	if err != nil {
		return err
	}

	// 4. Profile pin, account secret, token version, refresh tokens
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Profiles.UpdatePinCode(ctx, session.UserID, pinHash); err != nil {
			return err
		}
		if err := tx.Accounts.UpdateSecret(ctx, session.UserID, pinHash); err != nil {
			return err
		}
		if err := tx.Accounts.BumpTokenVersion(ctx, session.UserID); err != nil {
			return err
		}
		return tx.RefreshTokens.RevokeAllByAccountID(ctx, session.UserID)
	})
	if err != nil {
		return domain.NewStoreError("rotate pin", err)
	}

	log.Printf("✅ PIN rotated for account ID: %d, sessions ended", session.UserID)
	return nil
}

func (s *ProfileService) load(ctx context.Context, id uint) (*models.Account, *models.Profile, error) {
	account, err := s.store.Accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, domain.NewStoreError("load account", err)
	}
	profile, err := s.store.Profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, domain.NewStoreError("load profile", err)
	}
	return account, profile, nil
}
