package repositories

import (
	"context"

	"papatacos/internal/adapters/persistence/models"
	"papatacos/internal/core/domain"

	"gorm.io/gorm"
)

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create creates a new profile
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByID gets a profile by account ID
func (r *profileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateFields updates last name, first name and phone.
// Empty optional fields are written as empty, clearing them.
func (r *profileRepository) UpdateFields(ctx context.Context, id uint, fields domain.ProfileFields) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_name":  fields.LastName,
			"first_name": fields.FirstName,
			"phone":      fields.Phone,
		}).Error
}

// UpdateRole sets the profile role
func (r *profileRepository) UpdateRole(ctx context.Context, id uint, role domain.Role) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// UpdatePinCode replaces the stored pin hash
func (r *profileRepository) UpdatePinCode(ctx context.Context, id uint, pinHash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Update("pin_code", pinHash).Error
}

// CountByRole counts profiles with the given role
func (r *profileRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
