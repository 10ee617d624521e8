package users

import (
	"context"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes account persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new account and returns the persisted model. A duplicate
// email surfaces as the driver's unique-violation error.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the account with exactly this email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads an account by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByResetCode retrieves the account currently holding the reset code.
func (r *Repository) FindByResetCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("password_reset_code = ?", code).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetResetCode stores a reset code and its expiry, replacing any previous one.
func (r *Repository) SetResetCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_reset_code":       code,
			"password_reset_expires_at": expiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RestoreResetCode puts back a previous reset code and expiry (nil clears
// them), but only while the account still holds issued. A newer code or a
// completed reset is left alone.
func (r *Repository) RestoreResetCode(ctx context.Context, id uuid.UUID, issued string, prevCode *string, prevExpiresAt *time.Time) error {
	var code, expiresAt any
	if prevCode != nil {
		code = *prevCode
	}
	if prevExpiresAt != nil {
		expiresAt = *prevExpiresAt
	}
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND password_reset_code = ?", id, issued).
		Updates(map[string]any{
			"password_reset_code":       code,
			"password_reset_expires_at": expiresAt,
		}).Error
}

// ResetPassword writes the new hash and clears the reset fields in one
// statement, only while the account still holds code. It reports whether a row
// changed; false means another reset consumed the code first.
func (r *Repository) ResetPassword(ctx context.Context, id uuid.UUID, code, passwordHash string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND password_reset_code = ?", id, code).
		Updates(map[string]any{
			"password_hash":             passwordHash,
			"password_reset_code":       nil,
			"password_reset_expires_at": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetActive bans or reinstates an account.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("is_active", active).Error
}

// CountActive returns the number of accounts that are not banned.
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
