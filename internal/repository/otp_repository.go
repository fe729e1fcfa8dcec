package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hypenest/internal/model"
)

// OTPRepository defines OTP persistence operations.
type OTPRepository interface {
	Create(ctx context.Context, otp *model.OTP) error
	FindLatest(ctx context.Context, accountID uuid.UUID, code string) (*model.OTP, error)
}

type otpRepository struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP repository.
func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, otp *model.OTP) error {
	return r.db.WithContext(ctx).Omit("Account").Create(otp).Error
}

// FindLatest returns the newest OTP of the account carrying code. Expiry is
// not filtered here; callers check it on the returned row.
func (r *otpRepository) FindLatest(ctx context.Context, accountID uuid.UUID, code string) (*model.OTP, error) {
	var otp model.OTP
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND code = ?", accountID, code).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}
