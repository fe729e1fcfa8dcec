package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OTP is a one-time email verification code. Rows are append-only; a newer row
// for the same account supersedes the older ones.
type OTP struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID uuid.UUID `json:"account_id" gorm:"type:char(36);not null;index:idx_otps_account_code,priority:1"`
	Code      string    `json:"-" gorm:"size:6;not null;index:idx_otps_account_code,priority:2"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"precision:3"`

	Account *Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (o *OTP) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the code is past its expiry at t.
func (o *OTP) Expired(t time.Time) bool {
	return o.ExpiresAt.Before(t)
}
