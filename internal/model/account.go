package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is a registered user of the platform.
//
// BrandID and CreatorID are storage columns only. Read and write the linked
// profile through Profile and LinkProfile, which keep at most one of them set.
type Account struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string     `json:"email" gorm:"type:varchar(255) COLLATE utf8mb4_bin;uniqueIndex;not null"` // case-sensitive
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Name         string     `json:"name" gorm:"size:255;not null"`
	Role         Role       `json:"role" gorm:"size:16;not null;default:'CREATOR'"`
	BrandID      *uuid.UUID `json:"-" gorm:"type:char(36);uniqueIndex"`
	CreatorID    *uuid.UUID `json:"-" gorm:"type:char(36);uniqueIndex"`
	IsVerified   bool       `json:"is_verified" gorm:"not null;default:false"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Brand   *Brand   `json:"-" gorm:"foreignKey:BrandID"`
	Creator *Creator `json:"-" gorm:"foreignKey:CreatorID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Profile returns the satellite profile the account links to.
func (a *Account) Profile() ProfileRef {
	switch {
	case a.BrandID != nil:
		return BrandRef(*a.BrandID)
	case a.CreatorID != nil:
		return CreatorRef(*a.CreatorID)
	default:
		return ProfileRef{}
	}
}

// LinkProfile replaces the account's profile link.
func (a *Account) LinkProfile(ref ProfileRef) {
	a.BrandID, a.CreatorID = nil, nil
	id := ref.ID
	switch ref.Kind {
	case ProfileBrand:
		a.BrandID = &id
	case ProfileCreator:
		a.CreatorID = &id
	}
}

// AccountView is the client-facing snapshot of an account.
type AccountView struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       Role       `json:"role"`
	IsVerified bool       `json:"is_verified"`
	Profile    ProfileRef `json:"profile"`
	CreatedAt  time.Time  `json:"created_at"`
}

// View returns the account's client-facing snapshot.
func (a *Account) View() AccountView {
	return AccountView{
		ID:         a.ID,
		Email:      a.Email,
		Name:       a.Name,
		Role:       a.Role,
		IsVerified: a.IsVerified,
		Profile:    a.Profile(),
		CreatedAt:  a.CreatedAt,
	}
}
