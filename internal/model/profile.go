package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand is the satellite profile of a BRAND account.
type Brand struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Website   *string   `json:"website" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Creator is the satellite profile of a CREATOR account.
type Creator struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	DisplayName string    `json:"display_name" gorm:"size:255;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Creator) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ProfileKind tags which satellite profile a ProfileRef points at.
type ProfileKind string

const (
	ProfileNone    ProfileKind = ""
	ProfileBrand   ProfileKind = "brand"
	ProfileCreator ProfileKind = "creator"
)

// ProfileRef is a reference to at most one satellite profile.
type ProfileRef struct {
	Kind ProfileKind `json:"kind,omitempty"`
	ID   uuid.UUID   `json:"id,omitempty"`
}

// BrandRef references a brand profile.
func BrandRef(id uuid.UUID) ProfileRef {
	return ProfileRef{Kind: ProfileBrand, ID: id}
}

// CreatorRef references a creator profile.
func CreatorRef(id uuid.UUID) ProfileRef {
	return ProfileRef{Kind: ProfileCreator, ID: id}
}

// IsZero reports whether the reference points at nothing.
func (p ProfileRef) IsZero() bool {
	return p.Kind == ProfileNone
}
