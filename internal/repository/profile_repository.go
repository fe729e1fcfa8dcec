package repository

import (
	"context"

	"gorm.io/gorm"

	"hypenest/internal/model"
)

// ProfileRepository persists the brand and creator satellite profiles.
type ProfileRepository interface {
	CreateBrand(ctx context.Context, brand *model.Brand) error
	CreateCreator(ctx context.Context, creator *model.Creator) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateBrand(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *profileRepository) CreateCreator(ctx context.Context, creator *model.Creator) error {
	return r.db.WithContext(ctx).Create(creator).Error
}
