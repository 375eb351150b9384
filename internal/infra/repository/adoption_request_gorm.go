package repository

import (
	"context"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adoptionRequestGormRepository struct {
	db *gorm.DB
}

func NewAdoptionRequestGormRepository(db *gorm.DB) repo.AdoptionRequestRepository {
	return &adoptionRequestGormRepository{db: db}
}

func (r *adoptionRequestGormRepository) Create(ctx context.Context, req model.AdoptionRequest) (model.AdoptionRequest, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&req).Error; err != nil {
		return model.AdoptionRequest{}, err
	}
	return req, nil
}

func (r *adoptionRequestGormRepository) List(ctx context.Context, limit, offset int) ([]model.AdoptionRequest, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.AdoptionRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.AdoptionRequest
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
