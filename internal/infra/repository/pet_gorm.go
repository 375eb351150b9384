package repository

import (
	"context"
	"errors"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type petGormRepository struct {
	db *gorm.DB
}

func NewPetGormRepository(db *gorm.DB) repo.PetRepository {
	return &petGormRepository{db: db}
}

// 公開中のペットを種類で絞って名前順
func (r *petGormRepository) ListAvailableByType(ctx context.Context, petType model.PetType) ([]model.Pet, error) {
	var pets []model.Pet
	if err := r.db.WithContext(ctx).
		Where("type = ? AND available = ?", petType, true).
		Order("name ASC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petGormRepository) ListAll(ctx context.Context) ([]model.Pet, error) {
	var pets []model.Pet
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petGormRepository) FindByID(ctx context.Context, petID string) (model.Pet, error) {
	if !validID(petID) {
		return model.Pet{}, repo.ErrNotFound
	}
	var p model.Pet
	err := r.db.WithContext(ctx).Where("id = ?", petID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Pet{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Pet{}, err
	}
	return p, nil
}

// 完全一致。論理削除済みは対象外
func (r *petGormRepository) FindByNameAndType(ctx context.Context, name string, petType model.PetType) (model.Pet, bool, error) {
	var p model.Pet
	err := r.db.WithContext(ctx).
		Where("name = ? AND type = ?", name, petType).
		Order("created_at ASC").
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Pet{}, false, nil
	}
	if err != nil {
		return model.Pet{}, false, err
	}
	return p, true, nil
}

func (r *petGormRepository) Create(ctx context.Context, pet model.Pet) (model.Pet, error) {
	if pet.ID == "" {
		pet.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&pet).Error; err != nil {
		return model.Pet{}, err
	}
	return pet, nil
}

func (r *petGormRepository) Update(ctx context.Context, pet model.Pet) error {
	if !validID(pet.ID) {
		return repo.ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&model.Pet{}).
		Where("id = ?", pet.ID).
		Select("name", "type", "breed", "age", "gender", "price", "image_url", "description", "available").
		Updates(pet)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *petGormRepository) SetAvailability(ctx context.Context, petID string, available bool) error {
	if !validID(petID) {
		return repo.ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&model.Pet{}).
		Where("id = ?", petID).
		Update("available", available)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 論理削除（過去の注文からは参照できる）
func (r *petGormRepository) Delete(ctx context.Context, petID string) error {
	if !validID(petID) {
		return repo.ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Where("id = ?", petID).
		Delete(&model.Pet{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *petGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Pet{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
