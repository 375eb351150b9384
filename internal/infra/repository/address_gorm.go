package repository

import (
	"context"
	"errors"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type addressGormRepository struct {
	db *gorm.DB
}

// DI
func NewAddressGormRepository(db *gorm.DB) repo.AddressRepository {
	return &addressGormRepository{db: db}
}

// 住所を作成
func (r *addressGormRepository) Create(ctx context.Context, address model.Address) (model.Address, error) {
	if address.ID == "" {
		address.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&address).Error; err != nil {
		return model.Address{}, err
	}
	return address, nil
}

// ユーザーの住所一覧を返す
func (r *addressGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Address, error) {
	var list []model.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *addressGormRepository) FindByID(ctx context.Context, addressID string) (model.Address, error) {
	if !validID(addressID) {
		return model.Address{}, repo.ErrNotFound
	}
	var a model.Address
	err := r.db.WithContext(ctx).Where("id = ?", addressID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Address{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Address{}, err
	}
	return a, nil
}

// 6項目が完全一致する住所を1件探す（正規化はしない）
func (r *addressGormRepository) FindMatching(ctx context.Context, userID string, m model.AddressMatch) (model.Address, bool, error) {
	var a model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("full_name = ? AND phone = ? AND address_line1 = ?", m.FullName, m.Phone, m.AddressLine1).
		Where("city = ? AND state = ? AND pincode = ?", m.City, m.State, m.Pincode).
		Order("created_at ASC").
		First(&a).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Address{}, false, nil
	}
	if err != nil {
		return model.Address{}, false, err
	}
	return a, true, nil
}

// 住所を更新
func (r *addressGormRepository) Update(ctx context.Context, address model.Address) error {
	if !validID(address.ID) {
		return repo.ErrNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("id = ?", address.ID).
		Select(
			"full_name",
			"phone",
			"address_line1",
			"address_line2",
			"city",
			"state",
			"pincode",
		).
		Updates(address)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 住所を削除
func (r *addressGormRepository) Delete(ctx context.Context, addressID string) error {
	if !validID(addressID) {
		return repo.ErrNotFound
	}
	result := r.db.WithContext(ctx).
		Where("id = ?", addressID).
		Delete(&model.Address{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// その住所がそのユーザーのものか
func (r *addressGormRepository) IsOwnedByUser(ctx context.Context, addressID, userID string) (bool, error) {
	if !validID(addressID) {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("id = ? AND user_id = ?", addressID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count == 1, nil
}

// デフォルト住所を切り替える
func (r *addressGormRepository) SetDefault(ctx context.Context, userID, addressID string) error {
	if !validID(addressID) {
		return repo.ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Address{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return repo.ErrNotFound
		}

		//そのユーザーのdefaultを全て false
		if err := tx.Model(&model.Address{}).
			Where("user_id = ? AND is_default = TRUE", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}

		//指定住所だけ true
		return tx.Model(&model.Address{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true).Error
	})
}
