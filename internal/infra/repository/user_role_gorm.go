package repository

import (
	"context"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRoleGormRepository struct {
	db *gorm.DB
}

func NewUserRoleGormRepository(db *gorm.DB) repo.UserRoleRepository {
	return &userRoleGormRepository{db: db}
}

// 行があればそのロールを持つ
func (r *userRoleGormRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	if !validID(userID) {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRoleGormRepository) UserIDsWithRole(ctx context.Context, role string) (map[string]struct{}, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Where("role = ?", role).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// (user_id, role) のユニーク制約にぶつかったら何もしない
func (r *userRoleGormRepository) Grant(ctx context.Context, userID, role string) error {
	row := model.UserRole{ID: uuid.NewString(), UserID: userID, Role: role}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (r *userRoleGormRepository) Revoke(ctx context.Context, userID, role string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&model.UserRole{}).Error
}
