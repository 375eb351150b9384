package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"gorm.io/gorm"
)

type couponGormRepository struct {
	db *gorm.DB
}

func NewCouponGormRepository(db *gorm.DB) repo.CouponRepository {
	return &couponGormRepository{db: db}
}

func (r *couponGormRepository) FindActiveByCode(ctx context.Context, code string) (model.Coupon, bool, error) {
	var c model.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ? AND active = ?", strings.ToUpper(code), true).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Coupon{}, false, nil
	}
	if err != nil {
		return model.Coupon{}, false, err
	}
	return c, true, nil
}
