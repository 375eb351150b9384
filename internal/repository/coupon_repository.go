package repository

import (
	"context"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
)

type CouponRepository interface {
	// 有効なクーポンをコードで探す（大文字に揃えて比較）
	FindActiveByCode(ctx context.Context, code string) (model.Coupon, bool, error)
}
