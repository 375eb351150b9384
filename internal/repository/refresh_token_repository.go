package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// リフレッシュトークンの保存・取得・更新・削除
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error
	Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error
	DeleteAllByUserID(ctx context.Context, userID string) error
}

// パスワード再設定トークン
type PasswordResetRepository interface {
	Create(ctx context.Context, token *model.PasswordResetToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.PasswordResetToken, error)
	// 未使用の時だけ使用済みにする。更新できたら true
	MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) (bool, error)
}
