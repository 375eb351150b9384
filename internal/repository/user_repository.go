package repository

import (
	"context"
	"errors"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 最終ログインなどの更新
	Update(ctx context.Context, user *model.User) error
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
	//トークンのバージョンを＋１
	IncrementTokenVersion(ctx context.Context, userID string) error

	// 管理画面用。新しい順
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
}

// 権限(ロール)の付与・確認
type UserRoleRepository interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
	// 指定ロールを持つユーザーIDの集合
	UserIDsWithRole(ctx context.Context, role string) (map[string]struct{}, error)
	// 既に持っていても成功扱い
	Grant(ctx context.Context, userID, role string) error
	Revoke(ctx context.Context, userID, role string) error
}
