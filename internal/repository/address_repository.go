package repository

import (
	"context"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
)

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	//住所を新規作成する。IDなどが埋まったものを返す
	Create(ctx context.Context, address model.Address) (model.Address, error)

	//ユーザーが持つ住所一覧を返す
	ListByUserID(ctx context.Context, userID string) ([]model.Address, error)

	FindByID(ctx context.Context, addressID string) (model.Address, error)

	//同じ内容の住所を探す（6項目の完全一致）
	FindMatching(ctx context.Context, userID string, m model.AddressMatch) (model.Address, bool, error)

	Update(ctx context.Context, address model.Address) error

	Delete(ctx context.Context, addressID string) error

	//住所がそのユーザーのものか確認
	IsOwnedByUser(ctx context.Context, addressID, userID string) (bool, error)

	//デフォルト住所の切り替え
	SetDefault(ctx context.Context, userID, addressID string) error
}
