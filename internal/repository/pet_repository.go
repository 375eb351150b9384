package repository

import (
	"context"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
)

// ペットの保存・取得を約束
type PetRepository interface {
	// 種類で絞った公開中のペット（名前順）
	ListAvailableByType(ctx context.Context, petType model.PetType) ([]model.Pet, error)
	// 管理画面用。新しい順
	ListAll(ctx context.Context) ([]model.Pet, error)
	FindByID(ctx context.Context, petID string) (model.Pet, error)
	// (name, type) の完全一致。無ければ found=false
	FindByNameAndType(ctx context.Context, name string, petType model.PetType) (model.Pet, bool, error)

	Create(ctx context.Context, pet model.Pet) (model.Pet, error)
	Update(ctx context.Context, pet model.Pet) error
	SetAvailability(ctx context.Context, petID string, available bool) error
	Delete(ctx context.Context, petID string) error

	Count(ctx context.Context) (int64, error)
}
