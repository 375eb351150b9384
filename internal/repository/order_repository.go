package repository

import (
	"context"
	"time"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	// Pet / Address を読み込んだ状態で返す
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	// 新しい順
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	// 現在のステータスが from のどれかの時だけ CANCELLED にする。更新できたら true
	CancelIfStatusIn(ctx context.Context, orderID, userID string, from []model.OrderStatus) (bool, error)

	// status が nil なら全件
	Count(ctx context.Context, status *model.OrderStatus) (int64, error)
}
