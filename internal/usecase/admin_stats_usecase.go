package usecase

import (
	"context"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

type AdminStats struct {
	TotalPets     int64 `json:"total_pets"`
	TotalOrders   int64 `json:"total_orders"`
	PendingOrders int64 `json:"pending_orders"`
	TotalUsers    int64 `json:"total_users"`
}

type AdminStatsUsecase struct {
	pets   repo.PetRepository
	orders repo.OrderRepository
	users  repo.UserRepository
	logger *log.Logger
}

func NewAdminStatsUsecase(pets repo.PetRepository, orders repo.OrderRepository, users repo.UserRepository, logger *log.Logger) *AdminStatsUsecase {
	return &AdminStatsUsecase{pets: pets, orders: orders, users: users, logger: logger}
}

// ダッシュボードの4つの件数を並行して取る
func (u *AdminStatsUsecase) Get(ctx context.Context) (AdminStats, error) {
	var s AdminStats
	placed := model.OrderStatusPlaced

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.TotalPets, err = u.pets.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.TotalOrders, err = u.orders.Count(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		s.PendingOrders, err = u.orders.Count(gctx, &placed)
		return err
	})
	g.Go(func() (err error) {
		s.TotalUsers, err = u.users.Count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		u.logger.Errorf("admin stats: %v", err)
		return AdminStats{}, dbError()
	}
	return s, nil
}
