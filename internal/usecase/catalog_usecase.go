package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jr777pal/PetNest-India/internal/domain/catalog"
	"github.com/jr777pal/PetNest-India/internal/domain/model"
	"github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/labstack/gommon/log"
)

type CatalogUsecase struct {
	pets     repository.PetRepository
	featured *catalog.Featured
	logger   *log.Logger
}

func NewCatalogUsecase(pets repository.PetRepository, featured *catalog.Featured, logger *log.Logger) *CatalogUsecase {
	return &CatalogUsecase{pets: pets, featured: featured, logger: logger}
}

// カテゴリ別の公開中ペットを取得して、絞り込み・並び替えをかける
func (u *CatalogUsecase) List(ctx context.Context, petType string, f catalog.Filter) ([]model.Pet, error) {
	petType = strings.ToLower(strings.TrimSpace(petType))
	if petType == "" {
		return nil, badRequest("type is required")
	}
	if err := f.Validate(); err != nil {
		return nil, badRequest(err.Error())
	}

	pets, err := u.pets.ListAvailableByType(ctx, model.PetType(petType))
	if err != nil {
		u.logger.Errorf("list pets type=%s: %v", petType, err)
		return nil, dbError()
	}

	return catalog.Apply(pets, f), nil
}

func (u *CatalogUsecase) Featured() []model.Pet {
	return u.featured.List()
}

func (u *CatalogUsecase) Get(ctx context.Context, petID string) (model.Pet, error) {
	if petID == "" {
		return model.Pet{}, badRequest("invalid id")
	}
	p, err := u.pets.FindByID(ctx, petID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Pet{}, notFound()
	}
	if err != nil {
		u.logger.Errorf("get pet %s: %v", petID, err)
		return model.Pet{}, dbError()
	}
	return p, nil
}
