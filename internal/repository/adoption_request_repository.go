package repository

import (
	"context"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
)

type AdoptionRequestRepository interface {
	Create(ctx context.Context, req model.AdoptionRequest) (model.AdoptionRequest, error)
	// 新しい順
	List(ctx context.Context, limit, offset int) ([]model.AdoptionRequest, int64, error)
}
