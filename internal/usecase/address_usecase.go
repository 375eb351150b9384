package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	"github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/labstack/gommon/log"
)

type AddressDTO struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	IsDefault    bool   `json:"is_default"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// 住所フォームの入力（作成・更新・チェックアウトで共通）
type AddressInput struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

func (in AddressInput) toModel(userID string) model.Address {
	return model.Address{
		UserID:       userID,
		FullName:     in.FullName,
		Phone:        in.Phone,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		Pincode:      in.Pincode,
	}
}

// usecaseがValidatorに依存する約束（DBには触らない）
type AddressValidator interface {
	ValidateAddress(ctx context.Context, in AddressInput) error
}

type AddressUsecase struct {
	addresses repository.AddressRepository
	validator AddressValidator
	logger    *log.Logger
}

func NewAddressUsecase(addresses repository.AddressRepository, validator AddressValidator, logger *log.Logger) *AddressUsecase {
	return &AddressUsecase{addresses: addresses, validator: validator, logger: logger}
}

func (u *AddressUsecase) List(ctx context.Context, userID string) ([]AddressDTO, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		u.logger.Errorf("list addresses user=%s: %v", userID, err)
		return nil, dbError()
	}

	out := make([]AddressDTO, 0, len(list))
	for i := range list {
		out = append(out, toAddressDTO(&list[i]))
	}
	return out, nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID string, in AddressInput) (AddressDTO, error) {
	if userID == "" {
		return AddressDTO{}, ErrUnauthorized
	}

	//入力チェック（DBに行く前に弾く）
	if err := u.validator.ValidateAddress(ctx, in); err != nil {
		return AddressDTO{}, err
	}

	now := time.Now()
	a := in.toModel(userID)
	a.CreatedAt = now
	a.UpdatedAt = now

	created, err := u.addresses.Create(ctx, a)
	if err != nil {
		u.logger.Errorf("create address user=%s: %v", userID, err)
		return AddressDTO{}, NewHTTPError(http.StatusInternalServerError, "Failed to add address")
	}

	return toAddressDTO(&created), nil
}

func (u *AddressUsecase) Update(ctx context.Context, userID, addressID string, in AddressInput) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if addressID == "" {
		return badRequest("invalid id")
	}
	if err := u.validator.ValidateAddress(ctx, in); err != nil {
		return err
	}

	if err := u.checkOwner(ctx, userID, addressID); err != nil {
		return err
	}

	a := in.toModel(userID)
	a.ID = addressID
	a.UpdatedAt = time.Now()

	if err := u.addresses.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound()
		}
		u.logger.Errorf("update address %s: %v", addressID, err)
		return dbError()
	}
	return nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID, addressID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if addressID == "" {
		return badRequest("invalid id")
	}

	if err := u.checkOwner(ctx, userID, addressID); err != nil {
		return err
	}

	if err := u.addresses.Delete(ctx, addressID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound()
		}
		//注文が参照中などで削除できない 409
		u.logger.Warnf("delete address %s: %v", addressID, err)
		return NewHTTPError(http.StatusConflict, "Failed to delete address")
	}
	return nil
}

func (u *AddressUsecase) SetDefault(ctx context.Context, userID, addressID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if addressID == "" {
		return badRequest("invalid id")
	}

	if err := u.checkOwner(ctx, userID, addressID); err != nil {
		return err
	}

	//user内でdefaultは1つ
	if err := u.addresses.SetDefault(ctx, userID, addressID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound()
		}
		u.logger.Errorf("set default address %s: %v", addressID, err)
		return dbError()
	}
	return nil
}

// 所有チェック（本人のみ）。他人の住所は存在も含めて404
func (u *AddressUsecase) checkOwner(ctx context.Context, userID, addressID string) error {
	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		u.logger.Errorf("address owner check %s: %v", addressID, err)
		return dbError()
	}
	if !owned {
		return notFound()
	}
	return nil
}

func toAddressDTO(a *model.Address) AddressDTO {
	return AddressDTO{
		ID:           a.ID,
		UserID:       a.UserID,
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		IsDefault:    a.IsDefault,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}
