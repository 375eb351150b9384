package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jr777pal/PetNest-India/internal/wishlist"

	"github.com/labstack/gommon/log"
)

type WishlistToggleOutput struct {
	Added bool            `json:"added"`
	Items []wishlist.Item `json:"items"`
}

type WishlistStatusOutput struct {
	Name  string `json:"name"`
	Saved bool   `json:"saved"`
}

type WishlistUsecase struct {
	store  *wishlist.Store
	logger *log.Logger
}

func NewWishlistUsecase(store *wishlist.Store, logger *log.Logger) *WishlistUsecase {
	return &WishlistUsecase{store: store, logger: logger}
}

func (u *WishlistUsecase) List(ctx context.Context, clientID string) ([]wishlist.Item, error) {
	if err := checkClientID(clientID); err != nil {
		return nil, err
	}
	items, err := u.store.List(ctx, clientID)
	if err != nil {
		u.logger.Errorf("wishlist list client=%s: %v", clientID, err)
		return nil, NewHTTPError(http.StatusInternalServerError, "failed to load wishlist")
	}
	return items, nil
}

// ハートの表示用
func (u *WishlistUsecase) Contains(ctx context.Context, clientID, name string) (WishlistStatusOutput, error) {
	if err := checkClientID(clientID); err != nil {
		return WishlistStatusOutput{}, err
	}
	ok, err := u.store.Contains(ctx, clientID, name)
	if err != nil {
		u.logger.Errorf("wishlist contains client=%s: %v", clientID, err)
		return WishlistStatusOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to load wishlist")
	}
	return WishlistStatusOutput{Name: name, Saved: ok}, nil
}

func (u *WishlistUsecase) Add(ctx context.Context, clientID string, item wishlist.Item) ([]wishlist.Item, error) {
	if err := checkClientID(clientID); err != nil {
		return nil, err
	}
	items, err := u.store.Add(ctx, clientID, item)
	return items, u.mapErr(clientID, err)
}

func (u *WishlistUsecase) Remove(ctx context.Context, clientID, name string) ([]wishlist.Item, error) {
	if err := checkClientID(clientID); err != nil {
		return nil, err
	}
	items, err := u.store.Remove(ctx, clientID, name)
	return items, u.mapErr(clientID, err)
}

func (u *WishlistUsecase) Toggle(ctx context.Context, clientID string, item wishlist.Item) (WishlistToggleOutput, error) {
	if err := checkClientID(clientID); err != nil {
		return WishlistToggleOutput{}, err
	}
	added, items, err := u.store.Toggle(ctx, clientID, item)
	if err != nil {
		return WishlistToggleOutput{}, u.mapErr(clientID, err)
	}
	return WishlistToggleOutput{Added: added, Items: items}, nil
}

func (u *WishlistUsecase) mapErr(clientID string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, wishlist.ErrNameRequired) {
		return badRequest(err.Error())
	}
	u.logger.Errorf("wishlist update client=%s: %v", clientID, err)
	return NewHTTPError(http.StatusInternalServerError, "failed to update wishlist")
}

func checkClientID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > 128 {
		return badRequest("X-Client-ID header is required")
	}
	return nil
}
