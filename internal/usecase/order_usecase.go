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

type OrderPetDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Breed    string `json:"breed"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	ImageURL string `json:"image_url"`
}

type OrderDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	PetID     string `json:"pet_id"`
	AddressID string `json:"address_id"`

	PetPrice       string `json:"pet_price"`
	HandlingFee    string `json:"handling_fee"`
	PlatformFee    string `json:"platform_fee"`
	CodCharge      string `json:"cod_charge"`
	CouponCode     string `json:"coupon_code,omitempty"`
	CouponDiscount string `json:"coupon_discount"`
	TotalAmount    string `json:"total_amount"`

	PaymentMode   string `json:"payment_mode"`
	PaymentStatus string `json:"payment_status"`
	OrderStatus   string `json:"order_status"`

	//ユーザーがキャンセルできるか
	CanCancel bool `json:"can_cancel"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Pet     *OrderPetDTO `json:"pet,omitempty"`
	Address *AddressDTO  `json:"address,omitempty"`
}

type OrderUsecase struct {
	orders repository.OrderRepository
	logger *log.Logger
}

func NewOrderUsecase(orders repository.OrderRepository, logger *log.Logger) *OrderUsecase {
	return &OrderUsecase{orders: orders, logger: logger}
}

// 自分の注文一覧（新しい順）
func (u *OrderUsecase) List(ctx context.Context, userID string) ([]OrderDTO, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		u.logger.Errorf("list orders user=%s: %v", userID, err)
		return nil, dbError()
	}

	out := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDTO(o))
	}
	return out, nil
}

func (u *OrderUsecase) Get(ctx context.Context, userID, orderID string) (OrderDTO, error) {
	o, err := u.findOwned(ctx, userID, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	return toOrderDTO(o), nil
}

// PLACED / CONFIRMED のときだけキャンセルできる
func (u *OrderUsecase) Cancel(ctx context.Context, userID, orderID string) (OrderDTO, error) {
	o, err := u.findOwned(ctx, userID, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	if !o.OrderStatus.CanCancel() {
		return OrderDTO{}, NewHTTPError(http.StatusConflict, "Order cannot be cancelled")
	}

	//読んだ後に管理者が更新していても、条件付きUPDATEで弾く
	ok, err := u.orders.CancelIfStatusIn(ctx, orderID, userID, model.UserCancellableStatuses)
	if err != nil {
		u.logger.Errorf("cancel order %s: %v", orderID, err)
		return OrderDTO{}, NewHTTPError(http.StatusInternalServerError, "Failed to cancel order")
	}
	if !ok {
		return OrderDTO{}, NewHTTPError(http.StatusConflict, "Order cannot be cancelled")
	}

	o.OrderStatus = model.OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return toOrderDTO(o), nil
}

// 他人の注文は404（存在を漏らさない）
func (u *OrderUsecase) findOwned(ctx context.Context, userID, orderID string) (model.Order, error) {
	if userID == "" {
		return model.Order{}, ErrUnauthorized
	}
	if orderID == "" {
		return model.Order{}, badRequest("invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Order{}, notFound()
	}
	if err != nil {
		u.logger.Errorf("find order %s: %v", orderID, err)
		return model.Order{}, dbError()
	}
	if o.UserID != userID {
		return model.Order{}, notFound()
	}
	return o, nil
}

func toOrderDTO(o model.Order) OrderDTO {
	dto := OrderDTO{
		ID:             o.ID,
		UserID:         o.UserID,
		PetID:          o.PetID,
		AddressID:      o.AddressID,
		PetPrice:       o.PetPrice.StringFixed(2),
		HandlingFee:    o.HandlingFee.StringFixed(2),
		PlatformFee:    o.PlatformFee.StringFixed(2),
		CodCharge:      o.CodCharge.StringFixed(2),
		CouponCode:     o.CouponCode,
		CouponDiscount: o.CouponDiscount.StringFixed(2),
		TotalAmount:    o.TotalAmount.StringFixed(2),
		PaymentMode:    string(o.PaymentMode),
		PaymentStatus:  string(o.PaymentStatus),
		OrderStatus:    string(o.OrderStatus),
		CanCancel:      o.OrderStatus.CanCancel(),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.Pet != nil {
		dto.Pet = &OrderPetDTO{
			ID:       o.Pet.ID,
			Name:     o.Pet.Name,
			Type:     string(o.Pet.Type),
			Breed:    o.Pet.Breed,
			Age:      o.Pet.Age,
			Gender:   o.Pet.Gender,
			ImageURL: o.Pet.ImageURL,
		}
	}
	if o.Address != nil {
		a := toAddressDTO(o.Address)
		dto.Address = &a
	}
	return dto
}
