package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jr777pal/PetNest-India/internal/domain/catalog"
	"github.com/jr777pal/PetNest-India/internal/domain/model"
	"github.com/jr777pal/PetNest-India/internal/domain/pricing"
	"github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// 注文確定後にUIが見せる「処理中」表示の秒数
const ProcessingDelaySeconds = 3

// チェックアウト対象のペット（DBに行が無い固定表示のペットもある）
type PetDescriptor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Breed    string `json:"breed"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url"`
}

type CheckoutInput struct {
	Address     AddressInput  `json:"address"`
	Pet         PetDescriptor `json:"pet"`
	CouponCode  string        `json:"coupon_code"`
	PaymentMode string        `json:"payment_mode"`
}

type CheckoutOutput struct {
	Order                  OrderDTO `json:"order"`
	ProcessingDelaySeconds int      `json:"processing_delay_seconds"`
}

type BreakdownDTO struct {
	PetPrice        string `json:"pet_price"`
	HandlingFee     string `json:"handling_fee"`
	PlatformFee     string `json:"platform_fee"`
	CodCharge       string `json:"cod_charge"`
	CouponCode      string `json:"coupon_code,omitempty"`
	DiscountPercent int64  `json:"discount_percent"`
	CouponDiscount  string `json:"coupon_discount"`
	TotalAmount     string `json:"total_amount"`
}

type CouponValidateInput struct {
	Code     string `json:"code"`
	PetPrice *int64 `json:"pet_price"`
}

type CouponValidateOutput struct {
	Code       string        `json:"code"`
	PercentOff int64         `json:"percent_off"`
	Message    string        `json:"message"`
	Breakdown  *BreakdownDTO `json:"breakdown,omitempty"`
}

type CheckoutUsecase struct {
	tx        repository.TransactionManager
	coupons   repository.CouponRepository
	featured  *catalog.Featured
	validator AddressValidator
	logger    *log.Logger
}

func NewCheckoutUsecase(
	tx repository.TransactionManager,
	coupons repository.CouponRepository,
	featured *catalog.Featured,
	validator AddressValidator,
	logger *log.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:        tx,
		coupons:   coupons,
		featured:  featured,
		validator: validator,
		logger:    logger,
	}
}

// クーポンの確認だけ（書き込みなし）。価格があれば内訳も返す
func (u *CheckoutUsecase) ValidateCoupon(ctx context.Context, in CouponValidateInput) (CouponValidateOutput, error) {
	code, pct, err := u.lookupCoupon(ctx, in.Code)
	if err != nil {
		return CouponValidateOutput{}, err
	}
	if code == "" {
		return CouponValidateOutput{}, badRequest(MsgInvalidCoupon)
	}

	out := CouponValidateOutput{
		Code:       code,
		PercentOff: pct,
		Message:    "Coupon applied!",
	}
	if in.PetPrice != nil {
		if *in.PetPrice <= 0 {
			return CouponValidateOutput{}, badRequest("invalid pet_price")
		}
		b, err := pricing.Compute(*in.PetPrice, code, pct)
		if err != nil {
			u.logger.Errorf("coupon %s has invalid percent %d", code, pct)
			return CouponValidateOutput{}, badRequest(MsgInvalidCoupon)
		}
		dto := toBreakdownDTO(b)
		out.Breakdown = &dto
	}
	return out, nil
}

// 住所の解決→ペットの解決→注文作成を1トランザクションで行う
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID string, in CheckoutInput) (CheckoutOutput, error) {
	if userID == "" {
		return CheckoutOutput{}, ErrUnauthorized
	}

	//入力チェック（ここで弾けばDBには一切触らない）
	if err := u.validator.ValidateAddress(ctx, in.Address); err != nil {
		return CheckoutOutput{}, err
	}
	petName := strings.TrimSpace(in.Pet.Name)
	petType := model.PetType(strings.ToLower(strings.TrimSpace(in.Pet.Type)))
	if petName == "" || petType == "" {
		return CheckoutOutput{}, badRequest("No pet selected for adoption")
	}
	switch model.PaymentMode(strings.ToUpper(strings.TrimSpace(in.PaymentMode))) {
	case "", model.PaymentModeCOD:
	case model.PaymentModeOnline:
		return CheckoutOutput{}, badRequest(MsgOnlinePaymentsOff)
	default:
		return CheckoutOutput{}, badRequest("invalid payment_mode")
	}

	//クーポンは書き込み前に確認
	var couponCode string
	var percentOff int64
	if strings.TrimSpace(in.CouponCode) != "" {
		code, pct, err := u.lookupCoupon(ctx, in.CouponCode)
		if err != nil {
			return CheckoutOutput{}, err
		}
		if code == "" {
			return CheckoutOutput{}, badRequest(MsgInvalidCoupon)
		}
		couponCode, percentOff = code, pct
	}

	var placed model.Order
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		addr, err := u.resolveAddress(ctx, r, userID, in.Address)
		if err != nil {
			return err
		}

		pet, err := u.resolvePet(ctx, r, in.Pet.ID, petName, petType)
		if err != nil {
			return err
		}

		b, err := pricing.Compute(pet.Price, couponCode, percentOff)
		if err != nil {
			u.logger.Errorf("pricing pet=%s coupon=%s: %v", pet.ID, couponCode, err)
			return NewHTTPError(http.StatusInternalServerError, MsgPlaceOrderFailed)
		}

		o, err := r.Orders().Create(ctx, model.Order{
			UserID:         userID,
			PetID:          pet.ID,
			AddressID:      addr.ID,
			PetPrice:       b.PetPrice,
			HandlingFee:    b.HandlingFee,
			PlatformFee:    b.PlatformFee,
			CodCharge:      b.CodCharge,
			CouponCode:     b.CouponCode,
			CouponDiscount: b.Discount,
			TotalAmount:    b.Total,
			PaymentMode:    model.PaymentModeCOD,
			PaymentStatus:  model.PaymentStatusPending,
			OrderStatus:    model.OrderStatusPlaced,
		})
		if err != nil {
			u.logger.Errorf("insert order user=%s pet=%s: %v", userID, pet.ID, err)
			return NewHTTPError(http.StatusInternalServerError, MsgPlaceOrderFailed)
		}

		o.Pet = &pet
		o.Address = &addr
		placed = o
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return CheckoutOutput{}, err
		}
		//commit失敗など
		u.logger.Errorf("checkout tx user=%s: %v", userID, err)
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, MsgPlaceOrderFailed)
	}

	u.logger.Infof("order placed id=%s user=%s pet=%s total=%s", placed.ID, userID, placed.PetID, placed.TotalAmount.StringFixed(2))

	return CheckoutOutput{
		Order:                  toOrderDTO(placed),
		ProcessingDelaySeconds: ProcessingDelaySeconds,
	}, nil
}

// 同じユーザーで6項目が一致する住所があればそれを使う。無ければ作る
func (u *CheckoutUsecase) resolveAddress(ctx context.Context, r repository.TxRepos, userID string, in AddressInput) (model.Address, error) {
	candidate := in.toModel(userID)

	found, ok, err := r.Addresses().FindMatching(ctx, userID, candidate.Match())
	if err != nil {
		u.logger.Errorf("find address user=%s: %v", userID, err)
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, MsgPlaceOrderFailed)
	}
	if ok {
		return found, nil
	}

	created, err := r.Addresses().Create(ctx, candidate)
	if err != nil {
		u.logger.Errorf("insert address user=%s: %v", userID, err)
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, MsgPlaceOrderFailed)
	}
	return created, nil
}

// UUIDのIDがあればそれを優先、無ければ (name, type) で探す。
// DBに無いものは固定表示の一覧にある場合だけ作る。価格は常にサーバー側の値
func (u *CheckoutUsecase) resolvePet(ctx context.Context, r repository.TxRepos, petID, name string, petType model.PetType) (model.Pet, error) {
	//固定表示のペットは "pet-<name>" のようなIDで来るので、UUID以外は名前で探す
	if _, perr := uuid.Parse(petID); perr == nil {
		p, err := r.Pets().FindByID(ctx, petID)
		switch {
		case err == nil && p.Name == name && p.Type == petType:
			return u.requireAvailable(p)
		case err == nil, errors.Is(err, repository.ErrNotFound):
			//IDが合わなければ名前で探し直す
		default:
			u.logger.Errorf("find pet id=%s: %v", petID, err)
			return model.Pet{}, NewHTTPError(http.StatusInternalServerError, MsgPlaceOrderFailed)
		}
	}

	p, ok, err := r.Pets().FindByNameAndType(ctx, name, petType)
	if err != nil {
		u.logger.Errorf("find pet name=%s type=%s: %v", name, petType, err)
		return model.Pet{}, NewHTTPError(http.StatusInternalServerError, MsgPlaceOrderFailed)
	}
	if ok {
		return u.requireAvailable(p)
	}

	seed, ok := u.featured.Lookup(name, petType)
	if !ok {
		u.logger.Warnf("pet not in catalog name=%s type=%s", name, petType)
		return model.Pet{}, NewHTTPError(http.StatusUnprocessableEntity, MsgPetUnprocessable)
	}
	created, err := r.Pets().Create(ctx, seed)
	if err != nil {
		u.logger.Errorf("insert pet name=%s type=%s: %v", name, petType, err)
		return model.Pet{}, NewHTTPError(http.StatusUnprocessableEntity, MsgPetUnprocessable)
	}
	return created, nil
}

func (u *CheckoutUsecase) requireAvailable(p model.Pet) (model.Pet, error) {
	if !p.Available {
		return model.Pet{}, NewHTTPError(http.StatusConflict, "This pet is no longer available")
	}
	return p, nil
}

// 大文字に揃えて照合。見つからなければ code="" を返す
func (u *CheckoutUsecase) lookupCoupon(ctx context.Context, raw string) (string, int64, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", 0, badRequest(MsgInvalidCoupon)
	}

	c, ok, err := u.coupons.FindActiveByCode(ctx, code)
	if err != nil {
		u.logger.Errorf("find coupon %s: %v", code, err)
		return "", 0, dbError()
	}
	if !ok {
		return "", 0, nil
	}
	return c.Code, c.PercentOff, nil
}

func toBreakdownDTO(b pricing.Breakdown) BreakdownDTO {
	return BreakdownDTO{
		PetPrice:        b.PetPrice.StringFixed(2),
		HandlingFee:     b.HandlingFee.StringFixed(2),
		PlatformFee:     b.PlatformFee.StringFixed(2),
		CodCharge:       b.CodCharge.StringFixed(2),
		CouponCode:      b.CouponCode,
		DiscountPercent: b.DiscountPercent,
		CouponDiscount:  b.Discount.StringFixed(2),
		TotalAmount:     b.Total.StringFixed(2),
	}
}
