package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// 固定の手数料（設定で変えない）
const (
	HandlingFee int64 = 500
	PlatformFee int64 = 200
	CodCharge   int64 = 0
)

var ErrInvalidPercent = errors.New("percent off must be between 0 and 100")

// 注文金額の内訳
type Breakdown struct {
	PetPrice    decimal.Decimal `json:"pet_price"`
	HandlingFee decimal.Decimal `json:"handling_fee"`
	PlatformFee decimal.Decimal `json:"platform_fee"`
	CodCharge   decimal.Decimal `json:"cod_charge"`

	CouponCode      string          `json:"coupon_code,omitempty"`
	DiscountPercent int64           `json:"discount_percent"`
	Discount        decimal.Decimal `json:"coupon_discount"`

	Total decimal.Decimal `json:"total_amount"`
}

// total = pet_price + handling + platform + cod - discount
// 割引はペット価格にだけかかる。
func Compute(petPrice int64, couponCode string, percentOff int64) (Breakdown, error) {
	if percentOff < 0 || percentOff > 100 {
		return Breakdown{}, ErrInvalidPercent
	}

	price := decimal.NewFromInt(petPrice)
	discount := decimal.Zero
	if percentOff > 0 {
		discount = price.Mul(decimal.NewFromInt(percentOff)).Div(decimal.NewFromInt(100)).Round(2)
	} else {
		couponCode = ""
	}

	b := Breakdown{
		PetPrice:        price,
		HandlingFee:     decimal.NewFromInt(HandlingFee),
		PlatformFee:     decimal.NewFromInt(PlatformFee),
		CodCharge:       decimal.NewFromInt(CodCharge),
		CouponCode:      couponCode,
		DiscountPercent: percentOff,
		Discount:        discount,
	}
	b.Total = b.PetPrice.Add(b.HandlingFee).Add(b.PlatformFee).Add(b.CodCharge).Sub(b.Discount)
	return b, nil
}
