package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "PLACED"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ユーザーがキャンセルできるステータス
var UserCancellableStatuses = []OrderStatus{OrderStatusPlaced, OrderStatusConfirmed}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PLACED / CONFIRMED のときだけキャンセル可
func (s OrderStatus) CanCancel() bool {
	for _, c := range UserCancellableStatuses {
		if s == c {
			return true
		}
	}
	return false
}

// 終端
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type PaymentMode string

const (
	PaymentModeCOD    PaymentMode = "COD"
	PaymentModeOnline PaymentMode = "ONLINE"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

type Order struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string `gorm:"type:uuid;not null;index" json:"user_id"`
	PetID     string `gorm:"type:uuid;not null;index" json:"pet_id"`
	AddressID string `gorm:"type:uuid;not null" json:"address_id"`

	//金額（注文時点のスナップショット）
	PetPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"pet_price"`
	HandlingFee    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"handling_fee"`
	PlatformFee    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"platform_fee"`
	CodCharge      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cod_charge"`
	CouponCode     string          `gorm:"type:varchar(50)" json:"coupon_code"`
	CouponDiscount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"coupon_discount"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	PaymentMode   PaymentMode   `gorm:"type:varchar(20);not null" json:"payment_mode"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`
	OrderStatus   OrderStatus   `gorm:"type:varchar(20);not null;index" json:"order_status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Pet     *Pet     `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Address *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
}
