package model

import "time"

// クーポン。codeは大文字で保存する。
type Coupon struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code       string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	PercentOff int64     `gorm:"not null" json:"percent_off"`
	Active     bool      `gorm:"not null" json:"active"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
