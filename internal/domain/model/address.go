package model

import "time"

// 配送先住所
type Address struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	//宛名
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`

	//電話番号
	Phone string `gorm:"type:varchar(30);not null" json:"phone"`

	//番地など
	AddressLine1 string `gorm:"column:address_line1;type:varchar(255);not null" json:"address_line1"`

	//目印など
	AddressLine2 string `gorm:"column:address_line2;type:varchar(255)" json:"address_line2"`

	City    string `gorm:"type:varchar(255);not null" json:"city"`
	State   string `gorm:"type:varchar(255);not null" json:"state"`
	Pincode string `gorm:"type:varchar(20);not null" json:"pincode"`

	//このユーザーのデフォルト住所か
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// 住所の照合キー（address_line2は含めない）
type AddressMatch struct {
	FullName     string
	Phone        string
	AddressLine1 string
	City         string
	State        string
	Pincode      string
}

func (a Address) Match() AddressMatch {
	return AddressMatch{
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
	}
}
