package model

import "time"

// 里親希望の問い合わせ（購入とは別）。未ログインでも送れる。
type AdoptionRequest struct {
	ID     string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID *string `gorm:"type:uuid;index" json:"user_id"`

	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Email   string `gorm:"type:varchar(255);not null" json:"email"`
	Phone   string `gorm:"type:varchar(30);not null" json:"phone"`
	Address string `gorm:"type:text" json:"address"`

	PetType        string `gorm:"type:varchar(255)" json:"pet_type"`
	PreferredAge   string `gorm:"type:varchar(50)" json:"preferred_age"`
	PreferredColor string `gorm:"type:varchar(50)" json:"preferred_color"`
	Budget         string `gorm:"type:varchar(50)" json:"budget"`
	Experience     string `gorm:"type:varchar(50)" json:"experience"`
	Message        string `gorm:"type:text" json:"message"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
