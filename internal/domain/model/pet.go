package model

import (
	"time"

	"gorm.io/gorm"
)

// ペットの種類（カテゴリ）
type PetType string

const (
	PetTypeDog      PetType = "dog"
	PetTypeCat      PetType = "cat"
	PetTypeRabbit   PetType = "rabbit"
	PetTypeSquirrel PetType = "squirrel"
)

type Pet struct {
	ID   string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name string  `gorm:"type:varchar(255);not null;index:idx_pets_name_type" json:"name"`
	Type PetType `gorm:"type:varchar(50);not null;index:idx_pets_name_type" json:"type"`

	Breed  string `gorm:"type:varchar(255)" json:"breed"`
	Age    int    `gorm:"not null;default:0" json:"age"`
	Gender string `gorm:"type:varchar(20)" json:"gender"`

	//価格（整数の通貨単位）
	Price int64 `gorm:"not null" json:"price"`

	ImageURL    string `gorm:"type:text" json:"image_url"`
	Description string `gorm:"type:text" json:"description"`

	//一覧に出すかどうか
	Available bool `gorm:"not null;index" json:"available"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
