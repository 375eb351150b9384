package db

import (
	"github.com/jr777pal/PetNest-India/internal/config"
	"github.com/jr777pal/PetNest-India/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsProd() {
		level = logger.Error
	}

	return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
}

// 起動時のテーブル作成（順番は外部キーの依存順）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserRole{},
		&model.RefreshToken{},
		&model.PasswordResetToken{},
		&model.Pet{},
		&model.Address{},
		&model.Order{},
		&model.Coupon{},
		&model.AdoptionRequest{},
		&model.AuditLog{},
	)
}

// 初期クーポン。PAL はペット価格の99%引き
var DefaultCoupons = []model.Coupon{
	{Code: "PAL", PercentOff: 99, Active: true},
}

// 既にあるコードは上書きしない
func SeedCoupons(db *gorm.DB, coupons []model.Coupon) error {
	if len(coupons) == 0 {
		return nil
	}
	rows := append([]model.Coupon(nil), coupons...)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&rows).Error
}
