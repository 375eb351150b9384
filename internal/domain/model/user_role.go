package model

import "time"

// 管理者ロール（完全一致で判定）
const RoleAdmin = "admin"

// ユーザーごとのロール付与。行の有無で権限を表す。
type UserRole struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_user_role" json:"user_id"`
	Role      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_roles_user_role" json:"role"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
