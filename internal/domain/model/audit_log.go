package model

import "time"

// ペット更新、注文ステータス更新など。
type AuditAction string

const (
	AuditActionCreatePet          AuditAction = "CREATE_PET"
	AuditActionUpdatePet          AuditAction = "UPDATE_PET"
	AuditActionDeletePet          AuditAction = "DELETE_PET"
	AuditActionUpdateAvailability AuditAction = "UPDATE_AVAILABILITY"
	AuditActionUpdateOrderStatus  AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionGrantAdmin         AuditAction = "GRANT_ADMIN"
	AuditActionRevokeAdmin        AuditAction = "REVOKE_ADMIN"
	AuditActionForceLogout        AuditAction = "FORCE_LOGOUT"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourcePet   AuditResourceType = "pet"
	AuditResourceOrder AuditResourceType = "order"
	AuditResourceUser  AuditResourceType = "user"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した管理者のID
	ActorUserID string `gorm:"type:uuid;not null;index" json:"actor_user_id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:varchar(64);not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
