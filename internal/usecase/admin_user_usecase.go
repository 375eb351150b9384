package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/labstack/gommon/log"
)

type AdminUserDTO struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	IsAdmin     bool       `json:"is_admin"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ForceLogoutResponse struct {
	UserID          string `json:"user_id"`
	NewTokenVersion int    `json:"new_token_version"`
}

type AdminUserUsecase struct {
	users     repo.UserRepository
	roles     repo.UserRoleRepository
	rtRepo    repo.RefreshTokenRepository
	auditRepo repo.AuditLogRepository
	logger    *log.Logger
}

func NewAdminUserUsecase(
	users repo.UserRepository,
	roles repo.UserRoleRepository,
	rtRepo repo.RefreshTokenRepository,
	auditRepo repo.AuditLogRepository,
	logger *log.Logger,
) *AdminUserUsecase {
	return &AdminUserUsecase{users: users, roles: roles, rtRepo: rtRepo, auditRepo: auditRepo, logger: logger}
}

// ユーザー一覧に admin フラグを付けて返す
func (u *AdminUserUsecase) List(ctx context.Context) ([]AdminUserDTO, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		u.logger.Errorf("admin list users: %v", err)
		return nil, dbError()
	}
	admins, err := u.roles.UserIDsWithRole(ctx, model.RoleAdmin)
	if err != nil {
		u.logger.Errorf("admin list roles: %v", err)
		return nil, dbError()
	}

	out := make([]AdminUserDTO, 0, len(users))
	for _, usr := range users {
		_, isAdmin := admins[usr.ID]
		out = append(out, AdminUserDTO{
			ID:          usr.ID,
			Email:       usr.Email,
			FullName:    usr.FullName,
			IsAdmin:     isAdmin,
			IsActive:    usr.IsActive,
			LastLoginAt: usr.LastLoginAt,
			CreatedAt:   usr.CreatedAt,
		})
	}
	return out, nil
}

// admin ロールの付与・剥奪。自分自身の剥奪はできない
func (u *AdminUserUsecase) SetAdmin(ctx context.Context, actorUserID, targetUserID string, isAdmin bool) error {
	if targetUserID == "" {
		return badRequest("invalid id")
	}
	if !isAdmin && actorUserID == targetUserID {
		return badRequest("cannot revoke your own admin role")
	}

	if _, err := u.users.FindByID(ctx, targetUserID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return notFound()
		}
		return dbError()
	}

	was, err := u.roles.HasRole(ctx, targetUserID, model.RoleAdmin)
	if err != nil {
		return dbError()
	}
	if was == isAdmin {
		return nil
	}

	action := model.AuditActionGrantAdmin
	if isAdmin {
		err = u.roles.Grant(ctx, targetUserID, model.RoleAdmin)
	} else {
		action = model.AuditActionRevokeAdmin
		err = u.roles.Revoke(ctx, targetUserID, model.RoleAdmin)
	}
	if err != nil {
		u.logger.Errorf("set admin user=%s: %v", targetUserID, err)
		return dbError()
	}

	u.writeAudit(ctx, actorUserID, action, targetUserID,
		toJSON(map[string]bool{"is_admin": was}),
		toJSON(map[string]bool{"is_admin": isAdmin}))
	return nil
}

// token_versionを上げて、リフレッシュトークンも全部消す
func (u *AdminUserUsecase) ForceLogout(ctx context.Context, actorUserID, targetUserID string) (*ForceLogoutResponse, error) {
	if targetUserID == "" {
		return nil, badRequest("invalid id")
	}

	if err := u.users.IncrementTokenVersion(ctx, targetUserID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, notFound()
		}
		return nil, dbError()
	}
	if err := u.rtRepo.DeleteAllByUserID(ctx, targetUserID); err != nil {
		return nil, dbError()
	}

	//更新後を取得してnew_token_versionを返す
	user, err := u.users.FindByID(ctx, targetUserID)
	if err != nil || user == nil {
		return nil, dbError()
	}

	u.writeAudit(ctx, actorUserID, model.AuditActionForceLogout, targetUserID, "",
		toJSON(map[string]int{"token_version": user.TokenVersion}))

	return &ForceLogoutResponse{
		UserID:          user.ID,
		NewTokenVersion: user.TokenVersion,
	}, nil
}

// 本処理は終わっているので、監査ログの失敗はログだけ
func (u *AdminUserUsecase) writeAudit(ctx context.Context, actor string, action model.AuditAction, target, before, after string) {
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actor,
		Action:       action,
		ResourceType: model.AuditResourceUser,
		ResourceID:   target,
		BeforeJSON:   before,
		AfterJSON:    after,
		CreatedAt:    time.Now(),
	}); err != nil {
		u.logger.Errorf("audit %s user=%s: %v", action, target, err)
	}
}
