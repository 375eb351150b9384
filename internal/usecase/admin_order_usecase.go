package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	logger *log.Logger
}

func NewAdminOrderUsecase(tx repo.TransactionManager, logger *log.Logger) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, logger: logger}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

type AdminOrderListOutput struct {
	Items []OrderDTO `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return AdminOrderListOutput{}, badRequest("invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return AdminOrderListOutput{}, badRequest("invalid limit")
	}
	if f.Status != "" && !model.OrderStatus(f.Status).Valid() {
		return AdminOrderListOutput{}, badRequest("invalid status")
	}
	if f.UserID != nil {
		if _, err := uuid.Parse(*f.UserID); err != nil {
			return AdminOrderListOutput{}, badRequest("invalid user_id")
		}
	}

	var out AdminOrderListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			u.logger.Errorf("admin list orders: %v", err)
			return dbError()
		}

		items := make([]OrderDTO, 0, len(orders))
		for _, o := range orders {
			items = append(items, toOrderDTO(o))
		}
		out = AdminOrderListOutput{Items: items, Total: total, Page: f.Page, Limit: f.Limit}
		return nil
	})
	if err != nil {
		return AdminOrderListOutput{}, err
	}
	return out, nil
}

// 管理者はどのステータスにも変更できる（遷移チェックなし）。変更は監査ログに残す
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID, orderID string, in AdminUpdateOrderStatusInput) error {
	if actorAdminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return badRequest("invalid id")
	}

	newStatus := model.OrderStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if !newStatus.Valid() {
		return badRequest("invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound()
		}
		if err != nil {
			u.logger.Errorf("admin find order %s: %v", orderID, err)
			return dbError()
		}

		// すでに同じなら何もしない（200）
		if o.OrderStatus == newStatus {
			return nil
		}

		beforeStatus := o.OrderStatus
		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound()
			}
			u.logger.Errorf("admin update order %s: %v", orderID, err)
			return dbError()
		}

		// 監査ログ（UPDATE_ORDER_STATUS）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   statusJSON(beforeStatus),
			AfterJSON:    statusJSON(newStatus),
			CreatedAt:    time.Now(),
		}); err != nil {
			u.logger.Errorf("audit order %s: %v", orderID, err)
			return dbError()
		}

		u.logger.Infof("order %s status %s -> %s by %s", orderID, beforeStatus, newStatus, actorAdminUserID)
		return nil
	})
}

func statusJSON(s model.OrderStatus) string {
	return toJSON(map[string]string{"order_status": string(s)})
}

// 監査ログ用。失敗しても空文字で続ける
func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
