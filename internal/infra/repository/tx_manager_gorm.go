package repository

import (
	"context"

	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	pets      repo.PetRepository
	addresses repo.AddressRepository
	orders    repo.OrderRepository
	auditLogs repo.AuditLogRepository
}

func (r *txReposGorm) Pets() repo.PetRepository           { return r.pets }
func (r *txReposGorm) Addresses() repo.AddressRepository  { return r.addresses }
func (r *txReposGorm) Orders() repo.OrderRepository       { return r.orders }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			pets:      NewPetGormRepository(tx),
			addresses: NewAddressGormRepository(tx),
			orders:    NewOrderGormRepository(tx),
			auditLogs: NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
