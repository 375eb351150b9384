package usecase_test

import (
	"context"
	"io"
	"time"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/mock"
)

func testLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

// =====================
// TxManager / TxRepos
// =====================

// WithinTx の中で渡す repos を固定する
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	pets      repo.PetRepository
	addresses repo.AddressRepository
	orders    repo.OrderRepository
	audit     repo.AuditLogRepository
}

func (r *TxReposMock) Pets() repo.PetRepository           { return r.pets }
func (r *TxReposMock) Addresses() repo.AddressRepository  { return r.addresses }
func (r *TxReposMock) Orders() repo.OrderRepository       { return r.orders }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository { return r.audit }

// =====================
// Repository mocks
// =====================

type PetRepoMock struct{ mock.Mock }

func (m *PetRepoMock) ListAvailableByType(ctx context.Context, petType model.PetType) ([]model.Pet, error) {
	args := m.Called(ctx, petType)
	pets, _ := args.Get(0).([]model.Pet)
	return pets, args.Error(1)
}

func (m *PetRepoMock) ListAll(ctx context.Context) ([]model.Pet, error) {
	args := m.Called(ctx)
	pets, _ := args.Get(0).([]model.Pet)
	return pets, args.Error(1)
}

func (m *PetRepoMock) FindByID(ctx context.Context, petID string) (model.Pet, error) {
	args := m.Called(ctx, petID)
	p, _ := args.Get(0).(model.Pet)
	return p, args.Error(1)
}

func (m *PetRepoMock) FindByNameAndType(ctx context.Context, name string, petType model.PetType) (model.Pet, bool, error) {
	args := m.Called(ctx, name, petType)
	p, _ := args.Get(0).(model.Pet)
	return p, args.Bool(1), args.Error(2)
}

func (m *PetRepoMock) Create(ctx context.Context, pet model.Pet) (model.Pet, error) {
	args := m.Called(ctx, pet)
	if fn, ok := args.Get(0).(func(context.Context, model.Pet) model.Pet); ok {
		return fn(ctx, pet), args.Error(1)
	}
	p, _ := args.Get(0).(model.Pet)
	return p, args.Error(1)
}

func (m *PetRepoMock) Update(ctx context.Context, pet model.Pet) error {
	return m.Called(ctx, pet).Error(0)
}

func (m *PetRepoMock) SetAvailability(ctx context.Context, petID string, available bool) error {
	return m.Called(ctx, petID, available).Error(0)
}

func (m *PetRepoMock) Delete(ctx context.Context, petID string) error {
	return m.Called(ctx, petID).Error(0)
}

func (m *PetRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) Create(ctx context.Context, a model.Address) (model.Address, error) {
	args := m.Called(ctx, a)
	out, _ := args.Get(0).(model.Address)
	return out, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Address)
	return list, args.Error(1)
}

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID string) (model.Address, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) FindMatching(ctx context.Context, userID string, match model.AddressMatch) (model.Address, bool, error) {
	args := m.Called(ctx, userID, match)
	a, _ := args.Get(0).(model.Address)
	return a, args.Bool(1), args.Error(2)
}

func (m *AddressRepoMock) Update(ctx context.Context, a model.Address) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AddressRepoMock) Delete(ctx context.Context, addressID string) error {
	return m.Called(ctx, addressID).Error(0)
}

func (m *AddressRepoMock) IsOwnedByUser(ctx context.Context, addressID, userID string) (bool, error) {
	args := m.Called(ctx, addressID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *AddressRepoMock) SetDefault(ctx context.Context, userID, addressID string) error {
	return m.Called(ctx, userID, addressID).Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, o model.Order) (model.Order, error) {
	args := m.Called(ctx, o)
	if fn, ok := args.Get(0).(func(context.Context, model.Order) model.Order); ok {
		return fn(ctx, o), args.Error(1)
	}
	out, _ := args.Get(0).(model.Order)
	return out, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Order)
	return list, args.Error(1)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]model.Order)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *OrderRepoMock) CancelIfStatusIn(ctx context.Context, orderID, userID string, from []model.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, userID, from)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) Count(ctx context.Context, status *model.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, l model.AuditLog) error {
	return m.Called(ctx, l).Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]model.AuditLog)
	return list, args.Error(1)
}

type CouponRepoMock struct{ mock.Mock }

func (m *CouponRepoMock) FindActiveByCode(ctx context.Context, code string) (model.Coupon, bool, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Bool(1), args.Error(2)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepoMock) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *UserRepoMock) IncrementTokenVersion(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.User)
	return list, args.Error(1)
}

func (m *UserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type RoleRepoMock struct{ mock.Mock }

func (m *RoleRepoMock) HasRole(ctx context.Context, userID, role string) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *RoleRepoMock) UserIDsWithRole(ctx context.Context, role string) (map[string]struct{}, error) {
	args := m.Called(ctx, role)
	ids, _ := args.Get(0).(map[string]struct{})
	return ids, args.Error(1)
}

func (m *RoleRepoMock) Grant(ctx context.Context, userID, role string) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *RoleRepoMock) Revoke(ctx context.Context, userID, role string) error {
	return m.Called(ctx, userID, role).Error(0)
}

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, t *model.RefreshToken) error {
	return m.Called(ctx, t).Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, hash)
	t, _ := args.Get(0).(*model.RefreshToken)
	return t, args.Error(1)
}

func (m *RefreshTokenRepoMock) MarkUsed(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *RefreshTokenRepoMock) Revoke(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *RefreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type PasswordResetRepoMock struct{ mock.Mock }

func (m *PasswordResetRepoMock) Create(ctx context.Context, t *model.PasswordResetToken) error {
	return m.Called(ctx, t).Error(0)
}

func (m *PasswordResetRepoMock) FindByTokenHash(ctx context.Context, hash string) (*model.PasswordResetToken, error) {
	args := m.Called(ctx, hash)
	t, _ := args.Get(0).(*model.PasswordResetToken)
	return t, args.Error(1)
}

func (m *PasswordResetRepoMock) MarkUsed(ctx context.Context, id string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

type AdoptionRepoMock struct{ mock.Mock }

func (m *AdoptionRepoMock) Create(ctx context.Context, r model.AdoptionRequest) (model.AdoptionRequest, error) {
	args := m.Called(ctx, r)
	out, _ := args.Get(0).(model.AdoptionRequest)
	return out, args.Error(1)
}

func (m *AdoptionRepoMock) List(ctx context.Context, limit, offset int) ([]model.AdoptionRequest, int64, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]model.AdoptionRequest)
	return list, args.Get(1).(int64), args.Error(2)
}

var (
	_ repo.PetRepository             = (*PetRepoMock)(nil)
	_ repo.AddressRepository         = (*AddressRepoMock)(nil)
	_ repo.OrderRepository           = (*OrderRepoMock)(nil)
	_ repo.AuditLogRepository        = (*AuditRepoMock)(nil)
	_ repo.CouponRepository          = (*CouponRepoMock)(nil)
	_ repo.UserRepository            = (*UserRepoMock)(nil)
	_ repo.UserRoleRepository        = (*RoleRepoMock)(nil)
	_ repo.RefreshTokenRepository    = (*RefreshTokenRepoMock)(nil)
	_ repo.PasswordResetRepository   = (*PasswordResetRepoMock)(nil)
	_ repo.AdoptionRequestRepository = (*AdoptionRepoMock)(nil)
	_ repo.TransactionManager        = (*TxManagerMock)(nil)
)
