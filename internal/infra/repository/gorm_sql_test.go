package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	repo "github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	someUserID = "5d3c2b1a-0f9e-4d8c-b7a6-958473625140"
	somePetID  = "7b0d6f52-3c1e-4d8a-9f6e-2a4b5c6d7e8f"
)

type capturedSQL struct {
	SQL  string
	Vars []any
}

// DryRunでSQLだけ組み立て、実行せずに記録する
func newDryRunDB(t *testing.T) (*gorm.DB, *[]capturedSQL) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=petnest dbname=petnest sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)

	got := &[]capturedSQL{}
	capture := func(tx *gorm.DB) {
		*got = append(*got, capturedSQL{
			SQL:  tx.Statement.SQL.String(),
			Vars: append([]any(nil), tx.Statement.Vars...),
		})
	}

	cb := db.Callback()
	require.NoError(t, cb.Create().After("gorm:create").Register("test:capture", capture))
	require.NoError(t, cb.Query().After("gorm:query").Register("test:capture", capture))
	require.NoError(t, cb.Update().After("gorm:update").Register("test:capture", capture))
	require.NoError(t, cb.Delete().After("gorm:delete").Register("test:capture", capture))

	return db, got
}

// INSERT の列名と値を対応させる（1行INSERT前提）
func insertedValue(t *testing.T, s capturedSQL, column string) any {
	t.Helper()

	open := strings.Index(s.SQL, "(")
	end := strings.Index(s.SQL, ")")
	require.True(t, open >= 0 && end > open, s.SQL)

	for i, c := range strings.Split(s.SQL[open+1:end], ",") {
		if strings.Trim(strings.TrimSpace(c), `"`) == column {
			require.Less(t, i, len(s.Vars))
			return s.Vars[i]
		}
	}
	t.Fatalf("column %q not found in %s", column, s.SQL)
	return nil
}

func TestPetCreate_UnavailableStaysUnavailable(t *testing.T) {
	db, got := newDryRunDB(t)
	r := NewPetGormRepository(db)

	_, err := r.Create(context.Background(), model.Pet{
		Name:      "Luna",
		Type:      model.PetTypeCat,
		Price:     12000,
		Available: false,
	})
	require.NoError(t, err)

	require.Len(t, *got, 1)
	assert.True(t, strings.HasPrefix((*got)[0].SQL, `INSERT INTO "pets"`), (*got)[0].SQL)
	assert.Equal(t, false, insertedValue(t, (*got)[0], "available"))
}

func TestPetCreate_AvailableIsKept(t *testing.T) {
	db, got := newDryRunDB(t)
	r := NewPetGormRepository(db)

	p, err := r.Create(context.Background(), model.Pet{Name: "Tommy", Type: model.PetTypeDog, Available: true})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	require.Len(t, *got, 1)
	assert.Equal(t, true, insertedValue(t, (*got)[0], "available"))
	assert.Equal(t, p.ID, insertedValue(t, (*got)[0], "id"))
}

func TestUserCreate_InactiveStaysInactive(t *testing.T) {
	db, got := newDryRunDB(t)
	r := NewUserGormRepository(db)

	require.NoError(t, r.Create(context.Background(), &model.User{
		Email:        "a@example.com",
		PasswordHash: "x",
		IsActive:     false,
	}))

	require.Len(t, *got, 1)
	assert.Equal(t, false, insertedValue(t, (*got)[0], "is_active"))
}

func TestMalformedIDs_NeverReachTheDB(t *testing.T) {
	ctx := context.Background()
	db, got := newDryRunDB(t)

	pets := NewPetGormRepository(db)
	addresses := NewAddressGormRepository(db)
	orders := NewOrderGormRepository(db)
	users := NewUserGormRepository(db)
	roles := NewUserRoleGormRepository(db)

	for _, id := range []string{"pet-Bruno", "1", ""} {
		_, err := pets.FindByID(ctx, id)
		assert.ErrorIs(t, err, repo.ErrNotFound, id)
		assert.ErrorIs(t, pets.Update(ctx, model.Pet{ID: id, Name: "x"}), repo.ErrNotFound, id)
		assert.ErrorIs(t, pets.SetAvailability(ctx, id, true), repo.ErrNotFound, id)
		assert.ErrorIs(t, pets.Delete(ctx, id), repo.ErrNotFound, id)

		_, err = addresses.FindByID(ctx, id)
		assert.ErrorIs(t, err, repo.ErrNotFound, id)
		assert.ErrorIs(t, addresses.Update(ctx, model.Address{ID: id}), repo.ErrNotFound, id)
		assert.ErrorIs(t, addresses.Delete(ctx, id), repo.ErrNotFound, id)
		assert.ErrorIs(t, addresses.SetDefault(ctx, someUserID, id), repo.ErrNotFound, id)
		owned, err := addresses.IsOwnedByUser(ctx, id, someUserID)
		require.NoError(t, err)
		assert.False(t, owned)

		_, err = orders.FindByID(ctx, id)
		assert.ErrorIs(t, err, repo.ErrNotFound, id)
		assert.ErrorIs(t, orders.UpdateStatus(ctx, id, model.OrderStatusShipped), repo.ErrNotFound, id)
		cancelled, err := orders.CancelIfStatusIn(ctx, id, someUserID, model.UserCancellableStatuses)
		require.NoError(t, err)
		assert.False(t, cancelled)

		u, err := users.FindByID(ctx, id)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, repo.ErrUserNotFound, id)
		assert.ErrorIs(t, users.UpdatePasswordHash(ctx, id, "h"), repo.ErrUserNotFound, id)
		assert.ErrorIs(t, users.IncrementTokenVersion(ctx, id), repo.ErrUserNotFound, id)

		ok, err := roles.HasRole(ctx, id, "admin")
		require.NoError(t, err)
		assert.False(t, ok)
	}

	assert.Empty(t, *got)
}

func TestPetFindByID_UsesIDAndSkipsDeleted(t *testing.T) {
	db, got := newDryRunDB(t)

	_, _ = NewPetGormRepository(db).FindByID(context.Background(), somePetID)

	require.Len(t, *got, 1)
	s := (*got)[0]
	assert.Contains(t, s.SQL, `FROM "pets"`)
	assert.Contains(t, s.SQL, "id = $1")
	assert.Contains(t, s.SQL, `"pets"."deleted_at" IS NULL`)
	assert.Equal(t, somePetID, s.Vars[0])
}

func TestPetFindByNameAndType_ExactOldestFirst(t *testing.T) {
	db, got := newDryRunDB(t)

	_, _, _ = NewPetGormRepository(db).FindByNameAndType(context.Background(), "Bruno", model.PetTypeDog)

	require.Len(t, *got, 1)
	s := (*got)[0]
	assert.Contains(t, s.SQL, "name = $1 AND type = $2")
	assert.Contains(t, s.SQL, `"pets"."deleted_at" IS NULL`)
	assert.Contains(t, s.SQL, "ORDER BY created_at ASC")
	require.GreaterOrEqual(t, len(s.Vars), 2)
	assert.EqualValues(t, "Bruno", s.Vars[0])
	assert.EqualValues(t, model.PetTypeDog, s.Vars[1])
}

func TestPetListAvailableByType_FiltersOnAvailable(t *testing.T) {
	db, got := newDryRunDB(t)

	_, _ = NewPetGormRepository(db).ListAvailableByType(context.Background(), model.PetTypeRabbit)

	require.Len(t, *got, 1)
	s := (*got)[0]
	assert.Contains(t, s.SQL, "type = $1 AND available = $2")
	assert.Contains(t, s.SQL, "ORDER BY name ASC")
	assert.EqualValues(t, model.PetTypeRabbit, s.Vars[0])
	assert.Equal(t, true, s.Vars[1])
}

func TestPetDelete_IsSoft(t *testing.T) {
	db, got := newDryRunDB(t)

	_ = NewPetGormRepository(db).Delete(context.Background(), somePetID)

	require.Len(t, *got, 1)
	s := (*got)[0]
	assert.True(t, strings.HasPrefix(s.SQL, `UPDATE "pets" SET "deleted_at"=`), s.SQL)
	assert.NotContains(t, s.SQL, "DELETE FROM")
	assert.Contains(t, s.Vars, any(somePetID))
}

func TestAddressFindMatching_SixFieldsExact(t *testing.T) {
	db, got := newDryRunDB(t)

	m := model.AddressMatch{
		FullName:     " Asha Rao",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Pune",
		State:        "MH",
		Pincode:      "411001",
	}
	_, _, _ = NewAddressGormRepository(db).FindMatching(context.Background(), someUserID, m)

	require.Len(t, *got, 1)
	s := (*got)[0]
	for _, col := range []string{"user_id = ", "full_name = ", "phone = ", "address_line1 = ", "city = ", "state = ", "pincode = "} {
		assert.Contains(t, s.SQL, col)
	}
	assert.NotContains(t, s.SQL, "address_line2")
	assert.Contains(t, s.SQL, "ORDER BY created_at ASC")

	//前後の空白も含めてそのまま比較する
	require.GreaterOrEqual(t, len(s.Vars), 7)
	assert.Equal(t, []any{someUserID, " Asha Rao", "9876543210", "12 MG Road", "Pune", "MH", "411001"}, s.Vars[:7])
}

func TestOrderCancelIfStatusIn_ConditionalUpdate(t *testing.T) {
	db, got := newDryRunDB(t)
	orderID := "0f3e2d1c-9b8a-4765-8432-10fedcba9876"

	_, err := NewOrderGormRepository(db).CancelIfStatusIn(context.Background(), orderID, someUserID, model.UserCancellableStatuses)
	require.NoError(t, err)

	require.Len(t, *got, 1)
	s := (*got)[0]
	assert.True(t, strings.HasPrefix(s.SQL, `UPDATE "orders" SET "order_status"=$1`), s.SQL)
	assert.Contains(t, s.SQL, "id = ")
	assert.Contains(t, s.SQL, "user_id = ")
	assert.Contains(t, s.SQL, "order_status IN (")
	assert.EqualValues(t, model.OrderStatusCancelled, s.Vars[0])

	n := len(s.Vars)
	require.GreaterOrEqual(t, n, 4)
	assert.EqualValues(t, []any{model.OrderStatusPlaced, model.OrderStatusConfirmed}, s.Vars[n-2:])
}

func TestOrderListAdmin_AppliesFilters(t *testing.T) {
	db, got := newDryRunDB(t)

	uid := someUserID
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	_, _, err := NewOrderGormRepository(db).ListAdmin(context.Background(), repo.AdminOrderListFilter{
		Status: string(model.OrderStatusShipped),
		UserID: &uid,
		From:   &from,
		To:     &to,
	})
	require.NoError(t, err)

	require.NotEmpty(t, *got)
	s := (*got)[0]
	assert.Contains(t, s.SQL, `SELECT count(*) FROM "orders"`)
	assert.Contains(t, s.SQL, "order_status = $1")
	assert.Contains(t, s.SQL, "user_id = $2")
	assert.Contains(t, s.SQL, "created_at >= $3")
	assert.Contains(t, s.SQL, "created_at <= $4")
	assert.Equal(t, []any{string(model.OrderStatusShipped), uid, from, to}, s.Vars)
}

func TestOrderListAdmin_NoFilters(t *testing.T) {
	db, got := newDryRunDB(t)

	_, _, err := NewOrderGormRepository(db).ListAdmin(context.Background(), repo.AdminOrderListFilter{})
	require.NoError(t, err)

	require.NotEmpty(t, *got)
	assert.NotContains(t, (*got)[0].SQL, "WHERE")
}
