package validator

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	"github.com/jr777pal/PetNest-India/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	byEmail map[string]*model.User
	err     error
}

func (f *fakeUsers) Create(ctx context.Context, u *model.User) error { return nil }
func (f *fakeUsers) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, nil
}
func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byEmail[email], nil
}
func (f *fakeUsers) Update(ctx context.Context, u *model.User) error { return nil }
func (f *fakeUsers) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	return nil
}
func (f *fakeUsers) IncrementTokenVersion(ctx context.Context, id string) error { return nil }
func (f *fakeUsers) List(ctx context.Context) ([]model.User, error) { return nil, nil }
func (f *fakeUsers) Count(ctx context.Context) (int64, error) { return 0, nil }

func statusOf(t *testing.T, err error) (int, string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "want HTTPError, got %v", err)
	return he.Status, he.Message
}

func validAddress() usecase.AddressInput {
	return usecase.AddressInput{
		FullName:     "Asha Rao",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
	}
}

func TestValidateAddress(t *testing.T) {
	v := NewAddressValidator()
	ctx := context.Background()

	require.NoError(t, v.ValidateAddress(ctx, validAddress()))

	blanks := map[string]func(*usecase.AddressInput){
		"full_name": func(in *usecase.AddressInput) { in.FullName = "" },
		"phone":     func(in *usecase.AddressInput) { in.Phone = "  " },
		"line1":     func(in *usecase.AddressInput) { in.AddressLine1 = "" },
		"city":      func(in *usecase.AddressInput) { in.City = "" },
		"state":     func(in *usecase.AddressInput) { in.State = "" },
		"pincode":   func(in *usecase.AddressInput) { in.Pincode = "" },
	}
	for name, mutate := range blanks {
		t.Run(name, func(t *testing.T) {
			in := validAddress()
			mutate(&in)
			status, msg := statusOf(t, v.ValidateAddress(ctx, in))
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, usecase.MsgFillRequired, msg)
		})
	}
}

func TestValidateAddress_Line2Optional(t *testing.T) {
	in := validAddress()
	in.AddressLine2 = ""
	assert.NoError(t, NewAddressValidator().ValidateAddress(context.Background(), in))
}

func TestValidateRegister(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*model.User{
		"taken@example.com": {ID: "u1", Email: "taken@example.com"},
	}}
	v := NewAuthValidator(users)
	ctx := context.Background()

	ok := usecase.AuthRegisterRequest{
		FullName: "Asha", Email: "new@example.com", Password: "secret1", ConfirmPassword: "secret1",
	}
	require.NoError(t, v.ValidateRegister(ctx, ok))

	mismatch := ok
	mismatch.ConfirmPassword = "secret2"
	_, msg := statusOf(t, v.ValidateRegister(ctx, mismatch))
	assert.Equal(t, "Passwords do not match", msg)

	short := ok
	short.Password, short.ConfirmPassword = "abc", "abc"
	status, _ := statusOf(t, v.ValidateRegister(ctx, short))
	assert.Equal(t, http.StatusBadRequest, status)

	badEmail := ok
	badEmail.Email = "not-an-email"
	status, _ = statusOf(t, v.ValidateRegister(ctx, badEmail))
	assert.Equal(t, http.StatusBadRequest, status)

	dup := ok
	dup.Email = "Taken@Example.com"
	status, _ = statusOf(t, v.ValidateRegister(ctx, dup))
	assert.Equal(t, http.StatusConflict, status)
}

func TestValidateRegister_LookupFails(t *testing.T) {
	v := NewAuthValidator(&fakeUsers{err: errors.New("db down")})
	err := v.ValidateRegister(context.Background(), usecase.AuthRegisterRequest{
		FullName: "A", Email: "a@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.ErrorIs(t, err, usecase.ErrInternal)
}

func TestValidateLoginAndReset(t *testing.T) {
	v := NewAuthValidator(&fakeUsers{})
	ctx := context.Background()

	assert.NoError(t, v.ValidateLogin(ctx, "a@example.com", "x"))
	assert.Error(t, v.ValidateLogin(ctx, "", "x"))
	assert.Error(t, v.ValidateLogin(ctx, "a@example.com", ""))

	assert.ErrorIs(t, v.ValidateRefresh(ctx, " ", "ua"), usecase.ErrUnauthorized)

	assert.NoError(t, v.ValidatePasswordReset(ctx, "a@example.com"))
	assert.Error(t, v.ValidatePasswordReset(ctx, "a@"))

	assert.NoError(t, v.ValidatePasswordResetConfirm(ctx, usecase.PasswordResetConfirmRequest{
		Token: "t", Password: "secret1", ConfirmPassword: "secret1",
	}))
	assert.Error(t, v.ValidatePasswordResetConfirm(ctx, usecase.PasswordResetConfirmRequest{
		Password: "secret1", ConfirmPassword: "secret1",
	}))
}

func TestIsEmailLike(t *testing.T) {
	assert.True(t, isEmailLike("a.b@example.co.in"))
	assert.False(t, isEmailLike("Asha <a@example.com>"))
	assert.False(t, isEmailLike("a@localhost"))
	assert.False(t, isEmailLike("plain"))
}
