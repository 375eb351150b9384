package validator

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"github.com/jr777pal/PetNest-India/internal/repository"
	"github.com/jr777pal/PetNest-India/internal/usecase"
)

// パスワード最低文字数
const minPasswordLen = 6

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, in usecase.AuthRegisterRequest) error {
	email := strings.TrimSpace(in.Email)

	// 必須チェック
	if strings.TrimSpace(in.FullName) == "" || email == "" || in.Password == "" {
		return badRequest(usecase.MsgFillRequired)
	}
	if !isEmailLike(email) {
		return badRequest("invalid email")
	}
	if err := checkPassword(in.Password, in.ConfirmPassword); err != nil {
		return err
	}

	// email重複チェック（DBが必要）
	u, err := v.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return usecase.ErrInternal
	}
	if u != nil {
		return usecase.NewHTTPError(http.StatusConflict, "User already registered")
	}
	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return badRequest(usecase.MsgFillRequired)
	}
	if !isEmailLike(email) {
		return badRequest("invalid email")
	}
	return nil
}

// refresh 入力を検証
func (v *authValidator) ValidateRefresh(ctx context.Context, refreshToken string, userAgent string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return usecase.ErrUnauthorized
	}
	return nil
}

func (v *authValidator) ValidatePasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return badRequest("Please enter your email")
	}
	if !isEmailLike(email) {
		return badRequest("invalid email")
	}
	return nil
}

func (v *authValidator) ValidatePasswordResetConfirm(ctx context.Context, in usecase.PasswordResetConfirmRequest) error {
	if strings.TrimSpace(in.Token) == "" {
		return badRequest("invalid or expired reset token")
	}
	return checkPassword(in.Password, in.ConfirmPassword)
}

func checkPassword(password, confirm string) error {
	if len(password) < minPasswordLen {
		return badRequest("Password must be at least 6 characters")
	}
	if password != confirm {
		return badRequest("Passwords do not match")
	}
	return nil
}

// 表示名つき（"A <a@b>"）は受け付けない
func isEmailLike(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

func badRequest(msg string) error {
	return usecase.NewHTTPError(http.StatusBadRequest, msg)
}
