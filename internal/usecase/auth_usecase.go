package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jr777pal/PetNest-India/internal/config"
	"github.com/jr777pal/PetNest-India/internal/domain/model"
	"github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

// refreshtokenの有効期限
const RefreshTokenTTL = 14 * 24 * time.Hour

// パスワード再設定リンクの有効期限
const passwordResetTTL = time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in AuthRegisterRequest) error
	ValidateLogin(ctx context.Context, email string, password string) error
	ValidateRefresh(ctx context.Context, refreshToken string, userAgent string) error
	ValidatePasswordReset(ctx context.Context, email string) error
	ValidatePasswordResetConfirm(ctx context.Context, in PasswordResetConfirmRequest) error
}

// メール送信の約束（再設定リンク）
type Mailer interface {
	SendPasswordReset(ctx context.Context, to string, link string) error
}

type UserDTO struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	IsAdmin      bool   `json:"is_admin"`
	TokenVersion int    `json:"token_version"`
	IsActive     bool   `json:"is_active"`
}

type JwtAccessTokenDTO struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenVersion int    `json:"token_version"`
}

type AuthRegisterRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type AuthRegisterResponse struct {
	User    UserDTO `json:"user"`
	Message string  `json:"message"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirmRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type LoginResult struct {
	Body              AuthLoginResponse
	RefreshTokenPlain string
	CsrfTokenPlain    string
}

type RefreshResult struct {
	Body              JwtAccessTokenDTO
	RefreshTokenPlain string
	CsrfTokenPlain    string
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	roles     repository.UserRoleRepository
	rtRepo    repository.RefreshTokenRepository
	resets    repository.PasswordResetRepository
	validator AuthValidator
	mailer    Mailer
	logger    *log.Logger
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	roles repository.UserRoleRepository,
	rtRepo repository.RefreshTokenRepository,
	resets repository.PasswordResetRepository,
	validator AuthValidator,
	mailer Mailer,
	logger *log.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		roles:     roles,
		rtRepo:    rtRepo,
		resets:    resets,
		validator: validator,
		mailer:    mailer,
		logger:    logger,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*AuthRegisterResponse, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrInternal
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(req.Email),
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(pwHash),
		TokenVersion: 0,
		IsActive:     true,
	}

	//email重複はvalidatorで弾くが、同時登録はunique違反になる
	if err := u.users.Create(ctx, user); err != nil {
		u.logger.Warnf("register %s: %v", user.Email, err)
		return nil, ErrConflict
	}

	return &AuthRegisterResponse{
		User:    toUserDTO(user, false),
		Message: "Registration successful! You can now log in.",
	}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest, userAgent string) (*LoginResult, error) {
	if err := u.validator.ValidateLogin(ctx, req.Email, req.Password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil || user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "Invalid login credentials")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return nil, ErrForbidden
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "Invalid login credentials")
	}

	//last_login更新
	now := time.Now()
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		u.logger.Warnf("update last_login user=%s: %v", user.ID, err)
	}

	accessToken, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return nil, ErrInternal
	}

	//refresh token発行（DBにはhash保存）
	refreshPlain, refreshHash, err := newRandomTokenAndHash()
	if err != nil {
		return nil, ErrInternal
	}

	rt := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: refreshHash,
		UserAgent: userAgent,
		ExpiresAt: now.Add(RefreshTokenTTL),
	}
	if err := u.rtRepo.Create(ctx, rt); err != nil {
		return nil, ErrInternal
	}

	csrfPlain, _, err := newRandomTokenAndHash()
	if err != nil {
		return nil, ErrInternal
	}

	isAdmin, err := u.roles.HasRole(ctx, user.ID, model.RoleAdmin)
	if err != nil {
		return nil, ErrInternal
	}

	return &LoginResult{
		Body: AuthLoginResponse{
			User: toUserDTO(user, isAdmin),
			Token: JwtAccessTokenDTO{
				AccessToken:  accessToken,
				ExpiresIn:    expiresIn,
				TokenVersion: user.TokenVersion,
			},
		},
		RefreshTokenPlain: refreshPlain,
		CsrfTokenPlain:    csrfPlain,
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID string) (*UserDTO, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}
	if !user.IsActive {
		return nil, ErrForbidden
	}

	isAdmin, err := u.roles.HasRole(ctx, user.ID, model.RoleAdmin)
	if err != nil {
		return nil, ErrInternal
	}

	dto := toUserDTO(user, isAdmin)
	return &dto, nil
}

// ローテーション。使用済みトークンが再び来たら全トークンを失効
func (u *AuthUsecase) Refresh(ctx context.Context, refreshTokenPlain string, userAgent string) (*RefreshResult, error) {
	if err := u.validator.ValidateRefresh(ctx, refreshTokenPlain, userAgent); err != nil {
		return nil, err
	}

	rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(refreshTokenPlain))
	if err != nil || rt == nil {
		return nil, ErrUnauthorized
	}

	now := time.Now()

	//期限切れ
	if rt.ExpiresAt.Before(now) {
		return nil, ErrUnauthorized
	}
	//revoked
	if rt.RevokedAt != nil {
		return nil, ErrUnauthorized
	}
	//used済みが来たら replay → 全削除
	if rt.UsedAt != nil {
		u.logger.Warnf("refresh token replay user=%s", rt.UserID)
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return nil, ErrSecurityIncident
	}
	//user_agent違い（再認証扱い。全削除）
	if userAgent != "" && rt.UserAgent != "" && userAgent != rt.UserAgent {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return nil, ErrSecurityIncident
	}

	user, err := u.users.FindByID(ctx, rt.UserID)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}
	if !user.IsActive {
		return nil, ErrForbidden
	}

	//旧tokenをusedにする。同時に使われたら片方は失敗する
	if err := u.rtRepo.MarkUsed(ctx, rt.ID, now); err != nil {
		_ = u.rtRepo.DeleteAllByUserID(ctx, rt.UserID)
		return nil, ErrSecurityIncident
	}

	newPlain, newHash, err := newRandomTokenAndHash()
	if err != nil {
		return nil, ErrInternal
	}
	if err := u.rtRepo.Create(ctx, &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: newHash,
		UserAgent: userAgent,
		ExpiresAt: now.Add(RefreshTokenTTL),
	}); err != nil {
		return nil, ErrInternal
	}

	accessToken, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return nil, ErrInternal
	}

	csrfPlain, _, err := newRandomTokenAndHash()
	if err != nil {
		return nil, ErrInternal
	}

	return &RefreshResult{
		Body: JwtAccessTokenDTO{
			AccessToken:  accessToken,
			ExpiresIn:    expiresIn,
			TokenVersion: user.TokenVersion,
		},
		RefreshTokenPlain: newPlain,
		CsrfTokenPlain:    csrfPlain,
	}, nil
}

// refresh tokenを失効させる。見つからなくても成功扱い
func (u *AuthUsecase) Logout(ctx context.Context, refreshTokenPlain string) (*SuccessResponse, error) {
	if refreshTokenPlain != "" {
		rt, err := u.rtRepo.FindByTokenHash(ctx, hashToken(refreshTokenPlain))
		switch {
		case err == nil && rt != nil:
			if err := u.rtRepo.Revoke(ctx, rt.ID, time.Now()); err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return nil, ErrInternal
			}
		case errors.Is(err, repository.ErrRefreshTokenNotFound):
		default:
			return nil, ErrInternal
		}
	}
	return &SuccessResponse{Message: "logout success"}, nil
}

// 登録の有無に関わらず同じ応答を返す
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, req PasswordResetRequest) (*SuccessResponse, error) {
	if err := u.validator.ValidatePasswordReset(ctx, req.Email); err != nil {
		return nil, err
	}

	ok := &SuccessResponse{Message: "Password reset email sent! Check your inbox."}

	user, err := u.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil || !user.IsActive {
		return ok, nil
	}

	plain, hash, err := newRandomTokenAndHash()
	if err != nil {
		return nil, ErrInternal
	}
	if err := u.resets.Create(ctx, &model.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(passwordResetTTL),
	}); err != nil {
		return nil, ErrInternal
	}

	if err := u.mailer.SendPasswordReset(ctx, user.Email, u.resetLink(plain)); err != nil {
		u.logger.Errorf("send password reset user=%s: %v", user.ID, err)
		return nil, ErrInternal
	}
	return ok, nil
}

// 新しいパスワードを保存し、既存のセッションは全部切る
func (u *AuthUsecase) ConfirmPasswordReset(ctx context.Context, req PasswordResetConfirmRequest) (*SuccessResponse, error) {
	if err := u.validator.ValidatePasswordResetConfirm(ctx, req); err != nil {
		return nil, err
	}

	t, err := u.resets.FindByTokenHash(ctx, hashToken(req.Token))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, badRequest("invalid or expired reset token")
	}
	if err != nil {
		return nil, ErrInternal
	}

	now := time.Now()
	if t.UsedAt != nil || t.ExpiresAt.Before(now) {
		return nil, badRequest("invalid or expired reset token")
	}

	used, err := u.resets.MarkUsed(ctx, t.ID, now)
	if err != nil {
		return nil, ErrInternal
	}
	if !used {
		return nil, badRequest("invalid or expired reset token")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrInternal
	}
	if err := u.users.UpdatePasswordHash(ctx, t.UserID, string(pwHash)); err != nil {
		return nil, ErrInternal
	}
	if err := u.users.IncrementTokenVersion(ctx, t.UserID); err != nil {
		return nil, ErrInternal
	}
	if err := u.rtRepo.DeleteAllByUserID(ctx, t.UserID); err != nil {
		return nil, ErrInternal
	}

	return &SuccessResponse{Message: "Password updated"}, nil
}

func (u *AuthUsecase) resetLink(token string) string {
	base := strings.TrimRight(u.cfg.FEURL, "/")
	return base + "/auth/reset-password?token=" + url.QueryEscape(token)
}

// jwt発行。ロールはJWTに入れない（admin判定は毎回DB）
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, int, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub": user.ID,
		"tv":  user.TokenVersion,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(accessTokenTTL.Seconds()), nil
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User, isAdmin bool) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		IsAdmin:      isAdmin,
		TokenVersion: u.TokenVersion,
		IsActive:     u.IsActive,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ランダムトークン生成（平文 + DB保存hash）
func newRandomTokenAndHash() (plain string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}

	plain = base64.RawURLEncoding.EncodeToString(b)
	return plain, hashToken(plain), nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
