package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/jr777pal/PetNest-India/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	refreshCookieName = "refresh_token"
	csrfCookieName    = "csrf_token"
	csrfHeaderName    = "X-CSRF-Token"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	refreshTTL   time.Duration // refresh/csrf cookie の有効期限
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase, refreshTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{uc: uc, refreshTTL: refreshTTL, cookieSecure: cookieSecure}
}

// public: 登録・ログイン・リフレッシュ・再設定 / authed: me・logout
func (h *AuthHandler) RegisterRoutes(public, authed *echo.Group) {
	public.POST("/auth/register", h.register)
	public.POST("/auth/login", h.login)
	public.POST("/auth/refresh", h.refresh)
	public.POST("/auth/password-reset", h.requestPasswordReset)
	public.POST("/auth/password-reset/confirm", h.confirmPasswordReset)

	authed.GET("/auth/me", h.me)
	authed.POST("/auth/logout", h.logout)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// User-Agentを取得（refreshtokenに紐付ける）
	out, err := h.uc.Login(c.Request().Context(), req, c.Request().UserAgent())
	if err != nil {
		return writeError(c, err)
	}

	h.setAuthCookies(c, out.RefreshTokenPlain, out.CsrfTokenPlain)
	return c.JSON(http.StatusOK, out.Body)
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// CSRF Double Submit（cookie csrf_token と header X-CSRF-Token が同じ値）
func (h *AuthHandler) refresh(c echo.Context) error {
	if !checkCsrf(c) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid csrf token"})
	}

	rc, err := c.Cookie(refreshCookieName)
	if err != nil || rc.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Refresh(c.Request().Context(), rc.Value, c.Request().UserAgent())
	if err != nil {
		//replay検知時はcookieも消す
		if errors.Is(err, usecase.ErrSecurityIncident) {
			h.clearAuthCookies(c)
		}
		return writeError(c, err)
	}

	h.setAuthCookies(c, out.RefreshTokenPlain, out.CsrfTokenPlain)
	return c.JSON(http.StatusOK, out.Body)
}

func (h *AuthHandler) logout(c echo.Context) error {
	if !checkCsrf(c) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid csrf token"})
	}

	plain := ""
	if rc, err := c.Cookie(refreshCookieName); err == nil {
		plain = rc.Value
	}

	out, err := h.uc.Logout(c.Request().Context(), plain)
	if err != nil {
		return writeError(c, err)
	}

	h.clearAuthCookies(c)
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) requestPasswordReset(c echo.Context) error {
	var req usecase.PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.RequestPasswordReset(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) confirmPasswordReset(c echo.Context) error {
	var req usecase.PasswordResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.ConfirmPasswordReset(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) setAuthCookies(c echo.Context, refreshPlain, csrfPlain string) {
	exp := time.Now().Add(h.refreshTTL)

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshPlain,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
	// JSから読む必要があるのでHttpOnlyにしない
	c.SetCookie(&http.Cookie{
		Name:     csrfCookieName,
		Value:    csrfPlain,
		Path:     "/",
		HttpOnly: false,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	for _, name := range []string{refreshCookieName, csrfCookieName} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: name == refreshCookieName,
			Secure:   h.cookieSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

func checkCsrf(c echo.Context) bool {
	header := c.Request().Header.Get(csrfHeaderName)
	cookie, err := c.Cookie(csrfCookieName)
	if err != nil || header == "" || cookie.Value == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) == 1
}
