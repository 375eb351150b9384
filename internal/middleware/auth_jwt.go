package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jr777pal/PetNest-India/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // string (uuid)
	CtxTokenVersionKey = "token_version" // int
)

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, tv, ok := parseBearer(c, cfg.JWTSecret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, userID)
			c.Set(CtxTokenVersionKey, tv)

			return next(c)
		}
	}
}

// トークンがあれば検証してcontextへ。無い・不正でも通す（匿名扱い）
func OptionalAuth(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, tv, ok := parseBearer(c, cfg.JWTSecret); ok {
				c.Set(CtxUserIDKey, userID)
				c.Set(CtxTokenVersionKey, tv)
			}
			return next(c)
		}
	}
}

func parseBearer(c echo.Context, secret string) (string, int, bool) {
	//Authorizationヘッダを取得
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return "", 0, false
	}

	//Bearer形式か確認してtokenを抜く
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", 0, false
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return "", 0, false
	}

	//JWTをパースして検証する
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, false
	}

	userID, err := parseString(claims["sub"])
	if err != nil || userID == "" {
		return "", 0, false
	}

	tv, err := parseInt(claims["tv"])
	if err != nil || tv < 0 {
		return "", 0, false
	}

	return userID, tv, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}

func parseInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		i64, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			return 0, err
		}
		return int(i64), nil
	default:
		return 0, errors.New("invalid int")
	}
}
