package handler

import (
	"strconv"

	"github.com/jr777pal/PetNest-India/internal/middleware"
	"github.com/jr777pal/PetNest-India/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// usecaseのエラーを {error: msg} に変換して返す
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	he := usecase.ToHTTPError(err)
	return c.JSON(he.Status, ErrorResponse{Error: he.Message})
}

// middleware.AuthJWT が c.Set("user_id", string) した値を取り出す
func getUserIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// 空ならdef。数値でなければエラー
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
