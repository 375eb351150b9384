package middleware

import (
	"net/http"

	"github.com/jr777pal/PetNest-India/internal/domain/model"
	"github.com/jr777pal/PetNest-India/internal/repository"

	"github.com/labstack/echo/v4"
)

// adminロールは毎回DBで確認（JWTには入れない）
func AdminRoleGuard(roles repository.UserRoleRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserIDKey).(string)
			if !ok || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			isAdmin, err := roles.HasRole(c.Request().Context(), userID, model.RoleAdmin)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			if !isAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
