package handler

import (
	"net/http"

	"github.com/jr777pal/PetNest-India/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdoptionHandler struct {
	uc *usecase.AdoptionUsecase
}

func NewAdoptionHandler(uc *usecase.AdoptionUsecase) *AdoptionHandler {
	return &AdoptionHandler{uc: uc}
}

// optional: 匿名可（ログイン中ならuser_idを紐付ける）
func (h *AdoptionHandler) RegisterRoutes(optional, admin *echo.Group) {
	optional.POST("/adoption-requests", h.submit)
	admin.GET("/adoption-requests", h.list)
}

func (h *AdoptionHandler) submit(c echo.Context) error {
	var req usecase.AdoptionRequestInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userID, _ := getUserIDFromContext(c)
	out, err := h.uc.Submit(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdoptionHandler) list(c echo.Context) error {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
	}

	out, err := h.uc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
