package handler

import (
	"net/http"

	"github.com/jr777pal/PetNest-India/internal/usecase"
	"github.com/jr777pal/PetNest-India/internal/wishlist"

	"github.com/labstack/echo/v4"
)

// ブラウザごとのID。ログイン不要
const clientIDHeader = "X-Client-ID"

type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

func NewWishlistHandler(uc *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

func (h *WishlistHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/wishlist", h.list)
	g.GET("/wishlist/:name", h.contains)
	g.POST("/wishlist", h.add)
	g.POST("/wishlist/toggle", h.toggle)
	g.DELETE("/wishlist/:name", h.remove)
}

func (h *WishlistHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context(), c.Request().Header.Get(clientIDHeader))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *WishlistHandler) contains(c echo.Context) error {
	out, err := h.uc.Contains(c.Request().Context(), c.Request().Header.Get(clientIDHeader), c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) add(c echo.Context) error {
	var req wishlist.Item
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items, err := h.uc.Add(c.Request().Context(), c.Request().Header.Get(clientIDHeader), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *WishlistHandler) toggle(c echo.Context) error {
	var req wishlist.Item
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Toggle(c.Request().Context(), c.Request().Header.Get(clientIDHeader), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) remove(c echo.Context) error {
	items, err := h.uc.Remove(c.Request().Context(), c.Request().Header.Get(clientIDHeader), c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
