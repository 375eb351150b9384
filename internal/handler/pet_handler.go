package handler

import (
	"net/http"

	"github.com/jr777pal/PetNest-India/internal/domain/catalog"
	"github.com/jr777pal/PetNest-India/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /pets の公開API
type PetHandler struct {
	uc *usecase.CatalogUsecase
}

func NewPetHandler(uc *usecase.CatalogUsecase) *PetHandler {
	return &PetHandler{uc: uc}
}

func (h *PetHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/pets", h.list)
	g.GET("/pets/featured", h.featured)
	g.GET("/pets/:id", h.detail)
}

// type必須。他は未指定なら all / default
func (h *PetHandler) list(c echo.Context) error {
	f := catalog.Filter{
		SortBy:     c.QueryParam("sort_by"),
		Age:        c.QueryParam("age"),
		Gender:     c.QueryParam("gender"),
		PriceRange: c.QueryParam("price_range"),
	}

	pets, err := h.uc.List(c.Request().Context(), c.QueryParam("type"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pets)
}

func (h *PetHandler) featured(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Featured())
}

func (h *PetHandler) detail(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
