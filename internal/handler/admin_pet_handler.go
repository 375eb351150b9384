package handler

import (
	"net/http"

	"github.com/jr777pal/PetNest-India/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/pets と /admin/stats をまとめる
type AdminPetHandler struct {
	pets  *usecase.AdminPetUsecase
	stats *usecase.AdminStatsUsecase
}

func NewAdminPetHandler(pets *usecase.AdminPetUsecase, stats *usecase.AdminStatsUsecase) *AdminPetHandler {
	return &AdminPetHandler{pets: pets, stats: stats}
}

type AvailabilityRequest struct {
	Available *bool `json:"available"`
}

func (h *AdminPetHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/stats", h.getStats)

	admin.GET("/pets", h.listPets)
	admin.POST("/pets", h.createPet)
	admin.POST("/pets/images", h.imageUploadURL)
	admin.PUT("/pets/:id", h.updatePet)
	admin.DELETE("/pets/:id", h.deletePet)
	admin.PATCH("/pets/:id/availability", h.setAvailability)
}

func (h *AdminPetHandler) getStats(c echo.Context) error {
	out, err := h.stats.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminPetHandler) listPets(c echo.Context) error {
	out, err := h.pets.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminPetHandler) createPet(c echo.Context) error {
	var req usecase.PetInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	p, err := h.pets.Create(c.Request().Context(), adminID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminPetHandler) updatePet(c echo.Context) error {
	var req usecase.PetInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	p, err := h.pets.Update(c.Request().Context(), adminID, c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminPetHandler) deletePet(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.pets.Delete(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminPetHandler) setAvailability(c echo.Context) error {
	var req AvailabilityRequest
	if err := c.Bind(&req); err != nil || req.Available == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.pets.SetAvailability(c.Request().Context(), adminID, c.Param("id"), *req.Available); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

// 画像はS3へ直接PUTしてもらう（署名付きURLを返すだけ）
func (h *AdminPetHandler) imageUploadURL(c echo.Context) error {
	var req usecase.ImageUploadInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.pets.ImageUploadURL(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
