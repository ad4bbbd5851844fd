package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/precintos-api/internal/application/dto"
	"github.com/jhoicas/precintos-api/internal/application/usecase"
	"github.com/jhoicas/precintos-api/internal/domain"
)

// CityHandler maneja las sedes.
type CityHandler struct {
	uc *usecase.CityUseCase
}

// NewCityHandler construye el handler.
func NewCityHandler(uc *usecase.CityUseCase) *CityHandler {
	return &CityHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sede
// @Tags         cities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCityRequest  true  "name"
// @Success      201   {object}  dto.CityResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cities [post]
func (h *CityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	city, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateID) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_NAME", Message: "la sede ya existe"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(city)
}

// List godoc
// @Summary      Listar sedes
// @Tags         cities
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CityResponse
// @Router       /api/cities [get]
func (h *CityHandler) List(c *fiber.Ctx) error {
	cities, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cities)
}

// Rename godoc
// @Summary      Renombrar sede (cascadea a precintos y usuarios)
// @Tags         cities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sede"
// @Param        body  body  dto.RenameCityRequest  true  "name"
// @Success      200   {object}  dto.CityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cities/{id} [put]
func (h *CityHandler) Rename(c *fiber.Ctx) error {
	var in dto.RenameCityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	city, err := h.uc.Rename(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la sede no existe"})
		}
		if errors.Is(err, domain.ErrDuplicateID) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_NAME", Message: "ya existe una sede con ese nombre"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(city)
}

// Delete godoc
// @Summary      Eliminar sede
// @Tags         cities
// @Security     Bearer
// @Param        id  path  string  true  "ID de la sede"
// @Success      204
// @Router       /api/cities/{id} [delete]
func (h *CityHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
