package http

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/precintos-api/internal/application/dto"
	"github.com/jhoicas/precintos-api/internal/application/seals"
	"github.com/jhoicas/precintos-api/internal/domain"
)

// SealHandler maneja las peticiones HTTP de precintos y movimientos (protegido).
type SealHandler struct {
	uc *seals.SealUseCase
}

// NewSealHandler construye el handler.
func NewSealHandler(uc *seals.SealUseCase) *SealHandler {
	return &SealHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar precinto
// @Tags         seals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSealRequest  true  "id, type"
// @Success      201   {object}  dto.SealResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/seals [post]
func (h *SealHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	seal, err := h.uc.CreateSeal(c.Context(), GetActor(c), in)
	if err != nil {
		return sealError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(seal)
}

// List godoc
// @Summary      Listar precintos
// @Tags         seals
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        city    query  string  false  "Filtrar por sede (solo ADMIN)"
// @Param        q       query  string  false  "Subcadena del ID"
// @Success      200  {object}  dto.SealListResponse
// @Router       /api/seals [get]
func (h *SealHandler) List(c *fiber.Ctx) error {
	var in dto.ListSealsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), GetActor(c), in)
	if err != nil {
		return sealError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener precinto con historial
// @Tags         seals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del precinto"
// @Success      200  {object}  dto.SealResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/seals/{id} [get]
func (h *SealHandler) GetByID(c *fiber.Ctx) error {
	seal, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return sealError(c, err)
	}
	return c.JSON(seal)
}

// History godoc
// @Summary      Historial de movimientos de un precinto
// @Tags         seals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del precinto"
// @Success      200  {array}  dto.MovementHistoryResponse
// @Router       /api/seals/{id}/history [get]
func (h *SealHandler) History(c *fiber.Ctx) error {
	history, err := h.uc.History(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return sealError(c, err)
	}
	return c.JSON(history)
}

// Delete godoc
// @Summary      Eliminar precinto (irreversible; requiere ADMIN y modo seguro)
// @Tags         seals
// @Security     Bearer
// @Param        id  path  string  true  "ID del precinto"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/seals/{id} [delete]
func (h *SealHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteSeal(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return sealError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Resolve godoc
// @Summary      Pre-validar lote de IDs antes de un movimiento
// @Tags         seals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolveBatchRequest  true  "ids"
// @Success      200   {object}  dto.ResolveBatchResponse
// @Router       /api/seals/resolve [post]
func (h *SealHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ResolveBatchResponse(c.Context(), GetActor(c), in)
	if err != nil {
		return sealError(c, err)
	}
	return c.JSON(out)
}

// Movement godoc
// @Summary      Transición de estado en lote (todo-o-nada)
// @Tags         seals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "ids, target, fields"
// @Success      200   {array}   dto.SealResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/seals/movement [put]
func (h *SealHandler) Movement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ApplyTransitionFromRequest(c.Context(), GetActor(c), in)
	if err != nil {
		return sealError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar precintos desde CSV (columnas ID y Tipo)
// @Tags         seals
// @Security     Bearer
// @Accept       text/csv
// @Produce      json
// @Success      200  {object}  dto.ImportResultResponse
// @Router       /api/seals/import [post]
func (h *SealHandler) Import(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "CSV vacío"})
	}
	out, err := h.uc.ImportCSV(c.Context(), GetActor(c), bytes.NewReader(body))
	if err != nil {
		return sealError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar precintos filtrados como CSV
// @Tags         seals
// @Security     Bearer
// @Produce      text/csv
// @Router       /api/seals/export [get]
func (h *SealHandler) Export(c *fiber.Ctx) error {
	var in dto.ListSealsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.Context(), GetActor(c), in, &buf); err != nil {
		return sealError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="precintos.csv"`)
	return c.Send(buf.Bytes())
}

// sealError mapea la taxonomía de errores del motor a códigos HTTP.
// Los errores estructurados nombran todos los IDs/campos ofensores en Message.
func sealError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateID):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_ID", Message: err.Error()})
	case errors.Is(err, domain.ErrIllegalTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ILLEGAL_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrMixedStatus):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "MIXED_STATUS", Message: err.Error()})
	case errors.Is(err, domain.ErrMissingField):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FIELDS", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrWrongSite):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "WRONG_SITE", Message: err.Error()})
	case errors.Is(err, domain.ErrSafeModeDisabled):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SAFE_MODE_DISABLED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrEmptyBatch), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
