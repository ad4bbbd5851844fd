package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/precintos-api/internal/application/dto"
	"github.com/jhoicas/precintos-api/internal/application/usecase"
	"github.com/jhoicas/precintos-api/internal/domain"
)

// BackupHandler exporta y restaura el snapshot completo del almacén (solo ADMIN).
type BackupHandler struct {
	uc *usecase.BackupUseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *usecase.BackupUseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar snapshot completo {seals, users, cities, settings, exportedAt}
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BackupSnapshot
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	snapshot, err := h.uc.Export(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(snapshot)
}

// Restore godoc
// @Summary      Restaurar snapshot: reemplaza el almacén completo, sin merge
// @Tags         backup
// @Security     Bearer
// @Accept       json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/backup/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	var snapshot dto.BackupSnapshot
	if err := c.BodyParser(&snapshot); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Restore(c.Context(), &snapshot); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "snapshot inválido: estados o historial inconsistentes"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "almacén restaurado"})
}
