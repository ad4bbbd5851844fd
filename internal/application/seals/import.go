package seals

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/precintos-api/internal/application/dto"
	"github.com/jhoicas/precintos-api/internal/domain"
	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// ImportCSV registra en lote precintos desde un CSV con columnas ID (o id) y
// Tipo. Cada fila válida entra en ENTRADA_INVENTARIO en la sede del actor.
// Los IDs duplicados se omiten y se cuentan; no abortan la importación.
func (uc *SealUseCase) ImportCSV(ctx context.Context, actor Actor, r io.Reader) (*dto.ImportResultResponse, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera CSV: %w", err)
	}
	idCol, typeCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			idCol = i
		case "tipo", "type":
			typeCol = i
		}
	}
	if idCol < 0 || typeCol < 0 {
		return nil, fmt.Errorf("CSV sin columnas ID/Tipo: %w", domain.ErrInvalidInput)
	}

	result := &dto.ImportResultResponse{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila CSV: %w", err)
		}
		if idCol >= len(record) || typeCol >= len(record) {
			continue
		}
		in := dto.CreateSealRequest{ID: record[idCol], Type: record[typeCol]}
		_, err = uc.CreateSeal(ctx, actor, in)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, domain.ErrDuplicateID):
			result.Duplicates++
			result.Skipped = append(result.Skipped, strings.ToUpper(strings.TrimSpace(record[idCol])))
		case errors.Is(err, domain.ErrInvalidInput):
			result.Skipped = append(result.Skipped, strings.TrimSpace(record[idCol]))
		default:
			return nil, err
		}
	}
	return result, nil
}

// ExportCSV escribe el listado filtrado de precintos como CSV.
// Un GESTOR queda forzado a su propia sede, igual que en List.
func (uc *SealUseCase) ExportCSV(ctx context.Context, actor Actor, in dto.ListSealsRequest, w io.Writer) error {
	filter := repository.SealFilter{
		City:    in.City,
		Status:  in.Status,
		IDQuery: in.Q,
	}
	if actor.Role != entity.RoleAdmin {
		filter.City = actor.City
	}
	list, err := uc.sealRepo.List(filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"ID", "Tipo", "Estado", "Sede", "FechaCreacion", "UltimoMovimiento", "Usuario"}); err != nil {
		return err
	}
	for _, s := range list {
		row := []string{
			s.ID, s.Type, s.Status, s.City,
			s.CreationDate.Format("2006-01-02 15:04:05"),
			s.LastMovement.Format("2006-01-02 15:04:05"),
			s.EntryUser,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
