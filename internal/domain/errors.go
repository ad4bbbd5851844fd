package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrDuplicateID        = errors.New("el precinto ya está registrado")
	ErrIllegalTransition  = errors.New("transición de estado no permitida")
	ErrMissingField       = errors.New("faltan campos requeridos para la transición")
	ErrMixedStatus        = errors.New("los precintos del lote no comparten el mismo estado")
	ErrWrongSite          = errors.New("el precinto pertenece a otra sede")
	ErrEmptyBatch         = errors.New("el lote está vacío")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrSafeModeDisabled   = errors.New("el modo seguro no está activado")
)

// DuplicateIDError indica que el ID de precinto ya existe en la colección.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("el precinto %s ya está registrado", e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// IllegalTransitionError indica una transición fuera de la tabla permitida.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("transición no permitida: %s -> %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error { return ErrIllegalTransition }

// MissingFieldsError nombra todos los campos requeridos ausentes, no solo el primero,
// para que el operador corrija la entrada en una sola pasada.
type MissingFieldsError struct {
	Target string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("faltan campos requeridos para %s: %s", e.Target, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingField }

// MixedStatusError indica que el lote mezcla precintos en estados distintos.
type MixedStatusError struct {
	Statuses []string
}

func (e *MixedStatusError) Error() string {
	return fmt.Sprintf("el lote mezcla estados distintos: %s", strings.Join(e.Statuses, ", "))
}

func (e *MixedStatusError) Unwrap() error { return ErrMixedStatus }

// SealsNotFoundError nombra todos los IDs inexistentes del lote.
type SealsNotFoundError struct {
	IDs []string
}

func (e *SealsNotFoundError) Error() string {
	return fmt.Sprintf("los precintos [%s] no existen", strings.Join(e.IDs, ", "))
}

func (e *SealsNotFoundError) Unwrap() error { return ErrNotFound }

// WrongSiteError nombra todos los IDs que pertenecen a otra sede.
type WrongSiteError struct {
	IDs []string
}

func (e *WrongSiteError) Error() string {
	return fmt.Sprintf("los precintos [%s] pertenecen a otra sede", strings.Join(e.IDs, ", "))
}

func (e *WrongSiteError) Unwrap() error { return ErrWrongSite }
