package entity

import "time"

// Tipos de precinto por defecto del catálogo configurable.
var DefaultSealTypes = []string{"Botella", "Cable"}

// Settings configuración global de la aplicación.
// SafeMode habilita la eliminación irreversible de precintos (solo ADMIN).
type Settings struct {
	SafeMode  bool
	SealTypes []string
	UpdatedAt time.Time
}
