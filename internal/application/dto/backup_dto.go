package dto

import "time"

// BackupUser usuario dentro de un snapshot. Incluye el hash de password para
// que la restauración no invalide credenciales (el hash nunca sale por la API normal).
type BackupUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	City         string    `json:"city"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BackupSnapshot snapshot completo del almacén: {seals, users, cities, settings, exportedAt}.
// La restauración reemplaza el almacén completo, sin merge ni resolución de conflictos.
type BackupSnapshot struct {
	Seals      []SealResponse   `json:"seals"`
	Users      []BackupUser     `json:"users"`
	Cities     []CityResponse   `json:"cities"`
	Settings   SettingsResponse `json:"settings"`
	ExportedAt time.Time        `json:"exportedAt"`
}
