package dto

import "time"

// UpdateSettingsRequest body para PUT /api/settings (solo ADMIN).
type UpdateSettingsRequest struct {
	SafeMode  *bool    `json:"safe_mode,omitempty"`
	SealTypes []string `json:"seal_types,omitempty"`
}

// SettingsResponse configuración global vigente.
type SettingsResponse struct {
	SafeMode  bool      `json:"safe_mode"`
	SealTypes []string  `json:"seal_types"`
	UpdatedAt time.Time `json:"updated_at"`
}
