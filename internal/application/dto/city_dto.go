package dto

import "time"

// CreateCityRequest body para POST /api/cities.
type CreateCityRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// RenameCityRequest body para PUT /api/cities/:id.
// El renombre cascadea a precintos y usuarios de la sede.
type RenameCityRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CityResponse salida de una sede.
type CityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
