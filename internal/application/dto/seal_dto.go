package dto

import "time"

// CreateSealRequest body para POST /api/seals.
type CreateSealRequest struct {
	ID   string `json:"id" validate:"required"`
	Type string `json:"type" validate:"required"`
}

// ListSealsRequest filtros para GET /api/seals.
type ListSealsRequest struct {
	Status string `query:"status"`
	City   string `query:"city"` // solo ADMIN puede consultar otra sede
	Q      string `query:"q"`    // subcadena del ID
	PageRequest
}

// MovementFields campos operativos que acompañan una transición.
// Solo se validan/escriben las claves reconocidas por el dominio.
type MovementFields struct {
	OrderNumber  string `json:"order_number,omitempty"`
	ContainerID  string `json:"container_id,omitempty"`
	VehiclePlate string `json:"vehicle_plate,omitempty"`
	AssignedTo   string `json:"assigned_to,omitempty"`
	DeliveredTo  string `json:"delivered_to,omitempty"`
	DriverName   string `json:"driver_name,omitempty"`
	Destination  string `json:"destination,omitempty"`
	Observations string `json:"observations,omitempty"`
}

// MovementRequest body para PUT /api/seals/movement (transición en lote).
type MovementRequest struct {
	IDs    []string       `json:"ids" validate:"required,min=1"`
	Target string         `json:"target" validate:"required"`
	Fields MovementFields `json:"fields"`
}

// ResolveBatchRequest body para POST /api/seals/resolve.
type ResolveBatchRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// ResolveBatchResponse partición del lote antes de ofrecer una transición.
type ResolveBatchResponse struct {
	Found        []SealResponse `json:"found"`
	NotFound     []string       `json:"not_found"`
	WrongSite    []string       `json:"wrong_site"`
	CommonStatus string         `json:"common_status,omitempty"` // vacío si los encontrados mezclan estados
	AllowedNext  []string       `json:"allowed_next,omitempty"`
}

// MovementHistoryResponse un registro del historial de un precinto.
type MovementHistoryResponse struct {
	Date       time.Time         `json:"date"`
	FromStatus string            `json:"from_status,omitempty"`
	ToStatus   string            `json:"to_status"`
	User       string            `json:"user"`
	Details    string            `json:"details"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// SealResponse salida de un precinto.
type SealResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	City         string    `json:"city"`
	CreationDate time.Time `json:"creation_date"`
	LastMovement time.Time `json:"last_movement"`
	EntryUser    string    `json:"entry_user"`

	OrderNumber  string `json:"order_number,omitempty"`
	ContainerID  string `json:"container_id,omitempty"`
	VehiclePlate string `json:"vehicle_plate,omitempty"`
	AssignedTo   string `json:"assigned_to,omitempty"`
	DeliveredTo  string `json:"delivered_to,omitempty"`
	DriverName   string `json:"driver_name,omitempty"`
	Destination  string `json:"destination,omitempty"`
	Observations string `json:"observations,omitempty"`

	History []MovementHistoryResponse `json:"history,omitempty"`
}

// SealListResponse listado de precintos con paginación.
type SealListResponse struct {
	Items []SealResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ImportResultResponse resumen de una importación CSV.
type ImportResultResponse struct {
	Created    int      `json:"created"`
	Duplicates int      `json:"duplicates"`
	Skipped    []string `json:"skipped,omitempty"` // IDs duplicados u inválidos
}
