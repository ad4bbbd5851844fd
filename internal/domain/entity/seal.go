package entity

import (
	"strings"
	"time"
)

// Estados del ciclo de vida de un precinto.
const (
	StatusEntradaInventario = "ENTRADA_INVENTARIO" // en stock
	StatusAsignado          = "ASIGNADO"           // asignado a un operario
	StatusEntregado         = "ENTREGADO"          // entregado al solicitante
	StatusInstalado         = "INSTALADO"          // instalado en vehículo/contenedor
	StatusNoInstalado       = "NO_INSTALADO"       // devuelto sin instalar
	StatusSalidaFabrica     = "SALIDA_FABRICA"     // salió de fábrica (terminal)
	StatusDestruido         = "DESTRUIDO"          // destruido (terminal)
)

// Claves de campos operativos reconocidas. El merge de campos en un movimiento
// solo escribe estas claves; cualquier otra se descarta.
const (
	FieldOrderNumber  = "orderNumber"
	FieldContainerID  = "containerId"
	FieldVehiclePlate = "vehiclePlate"
	FieldAssignedTo   = "assignedTo"
	FieldDeliveredTo  = "deliveredTo"
	FieldDriverName   = "driverName"
	FieldDestination  = "destination"
	FieldObservations = "observations"
)

// Seal representa un precinto de seguridad rastreado por el sistema.
// El ID se normaliza a mayúsculas y es inmutable después de la creación.
// Los campos operativos son acumulativos: una vez escritos por un movimiento
// persisten y no se limpian en transiciones posteriores.
type Seal struct {
	ID           string
	Type         string // catálogo configurable (Botella, Cable, ...); informativo
	Status       string
	City         string // sede propietaria; solo cambia por renombre administrativo
	CreationDate time.Time
	LastMovement time.Time
	EntryUser    string // actor de la última mutación

	OrderNumber  string
	ContainerID  string
	VehiclePlate string
	AssignedTo   string
	DeliveredTo  string
	DriverName   string
	Destination  string
	Observations string

	// History en orden cronológico inverso (el más reciente primero).
	// Invariante: Status == History[0].ToStatus.
	History []MovementHistory
}

// MovementHistory es un registro de auditoría de una transición (append-only).
type MovementHistory struct {
	ID         string
	SealID     string
	Date       time.Time
	FromStatus string // vacío en el registro de creación
	ToStatus   string
	User       string
	Details    string
	// Fields snapshot de los valores crudos pasados a esa transición (opcional).
	Fields map[string]string
}

// NormalizeSealID normaliza un ID de precinto: recorta espacios y pasa a mayúsculas.
func NormalizeSealID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// IsTerminalStatus indica si un estado no admite transiciones de salida.
func IsTerminalStatus(status string) bool {
	return status == StatusSalidaFabrica || status == StatusDestruido
}

// MergeFields escribe en el precinto solo las claves operativas reconocidas.
// Valores nuevos sobreescriben los anteriores para la misma clave; las claves
// no presentes en fields quedan intactas (anotación acumulativa).
func (s *Seal) MergeFields(fields map[string]string) {
	for key, value := range fields {
		if value == "" {
			continue
		}
		switch key {
		case FieldOrderNumber:
			s.OrderNumber = value
		case FieldContainerID:
			s.ContainerID = value
		case FieldVehiclePlate:
			s.VehiclePlate = value
		case FieldAssignedTo:
			s.AssignedTo = value
		case FieldDeliveredTo:
			s.DeliveredTo = value
		case FieldDriverName:
			s.DriverName = value
		case FieldDestination:
			s.Destination = value
		case FieldObservations:
			s.Observations = value
		}
	}
}
