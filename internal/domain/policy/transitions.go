// Package policy define la tabla estática de transiciones del ciclo de vida
// de un precinto y los campos operativos requeridos por cada estado destino.
package policy

import "github.com/jhoicas/precintos-api/internal/domain/entity"

// allowedTransitions mapea cada estado al conjunto de estados alcanzables en un paso.
// SALIDA_FABRICA y DESTRUIDO son terminales: no tienen salidas.
var allowedTransitions = map[string][]string{
	entity.StatusEntradaInventario: {entity.StatusAsignado, entity.StatusDestruido},
	entity.StatusAsignado:          {entity.StatusEntregado, entity.StatusEntradaInventario, entity.StatusDestruido},
	entity.StatusEntregado:         {entity.StatusInstalado, entity.StatusNoInstalado, entity.StatusDestruido},
	entity.StatusInstalado:         {entity.StatusSalidaFabrica, entity.StatusDestruido},
	entity.StatusNoInstalado:       {entity.StatusDestruido, entity.StatusEntradaInventario},
	entity.StatusSalidaFabrica:     {},
	entity.StatusDestruido:         {},
}

// requiredFields mapea cada estado destino a los campos que deben venir no vacíos
// para aceptar la transición. El reset a ENTRADA_INVENTARIO no exige campos.
var requiredFields = map[string][]string{
	entity.StatusAsignado:      {entity.FieldAssignedTo},
	entity.StatusEntregado:     {entity.FieldAssignedTo},
	entity.StatusInstalado:     {entity.FieldVehiclePlate, entity.FieldContainerID},
	entity.StatusNoInstalado:   {entity.FieldDeliveredTo},
	entity.StatusSalidaFabrica: {entity.FieldDestination},
	entity.StatusDestruido:     {entity.FieldObservations},
}

// IsTransitionAllowed indica si la transición from -> to está en la tabla.
// Función pura, sin efectos secundarios.
func IsTransitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedNext devuelve los estados alcanzables desde from (vacío si terminal o desconocido).
func AllowedNext(from string) []string {
	next := allowedTransitions[from]
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// RequiredFields devuelve los campos requeridos para entrar al estado to.
func RequiredFields(to string) []string {
	fields := requiredFields[to]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// MissingFields devuelve los campos requeridos por to que faltan o vienen vacíos
// en fields, en el orden de la tabla.
func MissingFields(to string, fields map[string]string) []string {
	var missing []string
	for _, name := range requiredFields[to] {
		if fields[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsValidStatus indica si el estado pertenece al ciclo de vida.
func IsValidStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

// Statuses devuelve todos los estados del ciclo de vida.
func Statuses() []string {
	return []string{
		entity.StatusEntradaInventario,
		entity.StatusAsignado,
		entity.StatusEntregado,
		entity.StatusInstalado,
		entity.StatusNoInstalado,
		entity.StatusSalidaFabrica,
		entity.StatusDestruido,
	}
}
