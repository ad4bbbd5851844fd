package entity

import "time"

// City representa una sede física que posee un subconjunto de precintos y usuarios.
type City struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
