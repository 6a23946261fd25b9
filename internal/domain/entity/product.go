package entity

import "time"

// Product representa un producto o servicio facturable.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	SKU         string // Referencia de artículo; va en articleNo
	UnitMeasure string // Nombre de la unidad de medida; va en unit
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
