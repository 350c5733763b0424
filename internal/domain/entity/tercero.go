package entity

import "time"

// Tercero es un registro del directorio de terceros contables.
// Se exige en los renglones crédito de retención y en la cuenta por pagar.
type Tercero struct {
	ID              string
	NumeroDocumento string // NIT o cédula, solo dígitos (con DV para NIT)
	Nombre          string
	Activo          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
