package entity

import "time"

// PeriodoContable representa un mes calendario contable.
// Abierto/cerrado lo muta el proceso externo de cierre, nunca este núcleo.
type PeriodoContable struct {
	ID        string
	Ano       int
	Mes       int // 1..12
	Abierto   bool
	CerradoEn *time.Time
}
