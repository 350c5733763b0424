package repository

import "github.com/tu-usuario/compras-pro/internal/domain/entity"

// AsientoContableRepository puerto de persistencia de asientos.
// El asiento se crea con contabilizado=false; MarcarContabilizado lo confirma
// una única vez (colaborador de contabilización).
type AsientoContableRepository interface {
	Create(asiento *entity.AsientoContable) error
	GetByID(id string) (*entity.AsientoContable, error)
	MarcarContabilizado(id string) error
}
