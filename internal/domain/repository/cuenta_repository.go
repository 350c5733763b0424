package repository

import "github.com/tu-usuario/compras-pro/internal/domain/entity"

// CuentaContableRepository puerto de lectura del plan de cuentas.
type CuentaContableRepository interface {
	// GetByCodigo devuelve la cuenta o nil si no existe.
	GetByCodigo(codigo string) (*entity.CuentaContable, error)
	Listar() ([]entity.CuentaContable, error)
}
