package repository

import "github.com/tu-usuario/compras-pro/internal/domain/entity"

// ProveedorRepository puerto de persistencia de proveedores.
type ProveedorRepository interface {
	Create(proveedor *entity.Proveedor) error
	GetByID(id string) (*entity.Proveedor, error)
	Listar() ([]entity.Proveedor, error)
	// ActualizarTercero asocia el registro de tercero creado tarde.
	ActualizarTercero(proveedorID, terceroID string) error
}
