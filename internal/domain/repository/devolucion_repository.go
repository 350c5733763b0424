package repository

import "github.com/tu-usuario/compras-pro/internal/domain/entity"

// DevolucionCompraRepository puerto de persistencia de devoluciones a proveedor.
type DevolucionCompraRepository interface {
	Create(devolucion *entity.DevolucionCompra) error
	GetByID(id string) (*entity.DevolucionCompra, error)
}
