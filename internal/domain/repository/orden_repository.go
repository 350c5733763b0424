package repository

import "github.com/tu-usuario/compras-pro/internal/domain/entity"

// OrdenCompraRepository puerto de persistencia de órdenes de compra y sus líneas.
type OrdenCompraRepository interface {
	Create(orden *entity.OrdenCompra) error
	// GetByID devuelve la orden con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.OrdenCompra, error)
	Update(orden *entity.OrdenCompra) error
	// ActualizarLinea persiste los contadores del ciclo de una línea.
	ActualizarLinea(linea *entity.LineaOrdenCompra) error
}
