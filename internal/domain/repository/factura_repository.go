package repository

import (
	"time"

	"github.com/tu-usuario/compras-pro/internal/domain/entity"
)

// FacturaCompraRepository puerto de persistencia de facturas de compra.
//
// La unicidad (proveedor, número) la garantiza un constraint compuesto en la
// base de datos; Create retorna domain.ErrFacturaDuplicada cuando la
// persistencia reporta el conflicto.
type FacturaCompraRepository interface {
	Create(factura *entity.FacturaCompra) error
	// GetByID devuelve la factura con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.FacturaCompra, error)
	// MarcarCausada escribe asiento_id y causada_en exactamente una vez.
	// Retorna domain.ErrFacturaYaCausada si la factura ya tenía asiento.
	MarcarCausada(facturaID, asientoID string, causadaEn time.Time) error
}
