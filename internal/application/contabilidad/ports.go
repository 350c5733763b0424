package contabilidad

import (
	"context"

	"github.com/tu-usuario/compras-pro/internal/domain/repository"
)

// CausacionTxRunner ejecuta una función dentro de una transacción que incluye
// los repositorios de asientos y facturas atados a esa tx. Garantiza que
// persistir el asiento y marcar la factura como causada sea atómico: o ambos
// o ninguno (nunca se emite un asiento parcial).
type CausacionTxRunner interface {
	RunCausacion(ctx context.Context, fn func(
		asientoRepo repository.AsientoContableRepository,
		facturaRepo repository.FacturaCompraRepository,
	) error) error
}
