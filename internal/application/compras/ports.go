package compras

import (
	"context"

	"github.com/tu-usuario/compras-pro/internal/domain/repository"
)

// ComprasTxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios del ciclo de compras atados a esa tx. Los contadores de las
// líneas y el documento (factura o devolución) se escriben atómicamente.
type ComprasTxRunner interface {
	RunCompras(ctx context.Context, fn func(
		ordenRepo repository.OrdenCompraRepository,
		facturaRepo repository.FacturaCompraRepository,
		devolucionRepo repository.DevolucionCompraRepository,
	) error) error
}
