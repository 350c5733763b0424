package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appcompras "github.com/tu-usuario/compras-pro/internal/application/compras"
	appcont "github.com/tu-usuario/compras-pro/internal/application/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
)

var _ appcont.CausacionTxRunner = (*TxRunner)(nil)
var _ appcompras.ComprasTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCausacion inicia una transacción con los repos de asientos y facturas.
// El asiento y la marca de causación de la factura se confirman juntos o no
// se confirman.
func (r *TxRunner) RunCausacion(ctx context.Context, fn func(
	asientoRepo repository.AsientoContableRepository,
	facturaRepo repository.FacturaCompraRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAsientoContableRepository(tx), NewFacturaCompraRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCompras inicia una transacción con los repos del ciclo de compras
// (contadores de línea, facturas y devoluciones).
func (r *TxRunner) RunCompras(ctx context.Context, fn func(
	ordenRepo repository.OrdenCompraRepository,
	facturaRepo repository.FacturaCompraRepository,
	devolucionRepo repository.DevolucionCompraRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewOrdenCompraRepository(tx),
		NewFacturaCompraRepository(tx),
		NewDevolucionCompraRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
