package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
)

var _ repository.DevolucionCompraRepository = (*DevolucionCompraRepo)(nil)

// DevolucionCompraRepo implementación de DevolucionCompraRepository (usable con pool o tx).
type DevolucionCompraRepo struct {
	q Querier
}

// NewDevolucionCompraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDevolucionCompraRepository(q Querier) *DevolucionCompraRepo {
	return &DevolucionCompraRepo{q: q}
}

// Create persiste la devolución con sus líneas.
func (r *DevolucionCompraRepo) Create(devolucion *entity.DevolucionCompra) error {
	if devolucion.ID == "" {
		devolucion.ID = uuid.New().String()
	}
	query := `
		INSERT INTO devoluciones_compra
			(id, factura_id, proveedor_id, fecha, motivo, subtotal, descuento, iva, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		devolucion.ID, devolucion.FacturaID, devolucion.ProveedorID, devolucion.Fecha,
		nullIfEmpty(devolucion.Motivo),
		devolucion.Subtotal, devolucion.Descuento, devolucion.IVA, devolucion.Total,
		devolucion.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert devolución: %w", err)
	}

	lineaQuery := `
		INSERT INTO lineas_devolucion_compra
			(id, devolucion_id, linea_orden_id, producto_id, cantidad, subtotal, descuento, iva, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range devolucion.Lineas {
		l := &devolucion.Lineas[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), lineaQuery,
			l.ID, l.DevolucionID, nullIfEmpty(l.LineaOrdenID), nullIfEmpty(l.ProductoID),
			l.Cantidad, l.Subtotal, l.Descuento, l.IVA, l.Total,
		)
		if err != nil {
			return fmt.Errorf("insert línea de devolución: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la devolución con sus líneas, o nil si no existe.
func (r *DevolucionCompraRepo) GetByID(id string) (*entity.DevolucionCompra, error) {
	query := `
		SELECT id, factura_id, proveedor_id, fecha, motivo, subtotal, descuento, iva, total, created_at
		FROM devoluciones_compra WHERE id = $1`
	var d entity.DevolucionCompra
	var motivo *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.FacturaID, &d.ProveedorID, &d.Fecha, &motivo,
		&d.Subtotal, &d.Descuento, &d.IVA, &d.Total, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get devolución %s: %w", id, err)
	}
	if motivo != nil {
		d.Motivo = *motivo
	}

	lineaQuery := `
		SELECT id, devolucion_id, linea_orden_id, producto_id, cantidad, subtotal, descuento, iva, total
		FROM lineas_devolucion_compra WHERE devolucion_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), lineaQuery, id)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de devolución %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.LineaDevolucionCompra
		var lineaOrdenID, productoID *string
		err := rows.Scan(&l.ID, &l.DevolucionID, &lineaOrdenID, &productoID, &l.Cantidad, &l.Subtotal, &l.Descuento, &l.IVA, &l.Total)
		if err != nil {
			return nil, err
		}
		if lineaOrdenID != nil {
			l.LineaOrdenID = *lineaOrdenID
		}
		if productoID != nil {
			l.ProductoID = *productoID
		}
		d.Lineas = append(d.Lineas, l)
	}
	return &d, rows.Err()
}
