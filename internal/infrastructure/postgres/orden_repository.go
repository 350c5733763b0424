package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/compras-pro/internal/domain"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
)

var _ repository.OrdenCompraRepository = (*OrdenCompraRepo)(nil)

// OrdenCompraRepo implementación de OrdenCompraRepository (usable con pool o tx).
// La cabecera y las líneas viven en tablas separadas; GetByID arma la orden
// completa con sus contadores de ciclo.
type OrdenCompraRepo struct {
	q Querier
}

// NewOrdenCompraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenCompraRepository(q Querier) *OrdenCompraRepo {
	return &OrdenCompraRepo{q: q}
}

// Create persiste cabecera y líneas. El número de orden por proveedor es único.
func (r *OrdenCompraRepo) Create(orden *entity.OrdenCompra) error {
	if orden.ID == "" {
		orden.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ordenes_compra
			(id, proveedor_id, numero, fecha, estado, subtotal, descuento, iva, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		orden.ID, orden.ProveedorID, orden.Numero, orden.Fecha, orden.Estado,
		orden.Subtotal, orden.Descuento, orden.IVA, orden.Total,
		orden.CreatedAt, orden.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orden %s del proveedor %s", domain.ErrDuplicate, orden.Numero, orden.ProveedorID)
		}
		return fmt.Errorf("insert orden: %w", err)
	}
	for i := range orden.Lineas {
		if err := r.crearLinea(&orden.Lineas[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrdenCompraRepo) crearLinea(l *entity.LineaOrdenCompra) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lineas_orden_compra
			(id, orden_id, producto_id, descripcion,
			 cantidad_ordenada, cantidad_recibida, cantidad_facturada, cantidad_devuelta,
			 precio_unitario, tarifa_iva, tarifa_descuento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.OrdenID, nullIfEmpty(l.ProductoID), l.Descripcion,
		l.CantidadOrdenada, l.CantidadRecibida, l.CantidadFacturada, l.CantidadDevuelta,
		l.PrecioUnitario, l.TarifaIVA, l.TarifaDescuento,
	)
	if err != nil {
		return fmt.Errorf("insert línea de orden: %w", err)
	}
	return nil
}

// GetByID obtiene la orden completa con sus líneas, o nil si no existe.
func (r *OrdenCompraRepo) GetByID(id string) (*entity.OrdenCompra, error) {
	query := `
		SELECT id, proveedor_id, numero, fecha, estado, subtotal, descuento, iva, total, created_at, updated_at
		FROM ordenes_compra WHERE id = $1`
	var o entity.OrdenCompra
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.ProveedorID, &o.Numero, &o.Fecha, &o.Estado,
		&o.Subtotal, &o.Descuento, &o.IVA, &o.Total,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden %s: %w", id, err)
	}

	lineas, err := r.lineasDe(o.ID)
	if err != nil {
		return nil, err
	}
	o.Lineas = lineas
	return &o, nil
}

func (r *OrdenCompraRepo) lineasDe(ordenID string) ([]entity.LineaOrdenCompra, error) {
	query := `
		SELECT id, orden_id, producto_id, descripcion,
		       cantidad_ordenada, cantidad_recibida, cantidad_facturada, cantidad_devuelta,
		       precio_unitario, tarifa_iva, tarifa_descuento
		FROM lineas_orden_compra WHERE orden_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ordenID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de orden %s: %w", ordenID, err)
	}
	defer rows.Close()

	var lineas []entity.LineaOrdenCompra
	for rows.Next() {
		var l entity.LineaOrdenCompra
		var productoID *string
		err := rows.Scan(
			&l.ID, &l.OrdenID, &productoID, &l.Descripcion,
			&l.CantidadOrdenada, &l.CantidadRecibida, &l.CantidadFacturada, &l.CantidadDevuelta,
			&l.PrecioUnitario, &l.TarifaIVA, &l.TarifaDescuento,
		)
		if err != nil {
			return nil, err
		}
		if productoID != nil {
			l.ProductoID = *productoID
		}
		lineas = append(lineas, l)
	}
	return lineas, rows.Err()
}

// Update actualiza la cabecera (estado y totales); las líneas se tocan con
// ActualizarLinea.
func (r *OrdenCompraRepo) Update(orden *entity.OrdenCompra) error {
	query := `
		UPDATE ordenes_compra
		SET estado = $2, subtotal = $3, descuento = $4, iva = $5, total = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		orden.ID, orden.Estado, orden.Subtotal, orden.Descuento, orden.IVA, orden.Total, orden.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update orden %s: %w", orden.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ActualizarLinea persiste los contadores del ciclo de una línea.
func (r *OrdenCompraRepo) ActualizarLinea(linea *entity.LineaOrdenCompra) error {
	query := `
		UPDATE lineas_orden_compra
		SET cantidad_recibida = $2, cantidad_facturada = $3, cantidad_devuelta = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		linea.ID, linea.CantidadRecibida, linea.CantidadFacturada, linea.CantidadDevuelta,
	)
	if err != nil {
		return fmt.Errorf("update línea %s: %w", linea.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
