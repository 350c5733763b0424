package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/compras-pro/internal/domain"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
)

var _ repository.FacturaCompraRepository = (*FacturaCompraRepo)(nil)

// FacturaCompraRepo implementación de FacturaCompraRepository (usable con pool o tx).
//
// La tabla lleva el constraint único (proveedor_id, numero): la detección de
// facturas duplicadas es responsabilidad de la base de datos, no de una
// comparación en memoria que pierde la carrera entre dos registros simultáneos.
type FacturaCompraRepo struct {
	q Querier
}

// NewFacturaCompraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFacturaCompraRepository(q Querier) *FacturaCompraRepo {
	return &FacturaCompraRepo{q: q}
}

// Create persiste cabecera y líneas. Un (proveedor, número) repetido retorna
// domain.ErrFacturaDuplicada.
func (r *FacturaCompraRepo) Create(factura *entity.FacturaCompra) error {
	if factura.ID == "" {
		factura.ID = uuid.New().String()
	}
	query := `
		INSERT INTO facturas_compra
			(id, orden_id, proveedor_id, numero, fecha, tipo_compra, tipo_transaccion,
			 subtotal, descuento, iva, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		factura.ID, nullIfEmpty(factura.OrdenID), factura.ProveedorID, factura.Numero,
		factura.Fecha, factura.TipoCompra, factura.TipoTransaccion,
		factura.Subtotal, factura.Descuento, factura.IVA, factura.Total,
		factura.CreatedAt, factura.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: proveedor %s, número %s", domain.ErrFacturaDuplicada, factura.ProveedorID, factura.Numero)
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	for i := range factura.Lineas {
		if err := r.crearLinea(&factura.Lineas[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *FacturaCompraRepo) crearLinea(l *entity.LineaFacturaCompra) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lineas_factura_compra
			(id, factura_id, linea_orden_id, producto_id, cantidad,
			 precio_unitario, tarifa_iva, tarifa_descuento,
			 subtotal, descuento, iva, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.FacturaID, nullIfEmpty(l.LineaOrdenID), nullIfEmpty(l.ProductoID), l.Cantidad,
		l.PrecioUnitario, l.TarifaIVA, l.TarifaDescuento,
		l.Subtotal, l.Descuento, l.IVA, l.Total,
	)
	if err != nil {
		return fmt.Errorf("insert línea de factura: %w", err)
	}
	return nil
}

// GetByID obtiene la factura completa con sus líneas, o nil si no existe.
func (r *FacturaCompraRepo) GetByID(id string) (*entity.FacturaCompra, error) {
	query := `
		SELECT id, orden_id, proveedor_id, numero, fecha, tipo_compra, tipo_transaccion,
		       subtotal, descuento, iva, total, asiento_id, causada_en, created_at, updated_at
		FROM facturas_compra WHERE id = $1`
	var f entity.FacturaCompra
	var ordenID, asientoID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &ordenID, &f.ProveedorID, &f.Numero, &f.Fecha, &f.TipoCompra, &f.TipoTransaccion,
		&f.Subtotal, &f.Descuento, &f.IVA, &f.Total,
		&asientoID, &f.CausadaEn, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura %s: %w", id, err)
	}
	if ordenID != nil {
		f.OrdenID = *ordenID
	}
	if asientoID != nil {
		f.AsientoID = *asientoID
	}

	lineas, err := r.lineasDe(f.ID)
	if err != nil {
		return nil, err
	}
	f.Lineas = lineas
	return &f, nil
}

func (r *FacturaCompraRepo) lineasDe(facturaID string) ([]entity.LineaFacturaCompra, error) {
	query := `
		SELECT id, factura_id, linea_orden_id, producto_id, cantidad,
		       precio_unitario, tarifa_iva, tarifa_descuento,
		       subtotal, descuento, iva, total
		FROM lineas_factura_compra WHERE factura_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, facturaID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de factura %s: %w", facturaID, err)
	}
	defer rows.Close()

	var lineas []entity.LineaFacturaCompra
	for rows.Next() {
		var l entity.LineaFacturaCompra
		var lineaOrdenID, productoID *string
		err := rows.Scan(
			&l.ID, &l.FacturaID, &lineaOrdenID, &productoID, &l.Cantidad,
			&l.PrecioUnitario, &l.TarifaIVA, &l.TarifaDescuento,
			&l.Subtotal, &l.Descuento, &l.IVA, &l.Total,
		)
		if err != nil {
			return nil, err
		}
		if lineaOrdenID != nil {
			l.LineaOrdenID = *lineaOrdenID
		}
		if productoID != nil {
			l.ProductoID = *productoID
		}
		lineas = append(lineas, l)
	}
	return lineas, rows.Err()
}

// MarcarCausada escribe asiento_id y causada_en exactamente una vez.
// El WHERE asiento_id IS NULL hace que dos procesos compitiendo por causar la
// misma factura resuelvan en la base de datos: el segundo afecta cero filas y
// recibe domain.ErrFacturaYaCausada.
func (r *FacturaCompraRepo) MarcarCausada(facturaID, asientoID string, causadaEn time.Time) error {
	query := `
		UPDATE facturas_compra
		SET asiento_id = $2, causada_en = $3, updated_at = now()
		WHERE id = $1 AND asiento_id IS NULL`
	tag, err := r.q.Exec(context.Background(), query, facturaID, asientoID, causadaEn)
	if err != nil {
		return fmt.Errorf("marcar factura %s causada: %w", facturaID, err)
	}
	if tag.RowsAffected() == 0 {
		// O la factura no existe o ya tiene asiento; distinguir con una lectura.
		existe, err := r.GetByID(facturaID)
		if err != nil {
			return err
		}
		if existe == nil {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: factura %s, asiento %s", domain.ErrFacturaYaCausada, facturaID, existe.AsientoID)
	}
	return nil
}
