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

var _ repository.AsientoContableRepository = (*AsientoContableRepo)(nil)

// AsientoContableRepo implementación de AsientoContableRepository (usable con pool o tx).
// Los renglones van en movimientos_contables con la secuencia densa que trae
// el asiento; la tabla los devuelve siempre en ese orden.
type AsientoContableRepo struct {
	q Querier
}

// NewAsientoContableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAsientoContableRepository(q Querier) *AsientoContableRepo {
	return &AsientoContableRepo{q: q}
}

// Create persiste el asiento completo: cabecera y movimientos.
func (r *AsientoContableRepo) Create(asiento *entity.AsientoContable) error {
	if asiento.ID == "" {
		asiento.ID = uuid.New().String()
	}
	query := `
		INSERT INTO asientos_contables
			(id, fecha, descripcion, documento_origen, numero_documento,
			 total_debito, total_credito, contabilizado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		asiento.ID, asiento.Fecha, asiento.Descripcion,
		asiento.DocumentoOrigen, asiento.NumeroDocumento,
		asiento.TotalDebito, asiento.TotalCredito, asiento.Contabilizado,
		asiento.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert asiento: %w", err)
	}

	lineaQuery := `
		INSERT INTO movimientos_contables
			(asiento_id, secuencia, cuenta_codigo, cuenta_nombre, descripcion, debito, credito, tercero_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, m := range asiento.Movimientos {
		_, err := r.q.Exec(context.Background(), lineaQuery,
			asiento.ID, m.Secuencia, m.CuentaCodigo, m.CuentaNombre, m.Descripcion,
			m.Debito, m.Credito, nullIfEmpty(m.TerceroID),
		)
		if err != nil {
			return fmt.Errorf("insert movimiento %d del asiento %s: %w", m.Secuencia, asiento.ID, err)
		}
	}
	return nil
}

// GetByID obtiene el asiento completo con sus movimientos, o nil si no existe.
func (r *AsientoContableRepo) GetByID(id string) (*entity.AsientoContable, error) {
	query := `
		SELECT id, fecha, descripcion, documento_origen, numero_documento,
		       total_debito, total_credito, contabilizado, created_at
		FROM asientos_contables WHERE id = $1`
	var a entity.AsientoContable
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Fecha, &a.Descripcion, &a.DocumentoOrigen, &a.NumeroDocumento,
		&a.TotalDebito, &a.TotalCredito, &a.Contabilizado, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asiento %s: %w", id, err)
	}

	movQuery := `
		SELECT secuencia, cuenta_codigo, cuenta_nombre, descripcion, debito, credito, tercero_id
		FROM movimientos_contables WHERE asiento_id = $1
		ORDER BY secuencia`
	rows, err := r.q.Query(context.Background(), movQuery, id)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos del asiento %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m entity.MovimientoContable
		var terceroID *string
		err := rows.Scan(&m.Secuencia, &m.CuentaCodigo, &m.CuentaNombre, &m.Descripcion, &m.Debito, &m.Credito, &terceroID)
		if err != nil {
			return nil, err
		}
		if terceroID != nil {
			m.TerceroID = *terceroID
		}
		a.Movimientos = append(a.Movimientos, m)
	}
	return &a, rows.Err()
}

// MarcarContabilizado confirma el asiento una única vez.
func (r *AsientoContableRepo) MarcarContabilizado(id string) error {
	query := `
		UPDATE asientos_contables SET contabilizado = true
		WHERE id = $1 AND contabilizado = false`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("marcar asiento %s contabilizado: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: asiento %s inexistente o ya contabilizado", domain.ErrConflict, id)
	}
	return nil
}
