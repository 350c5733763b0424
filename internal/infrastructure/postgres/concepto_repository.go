package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
)

var _ repository.ConceptoRetencionRepository = (*ConceptoRetencionRepo)(nil)

// ConceptoRetencionRepo implementación de ConceptoRetencionRepository (usable con pool o tx).
type ConceptoRetencionRepo struct {
	q Querier
}

// NewConceptoRetencionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConceptoRetencionRepository(q Querier) *ConceptoRetencionRepo {
	return &ConceptoRetencionRepo{q: q}
}

const conceptoColumns = `id, codigo, nombre, tipo, tarifa, base_minima_uvt, base_minima_pesos,
	       tipo_persona, declarante, tipo_transaccion, cuenta_contable, codigo_municipio, activo`

// ListarActivos devuelve el catálogo de conceptos activos en orden estable.
func (r *ConceptoRetencionRepo) ListarActivos() ([]entity.ConceptoRetencion, error) {
	query := `
		SELECT ` + conceptoColumns + `
		FROM conceptos_retencion
		WHERE activo = true
		ORDER BY tipo, codigo`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("listar conceptos: %w", err)
	}
	defer rows.Close()

	var conceptos []entity.ConceptoRetencion
	for rows.Next() {
		c, err := scanConcepto(rows)
		if err != nil {
			return nil, err
		}
		conceptos = append(conceptos, c)
	}
	return conceptos, rows.Err()
}

// GetByCodigo obtiene un concepto por su código, o nil si no existe.
func (r *ConceptoRetencionRepo) GetByCodigo(codigo string) (*entity.ConceptoRetencion, error) {
	query := `
		SELECT ` + conceptoColumns + `
		FROM conceptos_retencion WHERE codigo = $1`
	row := r.q.QueryRow(context.Background(), query, codigo)
	c, err := scanConcepto(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get concepto %s: %w", codigo, err)
	}
	return &c, nil
}

func scanConcepto(row pgx.Row) (entity.ConceptoRetencion, error) {
	var c entity.ConceptoRetencion
	var cuenta, municipio *string
	err := row.Scan(
		&c.ID, &c.Codigo, &c.Nombre, &c.Tipo, &c.Tarifa,
		&c.BaseMinimaUVT, &c.BaseMinimaPesos,
		&c.TipoPersona, &c.Declarante, &c.TipoTransaccion,
		&cuenta, &municipio, &c.Activo,
	)
	if err != nil {
		return c, err
	}
	if cuenta != nil {
		c.CuentaContable = *cuenta
	}
	if municipio != nil {
		c.CodigoMunicipio = *municipio
	}
	return c, nil
}
