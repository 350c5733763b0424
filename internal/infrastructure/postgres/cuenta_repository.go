package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
)

var _ repository.CuentaContableRepository = (*CuentaContableRepo)(nil)

// CuentaContableRepo implementación de CuentaContableRepository (usable con pool o tx).
type CuentaContableRepo struct {
	q Querier
}

// NewCuentaContableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCuentaContableRepository(q Querier) *CuentaContableRepo {
	return &CuentaContableRepo{q: q}
}

// GetByCodigo obtiene una cuenta del plan por su código PUC, o nil si no existe.
func (r *CuentaContableRepo) GetByCodigo(codigo string) (*entity.CuentaContable, error) {
	query := `
		SELECT codigo, nombre, tipo, requiere_tercero, requiere_centro_costo, activa
		FROM cuentas_contables WHERE codigo = $1`
	var c entity.CuentaContable
	err := r.q.QueryRow(context.Background(), query, codigo).Scan(
		&c.Codigo, &c.Nombre, &c.Tipo, &c.RequiereTercero, &c.RequiereCentroCosto, &c.Activa,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cuenta %s: %w", codigo, err)
	}
	return &c, nil
}

// Listar devuelve el plan de cuentas completo ordenado por código.
func (r *CuentaContableRepo) Listar() ([]entity.CuentaContable, error) {
	query := `
		SELECT codigo, nombre, tipo, requiere_tercero, requiere_centro_costo, activa
		FROM cuentas_contables ORDER BY codigo`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("listar cuentas: %w", err)
	}
	defer rows.Close()

	var cuentas []entity.CuentaContable
	for rows.Next() {
		var c entity.CuentaContable
		if err := rows.Scan(&c.Codigo, &c.Nombre, &c.Tipo, &c.RequiereTercero, &c.RequiereCentroCosto, &c.Activa); err != nil {
			return nil, err
		}
		cuentas = append(cuentas, c)
	}
	return cuentas, rows.Err()
}
