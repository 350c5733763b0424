package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
)

var _ repository.PeriodoContableRepository = (*PeriodoContableRepo)(nil)

// PeriodoContableRepo implementación de PeriodoContableRepository (usable con pool o tx).
type PeriodoContableRepo struct {
	q Querier
}

// NewPeriodoContableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPeriodoContableRepository(q Querier) *PeriodoContableRepo {
	return &PeriodoContableRepo{q: q}
}

// GetByAnoMes obtiene el periodo de un mes calendario, o nil si no existe.
func (r *PeriodoContableRepo) GetByAnoMes(ano, mes int) (*entity.PeriodoContable, error) {
	query := `
		SELECT id, ano, mes, abierto, cerrado_en
		FROM periodos_contables WHERE ano = $1 AND mes = $2`
	var p entity.PeriodoContable
	err := r.q.QueryRow(context.Background(), query, ano, mes).Scan(
		&p.ID, &p.Ano, &p.Mes, &p.Abierto, &p.CerradoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get periodo %d-%02d: %w", ano, mes, err)
	}
	return &p, nil
}

// Listar devuelve los periodos ordenados cronológicamente.
func (r *PeriodoContableRepo) Listar() ([]entity.PeriodoContable, error) {
	query := `
		SELECT id, ano, mes, abierto, cerrado_en
		FROM periodos_contables ORDER BY ano, mes`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("listar periodos: %w", err)
	}
	defer rows.Close()

	var periodos []entity.PeriodoContable
	for rows.Next() {
		var p entity.PeriodoContable
		if err := rows.Scan(&p.ID, &p.Ano, &p.Mes, &p.Abierto, &p.CerradoEn); err != nil {
			return nil, err
		}
		periodos = append(periodos, p)
	}
	return periodos, rows.Err()
}
