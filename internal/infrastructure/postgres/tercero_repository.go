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

var _ repository.TerceroRepository = (*TerceroRepo)(nil)

// TerceroRepo implementación de TerceroRepository (usable con pool o tx).
type TerceroRepo struct {
	q Querier
}

// NewTerceroRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTerceroRepository(q Querier) *TerceroRepo {
	return &TerceroRepo{q: q}
}

// GetByID obtiene el tercero por ID, o nil si no existe.
func (r *TerceroRepo) GetByID(id string) (*entity.Tercero, error) {
	query := `
		SELECT id, numero_documento, nombre, activo, created_at, updated_at
		FROM terceros WHERE id = $1`
	return r.scanUno(r.q.QueryRow(context.Background(), query, id))
}

// GetByDocumento obtiene el tercero por su número de documento, o nil si no existe.
func (r *TerceroRepo) GetByDocumento(numeroDocumento string) (*entity.Tercero, error) {
	query := `
		SELECT id, numero_documento, nombre, activo, created_at, updated_at
		FROM terceros WHERE numero_documento = $1`
	return r.scanUno(r.q.QueryRow(context.Background(), query, numeroDocumento))
}

// Create persiste un tercero. El número de documento es único.
func (r *TerceroRepo) Create(tercero *entity.Tercero) error {
	if tercero.ID == "" {
		tercero.ID = uuid.New().String()
	}
	query := `
		INSERT INTO terceros (id, numero_documento, nombre, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		tercero.ID, tercero.NumeroDocumento, tercero.Nombre, tercero.Activo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tercero con documento %s", domain.ErrDuplicate, tercero.NumeroDocumento)
		}
		return fmt.Errorf("insert tercero: %w", err)
	}
	return nil
}

func (r *TerceroRepo) scanUno(row pgx.Row) (*entity.Tercero, error) {
	var t entity.Tercero
	err := row.Scan(&t.ID, &t.NumeroDocumento, &t.Nombre, &t.Activo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tercero: %w", err)
	}
	return &t, nil
}
