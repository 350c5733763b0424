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

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación de ProveedorRepository (usable con pool o tx).
// El perfil tributario vive aplanado en columnas de la misma tabla.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

const proveedorColumns = `id, nit, razon_social, tipo_persona, declarante_renta, autorretenedor,
	       regimen, inscrito_ica_local, tercero_id, activo, created_at, updated_at`

// Create persiste el proveedor con su perfil tributario. El NIT es único.
func (r *ProveedorRepo) Create(proveedor *entity.Proveedor) error {
	if proveedor.ID == "" {
		proveedor.ID = uuid.New().String()
	}
	query := `
		INSERT INTO proveedores
			(id, nit, razon_social, tipo_persona, declarante_renta, autorretenedor,
			 regimen, inscrito_ica_local, tercero_id, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		proveedor.ID, proveedor.NIT, proveedor.RazonSocial,
		proveedor.Perfil.TipoPersona, proveedor.Perfil.DeclaranteRenta, proveedor.Perfil.Autorretenedor,
		proveedor.Perfil.Regimen, proveedor.Perfil.InscritoICALocal,
		nullIfEmpty(proveedor.TerceroID), proveedor.Activo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: proveedor con NIT %s", domain.ErrDuplicate, proveedor.NIT)
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene el proveedor por ID, o nil si no existe.
func (r *ProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	query := `
		SELECT ` + proveedorColumns + `
		FROM proveedores WHERE id = $1`
	p, err := scanProveedor(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor %s: %w", id, err)
	}
	return p, nil
}

// Listar devuelve todos los proveedores ordenados por razón social.
func (r *ProveedorRepo) Listar() ([]entity.Proveedor, error) {
	query := `
		SELECT ` + proveedorColumns + `
		FROM proveedores ORDER BY razon_social`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("listar proveedores: %w", err)
	}
	defer rows.Close()

	var proveedores []entity.Proveedor
	for rows.Next() {
		p, err := scanProveedor(rows)
		if err != nil {
			return nil, err
		}
		proveedores = append(proveedores, *p)
	}
	return proveedores, rows.Err()
}

// ActualizarTercero asocia al proveedor el tercero contable creado tarde.
func (r *ProveedorRepo) ActualizarTercero(proveedorID, terceroID string) error {
	query := `
		UPDATE proveedores SET tercero_id = $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, proveedorID, terceroID)
	if err != nil {
		return fmt.Errorf("actualizar tercero del proveedor %s: %w", proveedorID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProveedor(row pgx.Row) (*entity.Proveedor, error) {
	var p entity.Proveedor
	var terceroID *string
	err := row.Scan(
		&p.ID, &p.NIT, &p.RazonSocial,
		&p.Perfil.TipoPersona, &p.Perfil.DeclaranteRenta, &p.Perfil.Autorretenedor,
		&p.Perfil.Regimen, &p.Perfil.InscritoICALocal,
		&terceroID, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if terceroID != nil {
		p.TerceroID = *terceroID
	}
	return &p, nil
}
