// Package maestros contiene los casos de uso de datos maestros: proveedores
// con su perfil tributario y los catálogos de solo lectura que alimentan la
// causación (conceptos de retención, plan de cuentas, periodos).
package maestros

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/compras-pro/internal/application/dto"
	"github.com/tu-usuario/compras-pro/internal/domain"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
	"github.com/tu-usuario/compras-pro/pkg/tributario"
)

// ProveedorUseCase administra proveedores.
type ProveedorUseCase struct {
	proveedorRepo repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(proveedorRepo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{proveedorRepo: proveedorRepo}
}

// Crear registra un proveedor con su perfil tributario. El NIT se valida
// (dígito de verificación) antes de persistir.
func (uc *ProveedorUseCase) Crear(ctx context.Context, in dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	if in.NIT == "" || in.RazonSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := tributario.ValidarNIT(in.NIT); err != nil {
		return nil, err
	}
	tipoPersona := in.Perfil.TipoPersona
	if tipoPersona != tributario.PersonaNatural && tipoPersona != tributario.PersonaJuridica {
		return nil, domain.ErrInvalidInput
	}
	regimen := in.Perfil.Regimen
	if regimen == "" {
		regimen = tributario.RegimenOrdinario
	}

	now := time.Now()
	proveedor := &entity.Proveedor{
		ID:          uuid.New().String(),
		NIT:         in.NIT,
		RazonSocial: in.RazonSocial,
		Perfil: entity.PerfilTributario{
			TipoPersona:      tipoPersona,
			DeclaranteRenta:  in.Perfil.DeclaranteRenta,
			Autorretenedor:   in.Perfil.Autorretenedor,
			Regimen:          regimen,
			InscritoICALocal: in.Perfil.InscritoICALocal,
		},
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.proveedorRepo.Create(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// GetByID devuelve el proveedor o domain.ErrNotFound.
func (uc *ProveedorUseCase) GetByID(ctx context.Context, id string) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.proveedorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNotFound
	}
	return toProveedorResponse(proveedor), nil
}

// Listar devuelve todos los proveedores.
func (uc *ProveedorUseCase) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := uc.proveedorRepo.Listar()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, *toProveedorResponse(&proveedores[i]))
	}
	return out, nil
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:          p.ID,
		NIT:         p.NIT,
		RazonSocial: p.RazonSocial,
		Perfil: dto.PerfilTributarioRequest{
			TipoPersona:      p.Perfil.TipoPersona,
			DeclaranteRenta:  p.Perfil.DeclaranteRenta,
			Autorretenedor:   p.Perfil.Autorretenedor,
			Regimen:          p.Perfil.Regimen,
			InscritoICALocal: p.Perfil.InscritoICALocal,
		},
		TerceroID: p.TerceroID,
		Activo:    p.Activo,
	}
}

// CatalogosUseCase expone los catálogos de solo lectura.
type CatalogosUseCase struct {
	conceptoRepo repository.ConceptoRetencionRepository
	cuentaRepo   repository.CuentaContableRepository
	periodoRepo  repository.PeriodoContableRepository
}

// NewCatalogosUseCase construye el caso de uso.
func NewCatalogosUseCase(
	conceptoRepo repository.ConceptoRetencionRepository,
	cuentaRepo repository.CuentaContableRepository,
	periodoRepo repository.PeriodoContableRepository,
) *CatalogosUseCase {
	return &CatalogosUseCase{
		conceptoRepo: conceptoRepo,
		cuentaRepo:   cuentaRepo,
		periodoRepo:  periodoRepo,
	}
}

// ListarConceptos devuelve los conceptos de retención activos.
func (uc *CatalogosUseCase) ListarConceptos(ctx context.Context) ([]dto.ConceptoResponse, error) {
	conceptos, err := uc.conceptoRepo.ListarActivos()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConceptoResponse, 0, len(conceptos))
	for _, c := range conceptos {
		out = append(out, dto.ConceptoResponse{
			Codigo:          c.Codigo,
			Nombre:          c.Nombre,
			Tipo:            c.Tipo,
			Tarifa:          c.Tarifa,
			BaseMinimaUVT:   c.BaseMinimaUVT,
			BaseMinimaPesos: c.BaseMinimaPesos,
			TipoPersona:     c.TipoPersona,
			Declarante:      c.Declarante,
			TipoTransaccion: c.TipoTransaccion,
			CuentaContable:  c.CuentaContable,
			CodigoMunicipio: c.CodigoMunicipio,
		})
	}
	return out, nil
}

// ListarCuentas devuelve el plan de cuentas.
func (uc *CatalogosUseCase) ListarCuentas(ctx context.Context) ([]dto.CuentaResponse, error) {
	cuentas, err := uc.cuentaRepo.Listar()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CuentaResponse, 0, len(cuentas))
	for _, c := range cuentas {
		out = append(out, dto.CuentaResponse{
			Codigo:          c.Codigo,
			Nombre:          c.Nombre,
			Tipo:            c.Tipo,
			RequiereTercero: c.RequiereTercero,
			Activa:          c.Activa,
		})
	}
	return out, nil
}

// ListarPeriodos devuelve los periodos contables.
func (uc *CatalogosUseCase) ListarPeriodos(ctx context.Context) ([]dto.PeriodoResponse, error) {
	periodos, err := uc.periodoRepo.Listar()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PeriodoResponse, 0, len(periodos))
	for _, p := range periodos {
		out = append(out, dto.PeriodoResponse{
			Ano:     p.Ano,
			Mes:     p.Mes,
			Abierto: p.Abierto,
		})
	}
	return out, nil
}
