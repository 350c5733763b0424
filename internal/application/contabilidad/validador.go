package contabilidad

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domaincont "github.com/tu-usuario/compras-pro/internal/domain/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
	"github.com/tu-usuario/compras-pro/pkg/tributario"
)

// ValidacionContable es el resultado de la validación previa a la causación.
// Errores bloquea la construcción del asiento; Advertencias no, pero debe
// mostrarse al operador.
type ValidacionContable struct {
	EsValida     bool
	Errores      []string
	Advertencias []string
	// TerceroID es el tercero del proveedor a usar en el asiento; puede ser un
	// registro mínimo recién creado (política de alta tardía de terceros).
	TerceroID string
}

// ValidadorContable verifica los prerrequisitos de la causación: periodo
// abierto, cuentas del plan activas, tercero del proveedor y montos positivos.
// Todas las verificaciones se evalúan (sin cortocircuito) para reportar todos
// los problemas de una vez.
type ValidadorContable struct {
	periodoRepo   repository.PeriodoContableRepository
	cuentaRepo    repository.CuentaContableRepository
	terceroRepo   repository.TerceroRepository
	proveedorRepo repository.ProveedorRepository
	plan          domaincont.PlanCuentasCausacion
}

// NewValidadorContable construye el validador.
func NewValidadorContable(
	periodoRepo repository.PeriodoContableRepository,
	cuentaRepo repository.CuentaContableRepository,
	terceroRepo repository.TerceroRepository,
	proveedorRepo repository.ProveedorRepository,
	plan domaincont.PlanCuentasCausacion,
) *ValidadorContable {
	return &ValidadorContable{
		periodoRepo:   periodoRepo,
		cuentaRepo:    cuentaRepo,
		terceroRepo:   terceroRepo,
		proveedorRepo: proveedorRepo,
		plan:          plan,
	}
}

// Validar evalúa todos los prerrequisitos de causación de la factura.
// Retorna error solo ante fallos de infraestructura (repositorio); las
// condiciones de negocio van en Errores/Advertencias.
func (v *ValidadorContable) Validar(factura *entity.FacturaCompra, proveedor *entity.Proveedor) (ValidacionContable, error) {
	var res ValidacionContable

	// 1) Periodo contable del mes de la factura, abierto.
	ano, mes := factura.Fecha.Year(), int(factura.Fecha.Month())
	periodo, err := v.periodoRepo.GetByAnoMes(ano, mes)
	if err != nil {
		return res, fmt.Errorf("consultar periodo %d-%02d: %w", ano, mes, err)
	}
	switch {
	case periodo == nil:
		res.Errores = append(res.Errores, fmt.Sprintf("no existe periodo contable para %d-%02d", ano, mes))
	case !periodo.Abierto:
		res.Errores = append(res.Errores, fmt.Sprintf("el periodo contable %d-%02d está cerrado", ano, mes))
	}

	// 2) Todas las cuentas del plan de causación existen y están activas.
	vistas := make(map[string]bool)
	for _, ref := range v.plan.Todas() {
		if ref.Codigo == "" || vistas[ref.Codigo] {
			continue
		}
		vistas[ref.Codigo] = true
		cuenta, err := v.cuentaRepo.GetByCodigo(ref.Codigo)
		if err != nil {
			return res, fmt.Errorf("consultar cuenta %s: %w", ref.Codigo, err)
		}
		switch {
		case cuenta == nil:
			res.Errores = append(res.Errores, fmt.Sprintf("la cuenta %s (%s) no existe en el plan de cuentas", ref.Codigo, ref.Nombre))
		case !cuenta.Activa:
			res.Errores = append(res.Errores, fmt.Sprintf("la cuenta %s (%s) está inactiva", ref.Codigo, ref.Nombre))
		}
	}

	// 3) Tercero del proveedor: inactivo bloquea; inexistente se crea un
	// registro mínimo con advertencia (registro tardío de datos maestros).
	terceroID, terceroErrs, terceroAdvs, err := v.resolverTercero(proveedor)
	if err != nil {
		return res, err
	}
	res.TerceroID = terceroID
	res.Errores = append(res.Errores, terceroErrs...)
	res.Advertencias = append(res.Advertencias, terceroAdvs...)

	// 4) Montos positivos.
	if !factura.Subtotal.GreaterThan(decimal.Zero) {
		res.Errores = append(res.Errores, "el subtotal de la factura debe ser positivo")
	}
	if !factura.Total.GreaterThan(decimal.Zero) {
		res.Errores = append(res.Errores, "el total de la factura debe ser positivo")
	}

	res.EsValida = len(res.Errores) == 0
	return res, nil
}

func (v *ValidadorContable) resolverTercero(proveedor *entity.Proveedor) (string, []string, []string, error) {
	if proveedor == nil {
		return "", []string{"el proveedor de la factura no existe"}, nil, nil
	}
	if !proveedor.Activo {
		return "", []string{fmt.Sprintf("el proveedor %s está inactivo", proveedor.RazonSocial)}, nil, nil
	}

	var tercero *entity.Tercero
	var err error
	if proveedor.TerceroID != "" {
		tercero, err = v.terceroRepo.GetByID(proveedor.TerceroID)
		if err != nil {
			return "", nil, nil, fmt.Errorf("consultar tercero %s: %w", proveedor.TerceroID, err)
		}
	}
	if tercero == nil {
		tercero, err = v.terceroRepo.GetByDocumento(proveedor.NIT)
		if err != nil {
			return "", nil, nil, fmt.Errorf("consultar tercero por documento %s: %w", proveedor.NIT, err)
		}
	}

	if tercero != nil {
		if !tercero.Activo {
			return "", []string{fmt.Sprintf("el tercero %s (%s) está inactivo", tercero.Nombre, tercero.NumeroDocumento)}, nil, nil
		}
		return tercero.ID, nil, nil, nil
	}

	// Alta tardía: crear tercero mínimo y continuar con advertencia.
	var advertencias []string
	if err := tributario.ValidarNIT(proveedor.NIT); err != nil {
		// No bloquea el alta, pero el operador debe corregir el documento.
		advertencias = append(advertencias, err.Error())
	}
	nuevo := &entity.Tercero{
		ID:              uuid.New().String(),
		NumeroDocumento: proveedor.NIT,
		Nombre:          proveedor.RazonSocial,
		Activo:          true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := v.terceroRepo.Create(nuevo); err != nil {
		return "", nil, nil, fmt.Errorf("crear tercero mínimo para %s: %w", proveedor.RazonSocial, err)
	}
	if err := v.proveedorRepo.ActualizarTercero(proveedor.ID, nuevo.ID); err != nil {
		return "", nil, nil, fmt.Errorf("asociar tercero al proveedor %s: %w", proveedor.ID, err)
	}
	advertencias = append(advertencias,
		fmt.Sprintf("el proveedor %s no tenía tercero contable; se creó el registro mínimo %s", proveedor.RazonSocial, nuevo.ID))
	return nuevo.ID, nil, advertencias, nil
}
