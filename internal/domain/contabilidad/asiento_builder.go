package contabilidad

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/compras-pro/internal/domain"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/retencion"
	"github.com/tu-usuario/compras-pro/pkg/tributario"
)

// DocumentoFacturaCompra identifica el origen del asiento de causación.
const DocumentoFacturaCompra = "FACTURA_COMPRA"

// CuentaRef referencia una cuenta del plan (código + nombre para el renglón).
type CuentaRef struct {
	Codigo string
	Nombre string
}

// PlanCuentasCausacion agrupa las cuentas que usa el asiento de causación.
// El validador verifica que todas existan y estén activas antes de construir.
type PlanCuentasCausacion struct {
	Inventario     CuentaRef // débito en compras de inventario
	ActivoFijo     CuentaRef // débito en compras de activo fijo
	IVADescontable CuentaRef // débito del IVA en inventario
	Retefuente     CuentaRef // crédito retención en la fuente
	ReteIVA        CuentaRef // crédito retención de IVA
	ReteICA        CuentaRef // crédito retención de ICA
	Proveedores    CuentaRef // crédito cuenta por pagar al proveedor
}

// Todas devuelve las referencias en orden estable (para validación).
func (p PlanCuentasCausacion) Todas() []CuentaRef {
	return []CuentaRef{
		p.Inventario, p.ActivoFijo, p.IVADescontable,
		p.Retefuente, p.ReteIVA, p.ReteICA, p.Proveedores,
	}
}

// ConstruirAsiento arma el asiento de causación de una factura de compra:
//
//	Débito  1: inventario (o activo fijo) por la base gravable
//	Débito  2: IVA descontable; en activo fijo el IVA se capitaliza como
//	           segundo débito a la misma cuenta del activo (no se descuenta)
//	Créditos : retefuente, reteiva, reteica (solo las aplicadas, en ese orden,
//	           con el proveedor como tercero)
//	Crédito final: cuenta por pagar por el neto (base + IVA − retenciones),
//	           con el proveedor como tercero
//
// El neto por pagar se define como base + IVA − Σ retenciones, que es
// exactamente lo que mantiene débitos == créditos. Aun así el invariante se
// verifica antes de retornar: un desbalance es defecto interno
// (domain.ErrAsientoDesbalanceado) y jamás se emite el asiento.
//
// El asiento sale con Contabilizado=false; persistirlo y marcarlo es del
// colaborador de contabilización, no de este constructor.
func ConstruirAsiento(
	factura *entity.FacturaCompra,
	terceroProveedorID string,
	retenciones []retencion.ResultadoRetencion,
	cuentas PlanCuentasCausacion,
) (*entity.AsientoContable, error) {
	if factura == nil || terceroProveedorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if factura.TipoCompra != entity.CompraInventario && factura.TipoCompra != entity.CompraActivoFijo {
		return nil, fmt.Errorf("%w: tipo de compra %q", domain.ErrInvalidInput, factura.TipoCompra)
	}

	base := factura.Subtotal.Sub(factura.Descuento)
	iva := factura.IVA
	descripcion := fmt.Sprintf("Causación factura %s proveedor %s", factura.Numero, factura.ProveedorID)

	var movs []entity.MovimientoContable
	agregar := func(m entity.MovimientoContable) {
		m.Secuencia = len(movs) + 1
		movs = append(movs, m)
	}

	// Débito del bien adquirido.
	cuentaBien := cuentas.Inventario
	if factura.TipoCompra == entity.CompraActivoFijo {
		cuentaBien = cuentas.ActivoFijo
	}
	agregar(entity.MovimientoContable{
		CuentaCodigo: cuentaBien.Codigo,
		CuentaNombre: cuentaBien.Nombre,
		Descripcion:  descripcion,
		Debito:       base,
	})

	// Débito del IVA: descontable en inventario, capitalizado en activo fijo.
	if iva.GreaterThan(decimal.Zero) {
		cuentaIVA := cuentas.IVADescontable
		if factura.TipoCompra == entity.CompraActivoFijo {
			cuentaIVA = cuentas.ActivoFijo
		}
		agregar(entity.MovimientoContable{
			CuentaCodigo: cuentaIVA.Codigo,
			CuentaNombre: cuentaIVA.Nombre,
			Descripcion:  "IVA " + descripcion,
			Debito:       iva,
		})
	}

	// Créditos de retención, en orden fijo: fuente, IVA, ICA.
	for _, tipo := range []string{tributario.RetencionFuente, tributario.RetencionIVA, tributario.RetencionICA} {
		r := retencion.PorTipo(retenciones, tipo)
		if r == nil || !r.Aplicada || !r.Valor.GreaterThan(decimal.Zero) {
			continue
		}
		ref := cuentaRetencion(cuentas, tipo)
		codigo := ref.Codigo
		if r.Concepto != nil && r.Concepto.CuentaContable != "" {
			codigo = r.Concepto.CuentaContable
		}
		agregar(entity.MovimientoContable{
			CuentaCodigo: codigo,
			CuentaNombre: ref.Nombre,
			Descripcion:  descripcion,
			Credito:      r.Valor,
			TerceroID:    terceroProveedorID,
		})
	}

	// Crédito final: neto por pagar al proveedor.
	neto := base.Add(iva).Sub(retencion.TotalRetenido(retenciones))
	agregar(entity.MovimientoContable{
		CuentaCodigo: cuentas.Proveedores.Codigo,
		CuentaNombre: cuentas.Proveedores.Nombre,
		Descripcion:  descripcion,
		Credito:      neto,
		TerceroID:    terceroProveedorID,
	})

	var totalDebito, totalCredito decimal.Decimal
	for _, m := range movs {
		totalDebito = totalDebito.Add(m.Debito)
		totalCredito = totalCredito.Add(m.Credito)
	}

	asiento := &entity.AsientoContable{
		ID:              uuid.New().String(),
		Fecha:           factura.Fecha,
		Descripcion:     descripcion,
		DocumentoOrigen: DocumentoFacturaCompra,
		NumeroDocumento: factura.Numero,
		Movimientos:     movs,
		TotalDebito:     totalDebito,
		TotalCredito:    totalCredito,
		Contabilizado:   false,
		CreatedAt:       time.Now(),
	}

	if !asiento.Balanceado() {
		return nil, fmt.Errorf("%w: débito %s vs crédito %s (factura %s)",
			domain.ErrAsientoDesbalanceado, totalDebito.String(), totalCredito.String(), factura.Numero)
	}
	return asiento, nil
}

func cuentaRetencion(cuentas PlanCuentasCausacion, tipo string) CuentaRef {
	switch tipo {
	case tributario.RetencionIVA:
		return cuentas.ReteIVA
	case tributario.RetencionICA:
		return cuentas.ReteICA
	default:
		return cuentas.Retefuente
	}
}
