package contabilidad

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/compras-pro/internal/application/dto"
	"github.com/tu-usuario/compras-pro/internal/domain"
	domaincont "github.com/tu-usuario/compras-pro/internal/domain/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
	"github.com/tu-usuario/compras-pro/internal/domain/retencion"
)

// ParametrosTributarios fija los valores vigentes para el cálculo de retenciones.
type ParametrosTributarios struct {
	ValorUVT        decimal.Decimal
	TarifaIVA       decimal.Decimal // tarifa general; cero = 19
	CodigoMunicipio string          // municipio del comprador (reteica)
}

// CausarFacturaUseCase orquesta la causación de una factura de compra:
// idempotencia -> validación -> retenciones -> asiento -> persistencia atómica.
//
// La factura lleva AsientoID/CausadaEn que se escriben exactamente una vez;
// un segundo intento retorna domain.ErrFacturaYaCausada (a lo sumo un asiento
// por factura). El asiento se persiste y la factura se marca dentro de una
// sola transacción: no hay asientos parciales.
type CausarFacturaUseCase struct {
	txRunner      CausacionTxRunner
	facturaRepo   repository.FacturaCompraRepository
	proveedorRepo repository.ProveedorRepository
	conceptoRepo  repository.ConceptoRetencionRepository
	validador     *ValidadorContable
	plan          domaincont.PlanCuentasCausacion
	params        ParametrosTributarios
}

// NewCausarFacturaUseCase construye el caso de uso.
func NewCausarFacturaUseCase(
	txRunner CausacionTxRunner,
	facturaRepo repository.FacturaCompraRepository,
	proveedorRepo repository.ProveedorRepository,
	conceptoRepo repository.ConceptoRetencionRepository,
	validador *ValidadorContable,
	plan domaincont.PlanCuentasCausacion,
	params ParametrosTributarios,
) *CausarFacturaUseCase {
	return &CausarFacturaUseCase{
		txRunner:      txRunner,
		facturaRepo:   facturaRepo,
		proveedorRepo: proveedorRepo,
		conceptoRepo:  conceptoRepo,
		validador:     validador,
		plan:          plan,
		params:        params,
	}
}

// Causar ejecuta la causación completa. Si la validación falla, retorna la
// respuesta con los errores y sin asiento (no es un error de la operación);
// los errores de configuración del catálogo y los desbalances sí se propagan.
func (uc *CausarFacturaUseCase) Causar(ctx context.Context, facturaID string) (*dto.CausacionResponse, error) {
	factura, err := uc.facturaRepo.GetByID(facturaID)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, domain.ErrNotFound
	}
	if factura.Causada() {
		return nil, fmt.Errorf("%w: factura %s, asiento %s", domain.ErrFacturaYaCausada, factura.Numero, factura.AsientoID)
	}

	proveedor, err := uc.proveedorRepo.GetByID(factura.ProveedorID)
	if err != nil {
		return nil, err
	}

	// Validación de prerrequisitos: todos los problemas de una vez.
	validacion, err := uc.validador.Validar(factura, proveedor)
	if err != nil {
		return nil, err
	}
	resp := &dto.CausacionResponse{
		FacturaID:  factura.ID,
		Validacion: toValidacionResponse(validacion),
	}
	if !validacion.EsValida {
		return resp, nil
	}

	// Retenciones sobre la base gravable de la factura.
	conceptos, err := uc.conceptoRepo.ListarActivos()
	if err != nil {
		return nil, err
	}
	retenciones, err := retencion.Calcular(retencion.CalculoInput{
		Base:            factura.Subtotal.Sub(factura.Descuento),
		TarifaIVA:       uc.params.TarifaIVA,
		Perfil:          proveedor.Perfil,
		TipoTransaccion: factura.TipoTransaccion,
		Conceptos:       conceptos,
		ValorUVT:        uc.params.ValorUVT,
		CodigoMunicipio: uc.params.CodigoMunicipio,
	})
	if err != nil {
		return nil, err
	}
	resp.Retenciones = toRetencionResponses(retenciones)

	// Asiento balanceado por construcción (y verificado).
	asiento, err := domaincont.ConstruirAsiento(factura, validacion.TerceroID, retenciones, uc.plan)
	if err != nil {
		return nil, err
	}

	// Persistencia atómica: asiento + marca de causación.
	causadaEn := time.Now()
	err = uc.txRunner.RunCausacion(ctx, func(
		asientoRepo repository.AsientoContableRepository,
		facturaRepo repository.FacturaCompraRepository,
	) error {
		if err := asientoRepo.Create(asiento); err != nil {
			return err
		}
		// MarcarCausada falla si otro proceso causó la factura entre la lectura
		// inicial y esta tx (escritura única garantizada en la persistencia).
		return facturaRepo.MarcarCausada(factura.ID, asiento.ID, causadaEn)
	})
	if err != nil {
		return nil, err
	}

	resp.Asiento = toAsientoResponse(asiento)
	return resp, nil
}

func toValidacionResponse(v ValidacionContable) dto.ValidacionResponse {
	return dto.ValidacionResponse{
		EsValida:     v.EsValida,
		Errores:      append([]string{}, v.Errores...),
		Advertencias: append([]string{}, v.Advertencias...),
	}
}

func toRetencionResponses(resultados []retencion.ResultadoRetencion) []dto.RetencionResponse {
	out := make([]dto.RetencionResponse, 0, len(resultados))
	for _, r := range resultados {
		resp := dto.RetencionResponse{
			Tipo:     r.Tipo,
			Base:     r.Base,
			Valor:    r.Valor,
			Aplicada: r.Aplicada,
			Motivo:   r.Motivo,
		}
		if r.Concepto != nil {
			resp.ConceptoCodigo = r.Concepto.Codigo
		}
		out = append(out, resp)
	}
	return out
}

func toAsientoResponse(a *entity.AsientoContable) *dto.AsientoResponse {
	resp := &dto.AsientoResponse{
		ID:              a.ID,
		Fecha:           a.Fecha.Format("2006-01-02"),
		Descripcion:     a.Descripcion,
		DocumentoOrigen: a.DocumentoOrigen,
		NumeroDocumento: a.NumeroDocumento,
		TotalDebito:     a.TotalDebito,
		TotalCredito:    a.TotalCredito,
		Contabilizado:   a.Contabilizado,
		Movimientos:     make([]dto.MovimientoResponse, 0, len(a.Movimientos)),
	}
	for _, m := range a.Movimientos {
		resp.Movimientos = append(resp.Movimientos, dto.MovimientoResponse{
			Secuencia:    m.Secuencia,
			CuentaCodigo: m.CuentaCodigo,
			CuentaNombre: m.CuentaNombre,
			Descripcion:  m.Descripcion,
			Debito:       m.Debito,
			Credito:      m.Credito,
			TerceroID:    m.TerceroID,
		})
	}
	return resp
}
