// Package compras contiene los casos de uso del ciclo de compras: orden,
// recepción, facturación y devolución, sobre el servicio de dominio compras
// (contadores del ciclo) y la fórmula única de valorización.
package compras

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/compras-pro/internal/application/dto"
	"github.com/tu-usuario/compras-pro/internal/domain"
	domaincompras "github.com/tu-usuario/compras-pro/internal/domain/compras"
	"github.com/tu-usuario/compras-pro/internal/domain/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
	"github.com/tu-usuario/compras-pro/pkg/tributario"
)

// ComprasUseCase agrupa las operaciones del ciclo de compras.
type ComprasUseCase struct {
	txRunner      ComprasTxRunner
	ordenRepo     repository.OrdenCompraRepository
	facturaRepo   repository.FacturaCompraRepository
	proveedorRepo repository.ProveedorRepository
}

// NewComprasUseCase construye el caso de uso.
func NewComprasUseCase(
	txRunner ComprasTxRunner,
	ordenRepo repository.OrdenCompraRepository,
	facturaRepo repository.FacturaCompraRepository,
	proveedorRepo repository.ProveedorRepository,
) *ComprasUseCase {
	return &ComprasUseCase{
		txRunner:      txRunner,
		ordenRepo:     ordenRepo,
		facturaRepo:   facturaRepo,
		proveedorRepo: proveedorRepo,
	}
}

// CrearOrden crea una orden de compra en borrador con sus líneas valorizadas.
func (uc *ComprasUseCase) CrearOrden(ctx context.Context, in dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
	if in.ProveedorID == "" || in.Numero == "" || len(in.Lineas) == 0 {
		return nil, domain.ErrInvalidInput
	}
	proveedor, err := uc.proveedorRepo.GetByID(in.ProveedorID)
	if err != nil || proveedor == nil {
		return nil, domain.ErrNotFound
	}
	if !proveedor.Activo {
		return nil, fmt.Errorf("%w: proveedor inactivo", domain.ErrConflict)
	}

	now := time.Now()
	orden := &entity.OrdenCompra{
		ID:          uuid.New().String(),
		ProveedorID: in.ProveedorID,
		Numero:      in.Numero,
		Fecha:       now,
		Estado:      entity.OrdenBorrador,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var totales contabilidad.LineaValorizada
	for _, l := range in.Lineas {
		if !l.Cantidad.GreaterThan(decimal.Zero) || l.PrecioUnitario.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		valor := contabilidad.CalcularLinea(l.Cantidad, l.PrecioUnitario, l.TarifaDescuento, l.TarifaIVA)
		totales = totales.Acumular(valor)
		orden.Lineas = append(orden.Lineas, entity.LineaOrdenCompra{
			ID:               uuid.New().String(),
			OrdenID:          orden.ID,
			ProductoID:       l.ProductoID,
			Descripcion:      l.Descripcion,
			CantidadOrdenada: l.Cantidad,
			PrecioUnitario:   l.PrecioUnitario,
			TarifaIVA:        l.TarifaIVA,
			TarifaDescuento:  l.TarifaDescuento,
		})
	}
	orden.Subtotal = totales.Subtotal
	orden.Descuento = totales.Descuento
	orden.IVA = totales.IVA
	orden.Total = totales.Total

	if err := uc.ordenRepo.Create(orden); err != nil {
		return nil, err
	}
	return toOrdenResponse(orden), nil
}

// AprobarOrden pasa la orden de borrador a aprobada; desde ahí sus líneas
// entran al ciclo de recepción.
func (uc *ComprasUseCase) AprobarOrden(ctx context.Context, ordenID string) (*dto.OrdenResponse, error) {
	orden, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil || orden == nil {
		return nil, domain.ErrNotFound
	}
	if orden.Estado != entity.OrdenBorrador {
		return nil, fmt.Errorf("%w: la orden está en estado %s", domain.ErrConflict, orden.Estado)
	}
	orden.Estado = entity.OrdenAprobada
	orden.UpdatedAt = time.Now()
	if err := uc.ordenRepo.Update(orden); err != nil {
		return nil, err
	}
	return toOrdenResponse(orden), nil
}

// RegistrarRecepcion aplica una entrada de almacén sobre líneas de la orden.
// Sin líneas explícitas, recibe todo lo disponible de cada línea.
func (uc *ComprasUseCase) RegistrarRecepcion(ctx context.Context, in dto.RegistrarRecepcionRequest) (*dto.OrdenResponse, error) {
	orden, err := uc.cargarOrdenAprobada(in.OrdenID)
	if err != nil {
		return nil, err
	}

	cantidades, err := resolverCantidades(orden, in.Lineas, domaincompras.EtapaRecepcion)
	if err != nil {
		return nil, err
	}
	for i := range orden.Lineas {
		l := &orden.Lineas[i]
		qty, ok := cantidades[l.ID]
		if !ok {
			continue
		}
		if err := domaincompras.RegistrarRecepcion(l, qty); err != nil {
			return nil, err
		}
	}

	err = uc.txRunner.RunCompras(ctx, func(
		ordenRepo repository.OrdenCompraRepository,
		_ repository.FacturaCompraRepository,
		_ repository.DevolucionCompraRepository,
	) error {
		for i := range orden.Lineas {
			if _, ok := cantidades[orden.Lineas[i].ID]; !ok {
				continue
			}
			if err := ordenRepo.ActualizarLinea(&orden.Lineas[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrdenResponse(orden), nil
}

// RegistrarFactura registra la factura del proveedor consumiendo cantidades
// recibidas. Las líneas de factura se valorizan con la fórmula compartida; los
// contadores y la factura se persisten en una sola transacción.
func (uc *ComprasUseCase) RegistrarFactura(ctx context.Context, in dto.RegistrarFacturaRequest) (*dto.FacturaResponse, error) {
	if in.Numero == "" {
		return nil, domain.ErrInvalidInput
	}
	tipoCompra := in.TipoCompra
	if tipoCompra == "" {
		tipoCompra = entity.CompraInventario
	}
	if tipoCompra != entity.CompraInventario && tipoCompra != entity.CompraActivoFijo {
		return nil, fmt.Errorf("%w: tipo de compra %q", domain.ErrInvalidInput, in.TipoCompra)
	}
	tipoTransaccion := in.TipoTransaccion
	if tipoTransaccion == "" {
		tipoTransaccion = tributario.TransaccionBienes
	}
	if tipoTransaccion != tributario.TransaccionBienes && tipoTransaccion != tributario.TransaccionServicios {
		return nil, fmt.Errorf("%w: tipo de transacción %q", domain.ErrInvalidInput, in.TipoTransaccion)
	}

	orden, err := uc.cargarOrdenAprobada(in.OrdenID)
	if err != nil {
		return nil, err
	}

	fecha := time.Now()
	if in.Fecha != "" {
		fecha, err = time.Parse("2006-01-02", in.Fecha)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, in.Fecha)
		}
	}

	cantidades, err := resolverCantidades(orden, in.Lineas, domaincompras.EtapaFacturacion)
	if err != nil {
		return nil, err
	}

	factura := &entity.FacturaCompra{
		ID:              uuid.New().String(),
		OrdenID:         orden.ID,
		ProveedorID:     orden.ProveedorID,
		Numero:          in.Numero,
		Fecha:           fecha,
		TipoCompra:      tipoCompra,
		TipoTransaccion: tipoTransaccion,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	var totales contabilidad.LineaValorizada
	var lineasTocadas []*entity.LineaOrdenCompra
	for i := range orden.Lineas {
		l := &orden.Lineas[i]
		qty, ok := cantidades[l.ID]
		if !ok {
			continue
		}
		if err := domaincompras.RegistrarFacturacion(l, qty); err != nil {
			return nil, err
		}
		lineasTocadas = append(lineasTocadas, l)

		valor := contabilidad.CalcularLinea(qty, l.PrecioUnitario, l.TarifaDescuento, l.TarifaIVA)
		totales = totales.Acumular(valor)
		factura.Lineas = append(factura.Lineas, entity.LineaFacturaCompra{
			ID:              uuid.New().String(),
			FacturaID:       factura.ID,
			LineaOrdenID:    l.ID,
			ProductoID:      l.ProductoID,
			Cantidad:        qty,
			PrecioUnitario:  l.PrecioUnitario,
			TarifaIVA:       l.TarifaIVA,
			TarifaDescuento: l.TarifaDescuento,
			Subtotal:        valor.Subtotal,
			Descuento:       valor.Descuento,
			IVA:             valor.IVA,
			Total:           valor.Total,
		})
	}
	if len(factura.Lineas) == 0 {
		return nil, fmt.Errorf("%w: no hay cantidades disponibles para facturar", domain.ErrInvalidInput)
	}
	factura.Subtotal = totales.Subtotal
	factura.Descuento = totales.Descuento
	factura.IVA = totales.IVA
	factura.Total = totales.Total

	err = uc.txRunner.RunCompras(ctx, func(
		ordenRepo repository.OrdenCompraRepository,
		facturaRepo repository.FacturaCompraRepository,
		_ repository.DevolucionCompraRepository,
	) error {
		for _, l := range lineasTocadas {
			if err := ordenRepo.ActualizarLinea(l); err != nil {
				return err
			}
		}
		// Create retorna domain.ErrFacturaDuplicada si ya existe una factura del
		// proveedor con el mismo número (constraint único en la persistencia).
		return facturaRepo.Create(factura)
	})
	if err != nil {
		return nil, err
	}
	return toFacturaResponse(factura), nil
}

// RegistrarDevolucion devuelve cantidades facturadas al proveedor.
func (uc *ComprasUseCase) RegistrarDevolucion(ctx context.Context, in dto.RegistrarDevolucionRequest) (*dto.DevolucionResponse, error) {
	factura, err := uc.facturaRepo.GetByID(in.FacturaID)
	if err != nil || factura == nil {
		return nil, domain.ErrNotFound
	}
	orden, err := uc.ordenRepo.GetByID(factura.OrdenID)
	if err != nil || orden == nil {
		return nil, domain.ErrNotFound
	}

	cantidades, err := resolverCantidades(orden, in.Lineas, domaincompras.EtapaDevolucion)
	if err != nil {
		return nil, err
	}

	devolucion := &entity.DevolucionCompra{
		ID:          uuid.New().String(),
		FacturaID:   factura.ID,
		ProveedorID: factura.ProveedorID,
		Fecha:       time.Now(),
		Motivo:      in.Motivo,
		CreatedAt:   time.Now(),
	}

	var totales contabilidad.LineaValorizada
	var lineasTocadas []*entity.LineaOrdenCompra
	for i := range orden.Lineas {
		l := &orden.Lineas[i]
		qty, ok := cantidades[l.ID]
		if !ok {
			continue
		}
		if err := domaincompras.RegistrarDevolucion(l, qty); err != nil {
			return nil, err
		}
		lineasTocadas = append(lineasTocadas, l)

		valor := contabilidad.CalcularLinea(qty, l.PrecioUnitario, l.TarifaDescuento, l.TarifaIVA)
		totales = totales.Acumular(valor)
		devolucion.Lineas = append(devolucion.Lineas, entity.LineaDevolucionCompra{
			ID:           uuid.New().String(),
			DevolucionID: devolucion.ID,
			LineaOrdenID: l.ID,
			ProductoID:   l.ProductoID,
			Cantidad:     qty,
			Subtotal:     valor.Subtotal,
			Descuento:    valor.Descuento,
			IVA:          valor.IVA,
			Total:        valor.Total,
		})
	}
	if len(devolucion.Lineas) == 0 {
		return nil, fmt.Errorf("%w: no hay cantidades disponibles para devolver", domain.ErrInvalidInput)
	}
	devolucion.Subtotal = totales.Subtotal
	devolucion.Descuento = totales.Descuento
	devolucion.IVA = totales.IVA
	devolucion.Total = totales.Total

	err = uc.txRunner.RunCompras(ctx, func(
		ordenRepo repository.OrdenCompraRepository,
		_ repository.FacturaCompraRepository,
		devolucionRepo repository.DevolucionCompraRepository,
	) error {
		for _, l := range lineasTocadas {
			if err := ordenRepo.ActualizarLinea(l); err != nil {
				return err
			}
		}
		return devolucionRepo.Create(devolucion)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DevolucionResponse{
		ID:        devolucion.ID,
		FacturaID: devolucion.FacturaID,
		Motivo:    devolucion.Motivo,
		Subtotal:  devolucion.Subtotal,
		IVA:       devolucion.IVA,
		Total:     devolucion.Total,
	}, nil
}

// GetOrden devuelve la orden con sus contadores de ciclo.
func (uc *ComprasUseCase) GetOrden(ctx context.Context, ordenID string) (*dto.OrdenResponse, error) {
	orden, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil || orden == nil {
		return nil, domain.ErrNotFound
	}
	return toOrdenResponse(orden), nil
}

func (uc *ComprasUseCase) cargarOrdenAprobada(ordenID string) (*entity.OrdenCompra, error) {
	if ordenID == "" {
		return nil, domain.ErrInvalidInput
	}
	orden, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil || orden == nil {
		return nil, domain.ErrNotFound
	}
	if orden.Estado != entity.OrdenAprobada {
		return nil, fmt.Errorf("%w: la orden está en estado %s", domain.ErrConflict, orden.Estado)
	}
	return orden, nil
}

// resolverCantidades arma el mapa línea -> cantidad a aplicar. Sin líneas
// explícitas toma todo lo disponible de la etapa (líneas con disponible cero
// se omiten).
func resolverCantidades(orden *entity.OrdenCompra, lineas []dto.CantidadLineaRequest, etapa string) (map[string]decimal.Decimal, error) {
	cantidades := make(map[string]decimal.Decimal)
	if len(lineas) == 0 {
		for i := range orden.Lineas {
			disponible := domaincompras.Disponible(&orden.Lineas[i], etapa)
			if disponible.GreaterThan(decimal.Zero) {
				cantidades[orden.Lineas[i].ID] = disponible
			}
		}
		return cantidades, nil
	}

	porID := make(map[string]bool, len(orden.Lineas))
	for i := range orden.Lineas {
		porID[orden.Lineas[i].ID] = true
	}
	for _, l := range lineas {
		if !porID[l.LineaOrdenID] {
			return nil, fmt.Errorf("%w: la línea %s no pertenece a la orden %s", domain.ErrInvalidInput, l.LineaOrdenID, orden.ID)
		}
		cantidades[l.LineaOrdenID] = l.Cantidad
	}
	return cantidades, nil
}

func toOrdenResponse(o *entity.OrdenCompra) *dto.OrdenResponse {
	resp := &dto.OrdenResponse{
		ID:          o.ID,
		ProveedorID: o.ProveedorID,
		Numero:      o.Numero,
		Fecha:       o.Fecha.Format("2006-01-02"),
		Estado:      o.Estado,
		Subtotal:    o.Subtotal,
		Descuento:   o.Descuento,
		IVA:         o.IVA,
		Total:       o.Total,
		Lineas:      make([]dto.LineaOrdenResponse, 0, len(o.Lineas)),
	}
	for _, l := range o.Lineas {
		resp.Lineas = append(resp.Lineas, dto.LineaOrdenResponse{
			ID:                l.ID,
			ProductoID:        l.ProductoID,
			Descripcion:       l.Descripcion,
			CantidadOrdenada:  l.CantidadOrdenada,
			CantidadRecibida:  l.CantidadRecibida,
			CantidadFacturada: l.CantidadFacturada,
			CantidadDevuelta:  l.CantidadDevuelta,
			PrecioUnitario:    l.PrecioUnitario,
			TarifaIVA:         l.TarifaIVA,
			TarifaDescuento:   l.TarifaDescuento,
		})
	}
	return resp
}

func toFacturaResponse(f *entity.FacturaCompra) *dto.FacturaResponse {
	return &dto.FacturaResponse{
		ID:          f.ID,
		OrdenID:     f.OrdenID,
		ProveedorID: f.ProveedorID,
		Numero:      f.Numero,
		Fecha:       f.Fecha.Format("2006-01-02"),
		TipoCompra:  f.TipoCompra,
		Subtotal:    f.Subtotal,
		Descuento:   f.Descuento,
		IVA:         f.IVA,
		Total:       f.Total,
		AsientoID:   f.AsientoID,
	}
}
