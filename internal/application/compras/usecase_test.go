package compras_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcompras "github.com/tu-usuario/compras-pro/internal/application/compras"
	"github.com/tu-usuario/compras-pro/internal/application/dto"
	"github.com/tu-usuario/compras-pro/internal/domain"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
	"github.com/tu-usuario/compras-pro/pkg/tributario"
)

type fakeOrdenRepo struct {
	ordenes []entity.OrdenCompra
}

func (f *fakeOrdenRepo) Create(orden *entity.OrdenCompra) error {
	f.ordenes = append(f.ordenes, *orden)
	return nil
}

func (f *fakeOrdenRepo) GetByID(id string) (*entity.OrdenCompra, error) {
	for i := range f.ordenes {
		if f.ordenes[i].ID == id {
			copia := f.ordenes[i]
			copia.Lineas = append([]entity.LineaOrdenCompra(nil), f.ordenes[i].Lineas...)
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeOrdenRepo) Update(orden *entity.OrdenCompra) error {
	for i := range f.ordenes {
		if f.ordenes[i].ID == orden.ID {
			f.ordenes[i] = *orden
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeOrdenRepo) ActualizarLinea(linea *entity.LineaOrdenCompra) error {
	for i := range f.ordenes {
		for j := range f.ordenes[i].Lineas {
			if f.ordenes[i].Lineas[j].ID == linea.ID {
				f.ordenes[i].Lineas[j] = *linea
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

type fakeFacturaRepo struct {
	facturas []entity.FacturaCompra
}

func (f *fakeFacturaRepo) Create(factura *entity.FacturaCompra) error {
	for i := range f.facturas {
		if f.facturas[i].ProveedorID == factura.ProveedorID && f.facturas[i].Numero == factura.Numero {
			return fmt.Errorf("%w: proveedor %s, número %s", domain.ErrFacturaDuplicada, factura.ProveedorID, factura.Numero)
		}
	}
	f.facturas = append(f.facturas, *factura)
	return nil
}

func (f *fakeFacturaRepo) GetByID(id string) (*entity.FacturaCompra, error) {
	for i := range f.facturas {
		if f.facturas[i].ID == id {
			copia := f.facturas[i]
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeFacturaRepo) MarcarCausada(facturaID, asientoID string, causadaEn time.Time) error {
	for i := range f.facturas {
		if f.facturas[i].ID == facturaID {
			f.facturas[i].AsientoID = asientoID
			f.facturas[i].CausadaEn = &causadaEn
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeDevolucionRepo struct {
	devoluciones []entity.DevolucionCompra
}

func (f *fakeDevolucionRepo) Create(devolucion *entity.DevolucionCompra) error {
	f.devoluciones = append(f.devoluciones, *devolucion)
	return nil
}

func (f *fakeDevolucionRepo) GetByID(id string) (*entity.DevolucionCompra, error) {
	for i := range f.devoluciones {
		if f.devoluciones[i].ID == id {
			return &f.devoluciones[i], nil
		}
	}
	return nil, nil
}

type fakeProveedorRepo struct {
	proveedores []entity.Proveedor
}

func (f *fakeProveedorRepo) Create(proveedor *entity.Proveedor) error {
	f.proveedores = append(f.proveedores, *proveedor)
	return nil
}

func (f *fakeProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	for i := range f.proveedores {
		if f.proveedores[i].ID == id {
			return &f.proveedores[i], nil
		}
	}
	return nil, nil
}

func (f *fakeProveedorRepo) Listar() ([]entity.Proveedor, error) {
	return f.proveedores, nil
}

func (f *fakeProveedorRepo) ActualizarTercero(proveedorID, terceroID string) error {
	return nil
}

type fakeComprasTxRunner struct {
	ordenRepo      *fakeOrdenRepo
	facturaRepo    *fakeFacturaRepo
	devolucionRepo *fakeDevolucionRepo
}

func (f *fakeComprasTxRunner) RunCompras(ctx context.Context, fn func(
	ordenRepo repository.OrdenCompraRepository,
	facturaRepo repository.FacturaCompraRepository,
	devolucionRepo repository.DevolucionCompraRepository,
) error) error {
	ordenesAntes := make([]entity.OrdenCompra, len(f.ordenRepo.ordenes))
	for i, o := range f.ordenRepo.ordenes {
		o.Lineas = append([]entity.LineaOrdenCompra(nil), o.Lineas...)
		ordenesAntes[i] = o
	}
	facturasAntes := append([]entity.FacturaCompra(nil), f.facturaRepo.facturas...)
	devolucionesAntes := append([]entity.DevolucionCompra(nil), f.devolucionRepo.devoluciones...)
	if err := fn(f.ordenRepo, f.facturaRepo, f.devolucionRepo); err != nil {
		f.ordenRepo.ordenes = ordenesAntes
		f.facturaRepo.facturas = facturasAntes
		f.devolucionRepo.devoluciones = devolucionesAntes
		return err
	}
	return nil
}

type entornoCompras struct {
	uc             *appcompras.ComprasUseCase
	ordenRepo      *fakeOrdenRepo
	facturaRepo    *fakeFacturaRepo
	devolucionRepo *fakeDevolucionRepo
}

func nuevoEntorno() *entornoCompras {
	ordenRepo := &fakeOrdenRepo{}
	facturaRepo := &fakeFacturaRepo{}
	devolucionRepo := &fakeDevolucionRepo{}
	proveedorRepo := &fakeProveedorRepo{proveedores: []entity.Proveedor{{
		ID:          "prov-1",
		NIT:         "900123456-8",
		RazonSocial: "Distribuidora El Roble S.A.S.",
		Activo:      true,
	}}}
	tx := &fakeComprasTxRunner{ordenRepo: ordenRepo, facturaRepo: facturaRepo, devolucionRepo: devolucionRepo}
	return &entornoCompras{
		uc:             appcompras.NewComprasUseCase(tx, ordenRepo, facturaRepo, proveedorRepo),
		ordenRepo:      ordenRepo,
		facturaRepo:    facturaRepo,
		devolucionRepo: devolucionRepo,
	}
}

func ordenRequest() dto.CrearOrdenRequest {
	return dto.CrearOrdenRequest{
		ProveedorID: "prov-1",
		Numero:      "OC-0001",
		Lineas: []dto.LineaOrdenRequest{
			{
				ProductoID:     "prod-1",
				Descripcion:    "Resma de papel carta",
				Cantidad:       decimal.NewFromInt(100),
				PrecioUnitario: decimal.NewFromInt(12_000),
				TarifaIVA:      decimal.NewFromInt(19),
			},
			{
				ProductoID:      "prod-2",
				Descripcion:     "Tóner negro",
				Cantidad:        decimal.NewFromInt(10),
				PrecioUnitario:  decimal.NewFromInt(250_000),
				TarifaIVA:       decimal.NewFromInt(19),
				TarifaDescuento: decimal.NewFromInt(10),
			},
		},
	}
}

// crearOrdenAprobada deja una orden aprobada lista para el ciclo.
func crearOrdenAprobada(t *testing.T, env *entornoCompras) *dto.OrdenResponse {
	t.Helper()
	orden, err := env.uc.CrearOrden(context.Background(), ordenRequest())
	require.NoError(t, err)
	aprobada, err := env.uc.AprobarOrden(context.Background(), orden.ID)
	require.NoError(t, err)
	return aprobada
}

func TestCrearOrden_ValorizaLineasYTotales(t *testing.T) {
	env := nuevoEntorno()

	orden, err := env.uc.CrearOrden(context.Background(), ordenRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.OrdenBorrador, orden.Estado)
	require.Len(t, orden.Lineas, 2)

	// Línea 1: 100 × 12.000 = 1.200.000; IVA 228.000.
	// Línea 2: 10 × 250.000 = 2.500.000; desc. 250.000; IVA 427.500.
	assert.True(t, decimal.NewFromInt(3_700_000).Equal(orden.Subtotal), "subtotal fue %s", orden.Subtotal)
	assert.True(t, decimal.NewFromInt(250_000).Equal(orden.Descuento), "descuento fue %s", orden.Descuento)
	assert.True(t, decimal.NewFromInt(655_500).Equal(orden.IVA), "iva fue %s", orden.IVA)
	assert.True(t, decimal.NewFromInt(4_105_500).Equal(orden.Total), "total fue %s", orden.Total)
}

func TestCrearOrden_ProveedorInexistente(t *testing.T) {
	env := nuevoEntorno()

	in := ordenRequest()
	in.ProveedorID = "prov-404"
	_, err := env.uc.CrearOrden(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrearOrden_SinLineas(t *testing.T) {
	env := nuevoEntorno()

	in := ordenRequest()
	in.Lineas = nil
	_, err := env.uc.CrearOrden(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAprobarOrden_SoloDesdeBorrador(t *testing.T) {
	env := nuevoEntorno()
	orden, err := env.uc.CrearOrden(context.Background(), ordenRequest())
	require.NoError(t, err)

	aprobada, err := env.uc.AprobarOrden(context.Background(), orden.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrdenAprobada, aprobada.Estado)

	_, err = env.uc.AprobarOrden(context.Background(), orden.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegistrarRecepcion_TodoDisponible(t *testing.T) {
	env := nuevoEntorno()
	orden := crearOrdenAprobada(t, env)

	// Sin líneas explícitas se recibe todo lo ordenado.
	recibida, err := env.uc.RegistrarRecepcion(context.Background(), dto.RegistrarRecepcionRequest{OrdenID: orden.ID})
	require.NoError(t, err)
	for _, l := range recibida.Lineas {
		assert.True(t, l.CantidadOrdenada.Equal(l.CantidadRecibida))
	}
}

func TestRegistrarRecepcion_Parcial(t *testing.T) {
	env := nuevoEntorno()
	orden := crearOrdenAprobada(t, env)

	recibida, err := env.uc.RegistrarRecepcion(context.Background(), dto.RegistrarRecepcionRequest{
		OrdenID: orden.ID,
		Lineas: []dto.CantidadLineaRequest{
			{LineaOrdenID: orden.Lineas[0].ID, Cantidad: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(recibida.Lineas[0].CantidadRecibida))
	assert.True(t, recibida.Lineas[1].CantidadRecibida.IsZero())

	// El exceso sobre lo ordenado se rechaza y no muta nada.
	_, err = env.uc.RegistrarRecepcion(context.Background(), dto.RegistrarRecepcionRequest{
		OrdenID: orden.ID,
		Lineas: []dto.CantidadLineaRequest{
			{LineaOrdenID: orden.Lineas[0].ID, Cantidad: decimal.NewFromInt(61)},
		},
	})
	require.ErrorIs(t, err, domain.ErrCantidadExcedida)
	persistida, errGet := env.uc.GetOrden(context.Background(), orden.ID)
	require.NoError(t, errGet)
	assert.True(t, decimal.NewFromInt(40).Equal(persistida.Lineas[0].CantidadRecibida))
}

func TestRegistrarRecepcion_LineaAjena(t *testing.T) {
	env := nuevoEntorno()
	orden := crearOrdenAprobada(t, env)

	_, err := env.uc.RegistrarRecepcion(context.Background(), dto.RegistrarRecepcionRequest{
		OrdenID: orden.ID,
		Lineas:  []dto.CantidadLineaRequest{{LineaOrdenID: "lin-ajena", Cantidad: decimal.NewFromInt(1)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarFactura_SobreLoRecibido(t *testing.T) {
	env := nuevoEntorno()
	orden := crearOrdenAprobada(t, env)

	_, err := env.uc.RegistrarRecepcion(context.Background(), dto.RegistrarRecepcionRequest{OrdenID: orden.ID})
	require.NoError(t, err)

	factura, err := env.uc.RegistrarFactura(context.Background(), dto.RegistrarFacturaRequest{
		OrdenID:         orden.ID,
		Numero:          "FC-0001",
		Fecha:           "2025-03-15",
		TipoCompra:      entity.CompraInventario,
		TipoTransaccion: tributario.TransaccionBienes,
	})
	require.NoError(t, err)

	// Totales de la factura: los mismos de la orden completa.
	assert.True(t, decimal.NewFromInt(3_700_000).Equal(factura.Subtotal))
	assert.True(t, decimal.NewFromInt(4_105_500).Equal(factura.Total))
	assert.Equal(t, "2025-03-15", factura.Fecha)
	assert.Empty(t, factura.AsientoID, "la factura nace sin causar")

	// Los contadores quedaron persistidos.
	persistida, err := env.uc.GetOrden(context.Background(), orden.ID)
	require.NoError(t, err)
	for _, l := range persistida.Lineas {
		assert.True(t, l.CantidadRecibida.Equal(l.CantidadFacturada))
	}
}

func TestRegistrarFactura_SinRecepcionNoHayDisponible(t *testing.T) {
	env := nuevoEntorno()
	orden := crearOrdenAprobada(t, env)

	_, err := env.uc.RegistrarFactura(context.Background(), dto.RegistrarFacturaRequest{
		OrdenID: orden.ID,
		Numero:  "FC-0001",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarFactura_ExcesoSobreRecibidoRevierte(t *testing.T) {
	env := nuevoEntorno()
	orden := crearOrdenAprobada(t, env)

	_, err := env.uc.RegistrarRecepcion(context.Background(), dto.RegistrarRecepcionRequest{
		OrdenID: orden.ID,
		Lineas: []dto.CantidadLineaRequest{
			{LineaOrdenID: orden.Lineas[0].ID, Cantidad: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)

	_, err = env.uc.RegistrarFactura(context.Background(), dto.RegistrarFacturaRequest{
		OrdenID: orden.ID,
		Numero:  "FC-0001",
		Lineas: []dto.CantidadLineaRequest{
			{LineaOrdenID: orden.Lineas[0].ID, Cantidad: decimal.NewFromInt(41)},
		},
	})
	require.ErrorIs(t, err, domain.ErrCantidadExcedida)
	assert.Empty(t, env.facturaRepo.facturas)

	persistida, errGet := env.uc.GetOrden(context.Background(), orden.ID)
	require.NoError(t, errGet)
	assert.True(t, persistida.Lineas[0].CantidadFacturada.IsZero(), "los contadores no cambian ante rechazo")
}

func TestRegistrarFactura_NumeroDuplicado(t *testing.T) {
	env := nuevoEntorno()
	orden := crearOrdenAprobada(t, env)

	_, err := env.uc.RegistrarRecepcion(context.Background(), dto.RegistrarRecepcionRequest{OrdenID: orden.ID})
	require.NoError(t, err)

	_, err = env.uc.RegistrarFactura(context.Background(), dto.RegistrarFacturaRequest{
		OrdenID: orden.ID,
		Numero:  "FC-0001",
		Lineas: []dto.CantidadLineaRequest{
			{LineaOrdenID: orden.Lineas[0].ID, Cantidad: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	// El mismo número del mismo proveedor se rechaza y los contadores de la
	// segunda facturación se revierten.
	_, err = env.uc.RegistrarFactura(context.Background(), dto.RegistrarFacturaRequest{
		OrdenID: orden.ID,
		Numero:  "FC-0001",
		Lineas: []dto.CantidadLineaRequest{
			{LineaOrdenID: orden.Lineas[0].ID, Cantidad: decimal.NewFromInt(20)},
		},
	})
	require.ErrorIs(t, err, domain.ErrFacturaDuplicada)
	require.Len(t, env.facturaRepo.facturas, 1)

	persistida, errGet := env.uc.GetOrden(context.Background(), orden.ID)
	require.NoError(t, errGet)
	assert.True(t, decimal.NewFromInt(50).Equal(persistida.Lineas[0].CantidadFacturada))
}

func TestRegistrarFactura_TipoCompraInvalido(t *testing.T) {
	env := nuevoEntorno()
	orden := crearOrdenAprobada(t, env)

	_, err := env.uc.RegistrarFactura(context.Background(), dto.RegistrarFacturaRequest{
		OrdenID:    orden.ID,
		Numero:     "FC-0001",
		TipoCompra: "MAQUINARIA",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarDevolucion_SobreLoFacturado(t *testing.T) {
	env := nuevoEntorno()
	orden := crearOrdenAprobada(t, env)

	_, err := env.uc.RegistrarRecepcion(context.Background(), dto.RegistrarRecepcionRequest{OrdenID: orden.ID})
	require.NoError(t, err)
	factura, err := env.uc.RegistrarFactura(context.Background(), dto.RegistrarFacturaRequest{
		OrdenID: orden.ID,
		Numero:  "FC-0001",
	})
	require.NoError(t, err)

	devolucion, err := env.uc.RegistrarDevolucion(context.Background(), dto.RegistrarDevolucionRequest{
		FacturaID: factura.ID,
		Motivo:    "mercancía averiada",
		Lineas: []dto.CantidadLineaRequest{
			{LineaOrdenID: orden.Lineas[0].ID, Cantidad: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	// 10 × 12.000 = 120.000 + IVA 22.800.
	assert.True(t, decimal.NewFromInt(120_000).Equal(devolucion.Subtotal), "subtotal fue %s", devolucion.Subtotal)
	assert.True(t, decimal.NewFromInt(142_800).Equal(devolucion.Total), "total fue %s", devolucion.Total)
	require.Len(t, env.devolucionRepo.devoluciones, 1)

	persistida, err := env.uc.GetOrden(context.Background(), orden.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(persistida.Lineas[0].CantidadDevuelta))
}

func TestRegistrarDevolucion_ExcedeLoFacturado(t *testing.T) {
	env := nuevoEntorno()
	orden := crearOrdenAprobada(t, env)

	_, err := env.uc.RegistrarRecepcion(context.Background(), dto.RegistrarRecepcionRequest{OrdenID: orden.ID})
	require.NoError(t, err)
	factura, err := env.uc.RegistrarFactura(context.Background(), dto.RegistrarFacturaRequest{
		OrdenID: orden.ID,
		Numero:  "FC-0001",
		Lineas: []dto.CantidadLineaRequest{
			{LineaOrdenID: orden.Lineas[0].ID, Cantidad: decimal.NewFromInt(30)},
		},
	})
	require.NoError(t, err)

	_, err = env.uc.RegistrarDevolucion(context.Background(), dto.RegistrarDevolucionRequest{
		FacturaID: factura.ID,
		Lineas: []dto.CantidadLineaRequest{
			{LineaOrdenID: orden.Lineas[0].ID, Cantidad: decimal.NewFromInt(31)},
		},
	})
	require.ErrorIs(t, err, domain.ErrCantidadExcedida)
	assert.Empty(t, env.devolucionRepo.devoluciones)
}
