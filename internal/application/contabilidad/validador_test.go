package contabilidad_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcont "github.com/tu-usuario/compras-pro/internal/application/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
)

func nuevoValidador(periodos *fakePeriodoRepo, cuentas *fakeCuentaRepo, terceros *fakeTerceroRepo, proveedores *fakeProveedorRepo) *appcont.ValidadorContable {
	return appcont.NewValidadorContable(periodos, cuentas, terceros, proveedores, planPrueba())
}

func TestValidar_TodoEnOrden(t *testing.T) {
	proveedor := proveedorPrueba()
	terceros := &fakeTerceroRepo{terceros: []entity.Tercero{terceroPrueba()}}
	proveedores := &fakeProveedorRepo{proveedores: []entity.Proveedor{proveedor}}
	v := nuevoValidador(periodosPrueba(), cuentasPrueba(), terceros, proveedores)

	factura := facturaPrueba()
	res, err := v.Validar(&factura, &proveedor)
	require.NoError(t, err)

	assert.True(t, res.EsValida)
	assert.Empty(t, res.Errores)
	assert.Empty(t, res.Advertencias)
	assert.Equal(t, "ter-1", res.TerceroID)
	assert.Empty(t, terceros.creados, "no debe crear terceros cuando el proveedor ya tiene uno")
}

func TestValidar_ReportaTodosLosProblemas(t *testing.T) {
	// Periodo cerrado, una cuenta inexistente y subtotal cero: la validación
	// no se detiene en el primer problema.
	periodos := &fakePeriodoRepo{periodos: []entity.PeriodoContable{
		{ID: "per-2025-03", Ano: 2025, Mes: 3, Abierto: false},
	}}
	cuentas := cuentasPrueba()
	delete(cuentas.cuentas, "236540")

	proveedor := proveedorPrueba()
	terceros := &fakeTerceroRepo{terceros: []entity.Tercero{terceroPrueba()}}
	proveedores := &fakeProveedorRepo{proveedores: []entity.Proveedor{proveedor}}
	v := nuevoValidador(periodos, cuentas, terceros, proveedores)

	factura := facturaPrueba()
	factura.Subtotal = decimal.Zero
	res, err := v.Validar(&factura, &proveedor)
	require.NoError(t, err)

	assert.False(t, res.EsValida)
	require.Len(t, res.Errores, 3, "errores: %v", res.Errores)
	assert.Contains(t, res.Errores[0], "cerrado")
	assert.Contains(t, res.Errores[1], "236540")
	assert.Contains(t, res.Errores[2], "subtotal")
}

func TestValidar_PeriodoInexistente(t *testing.T) {
	proveedor := proveedorPrueba()
	terceros := &fakeTerceroRepo{terceros: []entity.Tercero{terceroPrueba()}}
	proveedores := &fakeProveedorRepo{proveedores: []entity.Proveedor{proveedor}}
	v := nuevoValidador(&fakePeriodoRepo{}, cuentasPrueba(), terceros, proveedores)

	factura := facturaPrueba()
	res, err := v.Validar(&factura, &proveedor)
	require.NoError(t, err)

	assert.False(t, res.EsValida)
	require.NotEmpty(t, res.Errores)
	assert.Contains(t, res.Errores[0], "no existe periodo contable para 2025-03")
}

func TestValidar_CuentaInactiva(t *testing.T) {
	cuentas := cuentasPrueba()
	c := cuentas.cuentas["220501"]
	c.Activa = false
	cuentas.cuentas["220501"] = c

	proveedor := proveedorPrueba()
	terceros := &fakeTerceroRepo{terceros: []entity.Tercero{terceroPrueba()}}
	proveedores := &fakeProveedorRepo{proveedores: []entity.Proveedor{proveedor}}
	v := nuevoValidador(periodosPrueba(), cuentas, terceros, proveedores)

	factura := facturaPrueba()
	res, err := v.Validar(&factura, &proveedor)
	require.NoError(t, err)

	assert.False(t, res.EsValida)
	require.Len(t, res.Errores, 1)
	assert.Contains(t, res.Errores[0], "220501")
	assert.Contains(t, res.Errores[0], "inactiva")
}

func TestValidar_ProveedorInexistente(t *testing.T) {
	v := nuevoValidador(periodosPrueba(), cuentasPrueba(), &fakeTerceroRepo{}, &fakeProveedorRepo{})

	factura := facturaPrueba()
	res, err := v.Validar(&factura, nil)
	require.NoError(t, err)

	assert.False(t, res.EsValida)
	assert.Contains(t, res.Errores[0], "proveedor")
}

func TestValidar_TerceroInactivoBloquea(t *testing.T) {
	tercero := terceroPrueba()
	tercero.Activo = false
	proveedor := proveedorPrueba()
	terceros := &fakeTerceroRepo{terceros: []entity.Tercero{tercero}}
	proveedores := &fakeProveedorRepo{proveedores: []entity.Proveedor{proveedor}}
	v := nuevoValidador(periodosPrueba(), cuentasPrueba(), terceros, proveedores)

	factura := facturaPrueba()
	res, err := v.Validar(&factura, &proveedor)
	require.NoError(t, err)

	assert.False(t, res.EsValida)
	require.Len(t, res.Errores, 1)
	assert.Contains(t, res.Errores[0], "inactivo")
	assert.Empty(t, res.TerceroID)
}

func TestValidar_CreaTerceroMinimo(t *testing.T) {
	// Proveedor sin tercero asociado ni registrado por documento: se crea un
	// registro mínimo, se asocia al proveedor y queda en advertencias.
	proveedor := proveedorPrueba()
	proveedor.TerceroID = ""
	terceros := &fakeTerceroRepo{}
	proveedores := &fakeProveedorRepo{proveedores: []entity.Proveedor{proveedor}}
	v := nuevoValidador(periodosPrueba(), cuentasPrueba(), terceros, proveedores)

	factura := facturaPrueba()
	res, err := v.Validar(&factura, &proveedor)
	require.NoError(t, err)

	assert.True(t, res.EsValida, "la creación tardía del tercero no bloquea: %v", res.Errores)
	require.Len(t, terceros.creados, 1)
	creado := terceros.creados[0]
	assert.Equal(t, nitValido, creado.NumeroDocumento)
	assert.Equal(t, proveedor.RazonSocial, creado.Nombre)
	assert.True(t, creado.Activo)
	assert.Equal(t, creado.ID, res.TerceroID)
	assert.Equal(t, creado.ID, proveedores.asociaciones["prov-1"])
	require.Len(t, res.Advertencias, 1)
	assert.Contains(t, res.Advertencias[0], "registro mínimo")
}

func TestValidar_TerceroExistentePorDocumento(t *testing.T) {
	// Proveedor sin TerceroID pero con tercero registrado bajo el mismo NIT:
	// se reutiliza en lugar de crear duplicado.
	tercero := terceroPrueba()
	tercero.ID = "ter-doc"
	proveedor := proveedorPrueba()
	proveedor.TerceroID = ""
	terceros := &fakeTerceroRepo{terceros: []entity.Tercero{tercero}}
	proveedores := &fakeProveedorRepo{proveedores: []entity.Proveedor{proveedor}}
	v := nuevoValidador(periodosPrueba(), cuentasPrueba(), terceros, proveedores)

	factura := facturaPrueba()
	res, err := v.Validar(&factura, &proveedor)
	require.NoError(t, err)

	assert.True(t, res.EsValida)
	assert.Equal(t, "ter-doc", res.TerceroID)
	assert.Empty(t, terceros.creados)
}

func TestValidar_NITInvalidoEsAdvertencia(t *testing.T) {
	// DV incorrecto al crear el tercero mínimo: se advierte pero no bloquea.
	proveedor := proveedorPrueba()
	proveedor.TerceroID = ""
	proveedor.NIT = "900123456-0"
	terceros := &fakeTerceroRepo{}
	proveedores := &fakeProveedorRepo{proveedores: []entity.Proveedor{proveedor}}
	v := nuevoValidador(periodosPrueba(), cuentasPrueba(), terceros, proveedores)

	factura := facturaPrueba()
	res, err := v.Validar(&factura, &proveedor)
	require.NoError(t, err)

	assert.True(t, res.EsValida)
	require.Len(t, terceros.creados, 1)
	require.Len(t, res.Advertencias, 2)
	assert.Contains(t, res.Advertencias[0], "dígito de verificación")
}

func TestValidar_PeriodoDelMesDeLaFactura(t *testing.T) {
	// El periodo consultado es el del mes de la fecha de la factura.
	periodos := &fakePeriodoRepo{periodos: []entity.PeriodoContable{
		{ID: "per-2025-03", Ano: 2025, Mes: 3, Abierto: false},
		{ID: "per-2025-04", Ano: 2025, Mes: 4, Abierto: true},
	}}
	proveedor := proveedorPrueba()
	terceros := &fakeTerceroRepo{terceros: []entity.Tercero{terceroPrueba()}}
	proveedores := &fakeProveedorRepo{proveedores: []entity.Proveedor{proveedor}}
	v := nuevoValidador(periodos, cuentasPrueba(), terceros, proveedores)

	factura := facturaPrueba()
	factura.Fecha = time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	res, err := v.Validar(&factura, &proveedor)
	require.NoError(t, err)
	assert.True(t, res.EsValida)
}
