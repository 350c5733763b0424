package contabilidad_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	appcont "github.com/tu-usuario/compras-pro/internal/application/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/domain"
	domaincont "github.com/tu-usuario/compras-pro/internal/domain/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
	"github.com/tu-usuario/compras-pro/pkg/tributario"
)

// Repositorios en memoria para los casos de uso. Mismo contrato que los de
// postgres: GetByX retorna nil (no error) cuando no existe; MarcarCausada
// escribe una sola vez.

type fakePeriodoRepo struct {
	periodos []entity.PeriodoContable
}

func (f *fakePeriodoRepo) GetByAnoMes(ano, mes int) (*entity.PeriodoContable, error) {
	for i := range f.periodos {
		if f.periodos[i].Ano == ano && f.periodos[i].Mes == mes {
			return &f.periodos[i], nil
		}
	}
	return nil, nil
}

func (f *fakePeriodoRepo) Listar() ([]entity.PeriodoContable, error) {
	return f.periodos, nil
}

type fakeCuentaRepo struct {
	cuentas map[string]entity.CuentaContable
}

func (f *fakeCuentaRepo) GetByCodigo(codigo string) (*entity.CuentaContable, error) {
	if c, ok := f.cuentas[codigo]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeCuentaRepo) Listar() ([]entity.CuentaContable, error) {
	out := make([]entity.CuentaContable, 0, len(f.cuentas))
	for _, c := range f.cuentas {
		out = append(out, c)
	}
	return out, nil
}

type fakeTerceroRepo struct {
	terceros []entity.Tercero
	creados  []entity.Tercero
}

func (f *fakeTerceroRepo) GetByID(id string) (*entity.Tercero, error) {
	for i := range f.terceros {
		if f.terceros[i].ID == id {
			return &f.terceros[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTerceroRepo) GetByDocumento(numeroDocumento string) (*entity.Tercero, error) {
	for i := range f.terceros {
		if f.terceros[i].NumeroDocumento == numeroDocumento {
			return &f.terceros[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTerceroRepo) Create(tercero *entity.Tercero) error {
	f.terceros = append(f.terceros, *tercero)
	f.creados = append(f.creados, *tercero)
	return nil
}

type fakeProveedorRepo struct {
	proveedores  []entity.Proveedor
	asociaciones map[string]string // proveedorID -> terceroID
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
	if f.asociaciones == nil {
		f.asociaciones = make(map[string]string)
	}
	f.asociaciones[proveedorID] = terceroID
	for i := range f.proveedores {
		if f.proveedores[i].ID == proveedorID {
			f.proveedores[i].TerceroID = terceroID
		}
	}
	return nil
}

type fakeConceptoRepo struct {
	conceptos []entity.ConceptoRetencion
}

func (f *fakeConceptoRepo) ListarActivos() ([]entity.ConceptoRetencion, error) {
	return f.conceptos, nil
}

func (f *fakeConceptoRepo) GetByCodigo(codigo string) (*entity.ConceptoRetencion, error) {
	for i := range f.conceptos {
		if f.conceptos[i].Codigo == codigo {
			return &f.conceptos[i], nil
		}
	}
	return nil, nil
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
		if f.facturas[i].ID != facturaID {
			continue
		}
		if f.facturas[i].AsientoID != "" {
			return fmt.Errorf("%w: factura %s", domain.ErrFacturaYaCausada, facturaID)
		}
		f.facturas[i].AsientoID = asientoID
		f.facturas[i].CausadaEn = &causadaEn
		return nil
	}
	return domain.ErrNotFound
}

type fakeAsientoRepo struct {
	asientos []entity.AsientoContable
}

func (f *fakeAsientoRepo) Create(asiento *entity.AsientoContable) error {
	f.asientos = append(f.asientos, *asiento)
	return nil
}

func (f *fakeAsientoRepo) GetByID(id string) (*entity.AsientoContable, error) {
	for i := range f.asientos {
		if f.asientos[i].ID == id {
			return &f.asientos[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAsientoRepo) MarcarContabilizado(id string) error {
	for i := range f.asientos {
		if f.asientos[i].ID == id {
			f.asientos[i].Contabilizado = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeTxRunner ejecuta la función directamente sobre los repositorios en
// memoria; si la función falla, revierte las facturas al estado previo.
type fakeTxRunner struct {
	asientoRepo *fakeAsientoRepo
	facturaRepo *fakeFacturaRepo
}

func (f *fakeTxRunner) RunCausacion(ctx context.Context, fn func(
	asientoRepo repository.AsientoContableRepository,
	facturaRepo repository.FacturaCompraRepository,
) error) error {
	asientosAntes := append([]entity.AsientoContable(nil), f.asientoRepo.asientos...)
	facturasAntes := append([]entity.FacturaCompra(nil), f.facturaRepo.facturas...)
	if err := fn(f.asientoRepo, f.facturaRepo); err != nil {
		f.asientoRepo.asientos = asientosAntes
		f.facturaRepo.facturas = facturasAntes
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------
// Fixtures compartidos.
// -----------------------------------------------------------------------------

const nitValido = "900123456-8" // dígito de verificación correcto (módulo 11)

func planPrueba() domaincont.PlanCuentasCausacion {
	return domaincont.PlanCuentasCausacion{
		Inventario:     domaincont.CuentaRef{Codigo: "143501", Nombre: "Inventario de mercancías"},
		ActivoFijo:     domaincont.CuentaRef{Codigo: "152405", Nombre: "Equipo de oficina"},
		IVADescontable: domaincont.CuentaRef{Codigo: "240810", Nombre: "IVA descontable"},
		Retefuente:     domaincont.CuentaRef{Codigo: "236540", Nombre: "Retención en la fuente por pagar"},
		ReteIVA:        domaincont.CuentaRef{Codigo: "236701", Nombre: "Retención de IVA por pagar"},
		ReteICA:        domaincont.CuentaRef{Codigo: "236801", Nombre: "Retención de ICA por pagar"},
		Proveedores:    domaincont.CuentaRef{Codigo: "220501", Nombre: "Proveedores nacionales"},
	}
}

func cuentasPrueba() *fakeCuentaRepo {
	repo := &fakeCuentaRepo{cuentas: make(map[string]entity.CuentaContable)}
	for _, ref := range planPrueba().Todas() {
		repo.cuentas[ref.Codigo] = entity.CuentaContable{
			Codigo: ref.Codigo,
			Nombre: ref.Nombre,
			Activa: true,
		}
	}
	return repo
}

func periodosPrueba() *fakePeriodoRepo {
	return &fakePeriodoRepo{periodos: []entity.PeriodoContable{
		{ID: "per-2025-03", Ano: 2025, Mes: 3, Abierto: true},
	}}
}

func proveedorPrueba() entity.Proveedor {
	return entity.Proveedor{
		ID:          "prov-1",
		NIT:         nitValido,
		RazonSocial: "Distribuidora El Roble S.A.S.",
		Perfil: entity.PerfilTributario{
			TipoPersona:      tributario.PersonaJuridica,
			DeclaranteRenta:  true,
			Regimen:          tributario.RegimenOrdinario,
			InscritoICALocal: true,
		},
		TerceroID: "ter-1",
		Activo:    true,
	}
}

func terceroPrueba() entity.Tercero {
	return entity.Tercero{
		ID:              "ter-1",
		NumeroDocumento: nitValido,
		Nombre:          "Distribuidora El Roble S.A.S.",
		Activo:          true,
	}
}

func facturaPrueba() entity.FacturaCompra {
	return entity.FacturaCompra{
		ID:              "fac-1",
		OrdenID:         "ord-1",
		ProveedorID:     "prov-1",
		Numero:          "FC-0001",
		Fecha:           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		TipoCompra:      entity.CompraInventario,
		TipoTransaccion: tributario.TransaccionBienes,
		Subtotal:        decimal.NewFromInt(6_050_000),
		Descuento:       decimal.Zero,
		IVA:             decimal.NewFromInt(1_149_500),
		Total:           decimal.NewFromInt(7_199_500),
	}
}

func conceptosPrueba() []entity.ConceptoRetencion {
	return []entity.ConceptoRetencion{
		{
			ID: "c1", Codigo: "RF-COMPRAS-D", Nombre: "Compras declarante",
			Tipo: tributario.RetencionFuente, Tarifa: decimal.NewFromFloat(2.5),
			BaseMinimaUVT: decimal.NewFromInt(10),
			TipoPersona:   tributario.PersonaCualquier, Declarante: tributario.DeclaranteRenta,
			TipoTransaccion: tributario.TransaccionBienes, CuentaContable: "236540", Activo: true,
		},
		{
			ID: "c2", Codigo: "RI-COMPRAS", Nombre: "Reteiva compras",
			Tipo: tributario.RetencionIVA, Tarifa: decimal.NewFromInt(15),
			BaseMinimaUVT: decimal.NewFromInt(10),
			TipoPersona:   tributario.PersonaCualquier, Declarante: tributario.DeclaranteAny,
			TipoTransaccion: tributario.TransaccionBienes, CuentaContable: "236701", Activo: true,
		},
		{
			ID: "c3", Codigo: "IC-BOGOTA", Nombre: "Reteica Bogotá tarifa general",
			Tipo: tributario.RetencionICA, Tarifa: decimal.NewFromFloat(4.14),
			TipoPersona: tributario.PersonaCualquier, Declarante: tributario.DeclaranteAny,
			TipoTransaccion: tributario.TransaccionAmbos, CuentaContable: "236801",
			CodigoMunicipio: "11001", Activo: true,
		},
	}
}

func paramsPrueba() appcont.ParametrosTributarios {
	return appcont.ParametrosTributarios{
		ValorUVT:        decimal.NewFromInt(49_799),
		TarifaIVA:       decimal.NewFromInt(19),
		CodigoMunicipio: "11001",
	}
}
