package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/compras-pro/internal/application/compras"
	"github.com/tu-usuario/compras-pro/internal/application/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/application/maestros"
)

// RouterDeps agrupa los casos de uso que el router necesita.
type RouterDeps struct {
	ProveedorUC *maestros.ProveedorUseCase
	CatalogosUC *maestros.CatalogosUseCase
	ComprasUC   *compras.ComprasUseCase
	CausarUC    *contabilidad.CausarFacturaUseCase
	SimularUC   *contabilidad.SimularRetencionesUseCase
}

// Router registra todas las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores := api.Group("/proveedores")
	proveedores.Post("/", proveedorHandler.Crear)
	proveedores.Get("/", proveedorHandler.Listar)
	proveedores.Get("/:id", proveedorHandler.GetByID)

	catalogosHandler := NewCatalogosHandler(deps.CatalogosUC)
	api.Get("/conceptos", catalogosHandler.ListarConceptos)
	api.Get("/cuentas", catalogosHandler.ListarCuentas)
	api.Get("/periodos", catalogosHandler.ListarPeriodos)

	comprasHandler := NewComprasHandler(deps.ComprasUC)
	ordenes := api.Group("/ordenes")
	ordenes.Post("/", comprasHandler.CrearOrden)
	ordenes.Get("/:id", comprasHandler.GetOrden)
	ordenes.Post("/:id/aprobar", comprasHandler.AprobarOrden)
	ordenes.Post("/:id/recepciones", comprasHandler.RegistrarRecepcion)
	ordenes.Post("/:id/facturas", comprasHandler.RegistrarFactura)

	contabilidadHandler := NewContabilidadHandler(deps.CausarUC, deps.SimularUC)
	facturas := api.Group("/facturas")
	facturas.Post("/:id/devoluciones", comprasHandler.RegistrarDevolucion)
	facturas.Post("/:id/causar", contabilidadHandler.CausarFactura)

	api.Post("/retenciones/simular", contabilidadHandler.SimularRetenciones)
}
