package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	appcompras "github.com/tu-usuario/compras-pro/internal/application/compras"
	appcont "github.com/tu-usuario/compras-pro/internal/application/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/application/maestros"
	domaincont "github.com/tu-usuario/compras-pro/internal/domain/contabilidad"
	"github.com/tu-usuario/compras-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/compras-pro/internal/interfaces/http"
	"github.com/tu-usuario/compras-pro/pkg/config"
	"github.com/tu-usuario/compras-pro/pkg/logger"
	"github.com/tu-usuario/compras-pro/pkg/tributario"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	params, err := parametrosTributarios(cfg.Tributario)
	if err != nil {
		log.Fatal().Err(err).Msg("parámetros tributarios")
	}
	log.Info().
		Str("uvt", params.ValorUVT.String()).
		Str("tarifa_iva", params.TarifaIVA.String()).
		Str("municipio", params.CodigoMunicipio).
		Msg("parámetros tributarios cargados")

	proveedorRepo := postgres.NewProveedorRepository(pool)
	terceroRepo := postgres.NewTerceroRepository(pool)
	cuentaRepo := postgres.NewCuentaContableRepository(pool)
	periodoRepo := postgres.NewPeriodoContableRepository(pool)
	conceptoRepo := postgres.NewConceptoRetencionRepository(pool)
	ordenRepo := postgres.NewOrdenCompraRepository(pool)
	facturaRepo := postgres.NewFacturaCompraRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	plan := planCuentasCausacion()
	validador := appcont.NewValidadorContable(periodoRepo, cuentaRepo, terceroRepo, proveedorRepo, plan)
	causarUC := appcont.NewCausarFacturaUseCase(txRunner, facturaRepo, proveedorRepo, conceptoRepo, validador, plan, params)
	simularUC := appcont.NewSimularRetencionesUseCase(conceptoRepo, params)
	comprasUC := appcompras.NewComprasUseCase(txRunner, ordenRepo, facturaRepo, proveedorRepo)
	proveedorUC := maestros.NewProveedorUseCase(proveedorRepo)
	catalogosUC := maestros.NewCatalogosUseCase(conceptoRepo, cuentaRepo, periodoRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProveedorUC: proveedorUC,
		CatalogosUC: catalogosUC,
		ComprasUC:   comprasUC,
		CausarUC:    causarUC,
		SimularUC:   simularUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}

// parametrosTributarios resuelve el valor del UVT (override por configuración
// o tabla interna para el año configurado) y los demás parámetros del motor.
func parametrosTributarios(cfg config.TributarioConfig) (appcont.ParametrosTributarios, error) {
	var valorUVT decimal.Decimal
	if cfg.UVTValor != "" {
		v, err := decimal.NewFromString(cfg.UVTValor)
		if err != nil {
			return appcont.ParametrosTributarios{}, err
		}
		valorUVT = v
	} else {
		ano := cfg.UVTAno
		if ano == 0 {
			ano = time.Now().Year()
		}
		v, err := tributario.UVT(ano)
		if err != nil {
			return appcont.ParametrosTributarios{}, err
		}
		valorUVT = v
	}

	tarifaIVA, err := decimal.NewFromString(cfg.TarifaIVA)
	if err != nil {
		return appcont.ParametrosTributarios{}, err
	}

	return appcont.ParametrosTributarios{
		ValorUVT:        valorUVT,
		TarifaIVA:       tarifaIVA,
		CodigoMunicipio: cfg.CodigoMunicipio,
	}, nil
}

// planCuentasCausacion son las cuentas PUC del asiento de causación. Deben
// existir activas en el catálogo (la migración de semillas las crea).
func planCuentasCausacion() domaincont.PlanCuentasCausacion {
	return domaincont.PlanCuentasCausacion{
		Inventario:     domaincont.CuentaRef{Codigo: "143501", Nombre: "Mercancías no fabricadas por la empresa"},
		ActivoFijo:     domaincont.CuentaRef{Codigo: "152405", Nombre: "Equipo de oficina"},
		IVADescontable: domaincont.CuentaRef{Codigo: "240810", Nombre: "IVA descontable"},
		Retefuente:     domaincont.CuentaRef{Codigo: "236540", Nombre: "Retención en la fuente por pagar"},
		ReteIVA:        domaincont.CuentaRef{Codigo: "236701", Nombre: "Retención de IVA por pagar"},
		ReteICA:        domaincont.CuentaRef{Codigo: "236801", Nombre: "Retención de ICA por pagar"},
		Proveedores:    domaincont.CuentaRef{Codigo: "220501", Nombre: "Proveedores nacionales"},
	}
}
