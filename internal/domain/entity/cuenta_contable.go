package entity

// Tipos de cuenta del plan único de cuentas (PUC).
const (
	CuentaActivo     = "ACTIVO"
	CuentaPasivo     = "PASIVO"
	CuentaPatrimonio = "PATRIMONIO"
	CuentaIngreso    = "INGRESO"
	CuentaGasto      = "GASTO"
	CuentaCosto      = "COSTO"
)

// CuentaContable es una cuenta del plan de cuentas (dato maestro).
type CuentaContable struct {
	Codigo              string // código PUC (ej. "143501" inventarios, "236540" retefuente)
	Nombre              string
	Tipo                string
	RequiereTercero     bool
	RequiereCentroCosto bool
	Activa              bool
}
