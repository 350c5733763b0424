package entity

import "github.com/shopspring/decimal"

// ConceptoRetencion es un concepto del catálogo de retenciones (dato maestro).
// Inmutable durante un cálculo; la propiedad es del repositorio externo.
//
// La tarifa se interpreta según el tipo: porcentaje para RETEFUENTE y RETEIVA,
// por mil (÷1000) para RETEICA. La base mínima puede venir en UVT (se convierte
// con el valor UVT vigente) o directamente en pesos; pesos tiene prioridad si
// ambas están definidas.
type ConceptoRetencion struct {
	ID              string
	Codigo          string
	Nombre          string
	Tipo            string          // tributario.RetencionFuente | RetencionIVA | RetencionICA
	Tarifa          decimal.Decimal // % (retefuente/reteiva) o ‰ (reteica)
	BaseMinimaUVT   decimal.Decimal // umbral en UVT; cero = no definido
	BaseMinimaPesos decimal.Decimal // umbral en pesos; cero = usar UVT
	TipoPersona     string          // tributario.PersonaNatural | PersonaJuridica | PersonaCualquier
	Declarante      string          // tributario.DeclaranteRenta | NoDeclaranteRenta | DeclaranteAny
	TipoTransaccion string          // tributario.TransaccionBienes | TransaccionServicios | TransaccionAmbos
	CuentaContable  string          // cuenta PUC destino del crédito de retención (ej. "236540")
	CodigoMunicipio string          // solo RETEICA: código DANE del municipio
	Activo          bool
}

// UmbralPesos devuelve la base mínima del concepto convertida a pesos.
func (c ConceptoRetencion) UmbralPesos(valorUVT decimal.Decimal) decimal.Decimal {
	if c.BaseMinimaPesos.GreaterThan(decimal.Zero) {
		return c.BaseMinimaPesos
	}
	return c.BaseMinimaUVT.Mul(valorUVT)
}

// AplicaA indica si el concepto cubre el tipo de transacción dado.
func (c ConceptoRetencion) AplicaA(tipoTransaccion string) bool {
	return c.TipoTransaccion == tipoTransaccion || c.TipoTransaccion == "AMBOS"
}
