package dto

import "github.com/shopspring/decimal"

// PerfilTributarioRequest condición fiscal del proveedor para simular retenciones.
type PerfilTributarioRequest struct {
	TipoPersona      string `json:"tipo_persona"` // NATURAL | JURIDICA
	DeclaranteRenta  bool   `json:"declarante_renta"`
	Autorretenedor   bool   `json:"autorretenedor"`
	Regimen          string `json:"regimen"` // ORDINARIO | REGIMEN_SIMPLE
	InscritoICALocal bool   `json:"inscrito_ica_local"`
}

// SimularRetencionesRequest calcula retenciones sin registrar nada.
type SimularRetencionesRequest struct {
	Base            decimal.Decimal         `json:"base"`
	TarifaIVA       decimal.Decimal         `json:"tarifa_iva"` // cero = tarifa general
	TipoTransaccion string                  `json:"tipo_transaccion"`
	Perfil          PerfilTributarioRequest `json:"perfil"`
}

// RetencionResponse resultado de evaluar un tipo de retención.
type RetencionResponse struct {
	Tipo           string          `json:"tipo"`
	ConceptoCodigo string          `json:"concepto_codigo,omitempty"`
	Base           decimal.Decimal `json:"base"`
	Valor          decimal.Decimal `json:"valor"`
	Aplicada       bool            `json:"aplicada"`
	Motivo         string          `json:"motivo,omitempty"`
}

// ValidacionResponse resultado de la validación previa a la causación.
type ValidacionResponse struct {
	EsValida     bool     `json:"es_valida"`
	Errores      []string `json:"errores"`
	Advertencias []string `json:"advertencias"`
}

// MovimientoResponse renglón del asiento.
type MovimientoResponse struct {
	Secuencia    int             `json:"secuencia"`
	CuentaCodigo string          `json:"cuenta_codigo"`
	CuentaNombre string          `json:"cuenta_nombre"`
	Descripcion  string          `json:"descripcion"`
	Debito       decimal.Decimal `json:"debito"`
	Credito      decimal.Decimal `json:"credito"`
	TerceroID    string          `json:"tercero_id,omitempty"`
}

// AsientoResponse asiento contable emitido.
type AsientoResponse struct {
	ID              string               `json:"id"`
	Fecha           string               `json:"fecha"`
	Descripcion     string               `json:"descripcion"`
	DocumentoOrigen string               `json:"documento_origen"`
	NumeroDocumento string               `json:"numero_documento"`
	Movimientos     []MovimientoResponse `json:"movimientos"`
	TotalDebito     decimal.Decimal      `json:"total_debito"`
	TotalCredito    decimal.Decimal      `json:"total_credito"`
	Contabilizado   bool                 `json:"contabilizado"`
}

// CausacionResponse resultado de causar una factura: validación, retenciones y,
// si la validación pasó, el asiento emitido.
type CausacionResponse struct {
	FacturaID   string              `json:"factura_id"`
	Validacion  ValidacionResponse  `json:"validacion"`
	Retenciones []RetencionResponse `json:"retenciones,omitempty"`
	Asiento     *AsientoResponse    `json:"asiento,omitempty"`
}
