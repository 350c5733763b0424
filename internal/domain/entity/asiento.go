package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovimientoContable es un renglón del asiento: exactamente uno de
// Debito/Credito es distinto de cero.
type MovimientoContable struct {
	CuentaCodigo string
	CuentaNombre string
	Descripcion  string
	Debito       decimal.Decimal
	Credito      decimal.Decimal
	TerceroID    string // obligatorio en créditos de retención y cuenta por pagar
	Secuencia    int    // denso, desde 1, en orden de emisión
}

// AsientoContable es un comprobante de diario balanceado (partida doble).
// Invariante: TotalDebito == TotalCredito para todo asiento que emite el motor.
// Contabilizado nace en false y lo pone en true, una sola vez, el colaborador
// que persiste y confirma el asiento.
type AsientoContable struct {
	ID              string
	Fecha           time.Time
	Descripcion     string
	DocumentoOrigen string // ej. "FACTURA_COMPRA"
	NumeroDocumento string
	Movimientos     []MovimientoContable
	TotalDebito     decimal.Decimal
	TotalCredito    decimal.Decimal
	Contabilizado   bool
	CreatedAt       time.Time
}

// Balanceado indica si los totales del asiento cuadran exactamente.
func (a *AsientoContable) Balanceado() bool {
	return a.TotalDebito.Equal(a.TotalCredito)
}
