package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de compra: determinan el renglón débito del asiento.
const (
	CompraInventario = "INVENTARIO"  // débito a inventarios + IVA descontable
	CompraActivoFijo = "ACTIVO_FIJO" // el IVA se capitaliza en el activo
)

// LineaFacturaCompra es una línea facturada, referenciando la línea de orden.
type LineaFacturaCompra struct {
	ID              string
	FacturaID       string
	LineaOrdenID    string
	ProductoID      string
	Cantidad        decimal.Decimal
	PrecioUnitario  decimal.Decimal
	TarifaIVA       decimal.Decimal
	TarifaDescuento decimal.Decimal
	Subtotal        decimal.Decimal
	Descuento       decimal.Decimal
	IVA             decimal.Decimal
	Total           decimal.Decimal
}

// FacturaCompra es la cabecera de la factura de proveedor.
// (ProveedorID, Numero) es único: lo garantiza un constraint compuesto en la
// persistencia, no una comparación en memoria.
// AsientoID y CausadaEn se escriben exactamente una vez al causar la factura;
// antes de honrar un nuevo intento de causación se verifica que estén vacíos.
type FacturaCompra struct {
	ID              string
	OrdenID         string
	ProveedorID     string
	Numero          string
	Fecha           time.Time
	TipoCompra      string // CompraInventario | CompraActivoFijo
	TipoTransaccion string // tributario.TransaccionBienes | TransaccionServicios (selección de conceptos)
	Subtotal        decimal.Decimal
	Descuento       decimal.Decimal
	IVA             decimal.Decimal
	Total           decimal.Decimal
	Lineas          []LineaFacturaCompra
	AsientoID       string     // vacío hasta la causación
	CausadaEn       *time.Time // nil hasta la causación
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Causada indica si la factura ya tiene asiento contable asociado.
func (f *FacturaCompra) Causada() bool {
	return f.AsientoID != "" || f.CausadaEn != nil
}
