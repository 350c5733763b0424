// Package contabilidad contiene los servicios de dominio contables: la
// valorización de líneas (fórmula única compartida por órdenes, facturas y
// devoluciones) y el constructor del asiento de causación de compras.
package contabilidad

import "github.com/shopspring/decimal"

var cien = decimal.NewFromInt(100)

// LineaValorizada es el resultado monetario de valorizar una línea.
type LineaValorizada struct {
	Subtotal     decimal.Decimal // cantidad × precio unitario
	Descuento    decimal.Decimal // subtotal × tarifa de descuento
	BaseGravable decimal.Decimal // subtotal − descuento
	IVA          decimal.Decimal // base gravable × tarifa de IVA
	Total        decimal.Decimal // base gravable + IVA
}

// CalcularLinea aplica la fórmula de valorización compartida por líneas de
// orden, factura y devolución. Las tarifas vienen en porcentaje.
func CalcularLinea(cantidad, precioUnitario, tarifaDescuento, tarifaIVA decimal.Decimal) LineaValorizada {
	subtotal := cantidad.Mul(precioUnitario)
	descuento := subtotal.Mul(tarifaDescuento).Div(cien)
	base := subtotal.Sub(descuento)
	iva := base.Mul(tarifaIVA).Div(cien)
	return LineaValorizada{
		Subtotal:     subtotal,
		Descuento:    descuento,
		BaseGravable: base,
		IVA:          iva,
		Total:        base.Add(iva),
	}
}

// Acumular suma otra línea valorizada sobre el acumulado (totales de documento).
func (v LineaValorizada) Acumular(otra LineaValorizada) LineaValorizada {
	return LineaValorizada{
		Subtotal:     v.Subtotal.Add(otra.Subtotal),
		Descuento:    v.Descuento.Add(otra.Descuento),
		BaseGravable: v.BaseGravable.Add(otra.BaseGravable),
		IVA:          v.IVA.Add(otra.IVA),
		Total:        v.Total.Add(otra.Total),
	}
}
